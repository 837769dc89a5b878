package netrole

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Role labels for the two persisted bindings.
const (
	RolePrimary   = "primary"
	RoleSecondary = "secondary"
)

// Role keywords as they appear verbatim in connection profile content.
const (
	KeywordEthernet = "ethernet"
	KeywordWifi     = "wifi"
)

// Sentinel errors for artifact loading. Both mean "no migration possible
// this run" rather than fatal process termination.
var (
	ErrArtifactMissing   = errors.New("artifact missing")
	ErrArtifactMalformed = errors.New("artifact malformed")
)

// Artifacts is the set of persisted documents that encode the role
// bindings.
type Artifacts struct {
	RulePath      string
	EnabledPath   string
	ProfileDir    string
	StandbyPrefix string
}

// StandbyPath returns the path of the disabled profile bound to the
// given interface name.
func (a Artifacts) StandbyPath(iface string) string {
	return filepath.Join(a.ProfileDir, a.StandbyPrefix+iface+profileExt)
}

const profileExt = ".nmconnection"

// RoleBinding is one role's persisted identity.
type RoleBinding struct {
	Role         string
	Name         string
	HardwareAddr string
	Keyword      string
}

// Bindings holds both persisted role bindings plus the location of the
// standby profile backing the secondary binding, when one exists.
type Bindings struct {
	Primary     RoleBinding
	Secondary   RoleBinding
	StandbyPath string
}

var reHardwareAddr = regexp.MustCompile(`[0-9A-Fa-f]{2}(?::[0-9A-Fa-f]{2}){5}`)
var reInterfaceName = regexp.MustCompile(`(?m)^interface-name=(\S+)\s*$`)
var reTypeKeyword = regexp.MustCompile(`(?m)^type=(\S+)\s*$`)

// ReadBindings loads the naming rule and connection profiles and parses
// out which interface identity is bound to which role. The primary
// binding comes from the enabled profile; the secondary's address comes
// from the naming rule and its name from the standby profile when one is
// on disk.
func ReadBindings(a Artifacts) (Bindings, error) {
	var b Bindings

	ruleAddr, err := readRuleAddr(a.RulePath)
	if err != nil {
		return b, err
	}

	b.Primary, err = readProfile(a.EnabledPath, RolePrimary)
	if err != nil {
		return b, err
	}

	b.Secondary = RoleBinding{
		Role:         RoleSecondary,
		HardwareAddr: ruleAddr,
	}

	path, iface, ok := findStandby(a, ruleAddr)
	if ok {
		standby, err := readProfile(path, RoleSecondary)
		if err != nil {
			return b, err
		}
		b.StandbyPath = path
		b.Secondary.Name = iface
		b.Secondary.Keyword = standby.Keyword
		// the rule is authoritative for the secondary address
	}

	return b, nil
}

// readRuleAddr extracts the hardware address embedded in the udev naming
// rule.
func readRuleAddr(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(ErrArtifactMissing, path)
		}
		return "", errors.Wrap(err, "reading naming rule")
	}

	addr := reHardwareAddr.FindString(string(data))
	if addr == "" {
		return "", errors.Wrap(ErrArtifactMalformed, path+": no hardware address")
	}

	return addr, nil
}

// readProfile parses a connection profile for its bound interface name,
// hardware address, and role keyword.
func readProfile(path, role string) (RoleBinding, error) {
	binding := RoleBinding{Role: role}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return binding, errors.Wrap(ErrArtifactMissing, path)
		}
		return binding, errors.Wrap(err, "reading profile")
	}

	content := string(data)

	name := reInterfaceName.FindStringSubmatch(content)
	if name == nil {
		return binding, errors.Wrap(ErrArtifactMalformed, path+": no interface-name")
	}
	binding.Name = name[1]

	keyword := reTypeKeyword.FindStringSubmatch(content)
	if keyword == nil {
		return binding, errors.Wrap(ErrArtifactMalformed, path+": no type keyword")
	}
	binding.Keyword = keyword[1]

	binding.HardwareAddr = reHardwareAddr.FindString(content)
	if binding.HardwareAddr == "" {
		return binding, errors.Wrap(ErrArtifactMalformed, path+": no hardware address")
	}

	return binding, nil
}

// findStandby scans the profile directory for disabled profiles. When
// several are present, the one whose content carries the naming rule's
// address wins; otherwise the last one enumerated does.
func findStandby(a Artifacts, ruleAddr string) (path, iface string, ok bool) {
	entries, err := os.ReadDir(a.ProfileDir)
	if err != nil {
		return "", "", false
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, a.StandbyPrefix) ||
			!strings.HasSuffix(name, profileExt) {
			continue
		}

		candidate := filepath.Join(a.ProfileDir, name)
		candidateIface := strings.TrimSuffix(
			strings.TrimPrefix(name, a.StandbyPrefix), profileExt)

		data, err := os.ReadFile(candidate)
		if err == nil &&
			strings.EqualFold(reHardwareAddr.FindString(string(data)), ruleAddr) {
			return candidate, candidateIface, true
		}

		path = candidate
		iface = candidateIface
		ok = true
	}

	return path, iface, ok
}
