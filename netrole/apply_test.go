package netrole

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ulagbulag-village/noah-cloud/file"
	"github.com/ulagbulag-village/noah-cloud/network"
)

func planFixture(t *testing.T, a Artifacts) *Migration {
	t.Helper()

	b, err := ReadBindings(a)
	if err != nil {
		t.Fatal("ReadBindings error: ", err)
	}

	m, reason := PlanMigration([]network.Interface{wiredIface}, b, a)
	if m == nil {
		t.Fatal("Expected migration, got no-op: ", reason)
	}

	return m
}

// After a successful apply the enabled profile encodes the wired
// identity under "ethernet" and the renamed standby profile encodes the
// demoted wireless identity under "wifi".
func TestApplySwap(t *testing.T) {
	a := writeArtifacts(t)
	m := planFixture(t, a)

	if err := Apply(m, a); err != nil {
		t.Fatal("Apply error: ", err)
	}

	rule := readFile(t, a.RulePath)
	if !strings.Contains(rule, `ATTR{address}=="aa:bb:cc:dd:ee:ff"`) {
		t.Error("Naming rule not rebound to demoted address:\n", rule)
	}
	if strings.Contains(rule, "11:22:33:44:55:66") {
		t.Error("Naming rule still holds the old secondary address")
	}

	enabled := readFile(t, a.EnabledPath)
	if !strings.Contains(enabled, "type=ethernet") {
		t.Error("Enabled profile keyword not flipped:\n", enabled)
	}
	if !strings.Contains(enabled, "interface-name=enp3s0") {
		t.Error("Enabled profile not bound to wired interface:\n", enabled)
	}
	if !strings.Contains(enabled, "11:22:33:44:55:66") {
		t.Error("Enabled profile missing the wired address:\n", enabled)
	}
	if strings.Contains(enabled, "wlan0") || strings.Contains(enabled, "wifi") {
		t.Error("Enabled profile still references the demoted identity:\n", enabled)
	}

	if file.Exists(a.StandbyPath("enp3s0")) {
		t.Error("Old standby profile still present")
	}

	standby := readFile(t, a.StandbyPath("wlan0"))
	if !strings.Contains(standby, "type=wifi") {
		t.Error("Standby profile keyword not flipped:\n", standby)
	}
	if !strings.Contains(standby, "interface-name=wlan0") {
		t.Error("Standby profile not re-keyed to demoted interface:\n", standby)
	}
	if !strings.Contains(standby, "aa:bb:cc:dd:ee:ff") {
		t.Error("Standby profile missing the demoted address:\n", standby)
	}
	if strings.Contains(standby, "enp3s0") || strings.Contains(standby, "ethernet") {
		t.Error("Standby profile still references the wired identity:\n", standby)
	}
}

// A missing standby profile must leave the naming rule and enabled
// profile untouched and must not create a new standby profile.
func TestApplySkipOnMissing(t *testing.T) {
	a := writeArtifacts(t)
	m := planFixture(t, a)

	if err := os.Remove(m.StandbySource); err != nil {
		t.Fatal(err)
	}

	err := Apply(m, a)
	if !errors.Is(err, ErrArtifactMissing) {
		t.Error("Expected ErrArtifactMissing, got: ", err)
	}

	if readFile(t, a.RulePath) != testRule {
		t.Error("Naming rule modified on skip")
	}
	if readFile(t, a.EnabledPath) != testEnabledProfile {
		t.Error("Enabled profile modified on skip")
	}
	if file.Exists(m.StandbyDest) {
		t.Error("Standby profile created on skip")
	}
}

// Every touched artifact ends with its original permission bits, even
// though the files are read-only going in.
func TestApplyPermissionRestored(t *testing.T) {
	a := writeArtifacts(t)
	m := planFixture(t, a)

	chmod(t, a.RulePath, 0444)
	chmod(t, a.EnabledPath, 0400)
	chmod(t, m.StandbySource, 0400)

	if err := Apply(m, a); err != nil {
		t.Fatal("Apply error: ", err)
	}

	if mode(t, a.RulePath) != 0444 {
		t.Error("Naming rule permissions not restored: ", mode(t, a.RulePath))
	}
	if mode(t, a.EnabledPath) != 0400 {
		t.Error("Enabled profile permissions not restored: ", mode(t, a.EnabledPath))
	}
	if mode(t, m.StandbyDest) != 0400 {
		t.Error("Standby profile permissions not restored: ", mode(t, m.StandbyDest))
	}
}

// A failure after the first mutation leaves the earlier artifacts
// rewritten; that inconsistency is reported, not rolled back.
func TestApplyPartialFailure(t *testing.T) {
	a := writeArtifacts(t)
	m := planFixture(t, a)

	chmod(t, m.StandbySource, 0400)

	if err := os.Remove(a.EnabledPath); err != nil {
		t.Fatal(err)
	}

	err := Apply(m, a)

	var pe *PartialError
	if !errors.As(err, &pe) {
		t.Fatal("Expected PartialError, got: ", err)
	}
	if pe.Step != StepEnabledProfile {
		t.Error("Expected failure at the enabled-profile step, got: ", pe.Step)
	}

	// steps 1 and 2 already landed
	if strings.Contains(readFile(t, a.RulePath), "11:22:33:44:55:66") {
		t.Error("Naming rule was not rewritten before the failure")
	}
	if !file.Exists(m.StandbyDest) {
		t.Error("Standby profile was not renamed before the failure")
	}

	// permissions still restored on the artifacts that were touched
	if mode(t, m.StandbyDest) != 0400 {
		t.Error("Standby permissions not restored after failure: ",
			mode(t, m.StandbyDest))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("Error reading file: ", err)
	}
	return string(data)
}

func chmod(t *testing.T, path string, fm os.FileMode) {
	t.Helper()
	if err := os.Chmod(path, fm); err != nil {
		t.Fatal("Error chmod: ", err)
	}
}

func mode(t *testing.T, path string) os.FileMode {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal("Error stat: ", err)
	}
	return info.Mode().Perm()
}
