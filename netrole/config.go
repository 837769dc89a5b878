package netrole

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Config holds the artifact locations and runtime switches for the role
// migration routine. All fields have compiled-in defaults so a config
// file is optional.
type Config struct {
	// RulePath is the udev naming rule that pins the secondary adapter's
	// hardware address at boot.
	RulePath string `yaml:"rulePath"`
	// ProfileDir holds the NetworkManager connection profiles.
	ProfileDir string `yaml:"profileDir"`
	// EnabledProfile is the file name of the always-active profile bound
	// to the current primary interface.
	EnabledProfile string `yaml:"enabledProfile"`
	// StandbyPrefix is the file name prefix of disabled profiles; the
	// rest of the name carries the bound interface name.
	StandbyPrefix string `yaml:"standbyPrefix"`
	// JournalPath is the SQLite migration journal. Empty disables the
	// journal.
	JournalPath string `yaml:"journalPath"`
	// Reboot controls whether a successful migration triggers a restart.
	Reboot bool `yaml:"reboot"`
}

// DefaultConfig returns the stock configuration used when no config file
// is present.
func DefaultConfig() Config {
	return Config{
		RulePath:       "/etc/udev/rules.d/70-noah-net.rules",
		ProfileDir:     "/etc/NetworkManager/system-connections",
		EnabledProfile: "10-noah-primary.nmconnection",
		StandbyPrefix:  "20-noah-standby-",
		JournalPath:    "/var/lib/noah/netmigrate.db",
		Reboot:         true,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, errors.Wrap(err, "reading config")
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrap(err, "parsing config")
	}

	return config, nil
}

// Artifacts resolves the configured paths into the artifact set the
// reader and rewrite engine operate on.
func (c Config) Artifacts() Artifacts {
	return Artifacts{
		RulePath:      c.RulePath,
		EnabledPath:   filepath.Join(c.ProfileDir, c.EnabledProfile),
		ProfileDir:    c.ProfileDir,
		StandbyPrefix: c.StandbyPrefix,
	}
}
