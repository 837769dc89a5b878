package netrole

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/ulagbulag-village/noah-cloud/file"
)

// Rewrite steps, in the order they are issued. Later steps assume the
// earlier ones succeeded: the profile rename depends on the old name
// still resolving when step 2 runs.
const (
	StepNamingRule     = "naming-rule"
	StepStandbyProfile = "standby-profile"
	StepEnabledProfile = "enabled-profile"
)

// PartialError reports a rewrite failure after mutation has started.
// The artifacts are inconsistent until corrected manually or by a fresh
// provisioning pass; there is no rollback.
type PartialError struct {
	Step string
	Err  error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("migration failed at %v step, artifacts may be inconsistent: %v",
		e.Step, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// Apply rewrites all three artifact kinds according to the migration
// plan. Rewrites are purely textual substitutions, issued in a fixed
// order: naming rule, then standby profile, then enabled profile. Every
// write temporarily widens the file's permission bits and restores them
// afterward, whatever the outcome.
func Apply(m *Migration, a Artifacts) error {
	// A vanished standby profile means no prior migration state; leave
	// every artifact untouched.
	if !file.Exists(m.StandbySource) {
		return errors.Wrap(ErrArtifactMissing, m.StandbySource)
	}

	// Step 1: bind the naming rule to the demoted adapter's address.
	err := file.ReplaceInFile(a.RulePath, func(content string) string {
		return strings.ReplaceAll(content,
			m.OldSecondary.HardwareAddr, m.NewSecondary.HardwareAddr)
	})
	if err != nil {
		return &PartialError{Step: StepNamingRule, Err: err}
	}

	// Step 2: re-key the standby profile to the demoted interface and
	// turn it into the profile that holds that path disabled once it
	// returns.
	if m.StandbySource != m.StandbyDest {
		if err := os.Rename(m.StandbySource, m.StandbyDest); err != nil {
			return &PartialError{Step: StepStandbyProfile, Err: err}
		}
	}

	err = file.ReplaceInFile(m.StandbyDest, func(content string) string {
		content = strings.ReplaceAll(content, KeywordEthernet, KeywordWifi)
		content = strings.ReplaceAll(content, m.OldSecondary.Name, m.NewSecondary.Name)
		content = strings.ReplaceAll(content,
			m.OldSecondary.HardwareAddr, m.NewSecondary.HardwareAddr)
		return content
	})
	if err != nil {
		return &PartialError{Step: StepStandbyProfile, Err: err}
	}

	// Step 3: promote the wired interface in the enabled profile.
	err = file.ReplaceInFile(a.EnabledPath, func(content string) string {
		content = strings.ReplaceAll(content, KeywordWifi, KeywordEthernet)
		content = strings.ReplaceAll(content, m.OldPrimary.Name, m.NewPrimary.Name)
		content = strings.ReplaceAll(content,
			m.OldPrimary.HardwareAddr, m.NewPrimary.HardwareAddr)
		return content
	})
	if err != nil {
		return &PartialError{Step: StepEnabledProfile, Err: err}
	}

	return nil
}
