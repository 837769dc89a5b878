package netrole

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/ulagbulag-village/noah-cloud/file"
	"github.com/ulagbulag-village/noah-cloud/network"
	"github.com/ulagbulag-village/noah-cloud/store"
	"github.com/ulagbulag-village/noah-cloud/system"
)

// Runner executes the full reconciliation once: discover interfaces,
// read the persisted role bindings, plan, rewrite, journal, reboot.
// It is meant to run to completion once per boot or hotplug event with
// no overlapping invocation; serialization is left to the trigger
// (typically a systemd unit).
type Runner struct {
	log      *log.Logger
	provider network.Provider
	config   Config

	// DryRun plans and logs but never mutates or reboots.
	DryRun bool
	// NoReboot applies the rewrite but suppresses the restart.
	NoReboot bool
}

// NewRunner constructor
func NewRunner(provider network.Provider, config Config) *Runner {
	return &Runner{
		log:      log.New(os.Stderr, "netrole: ", log.LstdFlags|log.Lmsgprefix),
		provider: provider,
		config:   config,
	}
}

// Run performs one reconciliation pass. A no-op (wireless present, no
// prior state, already bound, missing/malformed artifacts) returns nil
// after logging the reason; a successful migration ends in a system
// restart unless suppressed.
func (r *Runner) Run() error {
	inv, err := r.provider.Discover()
	if err != nil {
		return fmt.Errorf("error discovering interfaces: %w", err)
	}

	arts := r.config.Artifacts()

	bindings, err := ReadBindings(arts)
	if err != nil {
		if errors.Is(err, ErrArtifactMissing) ||
			errors.Is(err, ErrArtifactMalformed) {
			// not fatal, but must be distinguishable from the
			// intentional no-op path
			r.log.Println("No migration possible this run: ", err)
			return nil
		}
		return err
	}

	m, reason := PlanMigration(inv, bindings, arts)
	if m == nil {
		r.log.Println("No migration needed: ", reason)
		return nil
	}

	r.log.Printf("Migrating primary role: %v (%v) -> %v (%v)",
		m.OldPrimary.Name, m.OldPrimary.HardwareAddr,
		m.NewPrimary.Name, m.NewPrimary.HardwareAddr)

	if r.DryRun {
		r.log.Println("Dry run, not applying")
		return nil
	}

	applyErr := Apply(m, arts)

	r.journal(m, applyErr)

	if applyErr != nil {
		return applyErr
	}

	if !r.config.Reboot || r.NoReboot {
		r.log.Println("Migration applied, reboot suppressed")
		return nil
	}

	if err := file.SyncDisks(); err != nil {
		r.log.Println("Error syncing disks: ", err)
	}

	r.log.Println("Migration applied, rebooting ...")
	return system.Reboot()
}

// journal records the attempted migration. Journal problems are logged
// and never fail the run.
func (r *Runner) journal(m *Migration, applyErr error) {
	if r.config.JournalPath == "" {
		return
	}

	outcome := "applied"
	if applyErr != nil {
		var pe *PartialError
		if errors.As(applyErr, &pe) {
			outcome = "partial:" + pe.Step
		} else {
			outcome = "failed"
		}
	}

	rec := store.Record{
		Time:             time.Now(),
		OldPrimaryName:   m.OldPrimary.Name,
		OldPrimaryAddr:   m.OldPrimary.HardwareAddr,
		NewPrimaryName:   m.NewPrimary.Name,
		NewPrimaryAddr:   m.NewPrimary.HardwareAddr,
		NewSecondaryName: m.NewSecondary.Name,
		NewSecondaryAddr: m.NewSecondary.HardwareAddr,
		Outcome:          outcome,
	}

	if info, err := host.Info(); err == nil {
		rec.Hostname = info.Hostname
		rec.BootTime = time.Unix(int64(info.BootTime), 0)
	}

	if v, err := system.ReadOSVersion(); err == nil {
		rec.OSVersion = v.String()
	}

	j, err := store.NewJournal(r.config.JournalPath)
	if err != nil {
		r.log.Println("Error opening journal: ", err)
		return
	}
	defer j.Close()

	if _, err := j.Add(rec); err != nil {
		r.log.Println("Error writing journal: ", err)
	}
}
