package netrole

import (
	"strings"

	"github.com/ulagbulag-village/noah-cloud/network"
)

// Identity is the (name, hardware address) pair of one interface.
type Identity struct {
	Name         string
	HardwareAddr string
}

// Migration is the old→new identity mapping the rewrite engine applies.
type Migration struct {
	OldPrimary   Identity
	OldSecondary Identity
	NewPrimary   Identity
	NewSecondary Identity

	// StandbySource is the existing disabled profile, keyed by the old
	// secondary's name; StandbyDest is its new name keyed by the new
	// secondary (the demoted old primary).
	StandbySource string
	StandbyDest   string
}

// NoOp reasons returned by PlanMigration when no migration is needed.
const (
	NoOpWirelessPresent = "wireless interface present"
	NoOpNoWired         = "no wired interface discovered"
	NoOpNoPriorState    = "no standby profile on disk"
	NoOpAlreadyBound    = "enabled profile already bound to wired interface"
)

// PlanMigration decides whether the primary role must migrate to a wired
// interface and, if so, computes the identity swap. A nil Migration
// means no-op; the reason string says why.
//
// Migration triggers only when the inventory holds no wireless interface
// at all. When several interfaces share a class, the last enumerated one
// is used and the rest are ignored.
func PlanMigration(inv []network.Interface, b Bindings, a Artifacts) (*Migration, string) {
	if _, ok := network.LastOfClass(inv, network.ClassWireless); ok {
		return nil, NoOpWirelessPresent
	}

	wired, ok := network.LastOfClass(inv, network.ClassWired)
	if !ok {
		return nil, NoOpNoWired
	}

	// Re-running after a completed migration is side effect free: the
	// enabled profile already names the discovered wired interface.
	if b.Primary.Keyword == KeywordEthernet &&
		b.Primary.Name == wired.Name &&
		strings.EqualFold(b.Primary.HardwareAddr, wired.HardwareAddr) {
		return nil, NoOpAlreadyBound
	}

	// Without a prior standby profile there is no migration state to
	// reconcile; every artifact stays untouched.
	if b.StandbyPath == "" {
		return nil, NoOpNoPriorState
	}

	m := &Migration{
		OldPrimary: Identity{
			Name:         b.Primary.Name,
			HardwareAddr: b.Primary.HardwareAddr,
		},
		OldSecondary: Identity{
			Name:         b.Secondary.Name,
			HardwareAddr: b.Secondary.HardwareAddr,
		},
		NewPrimary: Identity{
			Name:         wired.Name,
			HardwareAddr: wired.HardwareAddr,
		},
		StandbySource: b.StandbyPath,
	}

	// The demoted primary becomes the new secondary; its old address is
	// vacated.
	m.NewSecondary = m.OldPrimary
	m.StandbyDest = a.StandbyPath(m.NewSecondary.Name)

	return m, ""
}
