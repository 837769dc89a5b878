package network

import "strings"

// Class describes the physical kind of a network interface.
type Class int

// define valid interface classes
const (
	ClassOther Class = iota
	ClassWired
	ClassWireless
)

func (c Class) String() string {
	switch c {
	case ClassWired:
		return "wired"
	case ClassWireless:
		return "wireless"
	default:
		return "other"
	}
}

// Interface is a snapshot of one host network interface.
type Interface struct {
	Name         string
	Class        Class
	HardwareAddr string
	LinkPresent  bool
}

// Provider enumerates host network interfaces. Discover returns one live
// snapshot per call, preserving system enumeration order.
type Provider interface {
	Discover() ([]Interface, error)
}

// Classify maps an interface name to its class using the predictable
// adapter naming conventions: en* is wired, wl* is wireless.
func Classify(name string) Class {
	switch {
	case strings.HasPrefix(name, "en"):
		return ClassWired
	case strings.HasPrefix(name, "wl"):
		return ClassWireless
	default:
		return ClassOther
	}
}

// LastOfClass returns the last enumerated interface of the given class.
// When multiple interfaces match, the most recently enumerated one wins;
// this follows system enumeration order, not a sorted order.
func LastOfClass(ifaces []Interface, class Class) (Interface, bool) {
	var found Interface
	ok := false
	for _, iface := range ifaces {
		if iface.Class == class {
			found = iface
			ok = true
		}
	}
	return found, ok
}
