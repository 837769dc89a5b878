//go:build linux

package network

import (
	"fmt"

	nm "github.com/Wifx/gonetworkmanager/v2"
)

// NMProvider discovers interfaces from NetworkManager over D-Bus.
type NMProvider struct {
}

// NewNMProvider constructor
func NewNMProvider() *NMProvider {
	return &NMProvider{}
}

// Discover queries NetworkManager for all devices and returns a snapshot
// of the host interfaces in the order NetworkManager enumerates them.
func (p *NMProvider) Discover() ([]Interface, error) {
	nmObj, err := nm.NewNetworkManager()
	if err != nil {
		return nil, fmt.Errorf("error getting NetworkManager: %w", err)
	}

	devices, err := nmObj.GetAllDevices()
	if err != nil {
		return nil, fmt.Errorf("error getting devices: %w", err)
	}

	var ifaces []Interface

	for _, device := range devices {
		name, err := device.GetPropertyInterface()
		if err != nil {
			return nil, fmt.Errorf("error getting device interface: %w", err)
		}
		if name == "" {
			continue
		}

		iface := Interface{
			Name:        name,
			Class:       Classify(name),
			LinkPresent: LinkDetected(name),
		}

		// HwAddress is only available on some device types
		if devHwAddr, ok := device.(interface {
			GetPropertyHwAddress() (string, error)
		}); ok {
			addr, err := devHwAddr.GetPropertyHwAddress()
			if err != nil {
				return nil, fmt.Errorf("error getting hardware address: %w", err)
			}
			if addr != "00:00:00:00:00:00" {
				iface.HardwareAddr = addr
			}
		}

		ifaces = append(ifaces, iface)
	}

	return ifaces, nil
}
