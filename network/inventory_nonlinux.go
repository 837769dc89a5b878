//go:build darwin || windows

package network

import "fmt"

// NMProvider discovers interfaces from NetworkManager over D-Bus.
type NMProvider struct {
}

// NewNMProvider constructor
func NewNMProvider() *NMProvider {
	return &NMProvider{}
}

// Discover is not supported on this platform
func (p *NMProvider) Discover() ([]Interface, error) {
	return nil, fmt.Errorf("Error: NetworkManager discovery not supported on this platform.")
}
