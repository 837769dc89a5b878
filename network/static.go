package network

// StaticProvider is an in-memory Provider that always returns the same
// set of interfaces. Used for testing and dry runs.
type StaticProvider struct {
	ifaces []Interface
}

// NewStaticProvider constructor
func NewStaticProvider(ifaces ...Interface) *StaticProvider {
	return &StaticProvider{ifaces: ifaces}
}

// Discover returns the configured interfaces
func (p *StaticProvider) Discover() ([]Interface, error) {
	return p.ifaces, nil
}
