package network

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		exp  Class
	}{
		{"enp3s0", ClassWired},
		{"eno1", ClassWired},
		{"ens18", ClassWired},
		{"wlan0", ClassWireless},
		{"wlp2s0", ClassWireless},
		{"lo", ClassOther},
		{"docker0", ClassOther},
		{"", ClassOther},
	}

	for _, test := range tests {
		if got := Classify(test.name); got != test.exp {
			t.Errorf("Classify(%q): exp %v, got %v", test.name, test.exp, got)
		}
	}
}

func TestLastOfClass(t *testing.T) {
	ifaces := []Interface{
		{Name: "enp3s0", Class: ClassWired},
		{Name: "lo", Class: ClassOther},
		{Name: "enp4s0", Class: ClassWired},
		{Name: "wlan0", Class: ClassWireless},
	}

	wired, ok := LastOfClass(ifaces, ClassWired)
	if !ok {
		t.Fatal("Expected a wired interface")
	}

	// last enumerated wins
	if wired.Name != "enp4s0" {
		t.Error("Expected enp4s0, got: ", wired.Name)
	}

	wireless, ok := LastOfClass(ifaces, ClassWireless)
	if !ok || wireless.Name != "wlan0" {
		t.Error("Expected wlan0, got: ", wireless.Name)
	}

	if _, ok := LastOfClass(nil, ClassWired); ok {
		t.Error("Expected no interface from empty inventory")
	}
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider(
		Interface{Name: "enp3s0", Class: ClassWired, HardwareAddr: "11:22:33:44:55:66"},
	)

	ifaces, err := p.Discover()
	if err != nil {
		t.Fatal("Discover error: ", err)
	}

	if len(ifaces) != 1 || ifaces[0].Name != "enp3s0" {
		t.Error("Unexpected inventory: ", ifaces)
	}
}
