package network

import (
	"os"
	"strings"
)

var sysClassNet = "/sys/class/net"

// LinkDetected reports whether the interface has a live link by reading
// the kernel carrier and operstate files.
func LinkDetected(iface string) bool {
	cnt, err := os.ReadFile(sysClassNet + "/" + iface + "/carrier")
	if err != nil {
		return false
	}

	if !strings.Contains(string(cnt), "1") {
		return false
	}

	cnt, err = os.ReadFile(sysClassNet + "/" + iface + "/operstate")
	if err != nil {
		return false
	}

	if !strings.Contains(string(cnt), "up") {
		return false
	}

	return true
}
