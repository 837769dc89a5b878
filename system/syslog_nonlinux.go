//go:build !linux

package system

import "errors"

// EnableSyslog is not supported on this platform
func EnableSyslog() error {
	return errors.New("Syslog not supported on this platform")
}
