//go:build darwin || windows

package system

import "errors"

// Reboot is not supported on this platform
func Reboot() error {
	return errors.New("Reboot not supported on this platform")
}
