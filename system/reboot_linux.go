//go:build linux

package system

import (
	"log"
	"os/exec"

	"github.com/godbus/dbus/v5"
)

const (
	login1Service = "org.freedesktop.login1"
	login1Path    = "/org/freedesktop/login1"
	login1Reboot  = "org.freedesktop.login1.Manager.Reboot"
)

// Reboot issues a full system restart. It first asks logind over D-Bus;
// if that fails (no logind, no system bus) it falls back to the reboot
// command. There is no confirmation and no delay.
func Reboot() error {
	err := rebootDbus()
	if err == nil {
		return nil
	}

	log.Println("Error requesting reboot over D-Bus, falling back: ", err)

	return exec.Command("reboot").Run()
}

func rebootDbus() error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}

	obj := conn.Object(login1Service, dbus.ObjectPath(login1Path))

	// false: do not ask for polkit interactive authorization
	return obj.Call(login1Reboot, 0, false).Err
}
