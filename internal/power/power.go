// Package power shuts down or reboots the brick through systemd-logind, so no
// root shell-out is needed.
package power

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ConnectSystemBus is a hook for tests to override D-Bus connection behavior.
var ConnectSystemBus = dbus.ConnectSystemBus

// Poweroff asks logind to power the brick off.
func Poweroff() error {
	return call("PowerOff")
}

// Reboot asks logind to reboot the brick.
func Reboot() error {
	return call("Reboot")
}

func call(method string) error {
	conn, err := ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connecting system bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.login1", "/org/freedesktop/login1")
	// false: do not ask logind for interactive authorization.
	c := obj.Call("org.freedesktop.login1.Manager."+method, 0, false)
	return c.Err
}
