//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

type desktopNotifier struct{}

// Notify sends a desktop notification using the Freedesktop.org
// notification spec.
func (desktopNotifier) Notify(title, body string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"tacboard", uint32(0), "", title, body, []string{}, map[string]dbus.Variant{}, int32(5000))
	return call.Err
}
