//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"
	appName             = "wavelist"
)

type dbusSender struct {
	obj dbus.BusObject
}

// New returns a Sender over the D-Bus session bus, or a no-op Sender when
// there is no session bus.
func New() Sender {
	conn, err := dbus.SessionBus()
	if err != nil {
		return noopSender{}
	}
	return &dbusSender{obj: conn.Object(dbusNotifyDest, dbusNotifyPath)}
}

// Notify calls org.freedesktop.Notifications.Notify.
func (s *dbusSender) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	call := s.obj.Call(
		dbusNotifyInterface+".Notify", 0,
		appName, n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints, n.Timeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("dbus notify: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("dbus notify reply: %w", err)
	}
	return id, nil
}

// Close withdraws notification id.
func (s *dbusSender) Close(id uint32) error {
	return s.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}
