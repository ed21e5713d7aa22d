//go:build linux

package networkmanager

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

// The daemon reports "no object" as the root path.
const noObjectPath = dbus.ObjectPath("/")

const busName = "org.freedesktop.NetworkManager"

var (
	sessionOnce sync.Once
	sessionConn *dbus.Conn
	sessionErr  error
)

// SystemBus returns the process-wide system-bus session, opening it on
// first use. The session is registered as the process default (godbus
// hands the same shared connection to every caller, including
// gonetworkmanager) and is never closed explicitly; its lifetime is the
// process lifetime. Each worker goroutine issues strictly sequential calls
// over it, so no further coordination is needed here.
func SystemBus() (*dbus.Conn, error) {
	sessionOnce.Do(func() {
		sessionConn, sessionErr = dbus.SystemBus()
	})
	return sessionConn, sessionErr
}

// Available reports whether the NetworkManager daemon currently owns its
// well-known name on the system bus. This is the platform capability flag:
// on hosts where it is false the stub backend is used instead of this
// package.
func Available() bool {
	conn, err := SystemBus()
	if err != nil {
		return false
	}
	var hasOwner bool
	err = conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, busName).Store(&hasOwner)
	return err == nil && hasOwner
}
