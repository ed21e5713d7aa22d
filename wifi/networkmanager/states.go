//go:build linux

package networkmanager

import (
	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"

	"github.com/ubopod/wifimgr/wifi"
)

// globalStateFromDevice maps the adapter's native state machine onto the
// coarse device-level states consumers see.
func globalStateFromDevice(state gonetworkmanager.NmDeviceState) wifi.GlobalState {
	switch state {
	case gonetworkmanager.NmDeviceStateDisconnected,
		gonetworkmanager.NmDeviceStateUnmanaged,
		gonetworkmanager.NmDeviceStateUnavailable,
		gonetworkmanager.NmDeviceStateFailed:
		return wifi.GlobalDisconnected
	case gonetworkmanager.NmDeviceStateNeedAuth:
		return wifi.GlobalNeedsAttention
	case gonetworkmanager.NmDeviceStateDeactivating,
		gonetworkmanager.NmDeviceStatePrepare,
		gonetworkmanager.NmDeviceStateConfig,
		gonetworkmanager.NmDeviceStateIpConfig,
		gonetworkmanager.NmDeviceStateIpCheck,
		gonetworkmanager.NmDeviceStateSecondaries:
		return wifi.GlobalPending
	case gonetworkmanager.NmDeviceStateActivated:
		return wifi.GlobalConnected
	default:
		return wifi.GlobalUnknown
	}
}

// connectionStateFromActive maps an active connection's native state onto
// the normalized per-SSID states.
func connectionStateFromActive(state gonetworkmanager.NmActiveConnectionState) wifi.ConnectionState {
	switch state {
	case gonetworkmanager.NmActiveConnectionStateActivated:
		return wifi.StateConnected
	case gonetworkmanager.NmActiveConnectionStateActivating:
		return wifi.StateConnecting
	case gonetworkmanager.NmActiveConnectionStateDeactivated,
		gonetworkmanager.NmActiveConnectionStateDeactivating:
		return wifi.StateDisconnected
	default:
		return wifi.StateUnknown
	}
}
