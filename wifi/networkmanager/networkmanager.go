//go:build linux

// Package networkmanager implements the wifi.Backend strategy over D-Bus
// against the NetworkManager daemon.
package networkmanager

import (
	"fmt"
	"log/slog"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/google/uuid"

	"github.com/ubopod/wifimgr/wifi"
)

// Backend talks to NetworkManager's object tree. It holds no state of its
// own beyond the daemon proxies; every operation re-locates the wireless
// device because hardware can be hot-plugged or reset between calls.
type Backend struct {
	NM       gonetworkmanager.NetworkManager
	Settings gonetworkmanager.Settings

	logger *slog.Logger
}

// New creates the D-Bus backend. It fails with wifi.ErrNotAvailable when
// the daemon does not own its name on the system bus.
func New(logger *slog.Logger) (wifi.Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !Available() {
		return nil, fmt.Errorf("networkmanager service is not on the system bus: %w", wifi.ErrNotAvailable)
	}

	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create network manager client: %w", wifi.ErrNotAvailable)
	}

	settings, err := gonetworkmanager.NewSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", wifi.ErrOperationFailed)
	}

	return &Backend{
		NM:       nm,
		Settings: settings,
		logger:   logger,
	}, nil
}

// wirelessDevice returns the first wireless-typed device, or nil if none
// exists. Absence is a normal result, not an error.
func (b *Backend) wirelessDevice() (gonetworkmanager.DeviceWireless, error) {
	devices, err := call(b.NM.GetDevices)
	if err != nil {
		return nil, err
	}
	for _, device := range devices {
		deviceType, err := call(device.GetPropertyDeviceType)
		if err != nil {
			continue
		}
		if deviceType != gonetworkmanager.NmDeviceTypeWifi {
			continue
		}
		if dev, ok := device.(gonetworkmanager.DeviceWireless); ok {
			return dev, nil
		}
	}
	return nil, nil
}

// DeviceState reports the adapter's coarse state, GlobalUnknown without a
// device.
func (b *Backend) DeviceState() (wifi.GlobalState, error) {
	dev, err := b.wirelessDevice()
	if err != nil || dev == nil {
		return wifi.GlobalUnknown, err
	}
	state, err := call(dev.GetPropertyState)
	if err != nil {
		return wifi.GlobalUnknown, err
	}
	return globalStateFromDevice(state), nil
}

// RequestScan asks the wireless device to scan. Silent no-op without one.
func (b *Backend) RequestScan() error {
	dev, err := b.wirelessDevice()
	if err != nil || dev == nil {
		return err
	}
	return run(dev.RequestScan)
}

// AccessPoints returns all currently visible access points.
func (b *Backend) AccessPoints() ([]wifi.AccessPoint, error) {
	dev, err := b.wirelessDevice()
	if err != nil || dev == nil {
		return nil, err
	}

	accessPoints, err := call(dev.GetAccessPoints)
	if err != nil {
		return nil, err
	}

	result := make([]wifi.AccessPoint, 0, len(accessPoints))
	for _, ap := range accessPoints {
		info, err := accessPointInfo(ap)
		if err != nil {
			return nil, err
		}
		if info.SSID == "" {
			continue
		}
		result = append(result, info)
	}
	return result, nil
}

// ActiveAccessPoint returns the access point the device is associated
// with, or nil when there is none or the daemon reports the "no object"
// path.
func (b *Backend) ActiveAccessPoint() (*wifi.AccessPoint, error) {
	dev, err := b.wirelessDevice()
	if err != nil || dev == nil {
		return nil, err
	}

	ap, err := call(dev.GetPropertyActiveAccessPoint)
	if err != nil {
		return nil, err
	}
	if ap == nil || ap.GetPath() == noObjectPath {
		return nil, nil
	}
	info, err := accessPointInfo(ap)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func accessPointInfo(ap gonetworkmanager.AccessPoint) (wifi.AccessPoint, error) {
	ssid, err := call(ap.GetPropertySSID)
	if err != nil {
		return wifi.AccessPoint{}, err
	}
	strength, err := call(ap.GetPropertyStrength)
	if err != nil {
		return wifi.AccessPoint{}, err
	}
	return wifi.AccessPoint{
		SSID:     ssid,
		Strength: strength,
		Path:     string(ap.GetPath()),
	}, nil
}

// activeConnection returns the device's active connection handle, or nil.
func (b *Backend) activeConnection() (gonetworkmanager.ActiveConnection, error) {
	dev, err := b.wirelessDevice()
	if err != nil || dev == nil {
		return nil, err
	}

	active, err := call(dev.GetPropertyActiveConnection)
	if err != nil {
		return nil, err
	}
	if active == nil || active.GetPath() == noObjectPath {
		return nil, nil
	}
	return active, nil
}

// ActiveSSID resolves the active connection back to its saved profile's
// wireless SSID, or "" when nothing is active.
func (b *Backend) ActiveSSID() (string, error) {
	active, err := b.activeConnection()
	if err != nil || active == nil {
		return "", err
	}

	conn, err := call(active.GetPropertyConnection)
	if err != nil {
		return "", err
	}
	settings, err := call(conn.GetSettings)
	if err != nil {
		return "", err
	}
	return ssidFromSettings(settings), nil
}

// ActiveConnectionState returns the normalized state of the active
// connection, StateUnknown when nothing is active.
func (b *Backend) ActiveConnectionState() (wifi.ConnectionState, error) {
	active, err := b.activeConnection()
	if err != nil || active == nil {
		return wifi.StateUnknown, err
	}

	state, err := call(active.GetPropertyState)
	if err != nil {
		return wifi.StateUnknown, err
	}
	return connectionStateFromActive(state), nil
}

// SavedSSIDs lists every saved wireless profile's SSID in daemon order.
// Profiles without a wireless settings block are not wireless profiles and
// are skipped.
func (b *Backend) SavedSSIDs() ([]string, error) {
	connections, err := call(b.Settings.ListConnections)
	if err != nil {
		return nil, err
	}

	ssids := make([]string, 0, len(connections))
	for _, conn := range connections {
		settings, err := call(conn.GetSettings)
		if err != nil {
			return nil, err
		}
		if ssid := ssidFromSettings(settings); ssid != "" {
			ssids = append(ssids, ssid)
		}
	}
	return ssids, nil
}

func ssidFromSettings(settings map[string]map[string]interface{}) string {
	wireless, ok := settings["802-11-wireless"]
	if !ok {
		return ""
	}
	ssidBytes, ok := wireless["ssid"].([]byte)
	if !ok {
		return ""
	}
	return string(ssidBytes)
}

// findAccessPoint returns the first visible access point whose SSID
// matches, or nil.
func (b *Backend) findAccessPoint(dev gonetworkmanager.DeviceWireless, ssid string) (gonetworkmanager.AccessPoint, error) {
	accessPoints, err := call(dev.GetAccessPoints)
	if err != nil {
		return nil, err
	}
	for _, ap := range accessPoints {
		apSSID, err := call(ap.GetPropertySSID)
		if err != nil {
			return nil, err
		}
		if apSSID == ssid {
			return ap, nil
		}
	}
	return nil, nil
}

func securitySettings(security wifi.SecurityType, password string) map[string]interface{} {
	switch security {
	case wifi.SecurityOpen:
		return map[string]interface{}{
			"key-mgmt": "none",
			"auth-alg": "open",
		}
	case wifi.SecurityWEP:
		return map[string]interface{}{
			"key-mgmt": "none",
			"auth-alg": "open",
			"psk":      password,
		}
	default: // WPA and WPA2 share the same property set.
		return map[string]interface{}{
			"key-mgmt": "wpa-psk",
			"auth-alg": "open",
			"psk":      password,
		}
	}
}

// JoinNetwork provisions a connection for the SSID and activates it in one
// combined daemon call. Hidden networks have no visible access point to
// bind to and use the AP-less variant; for the rest, a missing access
// point means the network is out of range and surfaces as ErrNotFound.
func (b *Backend) JoinNetwork(ssid string, password string, security wifi.SecurityType, hidden bool) error {
	dev, err := b.wirelessDevice()
	if err != nil || dev == nil {
		return err
	}

	settings := map[string]map[string]interface{}{
		"connection": {
			"id":          ssid,
			"uuid":        uuid.New().String(),
			"type":        "802-11-wireless",
			"autoconnect": true,
		},
		"802-11-wireless": {
			"mode":     "infrastructure",
			"security": "802-11-wireless-security",
			"ssid":     []byte(ssid),
			"hidden":   hidden,
		},
		"802-11-wireless-security": securitySettings(security, password),
		"ipv4":                     {"method": "auto"},
		"ipv6":                     {"method": "auto"},
	}

	if hidden {
		_, err = call(func() (gonetworkmanager.ActiveConnection, error) {
			return b.NM.AddAndActivateConnection(settings, dev)
		})
		return err
	}

	ap, err := b.findAccessPoint(dev, ssid)
	if err != nil {
		return err
	}
	if ap == nil {
		return fmt.Errorf("no visible access point for %q: %w", ssid, wifi.ErrNotFound)
	}

	_, err = call(func() (gonetworkmanager.ActiveConnection, error) {
		return b.NM.AddAndActivateWirelessConnection(settings, dev, ap)
	})
	return err
}

// ActivateConnection activates the saved profile matching the SSID. An
// unknown SSID, a missing device, or a network that is not currently
// visible all make this a no-op.
func (b *Backend) ActivateConnection(ssid string) error {
	dev, err := b.wirelessDevice()
	if err != nil || dev == nil {
		return err
	}

	connections, err := call(b.Settings.ListConnections)
	if err != nil {
		return err
	}
	var saved gonetworkmanager.Connection
	for _, conn := range connections {
		settings, err := call(conn.GetSettings)
		if err != nil {
			return err
		}
		if ssidFromSettings(settings) == ssid {
			saved = conn
			break
		}
	}
	if saved == nil {
		return nil
	}

	ap, err := b.findAccessPoint(dev, ssid)
	if err != nil {
		return err
	}
	if ap == nil {
		b.logger.Debug("saved network not visible, skipping activation", "ssid", ssid)
		return nil
	}

	_, err = call(func() (gonetworkmanager.ActiveConnection, error) {
		return b.NM.ActivateWirelessConnection(saved, dev, ap)
	})
	return err
}

// Disconnect deactivates the device's current active connection. No-op
// when nothing is active.
func (b *Backend) Disconnect() error {
	active, err := b.activeConnection()
	if err != nil || active == nil {
		return err
	}
	return run(func() error {
		return b.NM.DeactivateConnection(active)
	})
}

// ForgetNetwork deletes every saved profile whose wireless SSID matches,
// including duplicates, and reports how many were deleted.
func (b *Backend) ForgetNetwork(ssid string) (int, error) {
	connections, err := call(b.Settings.ListConnections)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, conn := range connections {
		settings, err := call(conn.GetSettings)
		if err != nil {
			return deleted, err
		}
		if ssidFromSettings(settings) != ssid {
			continue
		}
		if err := run(conn.Delete); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// IsWirelessEnabled checks if the wireless radio is enabled.
func (b *Backend) IsWirelessEnabled() (bool, error) {
	return call(b.NM.GetPropertyWirelessEnabled)
}

// SetWireless enables or disables the wireless radio.
func (b *Backend) SetWireless(enabled bool) error {
	return run(func() error {
		return b.NM.SetPropertyWirelessEnabled(enabled)
	})
}
