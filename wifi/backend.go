package wifi

// Backend is the strategy interface over the network-management daemon.
// Two implementations exist: the D-Bus client in wifi/networkmanager, and
// the inert stub in wifi/stub for hosts without the daemon. One of them is
// selected at startup and injected into the Manager.
//
// Lookup operations treat "nothing there" as an empty or zero result, never
// as an error. Mutations propagate daemon rejections to the caller.
type Backend interface {
	// DeviceState reports the wireless adapter's coarse state, or
	// GlobalUnknown if no wireless device exists.
	DeviceState() (GlobalState, error)
	// RequestScan asks the wireless device to scan. No-op without a device.
	RequestScan() error

	// AccessPoints returns all currently visible access points; empty if no
	// wireless device.
	AccessPoints() ([]AccessPoint, error)
	// ActiveAccessPoint returns the access point the device is associated
	// with, or nil if none.
	ActiveAccessPoint() (*AccessPoint, error)
	// ActiveSSID returns the SSID of the currently activating/active
	// connection, resolved through its saved profile, or "" if none.
	ActiveSSID() (string, error)
	// ActiveConnectionState returns the normalized state of the active
	// connection, or StateUnknown if none.
	ActiveConnectionState() (ConnectionState, error)
	// SavedSSIDs lists every saved wireless profile's SSID in the order the
	// daemon returns them. Profiles without a wireless settings block are
	// skipped.
	SavedSSIDs() ([]string, error)

	// JoinNetwork provisions and activates a new connection in one atomic
	// daemon call.
	JoinNetwork(ssid string, password string, security SecurityType, hidden bool) error
	// ActivateConnection activates an existing saved profile. No-op if no
	// profile matches.
	ActivateConnection(ssid string) error
	// Disconnect deactivates the device's active connection, if any.
	Disconnect() error
	// ForgetNetwork deletes every saved profile matching the SSID and
	// reports how many were deleted. Forgetting an unknown SSID is a no-op.
	ForgetNetwork(ssid string) (int, error)

	// IsWirelessEnabled checks if the wireless radio is enabled.
	IsWirelessEnabled() (bool, error)
	// SetWireless enables or disables the wireless radio.
	SetWireless(enabled bool) error
}
