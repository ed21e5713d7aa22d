// Package stub is the wifi.Backend used on hosts without the network
// daemon (development machines). Every call answers with an empty or no-op
// result; nothing ever connects to a bus.
package stub

import (
	"log/slog"

	"github.com/ubopod/wifimgr/wifi"
)

// Backend answers every call inertly.
type Backend struct {
	logger *slog.Logger
}

// New creates the stub backend.
func New(logger *slog.Logger) (wifi.Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}, nil
}

func (b *Backend) DeviceState() (wifi.GlobalState, error) {
	return wifi.GlobalUnknown, nil
}

func (b *Backend) RequestScan() error {
	b.logger.Debug("stub backend: ignoring scan request")
	return nil
}

func (b *Backend) AccessPoints() ([]wifi.AccessPoint, error) {
	return nil, nil
}

func (b *Backend) ActiveAccessPoint() (*wifi.AccessPoint, error) {
	return nil, nil
}

func (b *Backend) ActiveSSID() (string, error) {
	return "", nil
}

func (b *Backend) ActiveConnectionState() (wifi.ConnectionState, error) {
	return wifi.StateUnknown, nil
}

func (b *Backend) SavedSSIDs() ([]string, error) {
	return nil, nil
}

func (b *Backend) JoinNetwork(ssid string, password string, security wifi.SecurityType, hidden bool) error {
	b.logger.Debug("stub backend: ignoring join", "ssid", ssid)
	return nil
}

func (b *Backend) ActivateConnection(ssid string) error {
	return nil
}

func (b *Backend) Disconnect() error {
	return nil
}

func (b *Backend) ForgetNetwork(ssid string) (int, error) {
	return 0, nil
}

func (b *Backend) IsWirelessEnabled() (bool, error) {
	return false, nil
}

func (b *Backend) SetWireless(enabled bool) error {
	return nil
}
