//go:build linux

package main

import (
	"log/slog"

	"github.com/ubopod/wifimgr/wifi"
	"github.com/ubopod/wifimgr/wifi/networkmanager"
	"github.com/ubopod/wifimgr/wifi/stub"
)

// GetBackend selects the backend strategy once at startup. Hosts where the
// network daemon is not on the system bus get the inert stub instead of a
// real bus client.
func GetBackend(cfg Config, logger *slog.Logger) (wifi.Backend, error) {
	switch cfg.Backend {
	case BackendStub:
		return stub.New(logger)
	case BackendNetworkManager:
		return networkmanager.New(logger)
	}

	if !networkmanager.Available() {
		logger.Warn("network daemon not available, using stub backend")
		return stub.New(logger)
	}
	return networkmanager.New(logger)
}
