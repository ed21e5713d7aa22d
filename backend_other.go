//go:build !linux

package main

import (
	"log/slog"

	"github.com/ubopod/wifimgr/wifi"
	"github.com/ubopod/wifimgr/wifi/stub"
)

// GetBackend always answers with the stub off-device; the real daemon only
// exists on the embedded Linux host.
func GetBackend(cfg Config, logger *slog.Logger) (wifi.Backend, error) {
	if cfg.Backend == BackendNetworkManager {
		return nil, wifi.ErrNotSupported
	}
	return stub.New(logger)
}
