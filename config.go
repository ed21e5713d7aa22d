package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Backend selection values for Config.Backend.
const (
	BackendAuto           = "auto"
	BackendNetworkManager = "networkmanager"
	BackendStub           = "stub"
)

// Config is the optional TOML config file. Missing values keep their
// defaults, so users only override what they want.
type Config struct {
	// Backend picks the daemon strategy: "auto" probes the system bus and
	// falls back to the stub, the other values force one implementation.
	Backend string `toml:"Backend"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{Backend: BackendAuto}
}

// LoadConfig loads the config file at path over the defaults. An empty
// path returns the defaults untouched.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	switch cfg.Backend {
	case BackendAuto, BackendNetworkManager, BackendStub:
	default:
		return cfg, fmt.Errorf("invalid backend %q", cfg.Backend)
	}
	return cfg, nil
}
