package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ubopod/wifimgr/wifi"
)

func runList(w io.Writer, jsonOutput bool, m *wifi.Manager) error {
	connections := m.Connections()

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(connections)
	}

	for _, c := range connections {
		fmt.Fprintf(w, "%s\t%d%%\t%s\n", c.SSID, c.Strength, c.State)
	}
	return nil
}

func runStatus(w io.Writer, m *wifi.Manager) error {
	state, err := m.DeviceState()
	if err != nil {
		return fmt.Errorf("failed to read device state: %w", err)
	}
	fmt.Fprintf(w, "Device: %s\n", state)

	enabled, err := m.IsWirelessEnabled()
	if err != nil {
		return fmt.Errorf("failed to read radio state: %w", err)
	}
	fmt.Fprintf(w, "Radio: %s\n", onOff(enabled))

	ap, err := m.ActiveAccessPoint()
	if err != nil {
		return fmt.Errorf("failed to read active access point: %w", err)
	}
	if ap != nil {
		fmt.Fprintf(w, "Network: %s (%d%%)\n", ap.SSID, ap.Strength)
	}
	return nil
}

func runScan(w io.Writer, m *wifi.Manager) error {
	m.RequestScan()
	// Delivery is trailing-edge after the quiet period; give the timer a
	// chance to fire before this one-shot process exits.
	time.Sleep(700 * time.Millisecond)
	fmt.Fprintln(w, "scan requested")
	return nil
}

func runConnect(w io.Writer, ssid string, m *wifi.Manager) error {
	if err := m.Connect(ssid); err != nil {
		return fmt.Errorf("failed to connect to %q: %w", ssid, err)
	}
	fmt.Fprintf(w, "connecting to %s\n", ssid)
	return nil
}

func runJoin(w io.Writer, ssid, passphrase string, security wifi.SecurityType, hidden bool, m *wifi.Manager) error {
	if err := m.Join(ssid, passphrase, security, hidden); err != nil {
		return fmt.Errorf("failed to join %q: %w", ssid, err)
	}
	fmt.Fprintf(w, "joining %s\n", ssid)
	return nil
}

func runDisconnect(w io.Writer, m *wifi.Manager) error {
	if err := m.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	fmt.Fprintln(w, "disconnected")
	return nil
}

func runForget(w io.Writer, ssid string, m *wifi.Manager) error {
	if err := m.Forget(ssid); err != nil {
		return fmt.Errorf("failed to forget %q: %w", ssid, err)
	}
	fmt.Fprintf(w, "forgot %s\n", ssid)
	return nil
}

func runRadio(w io.Writer, arg string, m *wifi.Manager) error {
	switch arg {
	case "":
		enabled, err := m.IsWirelessEnabled()
		if err != nil {
			return fmt.Errorf("failed to read radio state: %w", err)
		}
		fmt.Fprintln(w, onOff(enabled))
		return nil
	case "on", "off":
		if err := m.SetWireless(arg == "on"); err != nil {
			return fmt.Errorf("failed to set radio state: %w", err)
		}
		fmt.Fprintf(w, "radio %s\n", arg)
		return nil
	default:
		return fmt.Errorf("radio takes \"on\" or \"off\", got %q", arg)
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func parseSecurity(s string) (wifi.SecurityType, error) {
	switch s {
	case "open":
		return wifi.SecurityOpen, nil
	case "wep":
		return wifi.SecurityWEP, nil
	case "wpa":
		return wifi.SecurityWPA, nil
	case "wpa2":
		return wifi.SecurityWPA2, nil
	default:
		return wifi.SecurityUnknown, fmt.Errorf("invalid security type: %s", s)
	}
}
