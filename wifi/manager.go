package wifi

import (
	"log/slog"
	"time"
)

const (
	// The daemon's state is not atomically consistent across the several
	// calls needed to assemble the connection list, so the composition is
	// retried on failure before giving up.
	aggregateAttempts = 3
	aggregateDelay    = 500 * time.Millisecond

	// Scan requests are coalesced: trailing-edge delivery after a quiet
	// period, at most one delivered scan per rolling window.
	scanQuietPeriod = 500 * time.Millisecond
	scanWindow      = 2 * time.Second
)

// Manager exposes a retry-hardened, debounced view of wireless connectivity
// on top of an injected Backend. It owns no persistent state; every query
// re-reads the daemon.
type Manager struct {
	backend Backend
	events  Dispatcher
	logger  *slog.Logger
	scan    *debouncer

	attempts   int
	retryDelay time.Duration
}

// NewManager creates a Manager over the given backend. events may be nil if
// no collaborator consumes notification events.
func NewManager(backend Backend, events Dispatcher, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		backend:    backend,
		events:     events,
		logger:     logger,
		attempts:   aggregateAttempts,
		retryDelay: aggregateDelay,
	}
	m.scan = newDebouncer(scanQuietPeriod, scanWindow, m.requestScan)
	return m
}

// Close cancels any pending debounced scan. The Manager is otherwise tied
// to the process lifetime.
func (m *Manager) Close() {
	m.scan.Stop()
}

// Connections returns the consolidated connection list: one entry per saved
// SSID in the order the daemon returns profiles, with signal strength from
// the strongest matching visible access point and state keyed on the active
// connection. A torn read (e.g. an active connection deactivated between
// calls) aborts the attempt; the composition is retried up to 3 times with
// a fixed pause, and exhaustion yields an empty list, not an error. Callers
// must treat an empty result as "unknown, retry later" and consult
// DeviceState to distinguish a missing device from a transient race.
func (m *Manager) Connections() []Connection {
	for attempt := 1; attempt <= m.attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(m.retryDelay)
		}
		conns, err := m.buildConnections()
		if err == nil {
			return conns
		}
		m.logger.Debug("connection listing attempt failed", "attempt", attempt, "error", err)
	}
	return []Connection{}
}

func (m *Manager) buildConnections() ([]Connection, error) {
	activeSSID, err := m.backend.ActiveSSID()
	if err != nil {
		return nil, err
	}

	activeState := StateUnknown
	if activeSSID != "" {
		activeState, err = m.backend.ActiveConnectionState()
		if err != nil {
			return nil, err
		}
	}

	saved, err := m.backend.SavedSSIDs()
	if err != nil {
		return nil, err
	}

	accessPoints, err := m.backend.AccessPoints()
	if err != nil {
		return nil, err
	}
	strongest := make(map[string]uint8, len(accessPoints))
	for _, ap := range accessPoints {
		if ap.Strength > strongest[ap.SSID] {
			strongest[ap.SSID] = ap.Strength
		}
	}

	conns := make([]Connection, 0, len(saved))
	for _, ssid := range saved {
		// Any SSID that is not the active one is disconnected by
		// definition, regardless of its own profile state.
		state := StateDisconnected
		if ssid == activeSSID {
			state = activeState
		}
		conns = append(conns, Connection{
			SSID:     ssid,
			Strength: strongest[ssid],
			State:    state,
		})
	}
	return conns, nil
}

// DeviceState reports the wireless adapter's coarse state.
func (m *Manager) DeviceState() (GlobalState, error) {
	return m.backend.DeviceState()
}

// ActiveAccessPoint returns the access point the device is currently
// associated with, or nil.
func (m *Manager) ActiveAccessPoint() (*AccessPoint, error) {
	return m.backend.ActiveAccessPoint()
}

// RequestScan schedules a debounced scan. Repeated calls within the quiet
// period coalesce into one scan request; scans are spaced at least one
// window apart. Without a wireless device the delivery is a silent no-op.
func (m *Manager) RequestScan() {
	m.scan.Trigger()
}

func (m *Manager) requestScan() {
	if err := m.backend.RequestScan(); err != nil {
		m.logger.Debug("scan request failed", "error", err)
	}
}

// Join provisions and activates a new connection for a visible (or hidden)
// network.
func (m *Manager) Join(ssid, password string, security SecurityType, hidden bool) error {
	return m.backend.JoinNetwork(ssid, password, security, hidden)
}

// Connect activates an existing saved profile. Unknown SSIDs are a no-op.
func (m *Manager) Connect(ssid string) error {
	return m.backend.ActivateConnection(ssid)
}

// Disconnect deactivates the current active connection, if any.
func (m *Manager) Disconnect() error {
	return m.backend.Disconnect()
}

// Forget deletes every saved profile for the SSID and dispatches one
// ConnectionForgotten event per deletion. Forgetting an unknown SSID is a
// no-op. Events already earned by completed deletions are dispatched even
// if a later deletion fails.
func (m *Manager) Forget(ssid string) error {
	deleted, err := m.backend.ForgetNetwork(ssid)
	if m.events != nil {
		for i := 0; i < deleted; i++ {
			m.events.Dispatch(ConnectionForgotten{SSID: ssid})
		}
	}
	if deleted > 0 {
		m.logger.Info("forgot network", "ssid", ssid, "profiles", deleted)
	}
	return err
}

// IsWirelessEnabled reports whether the radio is on.
func (m *Manager) IsWirelessEnabled() (bool, error) {
	return m.backend.IsWirelessEnabled()
}

// SetWireless turns the radio on or off.
func (m *Manager) SetWireless(enabled bool) error {
	return m.backend.SetWireless(enabled)
}
