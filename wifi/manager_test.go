package wifi

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements Backend with overridable func fields; the zero
// value answers everything empty.
type fakeBackend struct {
	deviceStateFunc  func() (GlobalState, error)
	requestScanFunc  func() error
	accessPointsFunc func() ([]AccessPoint, error)
	activeAPFunc     func() (*AccessPoint, error)
	activeSSIDFunc   func() (string, error)
	activeStateFunc  func() (ConnectionState, error)
	savedSSIDsFunc   func() ([]string, error)
	joinFunc         func(ssid, password string, security SecurityType, hidden bool) error
	activateFunc     func(ssid string) error
	disconnectFunc   func() error
	forgetFunc       func(ssid string) (int, error)
}

func (f *fakeBackend) DeviceState() (GlobalState, error) {
	if f.deviceStateFunc != nil {
		return f.deviceStateFunc()
	}
	return GlobalUnknown, nil
}

func (f *fakeBackend) RequestScan() error {
	if f.requestScanFunc != nil {
		return f.requestScanFunc()
	}
	return nil
}

func (f *fakeBackend) AccessPoints() ([]AccessPoint, error) {
	if f.accessPointsFunc != nil {
		return f.accessPointsFunc()
	}
	return nil, nil
}

func (f *fakeBackend) ActiveAccessPoint() (*AccessPoint, error) {
	if f.activeAPFunc != nil {
		return f.activeAPFunc()
	}
	return nil, nil
}

func (f *fakeBackend) ActiveSSID() (string, error) {
	if f.activeSSIDFunc != nil {
		return f.activeSSIDFunc()
	}
	return "", nil
}

func (f *fakeBackend) ActiveConnectionState() (ConnectionState, error) {
	if f.activeStateFunc != nil {
		return f.activeStateFunc()
	}
	return StateUnknown, nil
}

func (f *fakeBackend) SavedSSIDs() ([]string, error) {
	if f.savedSSIDsFunc != nil {
		return f.savedSSIDsFunc()
	}
	return nil, nil
}

func (f *fakeBackend) JoinNetwork(ssid, password string, security SecurityType, hidden bool) error {
	if f.joinFunc != nil {
		return f.joinFunc(ssid, password, security, hidden)
	}
	return nil
}

func (f *fakeBackend) ActivateConnection(ssid string) error {
	if f.activateFunc != nil {
		return f.activateFunc(ssid)
	}
	return nil
}

func (f *fakeBackend) Disconnect() error {
	if f.disconnectFunc != nil {
		return f.disconnectFunc()
	}
	return nil
}

func (f *fakeBackend) ForgetNetwork(ssid string) (int, error) {
	if f.forgetFunc != nil {
		return f.forgetFunc(ssid)
	}
	return 0, nil
}

func (f *fakeBackend) IsWirelessEnabled() (bool, error) { return true, nil }
func (f *fakeBackend) SetWireless(enabled bool) error   { return nil }

type recordingDispatcher struct {
	events []any
}

func (d *recordingDispatcher) Dispatch(event any) {
	d.events = append(d.events, event)
}

func newTestManager(b Backend, events Dispatcher) *Manager {
	m := NewManager(b, events, slog.Default())
	m.retryDelay = time.Millisecond
	return m
}

func TestConnectionsEndToEnd(t *testing.T) {
	b := &fakeBackend{
		activeSSIDFunc:  func() (string, error) { return "home", nil },
		activeStateFunc: func() (ConnectionState, error) { return StateConnected, nil },
		savedSSIDsFunc:  func() ([]string, error) { return []string{"home", "office"}, nil },
		accessPointsFunc: func() ([]AccessPoint, error) {
			return []AccessPoint{{SSID: "home", Strength: 80}}, nil
		},
	}
	m := newTestManager(b, nil)

	conns := m.Connections()
	require.Equal(t, []Connection{
		{SSID: "home", Strength: 80, State: StateConnected},
		{SSID: "office", Strength: 0, State: StateDisconnected},
	}, conns)
}

func TestConnectionsKeepsDuplicateProfiles(t *testing.T) {
	b := &fakeBackend{
		savedSSIDsFunc: func() ([]string, error) { return []string{"lab", "lab", "guest"}, nil },
	}
	m := newTestManager(b, nil)

	conns := m.Connections()
	// One entry per profile, in profile order; duplicates are not collapsed.
	require.Len(t, conns, 3)
	assert.Equal(t, "lab", conns[0].SSID)
	assert.Equal(t, "lab", conns[1].SSID)
	assert.Equal(t, "guest", conns[2].SSID)
}

func TestConnectionsActivatingShowsConnecting(t *testing.T) {
	b := &fakeBackend{
		activeSSIDFunc:  func() (string, error) { return "home", nil },
		activeStateFunc: func() (ConnectionState, error) { return StateConnecting, nil },
		savedSSIDsFunc:  func() ([]string, error) { return []string{"home", "office"}, nil },
	}
	m := newTestManager(b, nil)

	conns := m.Connections()
	require.Len(t, conns, 2)
	assert.Equal(t, StateConnecting, conns[0].State)
	assert.Equal(t, StateDisconnected, conns[1].State)
}

func TestConnectionsStrongestAccessPointWins(t *testing.T) {
	b := &fakeBackend{
		savedSSIDsFunc: func() ([]string, error) { return []string{"mesh"}, nil },
		accessPointsFunc: func() ([]AccessPoint, error) {
			return []AccessPoint{
				{SSID: "mesh", Strength: 40},
				{SSID: "mesh", Strength: 72},
				{SSID: "other", Strength: 99},
			}, nil
		},
	}
	m := newTestManager(b, nil)

	conns := m.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, uint8(72), conns[0].Strength)
}

func TestConnectionsRetriesTornReads(t *testing.T) {
	attempts := 0
	b := &fakeBackend{
		activeSSIDFunc: func() (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("active connection vanished")
			}
			return "", nil
		},
		savedSSIDsFunc: func() ([]string, error) { return []string{"home"}, nil },
	}
	m := newTestManager(b, nil)

	conns := m.Connections()
	assert.Equal(t, 3, attempts)
	require.Len(t, conns, 1)
	assert.Equal(t, StateDisconnected, conns[0].State)
}

func TestConnectionsEmptyAfterRetryBudget(t *testing.T) {
	attempts := 0
	b := &fakeBackend{
		savedSSIDsFunc: func() ([]string, error) {
			attempts++
			return nil, errors.New("settings unavailable")
		},
	}
	m := newTestManager(b, nil)

	conns := m.Connections()
	assert.Equal(t, 3, attempts)
	assert.Empty(t, conns)
	assert.NotNil(t, conns)
}

func TestForgetDispatchesPerDeletion(t *testing.T) {
	saved := []string{"cafe", "cafe", "home"}
	b := &fakeBackend{
		savedSSIDsFunc: func() ([]string, error) { return saved, nil },
		forgetFunc: func(ssid string) (int, error) {
			deleted := 0
			kept := saved[:0]
			for _, s := range saved {
				if s == ssid {
					deleted++
				} else {
					kept = append(kept, s)
				}
			}
			saved = kept
			return deleted, nil
		},
	}
	events := &recordingDispatcher{}
	m := newTestManager(b, events)

	require.NoError(t, m.Forget("cafe"))
	require.Len(t, events.events, 2)
	assert.Equal(t, ConnectionForgotten{SSID: "cafe"}, events.events[0])

	conns := m.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, "home", conns[0].SSID)
}

func TestForgetUnknownSSIDIsNoop(t *testing.T) {
	events := &recordingDispatcher{}
	m := newTestManager(&fakeBackend{}, events)

	require.NoError(t, m.Forget("never-saved"))
	assert.Empty(t, events.events)
}

func TestRequestScanCoalesces(t *testing.T) {
	scans := 0
	b := &fakeBackend{
		requestScanFunc: func() error {
			scans++
			return nil
		},
	}
	m := newTestManager(b, nil)
	// Shrink the debounce windows so the test does not sleep for seconds.
	m.scan = newDebouncer(10*time.Millisecond, 50*time.Millisecond, m.requestScan)
	defer m.Close()

	for i := 0; i < 5; i++ {
		m.RequestScan()
	}
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, scans)
}
