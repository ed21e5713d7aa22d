// Package wifi models wireless connectivity as seen through the system's
// network-management daemon, and exposes a normalized view of it to the
// rest of the application.
package wifi

// SecurityType represents the security protocol of a network.
type SecurityType int

const (
	SecurityUnknown SecurityType = iota
	SecurityOpen
	SecurityWEP
	SecurityWPA
	SecurityWPA2
)

// ConnectionState is the normalized per-SSID state exposed to consumers.
type ConnectionState int

const (
	StateUnknown ConnectionState = iota
	StateConnected
	StateConnecting
	StateDisconnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateConnecting:
		return "connecting"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

func (s ConnectionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// GlobalState is the coarse device-level state derived from the wireless
// adapter's own state machine. It is queryable independently of the
// connection list, so callers can tell a missing device apart from a
// transient aggregation failure.
type GlobalState int

const (
	GlobalUnknown GlobalState = iota
	GlobalDisconnected
	GlobalNeedsAttention
	GlobalPending
	GlobalConnected
)

func (s GlobalState) String() string {
	switch s {
	case GlobalDisconnected:
		return "disconnected"
	case GlobalNeedsAttention:
		return "needs-attention"
	case GlobalPending:
		return "pending"
	case GlobalConnected:
		return "connected"
	default:
		return "unknown"
	}
}

func (s GlobalState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AccessPoint is an ephemeral handle to a currently visible network. Path
// identifies the daemon object; it is not stable across scans.
type AccessPoint struct {
	SSID     string
	Strength uint8 // 0-100
	Path     string
}

// Connection is one entry of the consolidated connection list: a saved
// network, its visible signal strength (0 if no access point matches) and
// its normalized state. Produced fresh on every query, never cached.
type Connection struct {
	SSID     string          `json:"ssid"`
	Strength uint8           `json:"signal_strength"`
	State    ConnectionState `json:"state"`
}
