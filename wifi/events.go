package wifi

// Dispatcher is the fire-and-forget sink for domain notification events.
// Implementations must not block; no acknowledgment is expected.
type Dispatcher interface {
	Dispatch(event any)
}

// ConnectionForgotten is dispatched once per deleted profile after a
// successful forget.
type ConnectionForgotten struct {
	SSID string
}
