package wifi

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerTrailingEdge(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(20*time.Millisecond, 200*time.Millisecond, func() {
		fired.Add(1)
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
	}
	// Nothing fires until the quiet period has elapsed after the last
	// trigger.
	assert.Equal(t, int32(0), fired.Load())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerRollingWindow(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(10*time.Millisecond, 150*time.Millisecond, func() {
		fired.Add(1)
	})
	defer d.Stop()

	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	// A trigger right after a delivery must wait out the rest of the
	// window, not just the quiet period.
	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(2), fired.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(20*time.Millisecond, 100*time.Millisecond, func() {
		fired.Add(1)
	})

	d.Trigger()
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	// Triggers after Stop arm a fresh delivery.
	d.Trigger()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}
