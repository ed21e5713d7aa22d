//go:build linux

package networkmanager

import (
	"time"

	"github.com/ubopod/wifimgr/wifi"
)

// Every remote call gets the same fixed deadline; there is no per-call
// customization. Variable so tests can shrink it.
var callTimeout = 10 * time.Second

// call runs a remote call and converts a hang into wifi.ErrTimeout. The
// underlying call is not retracted from the daemon on timeout; the
// goroutine finishes on its own whenever the daemon replies.
func call[T any](fn func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		value, err := fn()
		ch <- result{value, err}
	}()

	select {
	case r := <-ch:
		return r.value, r.err
	case <-time.After(callTimeout):
		var zero T
		return zero, wifi.ErrTimeout
	}
}

// run is call for remote calls that return only an error.
func run(fn func() error) error {
	_, err := call(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
