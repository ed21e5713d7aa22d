package wifi

import "errors"

var (
	ErrNotSupported    = errors.New("not supported")
	ErrTimeout         = errors.New("timed out waiting for network daemon")
	ErrNotFound        = errors.New("not found")
	ErrNotAvailable    = errors.New("not available")
	ErrOperationFailed = errors.New("operation failed")
)
