package platform

import "errors"

// Sentinel errors for platform operations.
var (
	// ErrClosed is returned when posting to a closed loop.
	ErrClosed = errors.New("platform: loop closed")
)
