package serial

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout indicates a read or write didn't complete within the
	// configured timeout.
	ErrTimeout = errors.New("serial timeout")
)

// TimeoutError reports a transfer cut short by the port timeout.
type TimeoutError struct {
	Op   string
	Want int
	Got  int
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("serial %s timeout: %d of %d bytes", e.Op, e.Got, e.Want)
}

// Unwrap makes errors.Is(err, ErrTimeout) work.
func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// IsTimeout checks if err is caused by a port timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
