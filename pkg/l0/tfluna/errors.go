package tfluna

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSample indicates the data read isn't a valid data frame.
	// It's not fatal, the caller may read again.
	ErrNoSample = errors.New("no sample")
	// ErrUnsupportedBaud indicates a baud rate the sensor doesn't support.
	ErrUnsupportedBaud = errors.New("unsupported baud rate")
	// ErrDeviceNotFound indicates nothing was received at any baud rate.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrUnrecognizedBaud indicates data was received but no valid frame
	// was found at any baud rate.
	ErrUnrecognizedBaud = errors.New("unrecognized baud rate")
	// ErrNoVersion indicates the sensor didn't reply to the info request.
	ErrNoVersion = errors.New("no version reply")
)

// NegotiationError is returned when no baud rate produced a valid frame.
type NegotiationError struct {
	Path  string
	Rates []int
	// BytesSeen is the total number of bytes received while probing.
	BytesSeen int
}

// Error implements error.
func (e *NegotiationError) Error() string {
	return fmt.Sprintf("%s: %v (tried %v)", e.Path, e.Unwrap(), e.Rates)
}

// Unwrap distinguishes an absent device from an unreadable one.
func (e *NegotiationError) Unwrap() error {
	if e.BytesSeen == 0 {
		return ErrDeviceNotFound
	}
	return ErrUnrecognizedBaud
}
