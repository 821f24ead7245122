package serial

import (
	"io"
	"time"
)

// Port is a duplex byte stream with a configurable read timeout.
// A Read which times out without data returns 0, nil.
type Port interface {
	io.ReadWriteCloser
	// SetReadTimeout sets the timeout for Read.
	SetReadTimeout(t time.Duration) error
	// ResetInputBuffer discards data received but not yet read.
	ResetInputBuffer() error
}

// Mode defines the parameters to open a Port.
type Mode struct {
	BaudRate    int
	ReadTimeout time.Duration
}

// DefaultReadTimeout is used when Mode.ReadTimeout is not set.
const DefaultReadTimeout = 100 * time.Millisecond

// WithBaudRate returns a copy of the mode using a different baud rate.
func (m Mode) WithBaudRate(baud int) *Mode {
	m.BaudRate = baud
	return &m
}

// Opener opens a Port at path.
type Opener interface {
	Open(path string, mode *Mode) (Port, error)
}

// OpenFunc is the func form of Opener.
type OpenFunc func(path string, mode *Mode) (Port, error)

// Open implements Opener.
func (f OpenFunc) Open(path string, mode *Mode) (Port, error) {
	return f(path, mode)
}
