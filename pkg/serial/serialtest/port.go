// Package serialtest provides in-memory serial ports for driver tests.
package serialtest

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/robotalks/perilink/pkg/serial"
)

// ErrClosed is returned when operating on a closed Port.
var ErrClosed = errors.New("port closed")

// Port implements serial.Port in memory.
// Read returns 0, nil when no data is pending, the same way a real port
// behaves when its read timeout expires.
type Port struct {
	// Respond is called with every write and returns bytes to be read back.
	Respond func(written []byte) []byte
	// Source is called when no data is pending, simulating a device which
	// streams data continuously.
	Source func() []byte

	BaudRate    int
	ReadTimeout time.Duration
	Closed      bool
	Resets      int

	lock    sync.Mutex
	input   bytes.Buffer
	written bytes.Buffer
	writes  [][]byte
}

// NewPort creates a Port.
func NewPort(baud int) *Port {
	return &Port{BaudRate: baud}
}

// Feed queues data to be read.
func (p *Port) Feed(data ...byte) *Port {
	p.lock.Lock()
	p.input.Write(data)
	p.lock.Unlock()
	return p
}

// Read implements io.Reader.
func (p *Port) Read(buf []byte) (int, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.Closed {
		return 0, ErrClosed
	}
	if p.input.Len() == 0 && p.Source != nil {
		p.input.Write(p.Source())
	}
	if p.input.Len() == 0 {
		return 0, nil
	}
	return p.input.Read(buf)
}

// Write implements io.Writer.
func (p *Port) Write(data []byte) (int, error) {
	p.lock.Lock()
	if p.Closed {
		p.lock.Unlock()
		return 0, ErrClosed
	}
	p.written.Write(data)
	p.writes = append(p.writes, append([]byte(nil), data...))
	respond := p.Respond
	p.lock.Unlock()
	if respond != nil {
		if reply := respond(data); len(reply) > 0 {
			p.Feed(reply...)
		}
	}
	return len(data), nil
}

// Close implements io.Closer.
func (p *Port) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Closed = true
	return nil
}

// SetReadTimeout implements serial.Port.
func (p *Port) SetReadTimeout(t time.Duration) error {
	p.lock.Lock()
	p.ReadTimeout = t
	p.lock.Unlock()
	return nil
}

// ResetInputBuffer implements serial.Port.
func (p *Port) ResetInputBuffer() error {
	p.lock.Lock()
	p.input.Reset()
	p.Resets++
	p.lock.Unlock()
	return nil
}

// Written returns all bytes written so far.
func (p *Port) Written() []byte {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]byte(nil), p.written.Bytes()...)
}

// Writes returns the individual writes.
func (p *Port) Writes() [][]byte {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([][]byte(nil), p.writes...)
}

// IsClosed reports whether Close was called.
func (p *Port) IsClosed() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.Closed
}

// Opener creates Ports on demand and records every open.
type Opener struct {
	// NewPort creates the port for a baud rate, nil means open failure.
	NewPort func(baud int) *Port

	lock  sync.Mutex
	opens []int
	ports []*Port
}

// Open implements serial.Opener.
func (o *Opener) Open(path string, mode *serial.Mode) (serial.Port, error) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.opens = append(o.opens, mode.BaudRate)
	var port *Port
	if o.NewPort != nil {
		port = o.NewPort(mode.BaudRate)
	} else {
		port = NewPort(mode.BaudRate)
	}
	if port == nil {
		return nil, errors.New("no such port: " + path)
	}
	port.BaudRate, port.ReadTimeout = mode.BaudRate, mode.ReadTimeout
	o.ports = append(o.ports, port)
	return port, nil
}

// Opens returns the baud rates of all opens in order.
func (o *Opener) Opens() []int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return append([]int(nil), o.opens...)
}

// Ports returns all ports opened in order.
func (o *Opener) Ports() []*Port {
	o.lock.Lock()
	defer o.lock.Unlock()
	return append([]*Port(nil), o.ports...)
}

// Last returns the most recently opened port.
func (o *Opener) Last() *Port {
	o.lock.Lock()
	defer o.lock.Unlock()
	if len(o.ports) == 0 {
		return nil
	}
	return o.ports[len(o.ports)-1]
}
