package comm

import (
	"io"
	"sync"
)

// MemoryReadWriter is an in-process PacketReadWriter, created in
// connected pairs by NewMemoryPair.
type MemoryReadWriter struct {
	in   <-chan []byte
	out  chan<- []byte
	done chan struct{}
	once *sync.Once
}

// NewMemoryPair creates two connected ends. Closing either end closes both.
func NewMemoryPair() (*MemoryReadWriter, *MemoryReadWriter) {
	ab, ba := make(chan []byte, 16), make(chan []byte, 16)
	done, once := make(chan struct{}), &sync.Once{}
	return &MemoryReadWriter{in: ba, out: ab, done: done, once: once},
		&MemoryReadWriter{in: ab, out: ba, done: done, once: once}
}

// ReadPacket implements PacketReader.
func (m *MemoryReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-m.in:
		return pkt, nil
	case <-m.done:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (m *MemoryReadWriter) WritePacket(pkt []byte) error {
	select {
	case m.out <- append([]byte(nil), pkt...):
		return nil
	case <-m.done:
		return io.ErrClosedPipe
	}
}

// Close implements io.Closer.
func (m *MemoryReadWriter) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}
