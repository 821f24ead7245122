package mqtt

import (
	"context"
	"io"

	"github.com/robotalks/perilink/pkg/l1"
)

// ReadWriter implements comm.PacketReadWriter on a pair of topics.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	packetCh chan []byte
	done     chan struct{}
}

// NewPacketReadWriter creates a ReadWriter.
func NewPacketReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{
		Queue:    q,
		packetCh: make(chan []byte, 16),
		done:     make(chan struct{}),
	}
}

// WithTopics sets the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForConnector subscribes TYPE/ID/msg and publishes TYPE/ID/cmd.
func (p *ReadWriter) ForConnector(ref l1.ControllerRef) *ReadWriter {
	return p.WithTopics(MsgTopic(ref), CmdTopic(ref))
}

// ForController subscribes TYPE/ID/cmd and publishes TYPE/ID/msg.
func (p *ReadWriter) ForController(ref l1.ControllerRef) *ReadWriter {
	return p.WithTopics(CmdTopic(ref), MsgTopic(ref))
}

// MetaTopic is where controller metadata is retained.
func MetaTopic(ref l1.ControllerRef) string { return ref.Name() + "/meta" }

// CmdTopic carries commands to the controller.
func CmdTopic(ref l1.ControllerRef) string { return ref.Name() + "/cmd" }

// MsgTopic carries replies and events from the controller.
func MsgTopic(ref l1.ControllerRef) string { return ref.Name() + "/msg" }

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-p.done:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Run implements Runnable.
func (p *ReadWriter) Run(ctx context.Context) error {
	sub := p.Queue.Sub(p.SubTopic, p.handleMsg)
	defer sub.Close()
	defer close(p.done)
	<-ctx.Done()
	return ctx.Err()
}

func (p *ReadWriter) handleMsg(_ string, payload []byte) {
	select {
	case p.packetCh <- payload:
	case <-p.done:
	}
}
