package comm

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1/msgs"
)

// Pipe sends and receives Typed messages over a PacketReadWriter.
type Pipe struct {
	ReadWriter PacketReadWriter
	Handler    msgs.TypedMsgHandler

	sendLock sync.Mutex
}

// NewPipe creates a Pipe.
func NewPipe(rw PacketReadWriter) *Pipe {
	return &Pipe{ReadWriter: rw}
}

// SendCommandMsg sends a command or a reply with seq.
func (p *Pipe) SendCommandMsg(msg fx.Message, seq uint32) error {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		return err
	}
	if !typed.IsCommand() {
		return fmt.Errorf("%T is not a command", msg)
	}
	typed.Sequence = seq
	return p.SendTyped(typed)
}

// SendEventMsg sends an event.
func (p *Pipe) SendEventMsg(msg fx.Message) error {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		return err
	}
	if !typed.IsEvent() {
		return fmt.Errorf("%T is not an event", msg)
	}
	return p.SendTyped(typed)
}

// SendTyped sends an envelope.
func (p *Pipe) SendTyped(typed *msgs.Typed) error {
	pkt, err := typed.Encode()
	if err != nil {
		return err
	}
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	return p.ReadWriter.WritePacket(pkt)
}

// Run implements Runnable. It decodes received packets and passes them to
// Handler until the transport fails. Undecodable commands are replied with
// CommandErr, other undecodable messages are dropped.
func (p *Pipe) Run(ctx context.Context) error {
	defer p.Close()
	for {
		pkt, err := p.ReadWriter.ReadPacket()
		if err != nil {
			if err == io.EOF && ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		typed, err := msgs.DecodeTyped(pkt)
		if err != nil {
			glog.Warningf("drop bad packet: %v", err)
			continue
		}
		msg, err := typed.Decode()
		if err != nil {
			glog.V(2).Infof("decode %08x error: %v", typed.TypeID, err)
			if typed.IsCommand() && !typed.IsReply() {
				if err = p.SendCommandMsg(msgs.NewCommandErr(err), typed.Sequence); err != nil {
					return err
				}
			}
			continue
		}
		if h := p.Handler; h != nil {
			if err = h.HandleTypedMsg(ctx, msg, typed); err != nil {
				return err
			}
		}
	}
}

// Close closes the transport if it's closable.
func (p *Pipe) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// AddToLoop implements LoopAdder.
func (p *Pipe) AddToLoop(loop *fx.Loop) {
	if adder, ok := p.ReadWriter.(fx.LoopAdder); ok {
		loop.Add(adder)
	} else if runnable, ok := p.ReadWriter.(fx.Runnable); ok {
		loop.AddRunnable(runnable)
	}
	loop.AddRunnable(p)
}
