package comm

import (
	"context"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1"
	"github.com/robotalks/perilink/pkg/l1/msgs"
)

// Registrar is the controller side of a Pipe. Received commands are posted
// to the loop as l1.CommandMsg.
type Registrar struct {
	pipe Pipe
}

// Init sets the transport.
func (r *Registrar) Init(rw PacketReadWriter) {
	r.pipe.ReadWriter = rw
	r.pipe.Handler = msgs.HandleTypedMsgFunc(r.handleTypedMsg)
}

func (r *Registrar) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if !typed.IsCommand() || typed.IsReply() {
		return nil
	}
	loopCtl := fx.LoopCtlFrom(ctx)
	loopCtl.PostMessage(&l1.CommandMsg{Command: &command{seq: typed.Sequence, msg: msg, pipe: &r.pipe}})
	loopCtl.TriggerNext()
	return nil
}

// SendEvent implements l1.Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.pipe.SendEventMsg(msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.Add(&r.pipe)
}

type command struct {
	seq  uint32
	msg  fx.Message
	pipe *Pipe
}

func (c *command) Msg() fx.Message {
	return c.msg
}

func (c *command) Done(reply fx.Message) error {
	return c.pipe.SendCommandMsg(reply, c.seq)
}

// RegistrarMux registers with multiple Registrars.
type RegistrarMux struct {
	Registrars []l1.Registrar
}

// SendEvent implements l1.Registrar.
func (r *RegistrarMux) SendEvent(ctx context.Context, msg fx.Message) error {
	var errs fx.AggregatedError
	for _, reg := range r.Registrars {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (r *RegistrarMux) AddToLoop(loop *fx.Loop) {
	for _, reg := range r.Registrars {
		if adder, ok := reg.(fx.LoopAdder); ok {
			loop.Add(adder)
		}
	}
}

// Add adds registrars.
func (r *RegistrarMux) Add(regs ...l1.Registrar) {
	r.Registrars = append(r.Registrars, regs...)
}

// UnsupportedCommands replies commands left unprocessed at the end of an
// iteration.
type UnsupportedCommands struct{}

// Control implements Controller.
func (c *UnsupportedCommands) Control(cc fx.ControlContext) error {
	var errs fx.AggregatedError
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg); ok {
			mctx.MessageTaken()
			errs.Add(cmdMsg.Command.Done(msgs.NewCommandErr(msgs.ErrUnsupportedCommand)))
		}
	}))
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (c *UnsupportedCommands) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvIdle, c)
}
