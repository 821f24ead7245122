package comm

import (
	"container/list"
	"context"
	"sync"
	"time"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1"
	"github.com/robotalks/perilink/pkg/l1/msgs"
)

// DefaultCommandExpiration is how long a command waits for its reply.
const DefaultCommandExpiration = 2 * time.Second

// ControllerConn is the connector side of a Pipe. Replies are matched to
// commands by sequence number, events are posted to the loop.
type ControllerConn struct {
	Expiration time.Duration

	pipe     Pipe
	seq      uint32
	commands list.List
	seqMap   map[uint32]*commandFuture
	lock     sync.Mutex
}

// Init sets the transport.
func (c *ControllerConn) Init(rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.seqMap = make(map[uint32]*commandFuture)
}

// DoCommand implements l1.ControllerConn.
func (c *ControllerConn) DoCommand(msg fx.Message) l1.CommandFuture {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.seq++; c.seq == 0 {
		c.seq++
	}
	f := &commandFuture{
		seq:      c.seq,
		expireAt: time.Now().Add(c.Expiration),
		result:   make(chan l1.Result, 1),
	}
	if err := c.pipe.SendCommandMsg(msg, f.seq); err != nil {
		f.complete(l1.Result{Err: err})
		return f
	}
	f.elem = c.commands.PushBack(f)
	c.seqMap[f.seq] = f
	return f
}

// Pending returns the number of commands waiting for replies.
func (c *ControllerConn) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.commands.Len()
}

// AddToLoop implements LoopAdder.
func (c *ControllerConn) AddToLoop(loop *fx.Loop) {
	loop.Add(&c.pipe)
	loop.AddController(fx.PrLvIdle, fx.ControlFunc(func(cc fx.ControlContext) error {
		c.PurgeExpired(cc.Time())
		return nil
	}))
}

func (c *ControllerConn) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if typed.IsEvent() {
		loopCtl := fx.LoopCtlFrom(ctx)
		loopCtl.PostMessage(msg)
		loopCtl.TriggerNext()
		return nil
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	f := c.seqMap[typed.Sequence]
	if f == nil {
		return nil
	}
	c.commands.Remove(f.elem)
	delete(c.seqMap, typed.Sequence)
	result := l1.Result{Msg: msg}
	if cmdErr, ok := msg.(*msgs.CommandErr); ok {
		result.Err = cmdErr
	}
	f.complete(result)
	return nil
}

// PurgeExpired fails commands which expired before now.
func (c *ControllerConn) PurgeExpired(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for c.commands.Len() > 0 {
		elem := c.commands.Front()
		f := elem.Value.(*commandFuture)
		if f.expireAt.After(now) {
			break
		}
		c.commands.Remove(elem)
		delete(c.seqMap, f.seq)
		f.complete(l1.Result{Err: context.DeadlineExceeded})
	}
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	elem     *list.Element
	result   chan l1.Result
}

func (f *commandFuture) complete(res l1.Result) {
	f.result <- res
	close(f.result)
}

func (f *commandFuture) ResultChan() <-chan l1.Result {
	return f.result
}
