package comm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1"
	"github.com/robotalks/perilink/pkg/l1/msgs"
)

const (
	testPingTypeID   = msgs.GroupCustom | 0x0001
	testPongTypeID   = testPingTypeID | msgs.TypeIDMaskReply
	testIgnoreTypeID = msgs.GroupCustom | 0x0002
	testEventTypeID  = msgs.TypeIDKindEvent | msgs.GroupCustom | 0x0003
)

type testValue struct {
	Value uint32 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *testValue) ProtoMessage()  {}
func (m *testValue) Reset()         { *m = testValue{} }
func (m *testValue) String() string { return proto.CompactTextString(m) }

type testPing struct{ testValue }
type testPong struct{ testValue }
type testIgnored struct{ testValue }
type testEvent struct{ testValue }

func (m *testPing) NewMessage() fx.Message      { return &testPing{} }
func (m *testPing) TypeID() uint32              { return testPingTypeID }
func (m *testPing) Serializable() proto.Message { return &m.testValue }

func (m *testPong) NewMessage() fx.Message      { return &testPong{} }
func (m *testPong) TypeID() uint32              { return testPongTypeID }
func (m *testPong) Serializable() proto.Message { return &m.testValue }

func (m *testIgnored) NewMessage() fx.Message      { return &testIgnored{} }
func (m *testIgnored) TypeID() uint32              { return testIgnoreTypeID }
func (m *testIgnored) Serializable() proto.Message { return &m.testValue }

func (m *testEvent) NewMessage() fx.Message      { return &testEvent{} }
func (m *testEvent) TypeID() uint32              { return testEventTypeID }
func (m *testEvent) Serializable() proto.Message { return &m.testValue }

func init() {
	msgs.Register(&testPing{}, &testPong{}, &testIgnored{}, &testEvent{})
}

type testEnv struct {
	reg    Registrar
	conn   ControllerConn
	events chan uint32
	cancel func()
}

func newTestEnv(t *testing.T) *testEnv {
	a, b := NewMemoryPair()
	env := &testEnv{events: make(chan uint32, 4)}
	env.reg.Init(a)
	env.conn.Init(b)

	ctlLoop := fx.NewLoop().Add(&env.reg)
	ctlLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
			cmd, ok := mc.CurrentMessage().(*l1.CommandMsg)
			if !ok {
				return
			}
			if ping, ok := cmd.Command.Msg().(*testPing); ok {
				mc.MessageTaken()
				cmd.Command.Done(&testPong{testValue{Value: ping.Value + 1}})
			}
		}))
		return nil
	}))
	ctlLoop.Add(&UnsupportedCommands{})

	connLoop := fx.NewLoop().Add(&env.conn)
	connLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
			if ev, ok := mc.CurrentMessage().(*testEvent); ok {
				mc.MessageTaken()
				env.events <- ev.Value
			}
		}))
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	env.cancel = cancel
	go ctlLoop.Run(ctx)
	go connLoop.Run(ctx)
	return env
}

func await(t *testing.T, f l1.CommandFuture) l1.Result {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return l1.Await(ctx, f)
}

func TestCommandReply(t *testing.T) {
	env := newTestEnv(t)
	defer env.cancel()
	res := await(t, env.conn.DoCommand(&testPing{testValue{Value: 41}}))
	require.NoError(t, res.Err)
	require.Equal(t, uint32(42), res.Msg.(*testPong).Value)
	require.Zero(t, env.conn.Pending())
}

func TestUnsupportedCommand(t *testing.T) {
	env := newTestEnv(t)
	defer env.cancel()
	res := await(t, env.conn.DoCommand(&testIgnored{}))
	require.Error(t, res.Err)
	var cmdErr *msgs.CommandErr
	require.True(t, errors.As(res.Err, &cmdErr))
	require.Equal(t, msgs.ErrUnsupportedCommand.Error(), cmdErr.Message)
}

func TestEvent(t *testing.T) {
	env := newTestEnv(t)
	defer env.cancel()
	require.NoError(t, env.reg.SendEvent(context.Background(), &testEvent{testValue{Value: 7}}))
	select {
	case val := <-env.events:
		require.Equal(t, uint32(7), val)
	case <-time.After(time.Second):
		t.Fatal("event not received")
	}
	require.Error(t, env.reg.SendEvent(context.Background(), &testPing{}))
}

func TestCommandExpiration(t *testing.T) {
	_, b := NewMemoryPair()
	var conn ControllerConn
	conn.Init(b)
	f := conn.DoCommand(&testPing{})
	require.Equal(t, 1, conn.Pending())
	conn.PurgeExpired(time.Now())
	require.Equal(t, 1, conn.Pending())
	conn.PurgeExpired(time.Now().Add(DefaultCommandExpiration))
	require.Zero(t, conn.Pending())
	res := await(t, f)
	require.Equal(t, context.DeadlineExceeded, res.Err)
}

func TestMemoryPairClose(t *testing.T) {
	a, b := NewMemoryPair()
	require.NoError(t, a.WritePacket([]byte{1, 2}))
	pkt, err := b.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, pkt)
	a.Close()
	_, err = b.ReadPacket()
	require.Error(t, err)
	require.Error(t, b.WritePacket([]byte{3}))
}
