package sc08a

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/perilink/pkg/serial"
	"github.com/robotalks/perilink/pkg/serial/serialtest"
)

// fakeDevice simulates the controller: it remembers the last position
// set on each channel and replies to position queries.
type fakeDevice struct {
	positions [NumChannels + 1]uint16
	truncate  bool
}

func (d *fakeDevice) respond(data []byte) []byte {
	switch data[0] & 0xe0 {
	case codeSetPos:
		d.positions[data[0]&0x1f] = DecodePosReply(data[1], data[2])
	case codeGetPos:
		pos := d.positions[data[0]&0x1f]
		reply := []byte{byte(pos>>7) | 0x80, byte(pos&0x7f) | 0x80}
		if d.truncate {
			return reply[:1]
		}
		return reply
	}
	return nil
}

func newTestController() (*Controller, *serialtest.Port, *fakeDevice) {
	dev := &fakeDevice{}
	port := serialtest.NewPort(DefaultBaudRate)
	port.Respond = dev.respond
	return New(port), port, dev
}

func TestControllerCommands(t *testing.T) {
	ctl, port, _ := newTestController()
	require.NoError(t, ctl.InitAll())
	require.NoError(t, ctl.Power(2, false))
	require.NoError(t, ctl.Power(2, true))
	require.NoError(t, ctl.Set(2, 8000, 100))
	require.Equal(t, [][]byte{
		{0xc0, 1},
		{0xc2, 0},
		{0xc2, 1},
		{0xe2, 0x3e, 0x40, 100},
	}, port.Writes())
}

func TestControllerGet(t *testing.T) {
	ctl, port, _ := newTestController()
	require.NoError(t, ctl.Set(1, 4242, 10))
	pos, err := ctl.Get(1)
	require.NoError(t, err)
	require.Equal(t, uint16(4242), pos)
	require.Equal(t, []byte{0xa1}, port.Writes()[1])
}

func TestControllerGetShortRead(t *testing.T) {
	ctl, _, dev := newTestController()
	dev.truncate = true
	_, err := ctl.Get(1)
	require.Error(t, err)
	require.True(t, serial.IsTimeout(err))
}

func TestControllerGetDiscardsLateReply(t *testing.T) {
	ctl, port, dev := newTestController()
	dev.truncate = true
	_, err := ctl.Get(1)
	require.True(t, serial.IsTimeout(err))
	// the rest of the reply arrives after the timeout.
	port.Feed(0x90)

	dev.truncate = false
	require.NoError(t, ctl.Set(1, 4242, 10))
	pos, err := ctl.Get(1)
	require.NoError(t, err)
	require.Equal(t, uint16(4242), pos)
}

func TestControllerRejectsInvalid(t *testing.T) {
	ctl, port, _ := newTestController()
	require.True(t, errors.Is(ctl.Set(9, 0, 0), ErrInvalidChannel))
	require.True(t, errors.Is(ctl.Set(1, MaxPosition+1, 0), ErrInvalidPosition))
	_, err := ctl.Get(12)
	require.True(t, errors.Is(err, ErrInvalidChannel))
	require.Empty(t, port.Writes())
}

func TestControllerWaitPosition(t *testing.T) {
	ctl, _, _ := newTestController()
	require.NoError(t, ctl.Set(3, 100, 10))
	require.NoError(t, ctl.WaitPosition(context.Background(), 3, 100, time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.Equal(t, context.DeadlineExceeded, ctl.WaitPosition(ctx, 3, 200, time.Millisecond))
}

func TestControllerShutdown(t *testing.T) {
	ctl, port, _ := newTestController()
	require.NoError(t, ctl.Shutdown())
	writes := port.Writes()
	require.Len(t, writes, NumChannels)
	for i, w := range writes {
		require.Equal(t, []byte{0xc0 | byte(i+1), 0}, w)
	}
	require.True(t, port.IsClosed())
}

func TestOpen(t *testing.T) {
	opener := &serialtest.Opener{}
	ctl, err := Open(opener, "/dev/ttyUSB0", nil)
	require.NoError(t, err)
	require.NotNil(t, ctl)
	require.Equal(t, []int{DefaultBaudRate}, opener.Opens())

	opener = &serialtest.Opener{NewPort: func(int) *serialtest.Port { return nil }}
	_, err = Open(opener, "/dev/ttyUSB0", nil)
	require.Error(t, err)
}
