package sc08a

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	testCases := []struct {
		name   string
		cmd    Command
		expect []byte
	}{
		{"init", Command{Op: OpInit}, []byte{0xc0, 1}},
		{"on", Command{Op: OpOn, Channel: 3}, []byte{0xc3, 1}},
		{"off", Command{Op: OpOff, Channel: 8}, []byte{0xc8, 0}},
		{"off all", Command{Op: OpOff}, []byte{0xc0, 0}},
		{"set zero", Command{Op: OpSetPosSpeed, Channel: 1}, []byte{0xe1, 0, 0, 0}},
		{"set", Command{Op: OpSetPosSpeed, Channel: 2, Position: 8000, Speed: 100}, []byte{0xe2, 0x3e, 0x40, 100}},
		{"set max", Command{Op: OpSetPosSpeed, Channel: 5, Position: MaxPosition, Speed: 255}, []byte{0xe5, 0x7f, 0x7f, 255}},
		{"get", Command{Op: OpGetPos, Channel: 4}, []byte{0xa4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.cmd.Validate())
			require.Equal(t, tc.expect, tc.cmd.Bytes())
			require.Equal(t, len(tc.expect), tc.cmd.Len())
			var buf bytes.Buffer
			n, err := tc.cmd.WriteTo(&buf)
			require.NoError(t, err)
			require.Equal(t, int64(len(tc.expect)), n)
			require.Equal(t, tc.expect, buf.Bytes())
		})
	}
}

func TestEncodeFuncs(t *testing.T) {
	require.Equal(t, []byte{0xc0, 1}, EncodeInit())

	b, err := EncodePower(1, true)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc1, 1}, b)

	b, err = EncodePower(1, false)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc1, 0}, b)

	b, err = EncodeSetPosSpeed(7, 500, 100)
	require.NoError(t, err)
	require.Equal(t, []byte{0xe7, 0x03, 0x74, 100}, b)

	b, err = EncodeGetPosRequest(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xa2}, b)
}

func TestEncodeRejectsInvalid(t *testing.T) {
	_, err := EncodePower(9, true)
	require.True(t, errors.Is(err, ErrInvalidChannel))

	_, err = EncodeSetPosSpeed(1, MaxPosition+1, 0)
	require.True(t, errors.Is(err, ErrInvalidPosition))

	_, err = EncodeGetPosRequest(0x20)
	require.True(t, errors.Is(err, ErrInvalidChannel))

	var buf bytes.Buffer
	_, err = (&Command{Op: Op(9)}).WriteTo(&buf)
	require.Equal(t, ErrInvalidOp, err)
	require.Zero(t, buf.Len())
}

func TestPowerChannelBits(t *testing.T) {
	for mask := ChannelMask(1); mask <= MaxChannel; mask++ {
		b, err := EncodePower(mask, true)
		require.NoError(t, err)
		require.Equal(t, byte(mask), b[0]&0x1f)
		require.Equal(t, byte(0xc0), b[0]&0xe0)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	for pos := uint16(0); pos <= MaxPosition; pos++ {
		b, err := EncodeSetPosSpeed(1, pos, 50)
		require.NoError(t, err)
		require.Zero(t, b[1]&0x80)
		require.Zero(t, b[2]&0x80)
		// the controller may set the marker bits when echoing the position back.
		require.Equal(t, pos, DecodePosReply(b[1], b[2]))
		require.Equal(t, pos, DecodePosReply(b[1]|0x80, b[2]|0x80))
	}
}
