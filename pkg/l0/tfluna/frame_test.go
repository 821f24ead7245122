package tfluna

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var testFrame = []byte{0x59, 0x59, 0xf4, 0x01, 0x0a, 0x00, 0x00, 0x08, 0x00}

func TestDecodeSample(t *testing.T) {
	s, ok := DecodeSample(testFrame)
	require.True(t, ok)
	require.Equal(t, 5.0, s.Distance)
	require.Equal(t, uint16(10), s.Strength)
	require.Equal(t, 0.0, s.Temperature)
}

func TestDecodeSampleRejects(t *testing.T) {
	cases := [][]byte{
		{0x59, 0x58, 0xf4, 0x01, 0x0a, 0x00, 0x00, 0x08, 0x00},
		{0x00, 0x59, 0xf4, 0x01, 0x0a, 0x00, 0x00, 0x08, 0x00},
		{0x59, 0x59, 0xf4, 0x01},
		nil,
	}
	for _, frame := range cases {
		_, ok := DecodeSample(frame)
		require.False(t, ok, "% x", frame)
	}
}

func TestDecodeVersion(t *testing.T) {
	frame := make([]byte, InfoFrameSize)
	frame[0], frame[1], frame[2] = cmdHeader, InfoFrameSize, cmdInfo
	copy(frame[3:], "TF-Luna v1.2.0")
	version, ok := DecodeVersion(frame)
	require.True(t, ok)
	require.Equal(t, "TF-Luna v1.2.0", version)

	_, ok = DecodeVersion(testFrame)
	require.False(t, ok)
}

func TestEncodeSetBaud(t *testing.T) {
	cmd, err := EncodeSetBaud(115200)
	require.NoError(t, err)
	require.Equal(t, []byte{0x5a, 0x08, 0x06, 0x00, 0xc2, 0x01, 0x00, 0x00}, cmd)

	cmd, err = EncodeSetBaud(9600)
	require.NoError(t, err)
	require.Equal(t, []byte{0x5a, 0x08, 0x06, 0x80, 0x25, 0x00, 0x00, 0x00}, cmd)

	_, err = EncodeSetBaud(12345)
	require.True(t, errors.Is(err, ErrUnsupportedBaud))
}

func TestEncodeCommands(t *testing.T) {
	require.Equal(t, []byte{0x5a, 0x06, 0x03, 100, 0, 0}, EncodeSetSampleRate(100))
	require.Equal(t, []byte{0x5a, 0x06, 0x03, 0x2c, 0, 0}, EncodeSetSampleRate(300))
	require.Equal(t, []byte{0x5a, 0x04, 0x14, 0x00}, EncodeInfoRequest())
}

func TestBaudCodes(t *testing.T) {
	for n, rate := range BaudRates {
		code := baudCodes[n]
		require.Equal(t, rate, int(code[0])|int(code[1])<<8|int(code[2])<<16)
	}
}

func TestProbeOrder(t *testing.T) {
	require.Equal(t, []int{115200, 9600, 19200, 38400, 57600, 230400, 460800, 921600}, ProbeOrder())
}
