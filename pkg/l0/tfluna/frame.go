package tfluna

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Frame constants.
const (
	FrameSize     = 9
	InfoFrameSize = 30

	frameHeader byte = 0x59
	cmdHeader   byte = 0x5a

	cmdInfo       byte = 0x14
	cmdBaudRate   byte = 0x06
	cmdSampleRate byte = 0x03
)

var dataHeader = []byte{frameHeader, frameHeader}

// Sample is one reading from the sensor.
type Sample struct {
	// Distance in meters.
	Distance float64
	// Strength of the returned signal.
	Strength uint16
	// Temperature in Celsius.
	Temperature float64
}

// String implements fmt.Stringer.
func (s Sample) String() string {
	return fmt.Sprintf("%.2fm strength=%d %.2fC", s.Distance, s.Strength, s.Temperature)
}

// DecodeSample decodes a data frame. It returns false if frame doesn't
// start with the data frame header, which is expected while the stream is
// being resynchronized.
func DecodeSample(frame []byte) (s Sample, ok bool) {
	if len(frame) < FrameSize || frame[0] != frameHeader || frame[1] != frameHeader {
		return
	}
	dist := uint16(frame[2]) | uint16(frame[3])<<8
	temp := uint16(frame[6]) | uint16(frame[7])<<8
	s.Distance = float64(dist) / 100.0
	s.Strength = uint16(frame[4]) | uint16(frame[5])<<8
	s.Temperature = float64(temp)/8.0 - 256.0
	return s, true
}

// DecodeVersion decodes the reply of the info request.
func DecodeVersion(frame []byte) (string, bool) {
	if len(frame) < 4 || frame[0] != cmdHeader {
		return "", false
	}
	text := frame[3 : len(frame)-1]
	if !utf8.Valid(text) {
		return "", false
	}
	return strings.TrimRight(string(text), "\x00 "), true
}

// EncodeSetSampleRate encodes the sample rate (Hz) command.
// Only the low byte of rate is sent.
func EncodeSetSampleRate(rate uint16) []byte {
	return []byte{cmdHeader, 0x06, cmdSampleRate, byte(rate), 0, 0}
}

// EncodeInfoRequest encodes the info request.
func EncodeInfoRequest() []byte {
	return []byte{cmdHeader, 0x04, cmdInfo, 0x00}
}

// EncodeSetBaud encodes the command switching the sensor to rate.
func EncodeSetBaud(rate int) ([]byte, error) {
	index := baudIndex(rate)
	if index < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBaud, rate)
	}
	code := baudCodes[index]
	return []byte{cmdHeader, 0x08, cmdBaudRate, code[0], code[1], code[2], 0, 0}, nil
}

// findHeader returns the offset of the first data frame header in buf,
// or -1.
func findHeader(buf []byte) int {
	return bytes.Index(buf, dataHeader)
}
