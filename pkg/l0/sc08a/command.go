package sc08a

import (
	"fmt"
	"io"
)

// ChannelMask selects the channel a command applies to.
// 0 selects all channels, 1..8 a single channel.
type ChannelMask byte

// Channel limits.
const (
	AllChannels ChannelMask = 0
	MaxChannel  ChannelMask = 8
	NumChannels             = int(MaxChannel)
)

// MaxPosition is the largest position, 14 bits.
const MaxPosition uint16 = 0x3fff

// IsValid checks the mask fits the controller's channel range.
func (m ChannelMask) IsValid() bool {
	return m <= MaxChannel
}

// Op is the command family.
type Op byte

// Commands.
const (
	OpInit Op = iota
	OpOn
	OpOff
	OpSetPosSpeed
	OpGetPos
)

const (
	codePower  byte = 0xc0 // 0b11000000
	codeSetPos byte = 0xe0 // 0b11100000
	codeGetPos byte = 0xa0 // 0b10100000

	payloadMask byte = 0x7f
)

var opNames = [...]string{"init", "on", "off", "set", "get"}

// String implements fmt.Stringer.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", byte(o))
}

// Command is one command to the controller.
// Position and Speed are only used by OpSetPosSpeed.
type Command struct {
	Op       Op
	Channel  ChannelMask
	Position uint16
	Speed    byte
}

// Validate checks the command can be encoded without losing bits.
func (c *Command) Validate() error {
	if c.Op > OpGetPos {
		return ErrInvalidOp
	}
	if !c.Channel.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, c.Channel)
	}
	if c.Op == OpSetPosSpeed && c.Position > MaxPosition {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, c.Position)
	}
	return nil
}

// Len returns the encoded length.
func (c *Command) Len() int {
	switch c.Op {
	case OpSetPosSpeed:
		return 4
	case OpGetPos:
		return 1
	default:
		return 2
	}
}

// Bytes returns encoded bytes for sending. It doesn't validate the command.
func (c *Command) Bytes() []byte {
	ch := byte(c.Channel)
	switch c.Op {
	case OpInit:
		return []byte{codePower, 1}
	case OpOn:
		return []byte{codePower | ch, 1}
	case OpOff:
		return []byte{codePower | ch, 0}
	case OpSetPosSpeed:
		return []byte{
			codeSetPos | ch,
			byte(c.Position>>7) & payloadMask,
			byte(c.Position) & payloadMask,
			c.Speed,
		}
	case OpGetPos:
		return []byte{codeGetPos | ch}
	}
	return nil
}

// WriteTo validates and writes the encoded command.
func (c *Command) WriteTo(w io.Writer) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	n, err := w.Write(c.Bytes())
	return int64(n), err
}

// String implements fmt.Stringer.
func (c *Command) String() string {
	if c.Op == OpSetPosSpeed {
		return fmt.Sprintf("%s[%d] pos=%d speed=%d", c.Op, c.Channel, c.Position, c.Speed)
	}
	return fmt.Sprintf("%s[%d]", c.Op, c.Channel)
}

func encode(c Command) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// EncodeInit encodes the command activating all channels.
// Each channel still needs to be turned off individually.
func EncodeInit() []byte {
	return (&Command{Op: OpInit}).Bytes()
}

// EncodePower encodes turning channels on or off.
func EncodePower(mask ChannelMask, on bool) ([]byte, error) {
	op := OpOff
	if on {
		op = OpOn
	}
	return encode(Command{Op: op, Channel: mask})
}

// EncodeSetPosSpeed encodes moving channels to position with speed.
func EncodeSetPosSpeed(mask ChannelMask, pos uint16, speed byte) ([]byte, error) {
	return encode(Command{Op: OpSetPosSpeed, Channel: mask, Position: pos, Speed: speed})
}

// EncodeGetPosRequest encodes the position query for a channel.
func EncodeGetPosRequest(ch ChannelMask) ([]byte, error) {
	return encode(Command{Op: OpGetPos, Channel: ch})
}

// DecodePosReply reconstructs a position from the two reply bytes.
// The top bit of each byte is a marker and is ignored.
func DecodePosReply(high, low byte) uint16 {
	return uint16(high&payloadMask)<<7 | uint16(low&payloadMask)
}
