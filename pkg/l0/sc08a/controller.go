package sc08a

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/serial"
)

// DefaultBaudRate is the factory baud rate of the controller.
const DefaultBaudRate = 9600

// Controller owns the port connected to an SC08A.
// It's not safe for concurrent use, callers serialize operations.
type Controller struct {
	port serial.Port
}

// New creates a Controller with an opened port.
func New(port serial.Port) *Controller {
	return &Controller{port: port}
}

// Open opens the port at path and creates a Controller.
func Open(opener serial.Opener, path string, mode *serial.Mode) (*Controller, error) {
	if mode == nil {
		mode = &serial.Mode{BaudRate: DefaultBaudRate, ReadTimeout: serial.DefaultReadTimeout}
	}
	port, err := opener.Open(path, mode)
	if err != nil {
		return nil, err
	}
	return New(port), nil
}

// Do writes a single command.
func (c *Controller) Do(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	glog.V(2).Infof("sc08a: %s", &cmd)
	if _, err := serial.WriteFull(c.port, cmd.Bytes()); err != nil {
		return fmt.Errorf("sc08a %s: %w", cmd.Op, err)
	}
	return nil
}

// InitAll activates all channels.
func (c *Controller) InitAll() error {
	return c.Do(Command{Op: OpInit})
}

// Power turns the selected channels on or off.
func (c *Controller) Power(mask ChannelMask, on bool) error {
	cmd := Command{Op: OpOff, Channel: mask}
	if on {
		cmd.Op = OpOn
	}
	return c.Do(cmd)
}

// Set moves the selected channels to pos with speed.
func (c *Controller) Set(mask ChannelMask, pos uint16, speed byte) error {
	return c.Do(Command{Op: OpSetPosSpeed, Channel: mask, Position: pos, Speed: speed})
}

// Get reads the current position of a channel.
// A reply shorter than 2 bytes is reported as a timeout. Bytes left over
// from an earlier reply are discarded before asking.
func (c *Controller) Get(ch ChannelMask) (uint16, error) {
	cmd := Command{Op: OpGetPos, Channel: ch}
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	if err := c.port.ResetInputBuffer(); err != nil {
		return 0, fmt.Errorf("sc08a get[%d]: %w", ch, err)
	}
	if err := c.Do(cmd); err != nil {
		return 0, err
	}
	var reply [2]byte
	if _, err := serial.ReadFull(c.port, reply[:]); err != nil {
		return 0, fmt.Errorf("sc08a get[%d]: %w", ch, err)
	}
	pos := DecodePosReply(reply[0], reply[1])
	glog.V(2).Infof("sc08a: get[%d] = %d", ch, pos)
	return pos, nil
}

// WaitPosition polls the channel until it reports pos.
func (c *Controller) WaitPosition(ctx context.Context, ch ChannelMask, pos uint16, poll time.Duration) error {
	for {
		cur, err := c.Get(ch)
		if err != nil {
			return err
		}
		if cur == pos {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(poll):
		}
	}
}

// Shutdown turns off channels 1..8 one by one and closes the port.
func (c *Controller) Shutdown() error {
	var errs fx.AggregatedError
	for ch := ChannelMask(1); ch <= MaxChannel; ch++ {
		errs.Add(c.Power(ch, false))
	}
	errs.Add(c.port.Close())
	return errs.Aggregate()
}
