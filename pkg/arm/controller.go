// Package arm implements the L1 controller of a two-axis servo arm with an
// optional range sensor on its head.
package arm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/perilink/pkg/arm/msgs"
	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l0/sc08a"
	"github.com/robotalks/perilink/pkg/l0/tfluna"
	"github.com/robotalks/perilink/pkg/l1"
	l1msgs "github.com/robotalks/perilink/pkg/l1/msgs"
)

// Defaults of relative moves.
const (
	DefaultSpeed = 100
	DefaultDelta = 100
)

// DefaultRangeTimeout bounds range commands.
const DefaultRangeTimeout = 3 * time.Second

// Defaults of ServoSet with Wait.
const (
	DefaultWaitTimeout = 3 * time.Second
	DefaultWaitPoll    = 20 * time.Millisecond
)

var (
	// ErrServoClosed indicates the servo controller was shut down.
	ErrServoClosed = errors.New("servo controller not initialized")
	// ErrNoRangeSensor indicates no range sensor is configured.
	ErrNoRangeSensor = errors.New("range sensor not configured")
	// ErrUnknownDirection indicates an unknown ArmMove direction.
	ErrUnknownDirection = errors.New("unknown direction")
	// ErrOutOfRange indicates a value too large for the device.
	ErrOutOfRange = errors.New("value out of range")
)

// ServoOpener opens the servo controller.
type ServoOpener func() (*sc08a.Controller, error)

// Controller handles arm commands. Servo commands run in the loop so the
// servo controller is only used by one goroutine. Range commands are
// passed to the Sampler which owns the sensor.
type Controller struct {
	Registrar    l1.Registrar
	Pan          sc08a.ChannelMask
	Tilt         sc08a.ChannelMask
	Speed        byte
	Delta        uint16
	PublishRange bool
	RangeTimeout time.Duration
	WaitTimeout  time.Duration
	WaitPoll     time.Duration

	openServo ServoOpener
	servo     *sc08a.Controller
	ranger    *tfluna.Sampler
	rangeSeq  uint64
}

// NewController creates a Controller. ranger is optional.
func NewController(reg l1.Registrar, openServo ServoOpener, ranger *tfluna.Sampler) *Controller {
	return &Controller{
		Registrar:    reg,
		Pan:          1,
		Tilt:         2,
		Speed:        DefaultSpeed,
		Delta:        DefaultDelta,
		RangeTimeout: DefaultRangeTimeout,
		WaitTimeout:  DefaultWaitTimeout,
		WaitPoll:     DefaultWaitPoll,
		openServo:    openServo,
		ranger:       ranger,
	}
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvControl, c)
	if c.ranger != nil {
		loop.AddRunnable(c.ranger)
		if c.PublishRange {
			loop.AddController(fx.PrLvPostProc, fx.ControlFunc(c.publishRange))
		}
	}
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg)
		if ok && c.HandleCommand(cc.Context(), cmdMsg.Command) {
			mctx.MessageTaken()
		}
	}))
	return nil
}

// HandleCommand replies cmd and returns true if it's an arm command.
// Range commands are replied asynchronously.
func (c *Controller) HandleCommand(ctx context.Context, cmd l1.Command) bool {
	var reply fx.Message
	switch m := cmd.Msg().(type) {
	case *msgs.ServoInit:
		reply = l1msgs.Reply(c.InitServo())
	case *msgs.ServoPower:
		reply = l1msgs.Reply(c.power(m))
	case *msgs.ServoSet:
		reply = l1msgs.Reply(c.set(ctx, m))
	case *msgs.ServoPositionQuery:
		reply = c.position(m)
	case *msgs.ServoShutdown:
		reply = l1msgs.Reply(c.ShutdownServo())
	case *msgs.ArmMove:
		reply = c.move(m)
	case *msgs.ArmDefaults:
		reply = l1msgs.Reply(c.setDefaults(m))
	case *msgs.ArmReset:
		reply = l1msgs.Reply(c.reset())
	case *msgs.RangeSampleQuery, *msgs.RangeInfoQuery, *msgs.RangeConfig:
		if c.ranger == nil {
			reply = l1msgs.NewCommandErr(ErrNoRangeSensor)
			break
		}
		go c.handleRange(ctx, cmd)
		return true
	default:
		return false
	}
	done(cmd, reply)
	return true
}

func done(cmd l1.Command, reply fx.Message) {
	if err := cmd.Done(reply); err != nil {
		glog.Warningf("reply %T error: %v", cmd.Msg(), err)
	}
}

// InitServo opens the servo controller if it's not open and activates
// all channels.
func (c *Controller) InitServo() error {
	if c.servo == nil {
		servo, err := c.openServo()
		if err != nil {
			return err
		}
		c.servo = servo
	}
	return c.servo.InitAll()
}

// ShutdownServo turns off all channels and closes the servo controller.
func (c *Controller) ShutdownServo() error {
	if c.servo == nil {
		return nil
	}
	err := c.servo.Shutdown()
	c.servo = nil
	return err
}

// Close releases the devices not owned by the loop. It must be called
// after the loop stops.
func (c *Controller) Close() error {
	return c.ShutdownServo()
}

func (c *Controller) servoCtl() (*sc08a.Controller, error) {
	if c.servo == nil {
		return nil, ErrServoClosed
	}
	return c.servo, nil
}

func channelOf(v uint32) (sc08a.ChannelMask, error) {
	if v > uint32(sc08a.MaxChannel) {
		return 0, fmt.Errorf("%w: %d", sc08a.ErrInvalidChannel, v)
	}
	return sc08a.ChannelMask(v), nil
}

func positionOf(v uint32) (uint16, error) {
	if v > uint32(sc08a.MaxPosition) {
		return 0, fmt.Errorf("%w: %d", sc08a.ErrInvalidPosition, v)
	}
	return uint16(v), nil
}

func speedOf(v uint32, def byte) (byte, error) {
	switch {
	case v == 0:
		return def, nil
	case v > 0xff:
		return 0, fmt.Errorf("%w: speed %d", ErrOutOfRange, v)
	}
	return byte(v), nil
}

func (c *Controller) power(m *msgs.ServoPower) error {
	servo, err := c.servoCtl()
	if err != nil {
		return err
	}
	ch, err := channelOf(m.Channel)
	if err != nil {
		return err
	}
	return servo.Power(ch, m.On)
}

func (c *Controller) set(ctx context.Context, m *msgs.ServoSet) error {
	servo, err := c.servoCtl()
	if err != nil {
		return err
	}
	ch, err := channelOf(m.Channel)
	if err != nil {
		return err
	}
	pos, err := positionOf(m.Position)
	if err != nil {
		return err
	}
	speed, err := speedOf(m.Speed, c.Speed)
	if err != nil {
		return err
	}
	if err = servo.Set(ch, pos, speed); err != nil || !m.Wait {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.WaitTimeout)
	defer cancel()
	return servo.WaitPosition(ctx, ch, pos, c.WaitPoll)
}

func (c *Controller) position(m *msgs.ServoPositionQuery) fx.Message {
	servo, err := c.servoCtl()
	if err != nil {
		return l1msgs.NewCommandErr(err)
	}
	ch, err := channelOf(m.Channel)
	if err != nil {
		return l1msgs.NewCommandErr(err)
	}
	pos, err := servo.Get(ch)
	if err != nil {
		return l1msgs.NewCommandErr(err)
	}
	return &msgs.ServoPosition{Channel: uint32(ch), Position: uint32(pos)}
}

func (c *Controller) move(m *msgs.ArmMove) fx.Message {
	ch, pos, err := c.Move(m.Direction, m.Delta, m.Speed)
	if err != nil {
		return l1msgs.NewCommandErr(err)
	}
	return &msgs.ServoPosition{Channel: uint32(ch), Position: uint32(pos)}
}

// Move moves an axis relative to the position it reports. Zero delta or
// speed uses the defaults. The target is clamped to the valid positions.
func (c *Controller) Move(dir string, delta int32, speed uint32) (sc08a.ChannelMask, uint16, error) {
	var ch sc08a.ChannelMask
	var sign int
	switch dir {
	case msgs.DirHorizontal, msgs.DirLeft:
		ch, sign = c.Pan, 1
	case msgs.DirRight:
		ch, sign = c.Pan, -1
	case msgs.DirVertical, msgs.DirDown:
		ch, sign = c.Tilt, 1
	case msgs.DirUp:
		ch, sign = c.Tilt, -1
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownDirection, dir)
	}
	servo, err := c.servoCtl()
	if err != nil {
		return ch, 0, err
	}
	if delta == 0 {
		delta = int32(c.Delta)
	}
	sp, err := speedOf(speed, c.Speed)
	if err != nil {
		return ch, 0, err
	}
	cur, err := servo.Get(ch)
	if err != nil {
		return ch, 0, err
	}
	target := int(cur) + sign*int(delta)
	if target < 0 {
		target = 0
	} else if target > int(sc08a.MaxPosition) {
		target = int(sc08a.MaxPosition)
	}
	pos := uint16(target)
	glog.V(1).Infof("move %s: channel %d %d -> %d speed %d", dir, ch, cur, pos, sp)
	return ch, pos, servo.Set(ch, pos, sp)
}

func (c *Controller) setDefaults(m *msgs.ArmDefaults) error {
	speed, err := speedOf(m.Speed, c.Speed)
	if err != nil {
		return err
	}
	delta := c.Delta
	if m.Delta != 0 {
		if delta, err = positionOf(m.Delta); err != nil {
			return err
		}
	}
	c.Speed, c.Delta = speed, delta
	return nil
}

func (c *Controller) reset() error {
	servo, err := c.servoCtl()
	if err != nil {
		return err
	}
	var errs fx.AggregatedError
	for _, ch := range []sc08a.ChannelMask{c.Pan, c.Tilt} {
		errs.Add(servo.Power(ch, false))
	}
	return errs.Aggregate()
}

func (c *Controller) handleRange(ctx context.Context, cmd l1.Command) {
	timeout := c.RangeTimeout
	if timeout <= 0 {
		timeout = DefaultRangeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	var reply fx.Message
	switch m := cmd.Msg().(type) {
	case *msgs.RangeSampleQuery:
		reply = c.rangeSample(ctx)
	case *msgs.RangeInfoQuery:
		reply = c.rangeInfo(ctx, nil)
	case *msgs.RangeConfig:
		reply = c.rangeInfo(ctx, m)
	}
	done(cmd, reply)
}

func (c *Controller) rangeSample(ctx context.Context) fx.Message {
	s, seq, err := c.ranger.Sample(ctx)
	if err != nil {
		return l1msgs.NewCommandErr(err)
	}
	return &msgs.RangeSample{
		Distance:    s.Distance,
		Strength:    uint32(s.Strength),
		Temperature: s.Temperature,
		Sequence:    seq,
	}
}

func (c *Controller) rangeInfo(ctx context.Context, conf *msgs.RangeConfig) fx.Message {
	var info msgs.RangeInfo
	err := c.ranger.Do(ctx, func(link *tfluna.Link) error {
		if conf != nil && conf.SampleRate != 0 {
			if conf.SampleRate > 0xffff {
				return fmt.Errorf("%w: sample rate %d", ErrOutOfRange, conf.SampleRate)
			}
			if err := link.SetSampleRate(ctx, uint16(conf.SampleRate)); err != nil {
				return err
			}
		}
		if conf != nil && conf.BaudRate != 0 {
			if err := link.SetBaudRate(ctx, int(conf.BaudRate)); err != nil {
				return err
			}
		}
		version, err := link.Version(ctx)
		if err != nil {
			return err
		}
		state := link.State()
		info = msgs.RangeInfo{
			Version:    version,
			BaudRate:   uint32(state.BaudRate),
			SampleRate: uint32(state.SampleRate),
		}
		return nil
	})
	if err != nil {
		return l1msgs.NewCommandErr(err)
	}
	return &info
}

func (c *Controller) publishRange(cc fx.ControlContext) error {
	s, seq, ok := c.ranger.Latest()
	if !ok || seq == c.rangeSeq || c.Registrar == nil {
		return nil
	}
	c.rangeSeq = seq
	return c.Registrar.SendEvent(cc.Context(), &msgs.RangeReading{
		Distance:    s.Distance,
		Strength:    uint32(s.Strength),
		Temperature: s.Temperature,
		Sequence:    seq,
	})
}
