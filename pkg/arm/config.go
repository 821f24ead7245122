package arm

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/perilink/pkg/l0/sc08a"
	"github.com/robotalks/perilink/pkg/l0/tfluna"
	env "github.com/robotalks/perilink/pkg/l1/env/controller"
	"github.com/robotalks/perilink/pkg/serial"
)

// Config defines the configurations of the arm controller.
type Config struct {
	ServoPort string
	ServoBaud int
	// RangePort is optional, the range commands fail without it.
	RangePort        string
	RangeSampleRate  uint
	PanChannel       uint
	TiltChannel      uint
	Speed            uint
	Delta            uint
	PublishRange     bool
	NegotiateTimeout time.Duration

	// Opener opens serial ports, real ports by default.
	Opener serial.Opener
}

var defaultConfig = Config{
	ServoPort:        "/dev/ttyUSB0",
	ServoBaud:        sc08a.DefaultBaudRate,
	RangeSampleRate:  uint(tfluna.DefaultSampleRate),
	PanChannel:       1,
	TiltChannel:      2,
	Speed:            DefaultSpeed,
	Delta:            DefaultDelta,
	NegotiateTimeout: 10 * time.Second,
}

func init() {
	if val := os.Getenv("ARM_SERVO_PORT"); val != "" {
		defaultConfig.ServoPort = val
	}
	if val := os.Getenv("ARM_RANGE_PORT"); val != "" {
		defaultConfig.RangePort = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.ServoPort, "servo-port", defaultConfig.ServoPort, "Serial port of the servo controller.")
	flag.IntVar(&defaultConfig.ServoBaud, "servo-baud", defaultConfig.ServoBaud, "Baud rate of the servo controller.")
	flag.StringVar(&defaultConfig.RangePort, "range-port", defaultConfig.RangePort, "Serial port of the range sensor, empty to disable.")
	flag.UintVar(&defaultConfig.RangeSampleRate, "range-rate", defaultConfig.RangeSampleRate, "Sample rate (Hz) of the range sensor.")
	flag.UintVar(&defaultConfig.PanChannel, "pan", defaultConfig.PanChannel, "Servo channel moving left and right.")
	flag.UintVar(&defaultConfig.TiltChannel, "tilt", defaultConfig.TiltChannel, "Servo channel moving up and down.")
	flag.UintVar(&defaultConfig.Speed, "speed", defaultConfig.Speed, "Default servo speed.")
	flag.UintVar(&defaultConfig.Delta, "delta", defaultConfig.Delta, "Default position delta of a move.")
	flag.BoolVar(&defaultConfig.PublishRange, "publish-range", defaultConfig.PublishRange, "Publish range samples as events.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Validate checks the config.
func (c *Config) Validate() error {
	for _, ch := range []uint{c.PanChannel, c.TiltChannel} {
		if ch == 0 || ch > uint(sc08a.MaxChannel) {
			return fmt.Errorf("%w: %d", sc08a.ErrInvalidChannel, ch)
		}
	}
	if c.PanChannel == c.TiltChannel {
		return fmt.Errorf("pan and tilt must use different channels")
	}
	if c.Speed > 0xff {
		return fmt.Errorf("speed %d out of range", c.Speed)
	}
	if c.Delta > uint(sc08a.MaxPosition) {
		return fmt.Errorf("delta %d out of range", c.Delta)
	}
	return nil
}

// NewController opens the devices and creates the controller.
func (c *Config) NewController(ctx context.Context, e *env.Env) (*Controller, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opener := c.Opener
	if opener == nil {
		opener = serial.Native
	}
	servoPort, servoMode := c.ServoPort, &serial.Mode{BaudRate: c.ServoBaud}
	openServo := func() (*sc08a.Controller, error) {
		return sc08a.Open(opener, servoPort, servoMode)
	}

	var ranger *tfluna.Sampler
	if c.RangePort != "" {
		n := tfluna.NewNegotiator(opener, c.RangePort)
		n.SampleRate = uint16(c.RangeSampleRate)
		nctx, cancel := context.WithTimeout(ctx, c.NegotiateTimeout)
		link, err := n.Negotiate(nctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("range sensor: %w", err)
		}
		glog.Infof("range sensor %s at %d", c.RangePort, link.State().BaudRate)
		ranger = tfluna.NewSampler(link)
	}

	ctl := NewController(e.Registrar, openServo, ranger)
	ctl.Pan, ctl.Tilt = sc08a.ChannelMask(c.PanChannel), sc08a.ChannelMask(c.TiltChannel)
	ctl.Speed, ctl.Delta = byte(c.Speed), uint16(c.Delta)
	ctl.PublishRange = c.PublishRange
	if err := ctl.InitServo(); err != nil {
		if ranger != nil {
			ranger.Close()
		}
		return nil, err
	}
	return ctl, nil
}
