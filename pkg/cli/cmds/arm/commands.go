// Package arm provides shell commands of the arm controller.
package arm

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/perilink/pkg/arm/msgs"
	"github.com/robotalks/perilink/pkg/cli/sh"
	fx "github.com/robotalks/perilink/pkg/framework"
)

type buildFunc func(args []string) (fx.Message, error)

func command(name, alias, help string, build buildFunc) ishell.Cmd {
	return ishell.Cmd{
		Name:    name,
		Aliases: []string{alias},
		Help:    help,
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			msg, err := build(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, msg)
		}),
	}
}

func noArgs(msg fx.Message) buildFunc {
	return func([]string) (fx.Message, error) {
		return msg.NewMessage(), nil
	}
}

func parseUint(args []string, index int, name string, bits int) (uint32, error) {
	if index >= len(args) {
		return 0, nil
	}
	val, err := strconv.ParseUint(args[index], 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return uint32(val), nil
}

func requireArgs(args []string, names ...string) error {
	if len(args) < len(names) {
		return fmt.Errorf("%s required", names[len(args)])
	}
	return nil
}

func buildServoPower(args []string) (fx.Message, error) {
	if err := requireArgs(args, "CHANNEL", "on|off"); err != nil {
		return nil, err
	}
	var msg msgs.ServoPower
	var err error
	if msg.Channel, err = parseUint(args, 0, "CHANNEL", 8); err != nil {
		return nil, err
	}
	switch args[1] {
	case "on", "1":
		msg.On = true
	case "off", "0":
	default:
		return nil, fmt.Errorf("invalid power %q, expect on or off", args[1])
	}
	return &msg, nil
}

func buildServoSet(args []string) (fx.Message, error) {
	if err := requireArgs(args, "CHANNEL", "POSITION"); err != nil {
		return nil, err
	}
	var msg msgs.ServoSet
	var err error
	if msg.Channel, err = parseUint(args, 0, "CHANNEL", 8); err != nil {
		return nil, err
	}
	if msg.Position, err = parseUint(args, 1, "POSITION", 16); err != nil {
		return nil, err
	}
	if msg.Speed, err = parseUint(args, 2, "SPEED", 8); err != nil {
		return nil, err
	}
	if len(args) > 3 {
		if args[3] != "wait" {
			return nil, fmt.Errorf("invalid option %q, expect wait", args[3])
		}
		msg.Wait = true
	}
	return &msg, nil
}

func buildServoGet(args []string) (fx.Message, error) {
	if err := requireArgs(args, "CHANNEL"); err != nil {
		return nil, err
	}
	ch, err := parseUint(args, 0, "CHANNEL", 8)
	if err != nil {
		return nil, err
	}
	return &msgs.ServoPositionQuery{Channel: ch}, nil
}

func buildArmMove(args []string) (fx.Message, error) {
	if err := requireArgs(args, "DIRECTION"); err != nil {
		return nil, err
	}
	msg := &msgs.ArmMove{Direction: args[0]}
	switch msg.Direction {
	case msgs.DirHorizontal, msgs.DirVertical, msgs.DirLeft, msgs.DirRight, msgs.DirUp, msgs.DirDown:
	default:
		return nil, fmt.Errorf("invalid DIRECTION %q", msg.Direction)
	}
	if len(args) > 1 {
		val, err := strconv.ParseInt(args[1], 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid DELTA: %w", err)
		}
		msg.Delta = int32(val)
	}
	var err error
	if msg.Speed, err = parseUint(args, 2, "SPEED", 8); err != nil {
		return nil, err
	}
	return msg, nil
}

func buildArmDefaults(args []string) (fx.Message, error) {
	if err := requireArgs(args, "SPEED"); err != nil {
		return nil, err
	}
	var msg msgs.ArmDefaults
	var err error
	if msg.Speed, err = parseUint(args, 0, "SPEED", 8); err != nil {
		return nil, err
	}
	if msg.Delta, err = parseUint(args, 1, "DELTA", 16); err != nil {
		return nil, err
	}
	return &msg, nil
}

func buildRangeConfig(args []string) (fx.Message, error) {
	if err := requireArgs(args, "SAMPLE_RATE"); err != nil {
		return nil, err
	}
	var msg msgs.RangeConfig
	var err error
	if msg.SampleRate, err = parseUint(args, 0, "SAMPLE_RATE", 16); err != nil {
		return nil, err
	}
	if msg.BaudRate, err = parseUint(args, 1, "BAUD_RATE", 32); err != nil {
		return nil, err
	}
	return &msg, nil
}

var (
	// ServoInitCmd exposes ServoInit command.
	ServoInitCmd = command("servo.init", "si", "", noArgs(&msgs.ServoInit{}))
	// ServoPowerCmd exposes ServoPower command.
	ServoPowerCmd = command("servo.power", "sp", "CHANNEL on|off", buildServoPower)
	// ServoSetCmd exposes ServoSet command.
	ServoSetCmd = command("servo.set", "ss", "CHANNEL POSITION [SPEED [wait]]", buildServoSet)
	// ServoGetCmd exposes ServoPositionQuery command.
	ServoGetCmd = command("servo.get", "sg", "CHANNEL", buildServoGet)
	// ServoShutdownCmd exposes ServoShutdown command.
	ServoShutdownCmd = command("servo.shutdown", "sd", "", noArgs(&msgs.ServoShutdown{}))

	// ArmMoveCmd exposes ArmMove command.
	ArmMoveCmd = command("arm.move", "am", "left|right|up|down|horizontal|vertical [DELTA] [SPEED]", buildArmMove)
	// ArmDefaultsCmd exposes ArmDefaults command.
	ArmDefaultsCmd = command("arm.defaults", "ad", "SPEED [DELTA]", buildArmDefaults)
	// ArmResetCmd exposes ArmReset command.
	ArmResetCmd = command("arm.reset", "ar", "", noArgs(&msgs.ArmReset{}))

	// RangeSampleCmd exposes RangeSampleQuery command.
	RangeSampleCmd = command("range.sample", "rs", "", noArgs(&msgs.RangeSampleQuery{}))
	// RangeInfoCmd exposes RangeInfoQuery command.
	RangeInfoCmd = command("range.info", "ri", "", noArgs(&msgs.RangeInfoQuery{}))
	// RangeConfigCmd exposes RangeConfig command, 0 keeps the current value.
	RangeConfigCmd = command("range.config", "rc", "SAMPLE_RATE [BAUD_RATE]", buildRangeConfig)
)

func init() {
	sh.AddCmds(
		&ServoInitCmd,
		&ServoPowerCmd,
		&ServoSetCmd,
		&ServoGetCmd,
		&ServoShutdownCmd,
		&ArmMoveCmd,
		&ArmDefaultsCmd,
		&ArmResetCmd,
		&RangeSampleCmd,
		&RangeInfoCmd,
		&RangeConfigCmd,
	)
}
