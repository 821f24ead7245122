// Package msgs defines the L1 messages of the arm controller.
package msgs

import (
	"github.com/robotalks/perilink/pkg/l1/msgs"
)

// Type IDs.
const (
	ServoInitTypeID          uint32 = msgs.GroupServo | 0x0000
	ServoPowerTypeID         uint32 = msgs.GroupServo | 0x0001
	ServoSetTypeID           uint32 = msgs.GroupServo | 0x0002
	ServoPositionQueryTypeID uint32 = msgs.GroupServo | 0x0003
	ServoPositionTypeID      uint32 = ServoPositionQueryTypeID | msgs.TypeIDMaskReply
	ServoShutdownTypeID      uint32 = msgs.GroupServo | 0x0004

	ArmMoveTypeID     uint32 = msgs.GroupArm | 0x0000
	ArmDefaultsTypeID uint32 = msgs.GroupArm | 0x0001
	ArmResetTypeID    uint32 = msgs.GroupArm | 0x0002

	RangeSampleQueryTypeID uint32 = msgs.GroupRange | 0x0000
	RangeSampleTypeID      uint32 = RangeSampleQueryTypeID | msgs.TypeIDMaskReply
	RangeInfoQueryTypeID   uint32 = msgs.GroupRange | 0x0001
	RangeInfoTypeID        uint32 = RangeInfoQueryTypeID | msgs.TypeIDMaskReply
	RangeConfigTypeID      uint32 = msgs.GroupRange | 0x0002
	RangeReadingTypeID     uint32 = msgs.TypeIDKindEvent | msgs.GroupRange | 0x0003
)

// Directions of ArmMove. Horizontal and vertical add the signed delta,
// the others apply the delta in their direction.
const (
	DirHorizontal = "horizontal"
	DirVertical   = "vertical"
	DirLeft       = "left"
	DirRight      = "right"
	DirUp         = "up"
	DirDown       = "down"
)

func init() {
	msgs.Register(
		&ServoInit{},
		&ServoPower{},
		&ServoSet{},
		&ServoPositionQuery{},
		&ServoPosition{},
		&ServoShutdown{},
		&ArmMove{},
		&ArmDefaults{},
		&ArmReset{},
		&RangeSampleQuery{},
		&RangeSample{},
		&RangeReading{},
		&RangeInfoQuery{},
		&RangeConfig{},
		&RangeInfo{},
	)
}
