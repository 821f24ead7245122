package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/perilink/pkg/framework"
)

// ServoInit opens the servo controller if needed and activates all channels.
type ServoInit struct{}

// NewMessage implements Message.
func (m *ServoInit) NewMessage() fx.Message { return &ServoInit{} }

// TypeID implements SerializableMessage.
func (m *ServoInit) TypeID() uint32 { return ServoInitTypeID }

// Serializable implements SerializableMessage.
func (m *ServoInit) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ServoInit) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoInit) Reset() { *m = ServoInit{} }

// String implements proto.Message.
func (m *ServoInit) String() string { return proto.CompactTextString(m) }

// ServoPower switches a channel on or off, channel 0 means all channels.
type ServoPower struct {
	Channel uint32 `protobuf:"varint,1,opt,name=channel,proto3" json:"channel,omitempty"`
	On      bool   `protobuf:"varint,2,opt,name=on,proto3" json:"on,omitempty"`
}

// NewMessage implements Message.
func (m *ServoPower) NewMessage() fx.Message { return &ServoPower{} }

// TypeID implements SerializableMessage.
func (m *ServoPower) TypeID() uint32 { return ServoPowerTypeID }

// Serializable implements SerializableMessage.
func (m *ServoPower) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ServoPower) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoPower) Reset() { *m = ServoPower{} }

// String implements proto.Message.
func (m *ServoPower) String() string { return proto.CompactTextString(m) }

// ServoSet moves a channel to an absolute position. With Wait the reply
// is sent once the channel reports the position.
type ServoSet struct {
	Channel  uint32 `protobuf:"varint,1,opt,name=channel,proto3" json:"channel,omitempty"`
	Position uint32 `protobuf:"varint,2,opt,name=position,proto3" json:"position,omitempty"`
	Speed    uint32 `protobuf:"varint,3,opt,name=speed,proto3" json:"speed,omitempty"`
	Wait     bool   `protobuf:"varint,4,opt,name=wait,proto3" json:"wait,omitempty"`
}

// NewMessage implements Message.
func (m *ServoSet) NewMessage() fx.Message { return &ServoSet{} }

// TypeID implements SerializableMessage.
func (m *ServoSet) TypeID() uint32 { return ServoSetTypeID }

// Serializable implements SerializableMessage.
func (m *ServoSet) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ServoSet) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoSet) Reset() { *m = ServoSet{} }

// String implements proto.Message.
func (m *ServoSet) String() string { return proto.CompactTextString(m) }

// ServoPositionQuery reads back the position of a channel.
type ServoPositionQuery struct {
	Channel uint32 `protobuf:"varint,1,opt,name=channel,proto3" json:"channel,omitempty"`
}

// NewMessage implements Message.
func (m *ServoPositionQuery) NewMessage() fx.Message { return &ServoPositionQuery{} }

// TypeID implements SerializableMessage.
func (m *ServoPositionQuery) TypeID() uint32 { return ServoPositionQueryTypeID }

// Serializable implements SerializableMessage.
func (m *ServoPositionQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ServoPositionQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoPositionQuery) Reset() { *m = ServoPositionQuery{} }

// String implements proto.Message.
func (m *ServoPositionQuery) String() string { return proto.CompactTextString(m) }

// ServoPosition replies ServoPositionQuery and ArmMove.
type ServoPosition struct {
	Channel  uint32 `protobuf:"varint,1,opt,name=channel,proto3" json:"channel,omitempty"`
	Position uint32 `protobuf:"varint,2,opt,name=position,proto3" json:"position,omitempty"`
}

// NewMessage implements Message.
func (m *ServoPosition) NewMessage() fx.Message { return &ServoPosition{} }

// TypeID implements SerializableMessage.
func (m *ServoPosition) TypeID() uint32 { return ServoPositionTypeID }

// Serializable implements SerializableMessage.
func (m *ServoPosition) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ServoPosition) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoPosition) Reset() { *m = ServoPosition{} }

// String implements proto.Message.
func (m *ServoPosition) String() string { return proto.CompactTextString(m) }

// ServoShutdown turns off all channels and closes the servo controller.
type ServoShutdown struct{}

// NewMessage implements Message.
func (m *ServoShutdown) NewMessage() fx.Message { return &ServoShutdown{} }

// TypeID implements SerializableMessage.
func (m *ServoShutdown) TypeID() uint32 { return ServoShutdownTypeID }

// Serializable implements SerializableMessage.
func (m *ServoShutdown) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ServoShutdown) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoShutdown) Reset() { *m = ServoShutdown{} }

// String implements proto.Message.
func (m *ServoShutdown) String() string { return proto.CompactTextString(m) }

// ArmMove moves an axis relative to its current position.
// Zero Delta or Speed uses the defaults.
type ArmMove struct {
	Direction string `protobuf:"bytes,1,opt,name=direction,proto3" json:"direction,omitempty"`
	Delta     int32  `protobuf:"varint,2,opt,name=delta,proto3" json:"delta,omitempty"`
	Speed     uint32 `protobuf:"varint,3,opt,name=speed,proto3" json:"speed,omitempty"`
}

// NewMessage implements Message.
func (m *ArmMove) NewMessage() fx.Message { return &ArmMove{} }

// TypeID implements SerializableMessage.
func (m *ArmMove) TypeID() uint32 { return ArmMoveTypeID }

// Serializable implements SerializableMessage.
func (m *ArmMove) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ArmMove) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ArmMove) Reset() { *m = ArmMove{} }

// String implements proto.Message.
func (m *ArmMove) String() string { return proto.CompactTextString(m) }

// ArmDefaults sets the default speed and delta of ArmMove.
// Zero values are left unchanged.
type ArmDefaults struct {
	Speed uint32 `protobuf:"varint,1,opt,name=speed,proto3" json:"speed,omitempty"`
	Delta uint32 `protobuf:"varint,2,opt,name=delta,proto3" json:"delta,omitempty"`
}

// NewMessage implements Message.
func (m *ArmDefaults) NewMessage() fx.Message { return &ArmDefaults{} }

// TypeID implements SerializableMessage.
func (m *ArmDefaults) TypeID() uint32 { return ArmDefaultsTypeID }

// Serializable implements SerializableMessage.
func (m *ArmDefaults) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ArmDefaults) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ArmDefaults) Reset() { *m = ArmDefaults{} }

// String implements proto.Message.
func (m *ArmDefaults) String() string { return proto.CompactTextString(m) }

// ArmReset turns off the channels of both axes.
type ArmReset struct{}

// NewMessage implements Message.
func (m *ArmReset) NewMessage() fx.Message { return &ArmReset{} }

// TypeID implements SerializableMessage.
func (m *ArmReset) TypeID() uint32 { return ArmResetTypeID }

// Serializable implements SerializableMessage.
func (m *ArmReset) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ArmReset) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ArmReset) Reset() { *m = ArmReset{} }

// String implements proto.Message.
func (m *ArmReset) String() string { return proto.CompactTextString(m) }

// RangeSampleQuery waits for a sample newer than the last one taken.
type RangeSampleQuery struct{}

// NewMessage implements Message.
func (m *RangeSampleQuery) NewMessage() fx.Message { return &RangeSampleQuery{} }

// TypeID implements SerializableMessage.
func (m *RangeSampleQuery) TypeID() uint32 { return RangeSampleQueryTypeID }

// Serializable implements SerializableMessage.
func (m *RangeSampleQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *RangeSampleQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RangeSampleQuery) Reset() { *m = RangeSampleQuery{} }

// String implements proto.Message.
func (m *RangeSampleQuery) String() string { return proto.CompactTextString(m) }

// RangeSample is a reading of the range sensor.
type RangeSample struct {
	Distance    float64 `protobuf:"fixed64,1,opt,name=distance,proto3" json:"distance,omitempty"`
	Strength    uint32  `protobuf:"varint,2,opt,name=strength,proto3" json:"strength,omitempty"`
	Temperature float64 `protobuf:"fixed64,3,opt,name=temperature,proto3" json:"temperature,omitempty"`
	Sequence    uint64  `protobuf:"varint,4,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// NewMessage implements Message.
func (m *RangeSample) NewMessage() fx.Message { return &RangeSample{} }

// TypeID implements SerializableMessage.
func (m *RangeSample) TypeID() uint32 { return RangeSampleTypeID }

// Serializable implements SerializableMessage.
func (m *RangeSample) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *RangeSample) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RangeSample) Reset() { *m = RangeSample{} }

// String implements proto.Message.
func (m *RangeSample) String() string { return proto.CompactTextString(m) }

// RangeReading is the event published with every new sample.
type RangeReading struct {
	Distance    float64 `protobuf:"fixed64,1,opt,name=distance,proto3" json:"distance,omitempty"`
	Strength    uint32  `protobuf:"varint,2,opt,name=strength,proto3" json:"strength,omitempty"`
	Temperature float64 `protobuf:"fixed64,3,opt,name=temperature,proto3" json:"temperature,omitempty"`
	Sequence    uint64  `protobuf:"varint,4,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// NewMessage implements Message.
func (m *RangeReading) NewMessage() fx.Message { return &RangeReading{} }

// TypeID implements SerializableMessage.
func (m *RangeReading) TypeID() uint32 { return RangeReadingTypeID }

// Serializable implements SerializableMessage.
func (m *RangeReading) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *RangeReading) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RangeReading) Reset() { *m = RangeReading{} }

// String implements proto.Message.
func (m *RangeReading) String() string { return proto.CompactTextString(m) }

// RangeInfoQuery queries the range sensor version and link state.
type RangeInfoQuery struct{}

// NewMessage implements Message.
func (m *RangeInfoQuery) NewMessage() fx.Message { return &RangeInfoQuery{} }

// TypeID implements SerializableMessage.
func (m *RangeInfoQuery) TypeID() uint32 { return RangeInfoQueryTypeID }

// Serializable implements SerializableMessage.
func (m *RangeInfoQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *RangeInfoQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RangeInfoQuery) Reset() { *m = RangeInfoQuery{} }

// String implements proto.Message.
func (m *RangeInfoQuery) String() string { return proto.CompactTextString(m) }

// RangeConfig changes the link of the range sensor.
// Zero values are left unchanged.
type RangeConfig struct {
	BaudRate   uint32 `protobuf:"varint,1,opt,name=baud_rate,proto3" json:"baud_rate,omitempty"`
	SampleRate uint32 `protobuf:"varint,2,opt,name=sample_rate,proto3" json:"sample_rate,omitempty"`
}

// NewMessage implements Message.
func (m *RangeConfig) NewMessage() fx.Message { return &RangeConfig{} }

// TypeID implements SerializableMessage.
func (m *RangeConfig) TypeID() uint32 { return RangeConfigTypeID }

// Serializable implements SerializableMessage.
func (m *RangeConfig) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *RangeConfig) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RangeConfig) Reset() { *m = RangeConfig{} }

// String implements proto.Message.
func (m *RangeConfig) String() string { return proto.CompactTextString(m) }

// RangeInfo replies RangeInfoQuery and RangeConfig.
type RangeInfo struct {
	Version    string `protobuf:"bytes,1,opt,name=version,proto3" json:"version,omitempty"`
	BaudRate   uint32 `protobuf:"varint,2,opt,name=baud_rate,proto3" json:"baud_rate,omitempty"`
	SampleRate uint32 `protobuf:"varint,3,opt,name=sample_rate,proto3" json:"sample_rate,omitempty"`
}

// NewMessage implements Message.
func (m *RangeInfo) NewMessage() fx.Message { return &RangeInfo{} }

// TypeID implements SerializableMessage.
func (m *RangeInfo) TypeID() uint32 { return RangeInfoTypeID }

// Serializable implements SerializableMessage.
func (m *RangeInfo) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *RangeInfo) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RangeInfo) Reset() { *m = RangeInfo{} }

// String implements proto.Message.
func (m *RangeInfo) String() string { return proto.CompactTextString(m) }
