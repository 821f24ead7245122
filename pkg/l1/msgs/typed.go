package msgs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/perilink/pkg/framework"
)

// TypeID masks.
const (
	TypeIDMaskKind  uint32 = 0x80000000
	TypeIDMaskGroup uint32 = 0x7fff0000
	TypeIDMaskID    uint32 = 0x0000ffff
	TypeIDMaskReply uint32 = 0x00008000
)

// Message kinds.
const (
	TypeIDKindCommand uint32 = 0x00000000
	TypeIDKindEvent   uint32 = 0x80000000
)

// Typed is the envelope of every message on the wire.
type Typed struct {
	TypeID   uint32 `protobuf:"varint,1,opt,name=type_id,proto3" json:"type_id,omitempty"`
	Sequence uint32 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Message  []byte `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

// ProtoMessage implements proto.Message.
func (p *Typed) ProtoMessage() {}

// Reset implements proto.Message.
func (p *Typed) Reset() { *p = Typed{} }

// String implements proto.Message.
func (p *Typed) String() string { return proto.CompactTextString(p) }

// TypedMsgHandler handles a decoded message.
type TypedMsgHandler interface {
	HandleTypedMsg(context.Context, fx.Message, *Typed) error
}

// HandleTypedMsgFunc is the func form of TypedMsgHandler.
type HandleTypedMsgFunc func(context.Context, fx.Message, *Typed) error

// HandleTypedMsg implements TypedMsgHandler.
func (f HandleTypedMsgFunc) HandleTypedMsg(ctx context.Context, msg fx.Message, typed *Typed) error {
	return f(ctx, msg, typed)
}

// UnknownTypeError indicates a type ID which isn't registered.
type UnknownTypeError struct {
	TypeID uint32
}

// Error implements error.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %08x", e.TypeID)
}

var (
	// ErrNotSerializable indicates the message can't be sent.
	ErrNotSerializable = errors.New("not serializable message")
	// ErrUnsupportedCommand is replied to commands no controller handled.
	ErrUnsupportedCommand = errors.New("unsupported command")
)

// SerializableMessage can be sent over the wire.
type SerializableMessage interface {
	fx.Message
	TypeID() uint32
	Serializable() proto.Message
}

var (
	typesLock    sync.RWMutex
	messageTypes = make(map[uint32]SerializableMessage)
)

// Register makes messages decodable. It's intended to be called from init
// and panics on conflicting type IDs.
func Register(msgs ...SerializableMessage) {
	typesLock.Lock()
	defer typesLock.Unlock()
	for _, msg := range msgs {
		typeID := msg.TypeID()
		if existing, ok := messageTypes[typeID]; ok {
			panic(fmt.Sprintf("type %08x registered by both %T and %T", typeID, existing, msg))
		}
		messageTypes[typeID] = msg
	}
}

// LookupType finds the registered message of typeID.
func LookupType(typeID uint32) (SerializableMessage, bool) {
	typesLock.RLock()
	defer typesLock.RUnlock()
	msg, ok := messageTypes[typeID]
	return msg, ok
}

// TypedFrom wraps msg in an envelope.
func TypedFrom(msg fx.Message) (*Typed, error) {
	s, ok := msg.(SerializableMessage)
	if !ok {
		return nil, ErrNotSerializable
	}
	data, err := proto.Marshal(s.Serializable())
	if err != nil {
		return nil, err
	}
	return &Typed{TypeID: s.TypeID(), Message: data}, nil
}

// Decode decodes the enclosed message.
func (p *Typed) Decode() (fx.Message, error) {
	msgType, ok := LookupType(p.TypeID)
	if !ok {
		return nil, &UnknownTypeError{TypeID: p.TypeID}
	}
	msg := msgType.NewMessage()
	if err := proto.Unmarshal(p.Message, msg.(SerializableMessage).Serializable()); err != nil {
		return nil, err
	}
	return msg, nil
}

// Encode encodes the envelope.
func (p *Typed) Encode() ([]byte, error) {
	return proto.Marshal(p)
}

// Kind returns the message kind.
func (p *Typed) Kind() uint32 {
	return p.TypeID & TypeIDMaskKind
}

// IsCommand reports whether the message is a command or a reply.
func (p *Typed) IsCommand() bool {
	return p.Kind() == TypeIDKindCommand
}

// IsEvent reports whether the message is an event.
func (p *Typed) IsEvent() bool {
	return p.Kind() == TypeIDKindEvent
}

// IsReply reports whether the message replies a command.
func (p *Typed) IsReply() bool {
	return p.IsCommand() && p.TypeID&TypeIDMaskReply != 0
}

// DecodeTyped decodes an envelope.
func DecodeTyped(data []byte) (*Typed, error) {
	var typed Typed
	if err := proto.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	return &typed, nil
}
