package framework

import (
	"context"
	"time"
)

// Named is implemented by things with a name, used in logs.
type Named interface {
	Name() string
}

// Runnable is a background task.
type Runnable interface {
	Run(context.Context) error
}

// Message is anything posted to the loop.
type Message interface {
	// NewMessage creates an empty message of the same type.
	NewMessage() Message
}

// Controller runs once per loop iteration at its priority level.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc is the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}

// ControlContext is the context of the current iteration.
type ControlContext interface {
	// Context is canceled when the loop stops.
	Context() context.Context
	// Time is when the iteration started.
	Time() time.Time
	// PriorityLevel is the level being run.
	PriorityLevel() int
	// Messages are the messages collected when the iteration started.
	Messages() MessageStore

	LoopControl
}

// LoopControl is available to runners through LoopCtlFrom.
type LoopControl interface {
	// PostMessage queues a message for the next iteration.
	PostMessage(Message)
	// TriggerNext starts the next iteration without waiting for the interval.
	TriggerNext()
}

// Priority levels, lower runs first.
const (
	PrLvSense int = iota
	PrLvControl
	PrLvAcuate
	PrLvPostProc
	PrLvIdle

	PriorityLevels
)

// MessageStore holds the messages of an iteration.
type MessageStore interface {
	ProcessMessages(MessageProcessor)
	AddMessages(msgs ...Message)
}

// MessageProcessor is called for every message in a store.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc is the func form of MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext is the state of a single message.
type MessageProcessingContext interface {
	CurrentMessage() Message
	// MessageTaken removes the message from the store.
	MessageTaken()
	// StopProcessing skips the remaining messages.
	StopProcessing()
}
