// Package l1 defines how L1 controllers, which own the hardware, talk to
// the components driving them.
package l1

import (
	"context"
	"fmt"
	"strings"

	fx "github.com/robotalks/perilink/pkg/framework"
)

// Registrar makes an L1 controller reachable and delivers its events.
type Registrar interface {
	// SendEvent broadcasts an event to connected components.
	SendEvent(context.Context, fx.Message) error
}

// Command is a received command waiting for a reply.
type Command interface {
	Msg() fx.Message
	// Done sends the reply. It must be called exactly once.
	Done(fx.Message) error
}

// CommandMsg is posted to the loop for every received command.
type CommandMsg struct {
	Command Command
}

// NewMessage implements Message.
func (m *CommandMsg) NewMessage() fx.Message { return &CommandMsg{} }

// ControllerRef identifies an L1 controller.
type ControllerRef struct {
	// Type is the kind of hardware, e.g. "arm".
	Type string
	// ID is unique among controllers of the same type.
	ID string
}

// ParseRef parses TYPE/ID.
func ParseRef(s string) (ControllerRef, error) {
	items := strings.SplitN(s, "/", 2)
	if len(items) != 2 || items[0] == "" || items[1] == "" {
		return ControllerRef{}, fmt.Errorf("invalid controller ref %q, expect TYPE/ID", s)
	}
	return ControllerRef{Type: items[0], ID: items[1]}, nil
}

// Name returns TYPE/ID.
func (r ControllerRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid reports whether both Type and ID are set.
func (r ControllerRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// ControllerMeta is published along with the ref.
type ControllerMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// ControllerInfo describes a registered controller.
type ControllerInfo struct {
	Ref  ControllerRef
	Meta ControllerMeta
}

// Connector finds and connects to L1 controllers.
type Connector interface {
	Discover(context.Context) ([]ControllerInfo, error)
	Connect(context.Context, ControllerRef) (ControllerConn, error)
}

// ControllerConn sends commands to a connected controller.
type ControllerConn interface {
	DoCommand(fx.Message) CommandFuture
}

// Result is the reply of a command. Err is set if the controller replied
// with an error or no reply arrived in time.
type Result struct {
	Msg fx.Message
	Err error
}

// CommandFuture delivers exactly one Result.
type CommandFuture interface {
	ResultChan() <-chan Result
}

// Await waits for the result of f.
func Await(ctx context.Context, f CommandFuture) Result {
	select {
	case res := <-f.ResultChan():
		return res
	case <-ctx.Done():
		return Result{Err: ctx.Err()}
	}
}
