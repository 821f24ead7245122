package sh

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1"
	"github.com/robotalks/perilink/pkg/l1/msgs"
)

// FormatInfo formats ControllerInfo for display.
func FormatInfo(info l1.ControllerInfo) string {
	if info.Meta.Description == "" {
		return info.Ref.Name()
	}
	return info.Ref.Name() + ": " + info.Meta.Description
}

// FormatResult formats a reply or an event for display.
func FormatResult(msg fx.Message, outputJSON bool) (string, error) {
	if _, ok := msg.(*msgs.CommandOK); ok && !outputJSON {
		return "OK", nil
	}
	serializable, ok := msg.(msgs.SerializableMessage)
	if !ok {
		return "", fmt.Errorf("%w: %T", msgs.ErrNotSerializable, msg)
	}
	if outputJSON {
		out, err := json.Marshal(serializable.Serializable())
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	name := reflect.Indirect(reflect.ValueOf(msg)).Type().Name()
	return strings.TrimSpace(name + " " + serializable.Serializable().String()), nil
}

// MustBeConnected wraps a command func requiring a session.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// DoCommand sends msg in the current session and prints the reply.
func DoCommand(c *ishell.Context, msg fx.Message) error {
	s := ShellFrom(c)
	session := s.Session
	if session == nil {
		err := fmt.Errorf("not connected")
		c.Err(err)
		return err
	}
	ctx, cancel := context.WithTimeout(session.Context(), s.timeout())
	defer cancel()
	res := l1.Await(ctx, session.Conn.DoCommand(msg))
	if res.Err != nil {
		c.Err(res.Err)
		return res.Err
	}
	out, err := FormatResult(res.Msg, s.OutputJSON)
	if err != nil {
		c.Err(err)
		return err
	}
	c.Println(out)
	return nil
}

func typeFilter(typ string) func(l1.ControllerInfo) bool {
	if typ == "" {
		return nil
	}
	return func(info l1.ControllerInfo) bool {
		return info.Ref.Type == typ
	}
}

var (
	// DiscoverCmd lists controllers, optionally of a type.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "[TYPE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var typ string
			if len(c.Args) > 0 {
				typ = c.Args[0]
			}
			infoList, err := s.Discover(typeFilter(typ))
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if infoList == nil {
					infoList = []l1.ControllerInfo{}
				}
				out, err := json.Marshal(infoList)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(infoList) == 0 {
				c.Println("No controllers found")
				return
			}
			for _, info := range infoList {
				c.Println(FormatInfo(info))
			}
		},
	}

	// ConnectCmd connects a controller by TYPE/ID, or chooses one
	// discovered of the configured type.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[TYPE/ID | TYPE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			typ := s.Config.Ref.Type
			if len(c.Args) > 0 {
				if ref, err := l1.ParseRef(c.Args[0]); err == nil {
					if err = s.Connect(ref); err != nil {
						c.Err(err)
					}
					return
				}
				typ = c.Args[0]
			}
			info, err := s.Choose(typeFilter(typ))
			if err != nil {
				c.Err(err)
				return
			}
			if info == nil {
				c.Err(fmt.Errorf("no controller discovered"))
				return
			}
			if err := s.Connect(info.Ref); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd closes the current session.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "disconnect current controller",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// StatusCmd prints the current session.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "show current controller",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if s.Session == nil {
				c.Println("not connected")
				return
			}
			c.Printf("connected %s, events %v\n", s.Session.Ref.Name(), s.Events.Load())
		},
	}

	// EventsCmd toggles printing events.
	EventsCmd = ishell.Cmd{
		Name: "events",
		Help: "on|off",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) == 0 {
				c.Println(s.Events.Load())
				return
			}
			switch c.Args[0] {
			case "on":
				s.Events.Store(true)
			case "off":
				s.Events.Store(false)
			default:
				c.Err(fmt.Errorf("expect on or off"))
			}
		},
	}
)
