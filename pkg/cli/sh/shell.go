// Package sh is the interactive shell talking to L1 controllers.
package sh

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1"
	env "github.com/robotalks/perilink/pkg/l1/env/connector"
)

// DefaultTimeout is the default Shell.Timeout.
const DefaultTimeout = 5 * time.Second

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	evalOnly   bool
	outputJSON bool
	timeout    = DefaultTimeout

	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
		&StatusCmd,
		&EventsCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.DurationVar(&timeout, "timeout", timeout, "Timeout of discovery, connecting and commands.")
}

// AddCmds registers commands, called from init of command packages.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// Shell is an ishell with at most one controller session.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool
	Timeout     time.Duration

	Shell   *ishell.Shell
	Config  *env.Config
	Session *Session

	// Events enables printing events of the session.
	Events atomic.Bool
}

// Session is a connection to a controller with its own loop.
type Session struct {
	Ref  l1.ControllerRef
	Conn l1.ControllerConn

	ctx    context.Context
	cancel context.CancelFunc
}

// Context is canceled when the session is closed.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close stops the loop of the session.
func (s *Session) Close() {
	s.cancel()
}

// New creates a Shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Timeout:     timeout,
		Shell:       ishell.New(),
		Config:      conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

func (s *Shell) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

// Discover lists the controllers matching filter.
func (s *Shell) Discover(filter func(l1.ControllerInfo) bool) ([]l1.ControllerInfo, error) {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
	defer cancel()
	infoList, err := connector.Discover(ctx)
	if err != nil || filter == nil {
		return infoList, err
	}
	matched := infoList[:0]
	for _, info := range infoList {
		if filter(info) {
			matched = append(matched, info)
		}
	}
	return matched, nil
}

// Choose discovers controllers and asks for one if more are found.
// It returns nil if nothing is found.
func (s *Shell) Choose(filter func(l1.ControllerInfo) bool) (*l1.ControllerInfo, error) {
	infoList, err := s.Discover(filter)
	if err != nil || len(infoList) == 0 {
		return nil, err
	}
	if len(infoList) == 1 {
		return &infoList[0], nil
	}
	if !s.Interactive {
		return nil, fmt.Errorf("%d controllers discovered, specify one", len(infoList))
	}
	items := make([]string, len(infoList))
	for n, info := range infoList {
		items[n] = FormatInfo(info)
	}
	index := s.Shell.MultiChoice(items, "Which one to connect?")
	if index < 0 {
		return nil, fmt.Errorf("canceled")
	}
	return &infoList[index], nil
}

// Connect replaces the current session with a new one to ref.
func (s *Shell) Connect(ref l1.ControllerRef) error {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return err
	}
	session := &Session{Ref: ref}
	session.ctx, session.cancel = context.WithCancel(context.Background())
	ctx, cancel := context.WithTimeout(session.ctx, s.timeout())
	session.Conn, err = connector.Connect(ctx, ref)
	cancel()
	if err != nil {
		session.Close()
		return fmt.Errorf("connect %s: %w", ref.Name(), err)
	}

	loop := fx.NewLoop()
	if adder, ok := session.Conn.(fx.LoopAdder); ok {
		loop.Add(adder)
	}
	loop.AddController(fx.PrLvControl, fx.ControlFunc(s.printEvents))
	s.Disconnect()
	s.Session = session
	go loop.Run(session.ctx)
	s.Shell.SetPrompt(ref.Name() + " > ")
	return nil
}

// Disconnect closes the current session.
func (s *Shell) Disconnect() {
	if s.Session != nil {
		s.Session.Close()
		s.Session = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// printEvents runs in the session loop.
func (s *Shell) printEvents(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		msg := mc.CurrentMessage()
		if _, isCmd := msg.(*l1.CommandMsg); isCmd {
			return
		}
		mc.MessageTaken()
		if !s.Events.Load() {
			return
		}
		out, err := FormatResult(msg, s.OutputJSON)
		if err != nil {
			s.Shell.Println(err)
			return
		}
		s.Shell.Println(out)
	}))
	return nil
}

// Run processes args as a single command, or starts the interactive shell
// without args.
func (s *Shell) Run(args ...string) {
	if ref := s.Config.Ref; s.AutoConnect && ref.IsValid() {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", ref.Name())
		}
		if err := s.Connect(ref); err != nil {
			log.Fatalln(err)
		}
	}

	switch {
	case len(args) > 0:
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
	case s.Interactive:
		s.Shell.Run()
	default:
		log.Fatalln("command expected")
	}
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
