package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the loop interval when none is set.
const DefaultInterval = 100 * time.Millisecond

// Loop runs controllers periodically on a single goroutine, so state owned
// by controllers, like an open device, needs no further locking.
type Loop struct {
	Interval time.Duration

	controllers [PriorityLevels][]Controller
	runners     []Runnable

	lock     sync.Mutex
	messages []Message
	wakeUpCh chan struct{}
}

// LoopAdder knows how to add itself to a Loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopCtxKeyType struct{}

var loopCtxKey loopCtxKeyType

// LoopCtlFrom gets LoopControl from the context passed to runners.
func LoopCtlFrom(ctx context.Context) LoopControl {
	return ctx.Value(loopCtxKey).(LoopControl)
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval, wakeUpCh: make(chan struct{}, 1)}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController adds controllers at priorityLevel. Controllers which are
// also Runnable are started with the loop.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	l.controllers[priorityLevel] = append(l.controllers[priorityLevel], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds runners started with the loop.
func (l *Loop) AddRunnable(runners ...Runnable) *Loop {
	l.runners = append(l.runners, runners...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	l.lock.Lock()
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}
	l.lock.Unlock()

	runner := NewRunnerWith(context.WithValue(ctx, loopCtxKey, LoopControl(l)))
	runner.Go(l.runners...)
	defer func() {
		if err := runner.Wait(); err != nil {
			glog.Errorf("loop runner: %v", err)
		}
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-l.wakeUpCh:
		}
		l.iterate(ctx)
	}
}

// PostMessage implements LoopControl.
func (l *Loop) PostMessage(msg Message) {
	l.lock.Lock()
	l.messages = append(l.messages, msg)
	l.lock.Unlock()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	l.lock.Lock()
	ch := l.wakeUpCh
	l.lock.Unlock()
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (l *Loop) iterate(ctx context.Context) {
	l.lock.Lock()
	iter := &iteration{loop: l, time: time.Now(), messages: l.messages}
	l.messages = nil
	l.lock.Unlock()
	iter.ctx = context.WithValue(ctx, loopCtxKey, LoopControl(l))
	for level, ctls := range l.controllers {
		iter.level = level
		for _, ctl := range ctls {
			if err := ctl.Control(iter); err != nil {
				glog.Errorf("controller error: %v", err)
			}
		}
	}
	if n := len(iter.messages); n > 0 {
		glog.V(3).Infof("%d messages not processed", n)
	}
}

type iteration struct {
	loop     *Loop
	ctx      context.Context
	time     time.Time
	level    int
	messages []Message
}

func (t *iteration) Context() context.Context { return t.ctx }
func (t *iteration) Time() time.Time          { return t.time }
func (t *iteration) PriorityLevel() int       { return t.level }
func (t *iteration) Messages() MessageStore   { return t }
func (t *iteration) PostMessage(msg Message)  { t.loop.PostMessage(msg) }
func (t *iteration) TriggerNext()             { t.loop.TriggerNext() }

// AddMessages implements MessageStore.
func (t *iteration) AddMessages(msgs ...Message) {
	t.messages = append(t.messages, msgs...)
}

type processing struct {
	msg   Message
	taken bool
	stop  bool
}

func (p *processing) CurrentMessage() Message { return p.msg }
func (p *processing) MessageTaken()           { p.taken = true }
func (p *processing) StopProcessing()         { p.stop = true }

// ProcessMessages implements MessageStore.
func (t *iteration) ProcessMessages(proc MessageProcessor) {
	msgs := t.messages
	t.messages = nil
	remains := make([]Message, 0, len(msgs))
	for n, msg := range msgs {
		p := &processing{msg: msg}
		proc.ProcessMessage(p)
		if !p.taken {
			remains = append(remains, msg)
		}
		if p.stop {
			remains = append(remains, msgs[n+1:]...)
			break
		}
	}
	// messages added while processing come after the remaining ones.
	t.messages = append(remains, t.messages...)
}
