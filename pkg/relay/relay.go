// Package relay provides a bufferless single-slot mailbox.
//
// A Relay always holds at most one item: putting a new item discards the
// unconsumed one, so a slow consumer only ever sees the most recent item
// and never a backlog.
package relay

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Take once a Relay is closed without a cause.
var ErrClosed = errors.New("relay closed")

// Relay is a single-slot mailbox shared by one producer and any number
// of consumers.
type Relay[T any] struct {
	lock    sync.Mutex
	item    T
	full    bool
	seq     uint64
	dropped uint64
	closed  bool
	err     error
	// ready is closed and replaced whenever a new item is installed.
	ready chan struct{}
}

// New creates a Relay.
func New[T any]() *Relay[T] {
	return &Relay[T]{ready: make(chan struct{})}
}

// Put installs item, discarding any unconsumed item.
// It returns the sequence number assigned to item.
func (r *Relay[T]) Put(item T) uint64 {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.ready == nil {
		r.ready = make(chan struct{})
	}
	if r.full {
		r.dropped++
	}
	r.seq++
	r.item, r.full = item, true
	close(r.ready)
	r.ready = make(chan struct{})
	return r.seq
}

// Take blocks until an item is available and consumes it.
// An item is returned by at most one Take. After Close the pending item
// is still returned, then Take fails with the error passed to Close.
func (r *Relay[T]) Take(ctx context.Context) (item T, seq uint64, err error) {
	for {
		r.lock.Lock()
		if r.full {
			item, seq = r.item, r.seq
			var zero T
			r.item, r.full = zero, false
			r.lock.Unlock()
			return
		}
		if r.closed {
			err = r.err
			r.lock.Unlock()
			return
		}
		if r.ready == nil {
			r.ready = make(chan struct{})
		}
		ready := r.ready
		r.lock.Unlock()

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-ready:
		}
	}
}

// Close wakes all waiting consumers. Later Take calls fail with err once
// the pending item is consumed, or ErrClosed if err is nil.
// Items put after Close are still accepted.
func (r *Relay[T]) Close(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.closed {
		return
	}
	if err == nil {
		err = ErrClosed
	}
	r.closed, r.err = true, err
	if r.ready != nil {
		close(r.ready)
	}
	r.ready = make(chan struct{})
}

// Err returns the error passed to Close, or nil if still open.
func (r *Relay[T]) Err() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.err
}

// Latest returns the pending item without consuming it.
func (r *Relay[T]) Latest() (item T, seq uint64, ok bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.item, r.seq, r.full
}

// Seq returns the sequence number of the last item put.
func (r *Relay[T]) Seq() uint64 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.seq
}

// Dropped returns the number of items discarded before being consumed.
func (r *Relay[T]) Dropped() uint64 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.dropped
}

// Producer produces the next item, blocking as long as needed.
type Producer[T any] interface {
	Produce(context.Context) (T, error)
}

// ProduceFunc is the func form of Producer.
type ProduceFunc[T any] func(context.Context) (T, error)

// Produce implements Producer.
func (f ProduceFunc[T]) Produce(ctx context.Context) (T, error) {
	return f(ctx)
}

// Run keeps putting items from p until ctx is done or p fails.
// Cancellation is checked between items.
func (r *Relay[T]) Run(ctx context.Context, p Producer[T]) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		item, err := p.Produce(ctx)
		if err != nil {
			return err
		}
		r.Put(item)
	}
}
