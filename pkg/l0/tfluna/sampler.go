package tfluna

import (
	"context"
	"errors"

	"github.com/golang/glog"

	"github.com/robotalks/perilink/pkg/relay"
)

// Sampler continuously reads samples from a Link and keeps only the
// latest one. Other operations on the Link are run through Do so the
// port is only used by the sampling goroutine. Once Run returns, Sample
// and Do fail with the error Run returned.
type Sampler struct {
	link  *Link
	relay *relay.Relay[Sample]
	reqCh chan *linkRequest
	done  chan struct{}
}

type linkRequest struct {
	fn    func(*Link) error
	errCh chan error
}

// NewSampler creates a Sampler. The Sampler owns link from now on.
func NewSampler(link *Link) *Sampler {
	return &Sampler{
		link:  link,
		relay: relay.New[Sample](),
		reqCh: make(chan *linkRequest),
		done:  make(chan struct{}),
	}
}

// Name implements framework.Named.
func (s *Sampler) Name() string {
	return "tfluna:" + s.link.Path()
}

// Run implements framework.Runnable. The link is closed when Run returns.
func (s *Sampler) Run(ctx context.Context) error {
	defer s.link.Close()
	err := s.relay.Run(ctx, relay.ProduceFunc[Sample](s.produce))
	if !errors.Is(err, context.Canceled) {
		glog.Errorf("tfluna %s: sampler stopped: %v", s.link.Path(), err)
	}
	s.relay.Close(err)
	close(s.done)
	return err
}

// Err returns the error Run stopped with, or nil while it's running.
func (s *Sampler) Err() error {
	return s.relay.Err()
}

// Close closes the link of a Sampler which never ran.
func (s *Sampler) Close() error {
	return s.link.Close()
}

func (s *Sampler) produce(ctx context.Context) (Sample, error) {
	for {
		select {
		case <-ctx.Done():
			return Sample{}, ctx.Err()
		case req := <-s.reqCh:
			req.errCh <- req.fn(s.link)
		default:
		}
		sample, ok, err := s.link.poll()
		if err != nil {
			return Sample{}, err
		}
		if ok {
			return sample, nil
		}
	}
}

// Sample waits for a sample newer than the last one taken. The sequence
// number tells how many samples were produced so far.
func (s *Sampler) Sample(ctx context.Context) (Sample, uint64, error) {
	return s.relay.Take(ctx)
}

// Latest returns the most recent sample without waiting.
func (s *Sampler) Latest() (Sample, uint64, bool) {
	return s.relay.Latest()
}

// Dropped returns the number of samples overwritten before being taken.
func (s *Sampler) Dropped() uint64 {
	return s.relay.Dropped()
}

// Do runs fn with the Link on the sampling goroutine.
func (s *Sampler) Do(ctx context.Context, fn func(*Link) error) error {
	req := &linkRequest{fn: fn, errCh: make(chan error, 1)}
	select {
	case s.reqCh <- req:
	case <-s.done:
		return s.relay.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
