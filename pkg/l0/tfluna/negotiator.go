package tfluna

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/perilink/pkg/serial"
)

// Negotiator defaults.
const (
	DefaultSampleRate      uint16 = 100
	DefaultSettleDelay            = 100 * time.Millisecond
	DefaultBaudSettleDelay        = time.Second
)

// Negotiator finds the baud rate a sensor is talking at.
type Negotiator struct {
	Opener serial.Opener
	Path   string
	// ReadTimeout bounds each probe read.
	ReadTimeout time.Duration
	// SampleRate is configured once the baud rate is found.
	SampleRate uint16
	// SettleDelay is how long to wait after a configuration command.
	SettleDelay time.Duration
	// BaudSettleDelay is how long the sensor needs after a baud rate change.
	BaudSettleDelay time.Duration
}

// NewNegotiator creates a Negotiator with defaults.
func NewNegotiator(opener serial.Opener, path string) *Negotiator {
	return &Negotiator{
		Opener:          opener,
		Path:            path,
		ReadTimeout:     serial.DefaultReadTimeout,
		SampleRate:      DefaultSampleRate,
		SettleDelay:     DefaultSettleDelay,
		BaudSettleDelay: DefaultBaudSettleDelay,
	}
}

type negotiationState int

const (
	stateProbing negotiationState = iota
	stateLocked
	stateFailed
)

type negotiation struct {
	*Negotiator
	state negotiationState
	rates []int
	next  int
	port  serial.Port
	baud  int
	err   NegotiationError
}

// Negotiate probes the baud rates in ProbeOrder until a valid data frame
// is received, then configures the sample rate. The returned Link owns the
// open port. If no rate works, the error is a *NegotiationError.
func (n *Negotiator) Negotiate(ctx context.Context) (*Link, error) {
	neg := &negotiation{
		Negotiator: n,
		rates:      ProbeOrder(),
		err:        NegotiationError{Path: n.Path},
	}
	for neg.state == stateProbing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := neg.probeNext(); err != nil {
			return nil, err
		}
	}
	if neg.state == stateFailed {
		glog.Warningf("tfluna %s: negotiation failed after %d bytes", n.Path, neg.err.BytesSeen)
		return nil, &neg.err
	}
	glog.Infof("tfluna %s: locked at %d", n.Path, neg.baud)
	link := newLink(n, neg.port, neg.baud)
	if err := link.SetSampleRate(ctx, n.SampleRate); err != nil {
		link.Close()
		return nil, err
	}
	return link, nil
}

func (n *negotiation) probeNext() error {
	baud := n.rates[n.next]
	n.next++
	port, err := n.Opener.Open(n.Path, &serial.Mode{BaudRate: baud, ReadTimeout: n.ReadTimeout})
	if err != nil {
		return err
	}
	n.err.Rates = append(n.err.Rates, baud)
	_, seen, err := probe(port)
	n.err.BytesSeen += seen
	glog.V(2).Infof("tfluna %s: probe %d: %d bytes, %v", n.Path, baud, seen, err)
	switch err {
	case nil:
		n.port, n.baud, n.state = port, baud, stateLocked
		return nil
	case ErrNoSample:
		port.Close()
		if n.next >= len(n.rates) {
			n.state = stateFailed
		}
		return nil
	default:
		port.Close()
		return err
	}
}
