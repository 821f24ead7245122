package tfluna

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/serial"
)

// VersionTimeout bounds how long Version keeps asking.
const VersionTimeout = 5 * time.Second

// LinkState is the negotiated configuration of a Link.
type LinkState struct {
	BaudRate   int
	SampleRate uint16
}

// Link is an open connection to a sensor at a negotiated baud rate.
// It's not safe for concurrent use.
type Link struct {
	opener      serial.Opener
	path        string
	readTimeout time.Duration
	settle      time.Duration
	baudSettle  time.Duration

	port    serial.Port
	state   LinkState
	pending []byte
	chunk   []byte
}

func newLink(n *Negotiator, port serial.Port, baud int) *Link {
	return &Link{
		opener:      n.Opener,
		path:        n.Path,
		readTimeout: n.ReadTimeout,
		settle:      n.SettleDelay,
		baudSettle:  n.BaudSettleDelay,
		port:        port,
		state:       LinkState{BaudRate: baud},
		pending:     make([]byte, 0, 4*FrameSize),
		chunk:       make([]byte, 4*FrameSize),
	}
}

// Path returns the path of the serial port.
func (l *Link) Path() string {
	return l.path
}

// State returns the current link state.
func (l *Link) State() LinkState {
	return l.state
}

// Close closes the port.
func (l *Link) Close() error {
	return l.port.Close()
}

// ReadSample discards buffered data and reads a fresh sample.
// It returns ErrNoSample if no valid frame was received.
func (l *Link) ReadSample() (Sample, error) {
	l.pending = l.pending[:0]
	s, _, err := probe(l.port)
	return s, err
}

// Next returns the next sample from the stream, resynchronizing on the
// frame header as needed.
func (l *Link) Next(ctx context.Context) (Sample, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Sample{}, err
		}
		s, ok, err := l.poll()
		if err != nil || ok {
			return s, err
		}
	}
}

// Scan calls fn with every sample until ctx is done or fn fails.
func (l *Link) Scan(ctx context.Context, fn func(Sample) error) error {
	for {
		s, err := l.Next(ctx)
		if err != nil {
			return err
		}
		if err = fn(s); err != nil {
			return err
		}
	}
}

// poll reads at most once from the port and extracts one sample if a
// whole frame is available.
func (l *Link) poll() (Sample, bool, error) {
	if s, ok := l.extract(); ok {
		return s, true, nil
	}
	n, err := l.port.Read(l.chunk)
	if err != nil {
		return Sample{}, false, err
	}
	l.pending = append(l.pending, l.chunk[:n]...)
	s, ok := l.extract()
	return s, ok, nil
}

func (l *Link) extract() (Sample, bool) {
	i := findHeader(l.pending)
	if i < 0 {
		// a trailing header byte may start the next frame.
		if n := len(l.pending); n > 0 && l.pending[n-1] == frameHeader {
			l.pending = append(l.pending[:0], frameHeader)
		} else {
			l.pending = l.pending[:0]
		}
		return Sample{}, false
	}
	if len(l.pending)-i < FrameSize {
		l.pending = append(l.pending[:0], l.pending[i:]...)
		return Sample{}, false
	}
	s, _ := DecodeSample(l.pending[i:])
	l.pending = append(l.pending[:0], l.pending[i+FrameSize:]...)
	return s, true
}

// SetSampleRate sets the output frequency (Hz) and waits for it to
// take effect.
func (l *Link) SetSampleRate(ctx context.Context, rate uint16) error {
	if rate > 0xff {
		glog.Warningf("tfluna %s: sample rate %d truncated to %d", l.path, rate, byte(rate))
	}
	if err := l.write(EncodeSetSampleRate(rate)); err != nil {
		return err
	}
	l.state = LinkState{BaudRate: l.state.BaudRate, SampleRate: rate}
	return sleep(ctx, l.settle)
}

// Version asks the sensor for its info string.
func (l *Link) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, VersionTimeout)
	defer cancel()
	req := EncodeInfoRequest()
	buf := make([]byte, 2*InfoFrameSize)
	for {
		if err := l.write(req); err != nil {
			return "", err
		}
		if err := sleep(ctx, l.settle); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoVersion, err)
		}
		n, err := serial.ReadFull(l.port, buf)
		if err != nil && !serial.IsTimeout(err) {
			return "", err
		}
		l.pending = l.pending[:0]
		if version, ok := findVersion(buf[:n]); ok {
			return version, nil
		}
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoVersion, err)
		}
	}
}

func findVersion(buf []byte) (string, bool) {
	for i := 0; i+InfoFrameSize <= len(buf); i++ {
		if buf[i] == cmdHeader && buf[i+1] == InfoFrameSize && buf[i+2] == cmdInfo {
			return DecodeVersion(buf[i : i+InfoFrameSize])
		}
	}
	return "", false
}

// SetBaudRate switches the sensor to a different baud rate and reopens
// the port at that rate. If no valid frame is received at the new rate,
// the sensor is told to go back to the previous rate on the new port,
// the port is reopened at the previous rate and the state is unchanged.
func (l *Link) SetBaudRate(ctx context.Context, rate int) error {
	cmd, err := EncodeSetBaud(rate)
	if err != nil {
		return err
	}
	if rate == l.state.BaudRate {
		return nil
	}
	if err = l.write(cmd); err != nil {
		return err
	}
	prev := l.state
	if err = l.reopen(ctx, rate); err == nil {
		l.state = LinkState{BaudRate: rate, SampleRate: prev.SampleRate}
		glog.Infof("tfluna %s: baud rate %d -> %d", l.path, prev.BaudRate, rate)
		return nil
	}
	switchErr := fmt.Errorf("switch %s to %d: %w", l.path, rate, err)
	// the sensor may have switched without streaming yet.
	if back, err := EncodeSetBaud(prev.BaudRate); err == nil {
		if err = l.write(back); err != nil {
			glog.Warningf("tfluna %s: revert to %d: %v", l.path, prev.BaudRate, err)
		}
	}
	if err = l.reopen(ctx, prev.BaudRate); err != nil {
		var errs fx.AggregatedError
		return errs.Add(switchErr, fmt.Errorf("restore %d: %w", prev.BaudRate, err)).Aggregate()
	}
	return switchErr
}

// reopen waits for a baud rate change to settle and replaces the port with
// one opened at baud. The new port is kept even if no frame is received.
func (l *Link) reopen(ctx context.Context, baud int) error {
	if err := sleep(ctx, l.baudSettle); err != nil {
		return err
	}
	if err := l.port.Close(); err != nil {
		glog.Warningf("tfluna %s: close error: %v", l.path, err)
	}
	port, err := l.opener.Open(l.path, l.mode(baud))
	if err != nil {
		return err
	}
	l.port, l.pending = port, l.pending[:0]
	_, _, err = probe(port)
	return err
}

func (l *Link) mode(baud int) *serial.Mode {
	return &serial.Mode{BaudRate: baud, ReadTimeout: l.readTimeout}
}

func (l *Link) write(p []byte) error {
	glog.V(2).Infof("tfluna %s: write % x", l.path, p)
	_, err := serial.WriteFull(l.port, p)
	return err
}

// probe discards buffered data and reads enough bytes to contain one whole
// frame. seen is the number of bytes received.
func probe(port serial.Port) (s Sample, seen int, err error) {
	if err = port.ResetInputBuffer(); err != nil {
		return
	}
	buf := make([]byte, 2*FrameSize-1)
	seen, err = serial.ReadFull(port, buf)
	if err != nil && !serial.IsTimeout(err) {
		return
	}
	data := buf[:seen]
	if i := findHeader(data); i >= 0 {
		var ok bool
		if s, ok = DecodeSample(data[i:]); ok {
			return s, seen, nil
		}
	}
	return s, seen, ErrNoSample
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
