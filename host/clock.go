// SPDX-License-Identifier: EPL-2.0

package host

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Clock is a Host that calls the stream on a ticker, one quantum per
// period, from a goroutine locked to its OS thread.
type Clock struct {
	capture  func(in []float32)
	sink     func(out []float32)
	loopback bool
	period   time.Duration
	log      *zap.Logger

	mu         sync.Mutex
	info       StreamInfo
	fn         ProcessFunc
	registered bool
	stop       chan struct{}
	stopped    chan struct{}

	ticks atomic.Uint64
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithCapture sets the input source for each quantum.
func WithCapture(fn func(in []float32)) ClockOption {
	return func(c *Clock) { c.capture = fn }
}

// WithSink receives every rendered output quantum. The slice is reused.
func WithSink(fn func(out []float32)) ClockOption {
	return func(c *Clock) { c.sink = fn }
}

// WithLoopback feeds the previous output quantum back as input. Input
// channel c reads output channel c % outputChannels. It is ignored when a
// capture function is set.
func WithLoopback() ClockOption {
	return func(c *Clock) { c.loopback = true }
}

// WithPeriod overrides the tick period derived from the stream.
func WithPeriod(d time.Duration) ClockOption {
	return func(c *Clock) { c.period = d }
}

// WithClockLogger sets the clock's logger. A nil logger is ignored.
func WithClockLogger(l *zap.Logger) ClockOption {
	return func(c *Clock) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClock returns an unregistered Clock host.
func NewClock(opts ...ClockOption) *Clock {
	c := &Clock{log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register stores fn as the render callback for info. The tick period comes
// from info unless WithPeriod overrides it.
func (c *Clock) Register(info StreamInfo, fn ProcessFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registered {
		return ErrAlreadyRegistered
	}
	if info.Period() <= 0 && c.period <= 0 {
		return ErrUnsupported
	}

	c.info = info
	c.fn = fn
	c.registered = true
	c.log.Debug("stream registered", zap.Stringer("stream", info))
	return nil
}

// Unregister stops the ticker and drops the callback.
func (c *Clock) Unregister() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.registered {
		return ErrNotRegistered
	}
	c.suspendLocked()
	c.fn = nil
	c.registered = false
	return nil
}

// Resume starts the ticker goroutine.
func (c *Clock) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.registered {
		return ErrNotRegistered
	}
	if c.stop != nil {
		return nil
	}

	period := c.period
	if period <= 0 {
		period = c.info.Period()
	}
	c.stop = make(chan struct{})
	c.stopped = make(chan struct{})
	go c.run(c.info, c.fn, period, c.stop, c.stopped)

	c.log.Debug("clock resumed", zap.Duration("period", period))
	return nil
}

// Suspend stops the ticker and waits for the in-flight callback.
func (c *Clock) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.registered {
		return ErrNotRegistered
	}
	c.suspendLocked()
	return nil
}

// Ticks counts quanta processed since the clock was created.
func (c *Clock) Ticks() uint64 {
	return c.ticks.Load()
}

func (c *Clock) suspendLocked() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	<-c.stopped
	c.stop = nil
	c.stopped = nil
	c.log.Debug("clock suspended", zap.Uint64("ticks", c.ticks.Load()))
}

func (c *Clock) run(info StreamInfo, fn ProcessFunc, period time.Duration, stop, stopped chan struct{}) {
	defer close(stopped)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var in []float32
	if info.InputChannels > 0 {
		in = make([]float32, info.Frames*info.InputChannels)
	}
	out := make([]float32, info.Frames*info.OutputChannels)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		switch {
		case in == nil:
		case c.capture != nil:
			c.capture(in)
		case c.loopback:
			loop(in, info.InputChannels, out, info.OutputChannels)
		}

		fn(in, out)
		c.ticks.Add(1)

		if c.sink != nil {
			c.sink(out)
		}
	}
}

// loop copies the last output quantum into the input buffer, mapping
// channels modulo the output count.
func loop(in []float32, inCh int, out []float32, outCh int) {
	if outCh == 0 {
		clear(in)
		return
	}
	frames := len(in) / inCh
	for f := range frames {
		for ch := range inCh {
			in[f*inCh+ch] = out[f*outCh+ch%outCh]
		}
	}
}
