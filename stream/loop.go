// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ik5/audbridge/phase"
	"github.com/ik5/audbridge/shm"
	"github.com/ik5/audbridge/waiter"
)

// Callbacks are the application side of a session.
type Callbacks struct {
	// Output fills one batch for the host. Required when the session has
	// output channels.
	Output func(out *shm.Batch)
	// Input receives one captured batch. Required when the session has
	// input channels.
	Input func(in *shm.Batch)
}

// Stats is a snapshot of the loop counters.
type Stats struct {
	Batches  uint64 // output batches committed
	Captures uint64 // input batches delivered
	Desyncs  uint64
	Wakes    uint64
}

// Loop is the producer/consumer side of one session.
type Loop struct {
	store *shm.Store
	reg   *phase.Register
	cb    Callbacks
	log   *zap.Logger

	out *shm.Batch
	in  *shm.Batch

	batches  atomic.Uint64
	captures atomic.Uint64
	desyncs  atomic.Uint64
	wakes    atomic.Uint64
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger replaces the package logger for one loop. A nil logger is
// ignored.
func WithLogger(l *zap.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.log = l
		}
	}
}

// New checks the callbacks against the store layout and preallocates the
// batches.
func New(store *shm.Store, reg *phase.Register, sampleRate int, cb Callbacks, opts ...Option) (*Loop, error) {
	layout := store.Layout()

	switch {
	case layout.OutputChannels > 0 && cb.Output == nil:
		return nil, fmt.Errorf("%w: output", ErrNoCallback)
	case layout.InputChannels > 0 && cb.Input == nil:
		return nil, fmt.Errorf("%w: input", ErrNoCallback)
	case layout.OutputChannels == 0 && cb.Output != nil:
		return nil, ErrUnexpectedOutput
	case layout.InputChannels == 0 && cb.Input != nil:
		return nil, ErrUnexpectedInput
	}

	l := &Loop{
		store: store,
		reg:   reg,
		cb:    cb,
		log:   Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if layout.OutputChannels > 0 {
		l.out = shm.NewBatch(layout.Frames, layout.OutputChannels, sampleRate)
	}
	if layout.InputChannels > 0 {
		l.in = shm.NewBatch(layout.Frames, layout.InputChannels, sampleRate)
	}
	return l, nil
}

// Stats returns the current counters. It is safe to call while Run is
// active.
func (l *Loop) Stats() Stats {
	return Stats{
		Batches:  l.batches.Load(),
		Captures: l.captures.Load(),
		Desyncs:  l.desyncs.Load(),
		Wakes:    l.wakes.Load(),
	}
}

// Run drives the session until the waiter's abort handle fires or the
// register reaches Done. The abort is checked once per cycle, never in the
// middle of one, so the store is not touched after Run returns.
func (l *Loop) Run(w *waiter.Waiter) error {
	abort := w.Abort()
	l.log.Debug("loop started")
	defer l.log.Debug("loop stopped")

	for {
		if abort.Aborted() {
			return nil
		}

		p := l.reg.Load()
		switch p {
		case phase.ReadWrite:
			l.produce()

		case phase.InputPending:
			l.consume()

		case phase.OutputReady:
			if !l.park(w) {
				return nil
			}

		case phase.Done:
			return nil

		default:
			// Demand is only ever held inside produce.
			l.desyncs.Add(1)
			l.log.Warn("control word desync", zap.Stringer("phase", p))
			l.reg.Resync(p)
		}
	}
}

func (l *Loop) produce() {
	if !l.reg.Advance(phase.ReadWrite, phase.Demand) {
		return
	}
	if l.out != nil {
		l.out.Seq = l.batches.Load()
		l.cb.Output(l.out)
		l.store.WriteOutput(l.out.Samples)
		l.batches.Add(1)
	}
	if !l.reg.Advance(phase.Demand, phase.OutputReady) {
		if p := l.reg.Load(); p != phase.Done {
			l.desyncs.Add(1)
			l.log.Warn("lost claim on the frame store", zap.Stringer("phase", p))
		}
	}
}

func (l *Loop) consume() {
	if l.in == nil {
		l.desyncs.Add(1)
		l.log.Warn("input pending on an output-only session")
		l.reg.Resync(phase.InputPending)
		return
	}
	l.store.ReadInput(l.in.Samples)
	l.in.Seq = l.captures.Load()
	l.cb.Input(l.in)
	l.captures.Add(1)
	l.reg.Advance(phase.InputPending, phase.ReadWrite)
}

// park asks the waiter to block until the render callback hands the store
// back. It reports false when the loop must stop.
func (l *Loop) park(w *waiter.Waiter) bool {
	if err := w.Submit(waiter.Request{Register: l.reg, Value: phase.OutputReady}); err != nil {
		l.log.Debug("wait request refused", zap.Error(err))
		return false
	}

	select {
	case res := <-w.Results():
		l.wakes.Add(1)
		return !res.Aborted
	case <-w.Done():
		return false
	}
}
