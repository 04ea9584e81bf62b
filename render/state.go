// SPDX-License-Identifier: EPL-2.0

package render

import (
	"sync/atomic"

	"github.com/ik5/audbridge/phase"
	"github.com/ik5/audbridge/shm"
)

// State is everything Process needs for one session. Apart from the
// counters, its fields are touched only by the real-time thread once the
// host is running.
type State struct {
	store  *shm.Store
	reg    *phase.Register
	layout shm.Layout
	policy Policy

	// last committed output batch, for RepeatLast
	last     []float32
	haveLast bool

	quanta    atomic.Uint64
	underruns atomic.Uint64
	overruns  atomic.Uint64
	desyncs   atomic.Uint64
}

// Stats is a snapshot of the render counters.
type Stats struct {
	Quanta    uint64
	Underruns uint64
	Overruns  uint64
	Desyncs   uint64
}

// NewState preallocates everything Process will touch.
func NewState(store *shm.Store, reg *phase.Register, policy Policy) *State {
	layout := store.Layout()
	return &State{
		store:  store,
		reg:    reg,
		layout: layout,
		policy: policy,
		last:   make([]float32, layout.OutputLen()),
	}
}

// Layout returns the layout of the store the State renders from.
func (s *State) Layout() shm.Layout { return s.layout }

// Policy returns the underrun policy.
func (s *State) Policy() Policy { return s.policy }

// Stats may be called from any goroutine.
func (s *State) Stats() Stats {
	return Stats{
		Quanta:    s.quanta.Load(),
		Underruns: s.underruns.Load(),
		Overruns:  s.overruns.Load(),
		Desyncs:   s.desyncs.Load(),
	}
}

// Forget drops the repeat copy. Call it only while the host is suspended.
func (s *State) Forget() {
	clear(s.last)
	s.haveLast = false
}
