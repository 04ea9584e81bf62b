// SPDX-License-Identifier: EPL-2.0

package phase

import (
	"sync/atomic"

	"github.com/ik5/audbridge/shm"
)

// Register is the phase state machine over a store's control word.
type Register struct {
	word *uint32
	wake chan struct{}
}

// NewRegister binds a register to store and resets it to ReadWrite.
func NewRegister(store *shm.Store) *Register {
	r := &Register{
		word: store.Control(),
		wake: make(chan struct{}, 1),
	}
	r.Reset()
	return r
}

// Load returns the current phase. The result may be outside the defined
// set if the word was corrupted.
func (r *Register) Load() Phase { return Phase(atomic.LoadUint32(r.word)) }

// Advance moves the register from one phase to the next. It fails if the
// word no longer holds from.
func (r *Register) Advance(from, to Phase) bool {
	return atomic.CompareAndSwapUint32(r.word, uint32(from), uint32(to))
}

// Resync forces the register from an observed, unexpected value back to
// ReadWrite. It fails if another transition happened first.
func (r *Register) Resync(observed Phase) bool {
	return r.Advance(observed, ReadWrite)
}

// Reset stores ReadWrite unconditionally. Only the session owner may call it,
// and only while neither side is running.
func (r *Register) Reset() { atomic.StoreUint32(r.word, uint32(ReadWrite)) }

// Terminate stores Done unconditionally.
func (r *Register) Terminate() { atomic.StoreUint32(r.word, uint32(Done)) }

// Notify wakes a parked Wait. Notifications coalesce and Notify never blocks,
// so it is safe to call from the render callback.
func (r *Register) Notify() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Wait returns immediately if the register no longer holds old. Otherwise it
// parks until the next Notify and returns the phase observed after waking,
// which can still equal old.
func (r *Register) Wait(old Phase) Phase {
	if p := r.Load(); p != old {
		return p
	}
	<-r.wake
	return r.Load()
}
