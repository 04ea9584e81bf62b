// SPDX-License-Identifier: EPL-2.0

package waiter

import (
	"github.com/ik5/audbridge/phase"
)

// Request asks the waiter to park while Register still holds Value.
type Request struct {
	Register *phase.Register
	Value    phase.Phase
}

// Result reports the phase observed after the wait. Aborted is set when the
// abort handle fired before or during the wait; Observed is meaningless when
// the wait was skipped.
type Result struct {
	Observed phase.Phase
	Aborted  bool
}

// Waiter owns the goroutine that performs blocking waits.
type Waiter struct {
	abort   *Abort
	reqs    chan Request
	results chan Result
	done    chan struct{}
}

// New binds abort and starts the wait goroutine.
func New(abort *Abort) (*Waiter, error) {
	if err := abort.bind(); err != nil {
		return nil, err
	}

	w := &Waiter{
		abort:   abort,
		reqs:    make(chan Request, 1),
		results: make(chan Result, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Submit hands a request to the wait goroutine without blocking. Only one
// request may be in flight.
func (w *Waiter) Submit(req Request) error {
	select {
	case <-w.done:
		return ErrStopped
	default:
	}

	select {
	case w.reqs <- req:
		return nil
	case <-w.done:
		return ErrStopped
	default:
		return ErrBusy
	}
}

// Results delivers one Result per accepted request.
func (w *Waiter) Results() <-chan Result { return w.results }

// Done is closed when the wait goroutine has exited.
func (w *Waiter) Done() <-chan struct{} { return w.done }

// Abort returns the handle bound to the waiter.
func (w *Waiter) Abort() *Abort { return w.abort }

func (w *Waiter) run() {
	defer close(w.done)

	for {
		select {
		case req := <-w.reqs:
			if w.abort.Aborted() {
				w.results <- Result{Aborted: true}
				return
			}
			observed := req.Register.Wait(req.Value)
			w.results <- Result{Observed: observed, Aborted: w.abort.Aborted()}

		case <-w.abort.Done():
			return
		}
	}
}
