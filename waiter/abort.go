// SPDX-License-Identifier: EPL-2.0

package waiter

import (
	"context"
	"sync/atomic"
)

// Abort is a single-use cancellation handle.
type Abort struct {
	ctx    context.Context
	cancel context.CancelFunc
	bound  atomic.Bool
}

// NewAbort derives a handle from parent; cancelling parent aborts it too.
func NewAbort(parent context.Context) *Abort {
	ctx, cancel := context.WithCancel(parent)
	return &Abort{ctx: ctx, cancel: cancel}
}

// Abort requests cancellation. Calling it more than once is harmless.
func (a *Abort) Abort() { a.cancel() }

// Aborted reports whether Abort was called or the parent context ended.
func (a *Abort) Aborted() bool { return a.ctx.Err() != nil }

// Done is closed once Abort was called or the parent context ended.
func (a *Abort) Done() <-chan struct{} { return a.ctx.Done() }

func (a *Abort) bind() error {
	if a.Aborted() || !a.bound.CompareAndSwap(false, true) {
		return ErrAbortUsed
	}
	return nil
}
