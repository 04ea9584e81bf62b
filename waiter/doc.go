// SPDX-License-Identifier: EPL-2.0

// Package waiter runs blocking waits on a phase register in a goroutine of
// their own, so that the producer loop only ever exchanges messages with it.
//
//	abort := waiter.NewAbort(context.Background())
//	w, err := waiter.New(abort)
//	...
//	_ = w.Submit(waiter.Request{Register: reg, Value: phase.OutputReady})
//	res := <-w.Results()
//
// Cancellation is cooperative. Abort is checked before every wait and
// reported with every result, but a wait that is already parked is not
// interrupted: it returns on the next notify or spurious wake. An Abort
// handle binds to exactly one Waiter; a new session needs a new handle.
package waiter
