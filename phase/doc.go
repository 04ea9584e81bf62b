// SPDX-License-Identifier: EPL-2.0

// Package phase interprets the control word of a shm.Store as the state
// machine that hands the data words back and forth between the producer
// loop (L) and the render callback (R).
//
// One session cycle:
//
//	ReadWrite  --L claims-->    Demand
//	Demand     --L commits-->   OutputReady
//	OutputReady --R renders-->  InputPending   (session captures input)
//	OutputReady --R renders-->  ReadWrite      (output only)
//	InputPending --L drains-->  ReadWrite
//
// The side named on an arrow is the only one allowed to touch the data words
// while the register holds the source state, and the only one allowed to
// move the register out of it. Done is terminal and is written only when the
// session is torn down.
//
// Any other value is a desync: the observer drops its quantum and calls
// Resync to force the register back to ReadWrite.
//
// Waiting uses Wait and Notify. Wait parks while the word still holds the
// expected value and returns after one notification, which may be spurious.
// Notify never blocks.
package phase
