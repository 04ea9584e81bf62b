// SPDX-License-Identifier: EPL-2.0

// Package stream implements the non-real-time side of a bridge session: the
// loop that produces output batches for, and consumes captured batches from,
// the render callback.
//
// Each iteration looks at the phase register and acts only on the phases it
// owns:
//
//	ReadWrite    claim (Demand), pull an output batch, commit (OutputReady)
//	InputPending read the captured batch, push it, release (ReadWrite)
//	OutputReady  park in the waiter until the render callback hands back
//	Done         return
//
// The park on OutputReady is the only backpressure: one batch is in flight
// at a time, so the application callbacks run exactly as fast as the host
// consumes quanta.
//
// # Callbacks
//
//	cb := stream.Callbacks{
//	    Output: func(b *shm.Batch) { fill(b.Samples) },
//	    Input:  func(b *shm.Batch) { consume(b.Samples) },
//	}
//
// Callbacks run on the loop goroutine. The batch is reused between calls
// and must not be retained.
//
// SourcePump adapts an audio.Source into an Output callback.
package stream
