// SPDX-License-Identifier: EPL-2.0

// Package render implements the real-time side of a bridge session.
//
// The host audio engine calls Process once per quantum on its own real-time
// thread. Process works on a plain State value: it never blocks, never
// allocates and never takes a lock that non-real-time code could hold. Every
// quantum the host gets a complete buffer back, synthesized if necessary.
//
//	s := render.NewState(store, reg, render.RepeatLast)
//	hostCallback := func(in, out []float32) { render.Process(s, in, out) }
//
// # Failure Policy
//
//   - Underrun: the loop has not committed an output batch. The last
//     committed batch is repeated (RepeatLast) or silence is emitted
//     (Silence), and Underruns is incremented.
//   - Overrun: the loop has not re-armed the input region. The captured
//     quantum is dropped and Overruns is incremented.
//   - Desync: the control word holds an unknown value. The quantum is
//     dropped, silence is emitted, the register is forced back to
//     ReadWrite and Desyncs is incremented.
//
// None of these are errors; they are exposed through Stats.
package render
