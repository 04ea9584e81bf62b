// SPDX-License-Identifier: EPL-2.0

package render

import "github.com/ik5/audbridge/phase"

// Process renders one quantum. in carries host-captured samples and out
// receives samples for the host, both interleaved in the session's channel
// order. Either may be empty for simplex sessions.
func Process(s *State, in, out []float32) {
	s.quanta.Add(1)

	p := s.reg.Load()
	switch p {
	case phase.OutputReady:
		n := s.store.ReadOutput(out)
		clear(out[n:])
		m := copy(s.last, out)
		clear(s.last[m:])
		s.haveLast = s.layout.OutputChannels > 0

		next := phase.ReadWrite
		if s.layout.InputChannels > 0 {
			s.store.ClearInputFrom(s.store.WriteInput(in))
			next = phase.InputPending
		}
		// Only Done can race us out of OutputReady.
		if s.reg.Advance(phase.OutputReady, next) {
			s.reg.Notify()
		}

	case phase.ReadWrite, phase.Demand, phase.InputPending:
		if s.layout.OutputChannels > 0 {
			s.underruns.Add(1)
			fallback(s, out)
		} else {
			clear(out)
		}
		if s.layout.InputChannels > 0 {
			s.overruns.Add(1)
		}

	case phase.Done:
		clear(out)

	default:
		s.desyncs.Add(1)
		clear(out)
		if s.reg.Resync(p) {
			s.reg.Notify()
		}
	}
}

func fallback(s *State, out []float32) {
	if s.policy == Silence || !s.haveLast {
		clear(out)
		return
	}
	n := copy(out, s.last)
	clear(out[n:])
}
