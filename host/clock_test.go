// SPDX-License-Identifier: EPL-2.0

package host

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitTicks(t *testing.T, c *Clock, n uint64) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for c.Ticks() < n {
		if time.Now().After(deadline) {
			t.Fatalf("Ticks() = %d, want >= %d", c.Ticks(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestClock_TicksAndSinks(t *testing.T) {
	t.Parallel()

	var sunk atomic.Int64
	c := NewClock(WithPeriod(time.Millisecond), WithSink(func(out []float32) {
		if out[0] == 0.25 {
			sunk.Add(1)
		}
	}))

	info := StreamInfo{SampleRate: 48000, Frames: 8, OutputChannels: 2}
	err := c.Register(info, func(in, out []float32) {
		if in != nil {
			t.Error("input buffer on an output-only stream")
		}
		for i := range out {
			out[i] = 0.25
		}
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := c.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	waitTicks(t, c, 5)

	if err := c.Suspend(); err != nil {
		t.Fatalf("Suspend() error = %v", err)
	}
	after := c.Ticks()
	time.Sleep(10 * time.Millisecond)
	if c.Ticks() != after {
		t.Errorf("ticks advanced after Suspend: %d -> %d", after, c.Ticks())
	}
	if sunk.Load() != int64(after) {
		t.Errorf("sink saw %d quanta, want %d", sunk.Load(), after)
	}
	if err := c.Unregister(); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}
}

func TestClock_Loopback(t *testing.T) {
	t.Parallel()

	var mismatches, checked atomic.Int64
	c := NewClock(WithPeriod(time.Millisecond), WithLoopback())

	var n float32
	info := StreamInfo{SampleRate: 48000, Frames: 4, OutputChannels: 2, InputChannels: 1}
	err := c.Register(info, func(in, out []float32) {
		if n > 0 {
			checked.Add(1)
			for _, v := range in {
				if v != n {
					mismatches.Add(1)
				}
			}
		}
		n++
		for i := range out {
			out[i] = n
		}
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := c.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	waitTicks(t, c, 5)
	if err := c.Unregister(); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}

	if checked.Load() == 0 || mismatches.Load() != 0 {
		t.Errorf("checked %d quanta, %d mismatched samples", checked.Load(), mismatches.Load())
	}
}

func TestClock_Capture(t *testing.T) {
	t.Parallel()

	var seen atomic.Bool
	c := NewClock(
		WithPeriod(time.Millisecond),
		WithCapture(func(in []float32) {
			for i := range in {
				in[i] = -0.5
			}
		}),
		WithLoopback(),
	)
	err := c.Register(StreamInfo{SampleRate: 48000, Frames: 4, InputChannels: 2}, func(in, out []float32) {
		if len(out) != 0 {
			t.Error("output buffer on an input-only stream")
		}
		if in[0] == -0.5 && in[7] == -0.5 {
			seen.Store(true)
		}
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := c.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	waitTicks(t, c, 2)
	_ = c.Suspend()

	if !seen.Load() {
		t.Error("captured input never reached the stream")
	}
}

func TestClock_Errors(t *testing.T) {
	t.Parallel()

	c := NewClock()
	if err := c.Resume(); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("Resume() error = %v, want ErrNotRegistered", err)
	}
	if err := c.Register(StreamInfo{Frames: 4, OutputChannels: 1}, func(in, out []float32) {}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Register(no rate) error = %v, want ErrUnsupported", err)
	}

	info := StreamInfo{SampleRate: 48000, Frames: 4, OutputChannels: 1}
	if err := c.Register(info, func(in, out []float32) {}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := c.Register(info, func(in, out []float32) {}); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("second Register() error = %v, want ErrAlreadyRegistered", err)
	}
	if err := c.Suspend(); err != nil {
		t.Errorf("Suspend() while idle error = %v", err)
	}
	if err := c.Unregister(); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}
}
