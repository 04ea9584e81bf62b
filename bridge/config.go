// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
	"strings"

	"github.com/ik5/audbridge/host"
	"github.com/ik5/audbridge/render"
	"github.com/ik5/audbridge/shm"
)

const (
	MinSampleRate = 8000
	MaxSampleRate = 96000
	MaxChannels   = 32
	MaxFrames     = 8192

	// DefaultFrames is the quantum size of Web Audio and most desktop hosts.
	DefaultFrames = 128
)

// Direction selects which halves of a session are active.
type Direction uint8

const (
	Output Direction = iota
	Input
	Duplex
)

func (d Direction) String() string {
	switch d {
	case Output:
		return "output"
	case Input:
		return "input"
	case Duplex:
		return "duplex"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

func (d Direction) hasOutput() bool { return d == Output || d == Duplex }
func (d Direction) hasInput() bool  { return d == Input || d == Duplex }

// ParseDirection accepts "output", "input" and "duplex" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "output", "out", "playback":
		return Output, nil
	case "input", "in", "capture":
		return Input, nil
	case "duplex":
		return Duplex, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDir, s)
	}
}

// Config is validated once, in New.
type Config struct {
	Direction      Direction
	SampleRate     int
	Frames         int
	OutputChannels int
	InputChannels  int
	Policy         render.Policy
}

// Validate rejects combinations a session cannot run. Channel counts must
// be positive for active directions and zero for inactive ones.
func (c Config) Validate() error {
	switch c.Direction {
	case Output, Input, Duplex:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Direction)
	}
	if err := checkChannels("output", c.OutputChannels, c.Direction.hasOutput()); err != nil {
		return err
	}
	if err := checkChannels("input", c.InputChannels, c.Direction.hasInput()); err != nil {
		return err
	}
	if c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: sample rate %d outside [%d, %d]",
			ErrInvalidConfig, c.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.Frames < 1 || c.Frames > MaxFrames {
		return fmt.Errorf("%w: %d frames per quantum outside [1, %d]", ErrInvalidConfig, c.Frames, MaxFrames)
	}
	switch c.Policy {
	case render.RepeatLast, render.Silence:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Policy)
	}
	return nil
}

func checkChannels(side string, n int, active bool) error {
	switch {
	case active && (n < 1 || n > MaxChannels):
		return fmt.Errorf("%w: %d %s channels outside [1, %d]", ErrInvalidConfig, n, side, MaxChannels)
	case !active && n != 0:
		return fmt.Errorf("%w: %d %s channels on a session without %s", ErrInvalidConfig, n, side, side)
	}
	return nil
}

func (c Config) layout() shm.Layout {
	return shm.Layout{
		Frames:         c.Frames,
		OutputChannels: c.OutputChannels,
		InputChannels:  c.InputChannels,
	}
}

func (c Config) streamInfo() host.StreamInfo {
	return host.StreamInfo{
		SampleRate:     c.SampleRate,
		Frames:         c.Frames,
		OutputChannels: c.OutputChannels,
		InputChannels:  c.InputChannels,
	}
}
