// SPDX-License-Identifier: EPL-2.0

package audbridge

import (
	"errors"
	"fmt"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/bridge"
	"github.com/ik5/audbridge/formats/wav"
	"github.com/ik5/audbridge/host"
	"github.com/ik5/audbridge/shm"
	"github.com/ik5/audbridge/stream"
)

var ErrNotInput = errors.New("record needs an input-only session")

// Playback is an output session fed from an audio.Source.
type Playback struct {
	*bridge.Bridge
	pump *stream.SourcePump
}

// Done is closed once the source is exhausted or failed. The session keeps
// rendering silence until closed.
func (p *Playback) Done() <-chan struct{} { return p.pump.Done() }

// Err reports the source error, if any.
func (p *Playback) Err() error { return p.pump.Err() }

// Play opens a started output session at the source's rate and channel
// count. Sources outside the accepted rate range fail validation.
func Play(h host.Host, src audio.Source, frames int, opts ...bridge.Option) (*Playback, error) {
	pump := stream.NewSourcePump(src)
	cfg := bridge.Config{
		Direction:      bridge.Output,
		SampleRate:     src.SampleRate(),
		Frames:         frames,
		OutputChannels: src.Channels(),
	}

	b, err := bridge.New(cfg, h, stream.Callbacks{Output: pump.Fill}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if err := b.Start(); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("%w", err)
	}
	return &Playback{Bridge: b, pump: pump}, nil
}

// Record opens a started input session that appends every captured batch
// to rec. Write failures stick in rec.Err; the session keeps running.
func Record(h host.Host, rec *wav.Recorder, cfg bridge.Config, opts ...bridge.Option) (*bridge.Bridge, error) {
	if cfg.Direction != bridge.Input {
		return nil, fmt.Errorf("%w: got %v", ErrNotInput, cfg.Direction)
	}

	capture := func(in *shm.Batch) {
		_ = rec.WriteBuffer(in.Buffer())
	}
	b, err := bridge.New(cfg, h, stream.Callbacks{Input: capture}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if err := b.Start(); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("%w", err)
	}
	return b, nil
}
