// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/shm"
)

// SourcePump pulls output batches from an audio.Source. Short reads are
// padded with silence and, once the source is exhausted, every batch is
// silent. The source's channel count must match the session's; wrap it in
// an audio.ChannelMapper otherwise.
type SourcePump struct {
	src  audio.Source
	done chan struct{}
	once sync.Once

	mu  sync.Mutex
	err error
	eof bool
}

// NewSourcePump wraps src. The pump does not close it.
func NewSourcePump(src audio.Source) *SourcePump {
	return &SourcePump{
		src:  src,
		done: make(chan struct{}),
	}
}

// Fill has the Callbacks.Output signature.
func (p *SourcePump) Fill(b *shm.Batch) {
	if p.finished() {
		b.Silence()
		return
	}
	if b.Channels != p.src.Channels() {
		p.finish(fmt.Errorf("%w: source has %d channels, batch %d",
			audio.ErrChannelMismatch, p.src.Channels(), b.Channels))
		b.Silence()
		return
	}

	written := 0
	for written < len(b.Samples) {
		n, err := p.src.ReadSamples(b.Samples[written:])
		written += n

		if errors.Is(err, io.EOF) {
			p.finish(nil)
			break
		}
		if err != nil {
			p.finish(fmt.Errorf("%w", err))
			break
		}
		if n == 0 {
			break
		}
	}
	clear(b.Samples[written:])
}

// Done is closed when the source reached EOF or failed.
func (p *SourcePump) Done() <-chan struct{} { return p.done }

// Err returns the first read error, or nil at a clean EOF.
func (p *SourcePump) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}

func (p *SourcePump) finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.eof
}

func (p *SourcePump) finish(err error) {
	p.mu.Lock()
	p.eof = true
	if p.err == nil {
		p.err = err
	}
	p.mu.Unlock()

	p.once.Do(func() { close(p.done) })
}
