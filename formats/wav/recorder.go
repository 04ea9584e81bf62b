// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audbridge/utils"
)

// Recorder encodes interleaved float32 samples into an integer PCM WAV file.
// The header sizes are patched on Close, so w must be seekable.
//
// The first write error is sticky: later writes return it and Err reports it.
type Recorder struct {
	mu       sync.Mutex
	enc      *wav.Encoder
	channels int
	bitDepth int
	buf      *goaudio.IntBuffer
	frames   int64
	err      error
	closed   bool
}

// NewRecorder returns a Recorder that encodes integer PCM of bitDepth bits
// into w.
func NewRecorder(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*Recorder, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidRecorder, sampleRate, channels)
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}
	return &Recorder{
		enc:      wav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM),
		channels: channels,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, 0, 4096),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples appends whole interleaved frames. A trailing partial frame is
// dropped.
func (r *Recorder) WriteSamples(samples []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRecorderClosed
	}
	if r.err != nil {
		return r.err
	}

	frames := len(samples) / r.channels
	samples = samples[:frames*r.channels]
	if len(samples) == 0 {
		return nil
	}

	if cap(r.buf.Data) < len(samples) {
		r.buf.Data = make([]int, len(samples))
	}
	r.buf.Data = r.buf.Data[:len(samples)]
	for i, x := range samples {
		r.buf.Data[i] = utils.FloatToPCM(x, r.bitDepth)
	}

	if err := r.enc.Write(r.buf); err != nil {
		r.err = fmt.Errorf("writing wav frames: %w", err)
		return r.err
	}
	r.frames += int64(frames)
	return nil
}

// WriteBuffer appends a go-audio buffer whose channel count must match.
func (r *Recorder) WriteBuffer(b *goaudio.Float32Buffer) error {
	if b == nil || b.Format == nil {
		return fmt.Errorf("%w: buffer without format", ErrInvalidRecorder)
	}
	if b.Format.NumChannels != r.channels {
		return fmt.Errorf("%w: buffer has %d channels, recorder %d",
			ErrInvalidRecorder, b.Format.NumChannels, r.channels)
	}
	return r.WriteSamples(b.Data)
}

// Frames is the number of frames written so far.
func (r *Recorder) Frames() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.frames
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

// Close finalizes the header. It does not close the underlying writer.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if err := r.enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return r.err
}
