// SPDX-License-Identifier: EPL-2.0

package shm

import goaudio "github.com/go-audio/audio"

// Batch is one quantum of interleaved frames materialized outside the store.
type Batch struct {
	Frames     int
	Channels   int
	SampleRate int
	// Samples is interleaved: [f0c0, f0c1, ..., f1c0, ...]
	Samples []float32
	// Seq counts batches of this direction from zero. In a duplex session
	// input batch n was captured by the render call that played output
	// batch n.
	Seq uint64

	buf goaudio.Float32Buffer
}

// NewBatch allocates a batch of frames x channels samples.
func NewBatch(frames, channels, sampleRate int) *Batch {
	b := &Batch{
		Frames:     frames,
		Channels:   channels,
		SampleRate: sampleRate,
		Samples:    make([]float32, frames*channels),
	}
	b.buf = goaudio.Float32Buffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           b.Samples,
		SourceBitDepth: 32,
	}
	return b
}

// At returns the sample of channel in frame.
func (b *Batch) At(frame, channel int) float32 {
	return b.Samples[frame*b.Channels+channel]
}

// Set stores x as the sample of channel in frame.
func (b *Batch) Set(frame, channel int, x float32) {
	b.Samples[frame*b.Channels+channel] = x
}

// Silence zeroes every sample.
func (b *Batch) Silence() {
	clear(b.Samples)
}

// Buffer returns a go-audio view sharing the batch's backing slice. The view
// is owned by the batch and must not be retained past the callback that
// received the batch.
func (b *Batch) Buffer() *goaudio.Float32Buffer {
	return &b.buf
}
