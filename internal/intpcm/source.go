// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer decoders to audio.Source.
package intpcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audbridge/utils"
)

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source normalizes integer PCM from a Reader into float32.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	closer     io.Closer
	remap      func(int) int
}

// Option configures a Source.
type Option func(*Source)

// WithSampleMap applies fn to every raw integer before it is scaled. Decoders
// whose container stores samples in another encoding use it to bring them to
// signed two's complement.
func WithSampleMap(fn func(int) int) Option {
	return func(s *Source) { s.remap = fn }
}

// SignedByte reinterprets the low byte of v as int8. go-audio hands 8-bit
// AIFF samples back as the raw unsigned byte.
func SignedByte(v int) int { return int(int8(uint8(v))) }

// NewSource wraps dec. closer may be nil.
func NewSource(dec Reader, bitDepth int, closer io.Closer, opts ...Option) (*Source, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrBadFormat, format)
	}

	s := &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		closer:     closer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.dec.Format(),
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	for i := range n {
		v := s.intBuf.Data[i]
		if s.remap != nil {
			v = s.remap(v)
		}
		dst[i] = utils.PCMToFloat(v, s.bitDepth)
	}

	// A short read without error is the end of the data chunk.
	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}
