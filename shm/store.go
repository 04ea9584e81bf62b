// SPDX-License-Identifier: EPL-2.0

package shm

import (
	"fmt"
	"sync/atomic"
)

// Layout describes the data regions of a Store.
type Layout struct {
	Frames         int // frames per quantum
	OutputChannels int // 0 for input-only sessions
	InputChannels  int // 0 for output-only sessions
}

// OutputLen is the number of words in the output region.
func (l Layout) OutputLen() int { return l.Frames * l.OutputChannels }

// InputLen is the number of words in the input region.
func (l Layout) InputLen() int { return l.Frames * l.InputChannels }

// DataLen is N, the number of data words in front of the control word.
func (l Layout) DataLen() int { return l.OutputLen() + l.InputLen() }

func (l Layout) validate() error {
	switch {
	case l.Frames <= 0:
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidLayout, l.Frames)
	case l.OutputChannels < 0 || l.InputChannels < 0:
		return fmt.Errorf("%w: negative channel count", ErrInvalidLayout)
	case l.OutputChannels == 0 && l.InputChannels == 0:
		return fmt.Errorf("%w: no channels", ErrInvalidLayout)
	}
	return nil
}

// Store is the shared word region of one bridge session.
//
// The slice is allocated once and never resized; a different layout needs a
// new Store.
type Store struct {
	layout Layout
	words  []uint32
}

// New allocates a Store for layout with the control word set to zero.
func New(layout Layout) (*Store, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}

	return &Store{
		layout: layout,
		words:  make([]uint32, layout.DataLen()+1),
	}, nil
}

// Layout returns the layout the Store was allocated for.
func (s *Store) Layout() Layout { return s.layout }

// Len returns the number of data words (N).
func (s *Store) Len() int { return len(s.words) - 1 }

// InputOffset is the word index where the input region starts.
func (s *Store) InputOffset() int { return s.layout.OutputLen() }

// LoadWord atomically loads data word i.
func (s *Store) LoadWord(i int) uint32 { return atomic.LoadUint32(&s.words[i]) }

// StoreWord atomically stores w into data word i.
func (s *Store) StoreWord(i int, w uint32) { atomic.StoreUint32(&s.words[i], w) }

// ReadFrame returns the sample held in data word i.
func (s *Store) ReadFrame(i int) float32 {
	return DecodeSample(atomic.LoadUint32(&s.words[i]))
}

// WriteFrame stores sample x into data word i.
func (s *Store) WriteFrame(i int, x float32) {
	atomic.StoreUint32(&s.words[i], EncodeSample(x))
}

// Control returns the address of the trailing control word. It is meant for
// package phase; data words must not be reached through it.
func (s *Store) Control() *uint32 { return &s.words[len(s.words)-1] }

// WriteOutput copies src into the output region and returns the number of
// words written.
func (s *Store) WriteOutput(src []float32) int {
	return s.write(0, s.layout.OutputLen(), src)
}

// ReadOutput copies the output region into dst.
func (s *Store) ReadOutput(dst []float32) int {
	return s.read(0, s.layout.OutputLen(), dst)
}

// WriteInput copies src into the input region.
func (s *Store) WriteInput(src []float32) int {
	return s.write(s.InputOffset(), s.layout.InputLen(), src)
}

// ReadInput copies the input region into dst.
func (s *Store) ReadInput(dst []float32) int {
	return s.read(s.InputOffset(), s.layout.InputLen(), dst)
}

// ClearInputFrom zeroes the input region from word n of the region onward.
func (s *Store) ClearInputFrom(n int) {
	off, end := s.InputOffset(), s.InputOffset()+s.layout.InputLen()
	for i := off + max(n, 0); i < end; i++ {
		atomic.StoreUint32(&s.words[i], 0)
	}
}

func (s *Store) write(off, n int, src []float32) int {
	n = min(n, len(src))
	for i := range n {
		atomic.StoreUint32(&s.words[off+i], EncodeSample(src[i]))
	}
	return n
}

func (s *Store) read(off, n int, dst []float32) int {
	n = min(n, len(dst))
	for i := range n {
		dst[i] = DecodeSample(atomic.LoadUint32(&s.words[off+i]))
	}
	return n
}
