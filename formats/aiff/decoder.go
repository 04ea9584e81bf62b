// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/internal/intpcm"
)

// Decoder reads AIFF files.
type Decoder struct{}

// Decode reads an AIFF stream of signed big-endian PCM.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	depth := int(dec.BitDepth)
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	var opts []intpcm.Option
	if depth == 8 {
		opts = append(opts, intpcm.WithSampleMap(intpcm.SignedByte))
	}

	src, err := intpcm.NewSource(dec, depth, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return src, nil
}
