// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper exposes src with a different channel count.
//
// Down-mixing to mono averages all source channels. Any other mapping reads
// output channel c from source channel c % srcChannels, which duplicates
// mono to every output and drops surplus source channels.
type ChannelMapper struct {
	src      Source
	channels int
	tmp      []float32
}

// NewChannelMapper adapts src to channels output channels.
func NewChannelMapper(src Source, channels int) (*ChannelMapper, error) {
	if channels <= 0 || src.Channels() <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidChannels, src.Channels(), channels)
	}

	return &ChannelMapper{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}, nil
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.channels }
func (m *ChannelMapper) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMapper) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with whole output frames; len(dst) must be a
// multiple of Channels().
func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	srcChannels := m.src.Channels()
	if srcChannels == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	needed := frames * srcChannels
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, max(needed, 8192))
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / srcChannels

	if m.channels == 1 {
		inv := float32(1.0) / float32(srcChannels)
		for f := range frames {
			sum := float32(0)
			base := f * srcChannels
			for c := range srcChannels {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
		return frames, err
	}

	for f := range frames {
		in := m.tmp[f*srcChannels : (f+1)*srcChannels]
		out := dst[f*m.channels : (f+1)*m.channels]
		for c := range out {
			out[c] = in[c%srcChannels]
		}
	}
	return frames * m.channels, err
}
