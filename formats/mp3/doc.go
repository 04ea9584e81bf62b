// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo at the stream's native rate, so every
// Source from this package reports two channels. Use audio.ChannelMapper to
// fit another channel count.
package mp3
