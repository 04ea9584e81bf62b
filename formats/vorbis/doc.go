// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// The decoder already yields float32, so samples pass through untouched.
// Reads are trimmed to whole frames.
package vorbis
