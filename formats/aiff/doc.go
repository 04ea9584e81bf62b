// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Signed big-endian PCM of 8, 16, 24 or 32 bits is normalized to float32
// in [-1, 1). Rate and channel count come from the COMM chunk; nothing is
// converted, so the file must already match the session it feeds.
package aiff
