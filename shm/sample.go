// SPDX-License-Identifier: EPL-2.0

package shm

import "math"

// EncodeSample returns the raw bit pattern of x. No numeric conversion is
// applied.
func EncodeSample(x float32) uint32 { return math.Float32bits(x) }

// DecodeSample reinterprets w as a float32.
func DecodeSample(w uint32) float32 { return math.Float32frombits(w) }
