// SPDX-License-Identifier: EPL-2.0

// Package utils holds sample conversions shared by the codecs.
package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	return int16(FloatToPCM(x, 16))
}

// PCMScale is the magnitude of full scale for signed integer PCM of the given
// bit depth. Unknown depths fall back to 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// FloatToPCM clamps x to [-1, 1] and scales it to signed PCM of bitDepth.
// Positive full scale maps to max-1 of the format to avoid overflow.
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	scale := float64(PCMScale(bitDepth)) - 1
	return int(float64(x) * scale)
}

// PCMToFloat normalizes a signed integer sample of bitDepth into [-1, 1).
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(PCMScale(bitDepth)))
}
