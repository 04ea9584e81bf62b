// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0.0, 0},
		{"max positive", 1.0, math.MaxInt16},
		{"max negative", -1.0, -math.MaxInt16},
		{"half positive", 0.5, 16383},
		{"half negative", -0.5, -16383},
		{"small positive", 0.001, 32},
		{"clamp over max", 1.5, math.MaxInt16},
		{"clamp under min", -2.0, -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloatToPCM_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		want     int
	}{
		{8, 127},
		{16, math.MaxInt16},
		{24, 1<<23 - 1},
		{32, math.MaxInt32},
	}

	for _, tt := range tests {
		if got := FloatToPCM(1, tt.bitDepth); got != tt.want {
			t.Errorf("FloatToPCM(1, %d) = %d, want %d", tt.bitDepth, got, tt.want)
		}
		if got := FloatToPCM(-1, tt.bitDepth); got != -tt.want {
			t.Errorf("FloatToPCM(-1, %d) = %d, want %d", tt.bitDepth, got, -tt.want)
		}
	}
}

func TestPCMToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v        int
		bitDepth int
		want     float32
	}{
		{0, 16, 0},
		{-32768, 16, -1},
		{16384, 16, 0.5},
		{-128, 8, -1},
		{1 << 22, 24, 0.5},
		{math.MinInt32, 32, -1},
		{16384, 12, 0.5},
	}

	for _, tt := range tests {
		if got := PCMToFloat(tt.v, tt.bitDepth); got != tt.want {
			t.Errorf("PCMToFloat(%d, %d) = %v, want %v", tt.v, tt.bitDepth, got, tt.want)
		}
	}
}

func TestPCMRoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{16, 24, 32} {
		for _, x := range []float32{-0.75, -0.1, 0, 0.3, 0.9} {
			got := PCMToFloat(FloatToPCM(x, depth), depth)
			if math.Abs(float64(got-x)) > 1.0/float64(PCMScale(depth))*2 {
				t.Errorf("depth %d: %v -> %v", depth, x, got)
			}
		}
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	b.ReportAllocs()

	x := float32(0.5)
	for b.Loop() {
		_ = Float32ToInt16(x)
	}
}
