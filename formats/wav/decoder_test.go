// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// createWAVFile builds a canonical 44-byte header followed by raw data.
func createWAVFile(sampleRate, channels, bitsPerSample int, format uint16, data []byte) []byte {
	buf := new(bytes.Buffer)

	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, format)
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	return buf.Bytes()
}

func int16Data(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// recordFile writes samples through a Recorder and returns the file path.
func recordFile(t *testing.T, sampleRate, channels, bitDepth int, samples []float32) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "take.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer f.Close()

	rec, err := NewRecorder(f, sampleRate, channels, bitDepth)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	if err := rec.WriteSamples(samples); err != nil {
		t.Fatalf("WriteSamples() error = %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return path
}

func readAll(t *testing.T, r io.Reader) ([]float32, int, int) {
	t.Helper()

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	var out []float32
	buf := make([]float32, 64)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	return out, src.SampleRate(), src.Channels()
}

func TestDecoder_Canonical16Bit(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 1, 16, formatPCM, int16Data(0, 16384, -16384, -32768))
	got, rate, ch := readAll(t, bytes.NewReader(data))

	if rate != 8000 || ch != 1 {
		t.Errorf("metadata = %d Hz, %d ch; want 8000 Hz, 1 ch", rate, ch)
	}
	want := []float32{0, 0.5, -0.5, -1}
	if len(got) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := createWAVFile(44100, 2, 16, formatPCM, int16Data(100, 200, 300, 400))
	got, _, ch := readAll(t, io.MultiReader(bytes.NewReader(data)))

	if ch != 2 || len(got) != 4 {
		t.Errorf("decoded %d samples on %d channels, want 4 on 2", len(got), ch)
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"not riff", []byte("this is definitely not a wav file at all, not even close......"), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"ieee float", createWAVFile(8000, 1, 32, 3, make([]byte, 16)), ErrUnsupportedEncoding},
		{"8-bit", createWAVFile(8000, 1, 8, formatPCM, make([]byte, 16)), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecorder_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{16, 24, 32} {
		const frames, channels = 200, 2
		samples := make([]float32, frames*channels)
		for i := range samples {
			samples[i] = float32(math.Sin(float64(i) * 0.05))
		}

		path := recordFile(t, 48000, channels, depth, samples)
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("os.Open() error = %v", err)
		}
		got, rate, ch := readAll(t, f)
		f.Close()

		if rate != 48000 || ch != channels {
			t.Errorf("depth %d: metadata = %d Hz, %d ch", depth, rate, ch)
		}
		if len(got) != len(samples) {
			t.Fatalf("depth %d: decoded %d samples, want %d", depth, len(got), len(samples))
		}
		tol := 2.0 / math.Pow(2, float64(depth-1))
		for i := range samples {
			if math.Abs(float64(got[i]-samples[i])) > tol {
				t.Fatalf("depth %d: sample %d = %v, want %v", depth, i, got[i], samples[i])
			}
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	pcm := make([]int16, 48000)
	data := createWAVFile(48000, 1, 16, formatPCM, int16Data(pcm...))
	buf := make([]float32, 256)

	b.ReportAllocs()

	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
