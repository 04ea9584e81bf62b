// SPDX-License-Identifier: EPL-2.0

package audbridge

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/audbridge/bridge"
	"github.com/ik5/audbridge/formats/wav"
	"github.com/ik5/audbridge/host"
	"github.com/ik5/audbridge/internal/audiotest"
	"github.com/ik5/audbridge/phase"
)

func tickWhenReady(t *testing.T, b *bridge.Bridge, h *host.Manual, in, out []float32) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for b.Phase() != phase.OutputReady {
		if time.Now().After(deadline) {
			t.Fatalf("phase = %v, want %v", b.Phase(), phase.OutputReady)
		}
		time.Sleep(time.Millisecond)
	}
	if !h.Tick(in, out) {
		t.Fatal("host refused the quantum")
	}
}

func TestPlay_DrainsSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(22050, 2, 10)
	h := host.NewManual()
	pb, err := Play(h, src, 4)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	defer pb.Close()

	if info, _ := h.Info(); info.SampleRate != 22050 || info.OutputChannels != 2 {
		t.Errorf("host stream = %v, want the source's rate and channels", info)
	}

	out := make([]float32, 8)
	var got []float32
	for range 3 {
		tickWhenReady(t, pb.Bridge, h, nil, out)
		for f := range 4 {
			got = append(got, out[2*f])
		}
	}

	want := []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}

	select {
	case <-pb.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed after the source drained")
	}
	if pb.Err() != nil {
		t.Errorf("Err() = %v", pb.Err())
	}
}

func TestPlay_RejectsUnsupportedRate(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(4000, 1, 10)
	if _, err := Play(host.NewManual(), src, 128); !errors.Is(err, bridge.ErrInvalidConfig) {
		t.Errorf("Play() error = %v, want ErrInvalidConfig", err)
	}
}

func TestRecord_CapturesToWAV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "capture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer f.Close()

	rec, err := wav.NewRecorder(f, 16000, 1, 16)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	h := host.NewManual()
	cfg := bridge.Config{Direction: bridge.Input, SampleRate: 16000, Frames: 8, InputChannels: 1}
	b, err := Record(h, rec, cfg)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	in := make([]float32, 8)
	for q := range 3 {
		for i := range in {
			in[i] = float32(q*8+i) / 32
		}
		tickWhenReady(t, b, h, in, nil)
	}
	// The last capture is consumed once the loop claims the next round.
	tickWhenReady(t, b, h, in, nil)

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("recorder Close() error = %v", err)
	}
	if rec.Frames() < 24 {
		t.Fatalf("recorded %d frames, want at least 24", rec.Frames())
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got := make([]float32, 24)
	n, _ := src.ReadSamples(got)
	if n != 24 {
		t.Fatalf("decoded %d samples, want 24", n)
	}
	for i := range got {
		want := float32(i) / 32
		if d := got[i] - want; d > 0.001 || d < -0.001 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestRecord_RejectsOutputSession(t *testing.T) {
	t.Parallel()

	cfg := bridge.Config{Direction: bridge.Output, SampleRate: 16000, Frames: 8, OutputChannels: 1}
	if _, err := Record(host.NewManual(), nil, cfg); !errors.Is(err, ErrNotInput) {
		t.Errorf("Record() error = %v, want ErrNotInput", err)
	}
}
