// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/audbridge/formats/wav"
)

// Example_roundTrip records a short capture and decodes it again.
func Example_roundTrip() {
	f, err := os.CreateTemp("", "capture-*.wav")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	rec, err := wav.NewRecorder(f, 16000, 1, 16)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = rec.WriteSamples([]float32{0, 0.5, -0.5, 0})
	if err := rec.Close(); err != nil {
		fmt.Println("error:", err)
		return
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		fmt.Println("error:", err)
		return
	}
	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	buf := make([]float32, 8)
	n, _ := src.ReadSamples(buf)
	fmt.Printf("%d Hz, %d channel(s)\n", src.SampleRate(), src.Channels())
	fmt.Printf("%.2f\n", buf[:n])
	// Output:
	// 16000 Hz, 1 channel(s)
	// [0.00 0.50 -0.50 0.00]
}
