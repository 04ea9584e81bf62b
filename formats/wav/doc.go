// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and records RIFF/WAVE files through
// github.com/go-audio/wav.
//
// Decoder accepts 16, 24 and 32-bit integer PCM (plain or extensible) at
// any rate and channel count. Non-seekable readers are buffered in memory.
//
// Recorder is the capture side: it turns interleaved float32 samples into
// integer PCM and patches the RIFF sizes on Close.
//
//	f, _ := os.Create("capture.wav")
//	rec, err := wav.NewRecorder(f, 48000, 2, 16)
//	...
//	_ = rec.WriteSamples(batch.Samples)
//	_ = rec.Close()
package wav
