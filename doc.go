// SPDX-License-Identifier: EPL-2.0

// Package audbridge moves audio between application goroutines and a
// real-time host callback without locks.
//
// A session keeps one interleaved frame store shared by both sides. A single
// control word says who owns the store: the producer/consumer loop fills an
// output batch and commits it, the host's render callback copies it out,
// deposits captured input and hands the store back. The render side never
// blocks or allocates. The loop parks on a dedicated waiter goroutine while
// the host owns the store.
//
// # Packages
//
//   - shm: the word store and float32 bit reinterpretation
//   - phase: the control word and its wait/notify signal
//   - render: the host-side entry point and underrun policy
//   - stream: the producer/consumer loop
//   - waiter: the blocking waiter and its abort handle
//   - bridge: configuration, lifecycle and the session registry
//   - host: the host boundary with Manual and Clock implementations
//
// # Quick Start
//
// Play decodes nothing itself; hand it any audio.Source:
//
//	file, _ := os.Open("tone.wav")
//	src, _ := wav.Decoder{}.Decode(file)
//
//	clock := host.NewClock(host.WithSink(speaker))
//	pb, err := audbridge.Play(clock, src, bridge.DefaultFrames)
//	if err != nil {
//	    return err
//	}
//	defer pb.Close()
//	<-pb.Done()
//
// Record runs an input session into a WAV recorder:
//
//	rec, _ := wav.NewRecorder(out, 48000, 1, 16)
//	cfg := bridge.Config{Direction: bridge.Input, SampleRate: 48000, Frames: 128, InputChannels: 1}
//	b, err := audbridge.Record(mic, rec, cfg)
//
// There is no sample-rate conversion anywhere: a source plays at its own
// rate.
package audbridge
