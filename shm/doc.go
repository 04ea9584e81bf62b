// SPDX-License-Identifier: EPL-2.0

// Package shm holds the shared frame store used by both sides of a bridge
// session.
//
// A Store is a fixed sequence of N+1 32-bit words. The first N words carry
// one audio quantum of interleaved samples, the last word is the control word
// interpreted by package phase:
//
//	[ output region | input region | control ]
//
// The output region holds Frames*OutputChannels words and the input region
// Frames*InputChannels words. Inside a region the word index of a sample is
// frame*channels + channel.
//
// # Sample Encoding
//
// Samples are float32 values stored as their exact IEEE-754 bit pattern, so
// that every slot can be accessed through the integer atomic primitives:
//
//	w := shm.EncodeSample(0.5)
//	v := shm.DecodeSample(w) // bit-identical, including -0 and NaN payloads
//
// Every read and write of a slot is a single atomic load or store. The store
// never signals or waits; ownership of the data words is decided solely by
// the phase held in the control word.
//
// # Batches
//
// A Batch is the logical frames x channels view the producer side fills or
// drains before it is copied into, or out of, a region of the store:
//
//	b := shm.NewBatch(128, 2, 48000)
//	for f := range b.Frames {
//	    b.Set(f, 0, float32(f))
//	    b.Set(f, 1, float32(f))
//	}
//	store.WriteOutput(b.Samples)
package shm
