// SPDX-License-Identifier: EPL-2.0

// Package audio defines the decoded-audio contracts used to feed a bridge.
//
// A Source yields interleaved float32 samples in [-1, 1]. Decoders turn a
// byte stream into a Source and are looked up by format key or file
// extension through a Registry:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	dec, ok := registry.ForPath("take1.WAV")
//
// ChannelMapper adapts a Source to the channel count of a session. There is
// no rate conversion here; a Source must already match the session rate.
//
// Sources return io.EOF when exhausted, possibly together with the last
// samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
