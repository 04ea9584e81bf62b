// SPDX-License-Identifier: EPL-2.0

// Package bridge wires one audio session together.
//
// A Bridge validates a Config, allocates the shared frame store and its
// phase register, registers the render entry point with a host.Host through
// an explicit Registry, and runs the producer/consumer loop on a blocking
// waiter:
//
//	b, err := bridge.New(cfg, h, stream.Callbacks{Output: fill})
//	if err != nil {
//	    return err // invalid config or host refusal
//	}
//	defer b.Close()
//	if err := b.Start(); err != nil {
//	    return err
//	}
//
// Only construction and lifecycle misuse return errors. Underruns,
// overruns and control-word desyncs are counted in Stats.
package bridge
