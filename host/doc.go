// SPDX-License-Identifier: EPL-2.0

// Package host models the platform audio engine a bridge registers with.
//
// A Host calls one ProcessFunc per quantum on its own real-time goroutine.
// Manual lets tests step quanta by hand; Clock ticks at the session period
// and can capture, sink or loop audio back for local runs.
package host
