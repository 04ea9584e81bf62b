// SPDX-License-Identifier: EPL-2.0

package host

import (
	"fmt"
	"sync"
)

// Manual is a Host driven by explicit Tick calls.
type Manual struct {
	// MaxChannels, when positive, makes Register refuse streams with more
	// channels in either direction.
	MaxChannels int

	mu         sync.Mutex
	info       StreamInfo
	fn         ProcessFunc
	registered bool
	running    bool
	ticks      uint64
}

// NewManual returns an unregistered Manual host.
func NewManual() *Manual {
	return &Manual{}
}

// Register stores fn as the render callback for info.
func (m *Manual) Register(info StreamInfo, fn ProcessFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return ErrAlreadyRegistered
	}
	if m.MaxChannels > 0 && (info.OutputChannels > m.MaxChannels || info.InputChannels > m.MaxChannels) {
		return fmt.Errorf("%w: %s exceeds %d channels", ErrUnsupported, info, m.MaxChannels)
	}

	m.info = info
	m.fn = fn
	m.registered = true
	m.running = false
	return nil
}

// Unregister drops the callback and leaves the host suspended.
func (m *Manual) Unregister() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.registered {
		return ErrNotRegistered
	}
	m.fn = nil
	m.registered = false
	m.running = false
	return nil
}

// Resume lets Tick reach the callback.
func (m *Manual) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.registered {
		return ErrNotRegistered
	}
	m.running = true
	return nil
}

// Suspend makes Tick skip the callback until Resume.
func (m *Manual) Suspend() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.registered {
		return ErrNotRegistered
	}
	m.running = false
	return nil
}

// Tick runs one quantum if the stream is registered and running. The
// buffers must match the registered StreamInfo.
func (m *Manual) Tick(in, out []float32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.registered || !m.running {
		return false
	}
	m.fn(in, out)
	m.ticks++
	return true
}

// Info returns the registered stream.
func (m *Manual) Info() (StreamInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.info, m.registered
}

// Running reports whether the host is resumed.
func (m *Manual) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.running
}

// Ticks counts callback invocations.
func (m *Manual) Ticks() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ticks
}
