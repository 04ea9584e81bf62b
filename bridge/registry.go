// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"maps"
	"sync"
	"sync/atomic"

	"github.com/ik5/audbridge/render"
)

// Handle names a session in a Registry. The zero Handle is never issued.
type Handle uint64

// Registry maps handles to render state for host entry points. Writers
// copy the map; Process reads a snapshot without locking.
type Registry struct {
	mu   sync.Mutex
	next Handle
	snap atomic.Pointer[map[Handle]*render.State]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	empty := map[Handle]*render.State{}
	r.snap.Store(&empty)
	return r
}

// Add publishes s under a fresh handle.
func (r *Registry) Add(s *render.State) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	m := maps.Clone(*r.snap.Load())
	m[h] = s
	r.snap.Store(&m)
	return h
}

// Remove drops h. It reports whether h was present.
func (r *Registry) Remove(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.snap.Load()
	if _, ok := cur[h]; !ok {
		return false
	}
	m := maps.Clone(cur)
	delete(m, h)
	r.snap.Store(&m)
	return true
}

// Lookup returns the state published under h. It never blocks.
func (r *Registry) Lookup(h Handle) (*render.State, bool) {
	s, ok := (*r.snap.Load())[h]
	return s, ok
}

// Process renders one quantum for h. Unknown handles get silence.
func (r *Registry) Process(h Handle, in, out []float32) {
	s, ok := (*r.snap.Load())[h]
	if !ok {
		clear(out)
		return
	}
	render.Process(s, in, out)
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	return len(*r.snap.Load())
}
