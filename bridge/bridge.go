// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ik5/audbridge/host"
	"github.com/ik5/audbridge/phase"
	"github.com/ik5/audbridge/render"
	"github.com/ik5/audbridge/shm"
	"github.com/ik5/audbridge/stream"
	"github.com/ik5/audbridge/waiter"
)

// Stats merges the render and loop counters of one session.
type Stats struct {
	Quanta        uint64
	Underruns     uint64
	Overruns      uint64
	RenderDesyncs uint64
	Batches       uint64
	Captures      uint64
	LoopDesyncs   uint64
	Wakes         uint64
}

// Bridge is one session between an application and a host.
type Bridge struct {
	id       uuid.UUID
	cfg      Config
	host     host.Host
	registry *Registry
	handle   Handle
	ctx      context.Context
	log      *zap.Logger

	store *shm.Store
	reg   *phase.Register
	state *render.State
	loop  *stream.Loop

	mu      sync.Mutex
	abort   *waiter.Abort
	done    chan error
	started bool
	running bool
	closed  bool
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the session logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

// WithRegistry shares a registry between sessions. By default every bridge
// owns a private one.
func WithRegistry(r *Registry) Option {
	return func(b *Bridge) {
		if r != nil {
			b.registry = r
		}
	}
}

// WithContext parents every run's abort handle on ctx, so cancelling ctx
// stops the loop. The host keeps rendering until Stop or Close.
func WithContext(ctx context.Context) Option {
	return func(b *Bridge) {
		if ctx != nil {
			b.ctx = ctx
		}
	}
}

// New validates cfg, allocates the session and registers it with h. The
// session starts stopped.
func New(cfg Config, h host.Host, cb stream.Callbacks, opts ...Option) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Bridge{
		id:   uuid.New(),
		cfg:  cfg,
		host: h,
		ctx:  context.Background(),
		log:  Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.registry == nil {
		b.registry = NewRegistry()
	}
	b.log = b.log.With(zap.String("session", b.id.String()))

	store, err := shm.New(cfg.layout())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	b.store = store
	b.reg = phase.NewRegister(store)
	b.state = render.NewState(store, b.reg, cfg.Policy)

	b.loop, err = stream.New(store, b.reg, cfg.SampleRate, cb, stream.WithLogger(b.log))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	b.handle = b.registry.Add(b.state)
	registry, handle := b.registry, b.handle
	err = h.Register(cfg.streamInfo(), func(in, out []float32) {
		registry.Process(handle, in, out)
	})
	if err != nil {
		b.registry.Remove(b.handle)
		return nil, fmt.Errorf("%w: %w", ErrHostRejected, err)
	}

	b.log.Info("session created",
		zap.Stringer("direction", cfg.Direction),
		zap.Int("sample_rate", cfg.SampleRate),
		zap.Int("frames", cfg.Frames),
		zap.Int("output_channels", cfg.OutputChannels),
		zap.Int("input_channels", cfg.InputChannels),
		zap.Stringer("policy", cfg.Policy),
	)
	return b, nil
}

// ID identifies the session in logs and in its Registry.
func (b *Bridge) ID() uuid.UUID { return b.id }

// Config returns the validated configuration the session was built from.
func (b *Bridge) Config() Config { return b.cfg }

// Handle returns the session's entry in the Registry.
func (b *Bridge) Handle() Handle { return b.handle }

// Registry returns the registry the session was added to.
func (b *Bridge) Registry() *Registry { return b.registry }

// Start resets the control word and runs the session from an empty store.
func (b *Bridge) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if b.running {
		return ErrAlreadyRunning
	}

	b.reg.Reset()
	b.state.Forget()
	if err := b.launch(); err != nil {
		return err
	}
	b.started = true
	b.log.Info("session started")
	return nil
}

// Resume restarts a stopped session without resetting the control word, so
// a batch committed before Stop is still rendered.
func (b *Bridge) Resume() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.closed:
		return ErrClosed
	case !b.started:
		return ErrNotStarted
	case b.running:
		return ErrAlreadyRunning
	}

	if err := b.launch(); err != nil {
		return err
	}
	b.log.Info("session resumed", zap.Stringer("phase", b.reg.Load()))
	return nil
}

// Stop suspends the host, cancels the loop and waits for it to exit. The
// store is not touched by the loop once Stop returns.
func (b *Bridge) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if !b.running {
		return ErrNotRunning
	}

	err := b.halt()
	b.log.Info("session stopped", zap.Stringer("phase", b.reg.Load()))
	return err
}

// Close stops the session, parks the control word at Done and releases the
// host registration. It is safe to call more than once.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var haltErr error
	if b.running {
		haltErr = b.halt()
	}
	b.reg.Terminate()
	b.reg.Notify()

	err := b.host.Unregister()
	b.registry.Remove(b.handle)

	st := b.stats()
	b.log.Info("session closed",
		zap.Uint64("quanta", st.Quanta),
		zap.Uint64("underruns", st.Underruns),
		zap.Uint64("overruns", st.Overruns),
		zap.Uint64("desyncs", st.RenderDesyncs+st.LoopDesyncs),
	)

	if err != nil {
		return fmt.Errorf("unregistering stream: %w", err)
	}
	return haltErr
}

// Running reports whether the loop is active.
func (b *Bridge) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.running
}

// Phase is the current control word, for diagnostics.
func (b *Bridge) Phase() phase.Phase {
	return b.reg.Load()
}

// Stats merges the render and loop counters.
func (b *Bridge) Stats() Stats {
	return b.stats()
}

func (b *Bridge) stats() Stats {
	rs := b.state.Stats()
	ls := b.loop.Stats()
	return Stats{
		Quanta:        rs.Quanta,
		Underruns:     rs.Underruns,
		Overruns:      rs.Overruns,
		RenderDesyncs: rs.Desyncs,
		Batches:       ls.Batches,
		Captures:      ls.Captures,
		LoopDesyncs:   ls.Desyncs,
		Wakes:         ls.Wakes,
	}
}

// launch starts a fresh waiter and loop, then resumes the host. b.mu held.
func (b *Bridge) launch() error {
	if err := b.ctx.Err(); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	abort := waiter.NewAbort(b.ctx)
	w, err := waiter.New(abort)
	if err != nil {
		return fmt.Errorf("starting waiter: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		err := b.loop.Run(w)
		if err != nil {
			b.log.Error("loop failed", zap.Error(err))
		}
		done <- err
	}()

	if err := b.host.Resume(); err != nil {
		abort.Abort()
		b.reg.Notify()
		<-done
		return fmt.Errorf("%w: resume: %w", ErrHostRejected, err)
	}

	b.abort = abort
	b.done = done
	b.running = true
	return nil
}

// halt suspends the host first so no render call races the shutdown, then
// cancels the loop and joins it. b.mu held.
func (b *Bridge) halt() error {
	suspendErr := b.host.Suspend()

	b.abort.Abort()
	b.reg.Notify()
	loopErr := <-b.done

	b.abort = nil
	b.done = nil
	b.running = false

	if suspendErr != nil {
		return fmt.Errorf("suspending host: %w", suspendErr)
	}
	return loopErr
}
