package nlp

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// LoadFunc loads a capability provider. It is called at most once per handle.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// State is the lifecycle position of a handle
type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
	StateDisabled      State = "disabled"
)

const (
	defaultMaxConcurrency = 4
	defaultLoadTimeout    = 30 * time.Second
)

type handleOptions struct {
	logger         *zap.Logger
	maxConcurrency int
	loadTimeout    time.Duration
	onLoad         func(name string, err error)
}

// HandleOption configures a Handle
type HandleOption func(*handleOptions)

// WithLogger sets the logger used to report the load outcome
func WithLogger(logger *zap.Logger) HandleOption {
	return func(o *handleOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxConcurrency bounds the number of inference calls running at once
func WithMaxConcurrency(n int) HandleOption {
	return func(o *handleOptions) {
		if n > 0 {
			o.maxConcurrency = n
		}
	}
}

// WithLoadTimeout bounds the single load attempt. The load does not follow the
// cancellation of the caller that triggered it.
func WithLoadTimeout(d time.Duration) HandleOption {
	return func(o *handleOptions) {
		if d > 0 {
			o.loadTimeout = d
		}
	}
}

// WithLoadHook registers a callback invoked once with the load result
func WithLoadHook(fn func(name string, err error)) HandleOption {
	return func(o *handleOptions) {
		o.onLoad = fn
	}
}

// Handle owns a lazily loaded model or client. The first Get performs the single
// load attempt while holding the lock, so concurrent first callers wait for it
// instead of loading again. A failed load disables the handle for its lifetime.
// value and err are written once, before state leaves StateUninitialized.
type Handle[T any] struct {
	name        string
	load        LoadFunc[T]
	logger      *zap.Logger
	onLoad      func(name string, err error)
	loadTimeout time.Duration
	slots       chan struct{}

	mu    sync.Mutex
	state atomic.Value
	value T
	err   error
}

// NewHandle creates a handle that loads its provider on first use
func NewHandle[T any](name string, load LoadFunc[T], opts ...HandleOption) *Handle[T] {
	o := handleOptions{
		logger:         zap.NewNop(),
		maxConcurrency: defaultMaxConcurrency,
		loadTimeout:    defaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	h := &Handle[T]{
		name:        name,
		load:        load,
		logger:      o.logger,
		onLoad:      o.onLoad,
		loadTimeout: o.loadTimeout,
		slots:       make(chan struct{}, o.maxConcurrency),
	}
	h.state.Store(StateUninitialized)
	return h
}

// NewDisabledHandle creates a handle for a capability that is not configured.
// It never attempts a load.
func NewDisabledHandle[T any](name string) *Handle[T] {
	h := &Handle[T]{
		name:   name,
		logger: zap.NewNop(),
		slots:  make(chan struct{}, 1),
		err:    fmt.Errorf("%s: %w", name, ErrModelDisabled),
	}
	h.state.Store(StateDisabled)
	return h
}

// Name returns the capability name
func (h *Handle[T]) Name() string {
	return h.name
}

// State reports the lifecycle state without triggering a load. It does not wait
// for a load in flight.
func (h *Handle[T]) State() State {
	return h.state.Load().(State)
}

// Get returns the provider, loading it on first call. Once the load has failed
// every call returns an error wrapping ErrModelDisabled without retrying.
func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	if h.State() != StateUninitialized {
		return h.value, h.err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.State() != StateUninitialized {
		return h.value, h.err
	}

	// detached from the caller; only the load timeout ends it
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.loadTimeout)
	defer cancel()

	h.value, h.err = h.safeLoad(loadCtx)
	if h.err != nil {
		h.err = fmt.Errorf("%s: %w: %v", h.name, ErrModelDisabled, h.err)
		h.logger.Warn("nlp.model.disabled",
			zap.String("model", h.name),
			zap.Error(h.err),
		)
		h.state.Store(StateDisabled)
	} else {
		h.logger.Info("nlp.model.ready", zap.String("model", h.name))
		h.state.Store(StateReady)
	}
	if h.onLoad != nil {
		h.onLoad(h.name, h.err)
	}

	return h.value, h.err
}

// Available loads the provider if needed and reports whether it is usable
func (h *Handle[T]) Available(ctx context.Context) bool {
	_, err := h.Get(ctx)
	return err == nil
}

func (h *Handle[T]) safeLoad(ctx context.Context) (value T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("load panic: %v", p)
		}
	}()
	if h.load == nil {
		return value, fmt.Errorf("no loader configured")
	}
	return h.load(ctx)
}

// Infer runs call against the handle's provider on a separate goroutine, bounded
// by the handle's concurrency limit. Panics inside call are returned as errors.
// If ctx is done first Infer returns ctx.Err() and the call finishes on its own.
func Infer[T, R any](ctx context.Context, h *Handle[T], call func(context.Context, T) (R, error)) (R, error) {
	var zero R

	model, err := h.Get(ctx)
	if err != nil {
		return zero, err
	}

	select {
	case h.slots <- struct{}{}:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	type result struct {
		value R
		err   error
	}
	done := make(chan result, 1)

	go func() {
		defer func() { <-h.slots }()
		defer func() {
			if p := recover(); p != nil {
				done <- result{err: fmt.Errorf("%s inference panic: %v", h.name, p)}
			}
		}()
		v, err := call(ctx, model)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
