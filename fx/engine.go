package fx

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/npillmayer/domfx/fx/clock"
	"github.com/npillmayer/domfx/fx/ease"
)

// ErrStopped is the settlement error of an animation stopped without finishing.
// It is a cancellation signal, not a fault.
var ErrStopped = errors.New("animation stopped before finishing")

// ErrPurged is the settlement error of an animation dropped because its node
// has been torn down. errors.Is(ErrPurged, ErrStopped) holds.
var ErrPurged = fmt.Errorf("%w: node torn down", ErrStopped)

// ErrEngineClosed is returned for animations started on (or abandoned by) a
// closed engine.
var ErrEngineClosed = fmt.Errorf("%w: engine closed", ErrStopped)

// DefaultDuration is used for animations started without an explicit duration.
const DefaultDuration = 1000 * time.Millisecond

// DefaultChannel is the name of the queue channel used when clients do not
// name one.
const DefaultChannel = "fx"

// Engine is the animation scheduler. Create one with New; the zero value is
// not usable. An Engine is safe for concurrent use.
type Engine[N comparable] struct {
	mu       relock
	clock    clock.Clock
	duration time.Duration
	easing   string
	onError  func(channel string, err error)
	ctx      context.Context
	cancel   context.CancelFunc
	closed   bool
	registry registry[N]
	queues   map[N]map[string]*channelQueue[N]
	frame    struct {
		requested bool
		gen       uint64
		cancel    clock.CancelFunc
	}
}

// Option configures an Engine.
type Option struct {
	config func(*engineConfig)
}

type engineConfig struct {
	clock    clock.Clock
	duration time.Duration
	easing   string
	onError  func(channel string, err error)
	ctx      context.Context
}

// WithClock sets the frame clock. Default is a clock.Ticker with the default
// frame interval.
func WithClock(c clock.Clock) Option {
	return Option{config: func(conf *engineConfig) {
		conf.clock = c
	}}
}

// WithDefaultDuration sets the duration for animations started without one.
func WithDefaultDuration(d time.Duration) Option {
	return Option{config: func(conf *engineConfig) {
		if d >= 0 {
			conf.duration = d
		}
	}}
}

// WithDefaultEasing sets the easing curve for animations started without one.
func WithDefaultEasing(name string) Option {
	return Option{config: func(conf *engineConfig) {
		conf.easing = name
	}}
}

// WithTaskErrorHandler installs a callback receiving errors of queue tasks.
// It is called after the failing task's channel has been discarded, without
// the engine lock held.
func WithTaskErrorHandler(h func(channel string, err error)) Option {
	return Option{config: func(conf *engineConfig) {
		conf.onError = h
	}}
}

// WithContext sets the parent context for queue tasks. Tasks see a context
// which is cancelled when either the parent is done or the engine is closed.
func WithContext(ctx context.Context) Option {
	return Option{config: func(conf *engineConfig) {
		conf.ctx = ctx
	}}
}

// New creates an animation engine. Applications usually create one engine at
// start-up; tests create a fresh one per test.
func New[N comparable](opts ...Option) *Engine[N] {
	conf := engineConfig{
		duration: DefaultDuration,
		easing:   ease.Default,
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt.config(&conf)
	}
	if conf.clock == nil {
		conf.clock = clock.NewTicker(clock.DefaultInterval)
	}
	e := &Engine[N]{
		clock:    conf.clock,
		duration: conf.duration,
		easing:   conf.easing,
		onError:  conf.onError,
		registry: newRegistry[N](),
		queues:   make(map[N]map[string]*channelQueue[N]),
	}
	e.ctx, e.cancel = context.WithCancel(conf.ctx)
	return e
}

// Clock returns the frame clock of the engine.
func (e *Engine[N]) Clock() clock.Clock {
	return e.clock
}

// Atomically runs fn as one unit of work with respect to frames and other
// engine operations. Clients use it to read or mutate the DOM without racing
// with step callbacks. fn may call engine operations.
func (e *Engine[N]) Atomically(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

// Purge is the teardown hook for nodes removed from a document. All animations
// of the given nodes are abandoned (settling with ErrPurged, without a further
// step) and all of their queue channels are cleared.
//
// It is the responsibility of DOM manipulation code to call Purge for a removed
// node and each of its descendants.
func (e *Engine[N]) Purge(nodes ...N) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, n := range nodes {
		for _, a := range e.registry.take(n) {
			e.abandon(a, ErrPurged)
		}
		e.clearChannels(n, nil)
	}
	e.releaseFrame()
}

// Close shuts down the engine. Running animations are abandoned with
// ErrEngineClosed, queues are cleared and the task context is cancelled.
// Further operations are no-ops. Close is idempotent.
func (e *Engine[N]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	tracer().Debugf("closing animation engine")
	e.closed = true
	for _, a := range e.registry.all() {
		e.registry.remove(a)
		e.abandon(a, ErrEngineClosed)
	}
	for n := range e.queues {
		e.clearChannels(n, nil)
	}
	e.releaseFrame()
	e.cancel()
}
