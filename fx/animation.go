package fx

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/npillmayer/domfx/fx/ease"
)

// StepFunc applies an eased progress value to a node. It is called once per
// frame while an animation is running.
type StepFunc[N comparable] func(node N, progress float64)

// State is the lifecycle state of an animation.
type State uint8

// Animations are running from the moment they are started. All other states
// are terminal.
const (
	Running State = iota
	Completed
	StoppedFinished
	StoppedUnfinished
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case StoppedFinished:
		return "stopped-finished"
	case StoppedUnfinished:
		return "stopped-unfinished"
	}
	return "?"
}

// --- Future ----------------------------------------------------------------

// Future is the settled-result side of an animation. It settles exactly once,
// either successfully (Err() == nil) or with a cancellation error.
type Future struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// settle resolves the future. Only the first call has an effect.
func (f *Future) settle(err error) bool {
	settled := false
	f.once.Do(func() {
		f.err = err
		close(f.done)
		settled = true
	})
	return settled
}

// Done returns a channel which is closed as soon as the future has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Settled is a non-blocking check for settlement.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err returns the settlement error. It returns nil for a future which settled
// successfully or has not settled yet.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the future settles or ctx is done.
//
// Wait must not be called from within a step callback, as settlement
// requires the engine to make progress.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// --- Animation -------------------------------------------------------------

// Animation is the control handle of one running animation of one node.
// It embeds the Future observing its settlement.
type Animation[N comparable] struct {
	*Future
	engine   *Engine[N]
	node     N
	step     StepFunc[N]
	start    time.Time
	duration time.Duration
	easing   ease.Func
	infinite bool
	state    State // guarded by engine lock
}

// AnimOption configures a single animation.
type AnimOption func(*animConfig)

type animConfig struct {
	duration time.Duration
	easing   ease.Func
	infinite bool
}

// Duration sets the length of an animation. Negative values are treated as 0,
// which makes a (non-infinite) animation complete on its first frame.
func Duration(d time.Duration) AnimOption {
	return func(conf *animConfig) {
		if d < 0 {
			d = 0
		}
		conf.duration = d
	}
}

// Easing selects an easing curve by name (see package ease).
func Easing(name string) AnimOption {
	return func(conf *animConfig) {
		conf.easing = ease.Get(name)
	}
}

// EasingFunc sets a custom easing curve.
func EasingFunc(f ease.Func) AnimOption {
	return func(conf *animConfig) {
		if f != nil {
			conf.easing = f
		}
	}
}

// Infinite makes an animation loop until stopped.
func Infinite() AnimOption {
	return func(conf *animConfig) {
		conf.infinite = true
	}
}

// Node returns the node the animation is working on.
func (a *Animation[N]) Node() N {
	return a.node
}

// Duration returns the length of one run of the animation.
func (a *Animation[N]) Duration() time.Duration {
	return a.duration
}

// Infinite tells if the animation loops until stopped.
func (a *Animation[N]) Infinite() bool {
	return a.infinite
}

// State returns the current lifecycle state.
func (a *Animation[N]) State() State {
	a.engine.mu.Lock()
	defer a.engine.mu.Unlock()
	return a.state
}

// Stop stops this animation alone. With finish set, a final step with
// progress 1 is applied and the animation settles successfully; otherwise it
// settles with ErrStopped. Stopping a settled animation is a no-op.
func (a *Animation[N]) Stop(finish bool) {
	e := a.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.registry.remove(a) {
		return
	}
	if finish {
		e.finish(a)
	} else {
		e.abandon(a, ErrStopped)
	}
	e.releaseFrame()
}

// progress computes raw progress at time now.
func (a *Animation[N]) progress(now time.Time) float64 {
	elapsed := now.Sub(a.start)
	if elapsed < 0 {
		elapsed = 0
	}
	if a.infinite {
		if a.duration <= 0 {
			return 0
		}
		return float64(elapsed%a.duration) / float64(a.duration)
	}
	if a.duration <= 0 {
		return 1
	}
	return math.Min(1, float64(elapsed)/float64(a.duration))
}

func (a *Animation[N]) apply(p float64) {
	if a.step != nil {
		a.step(a.node, a.easing(ease.Clamp(p)))
	}
}

// --- Runner ----------------------------------------------------------------

// Start creates an animation for node and registers it. No step is applied
// synchronously: the first step happens on the next frame. The returned handle
// settles successfully when the animation completes (or is stopped with
// finish) and with ErrStopped if it is stopped without finishing.
//
// Animations on the same node coexist; within a frame their steps are applied
// in start order.
func (e *Engine[N]) Start(node N, step StepFunc[N], opts ...AnimOption) *Animation[N] {
	conf := animConfig{duration: e.duration, easing: ease.Get(e.easing)}
	for _, opt := range opts {
		opt(&conf)
	}
	a := &Animation[N]{
		Future:   newFuture(),
		engine:   e,
		node:     node,
		step:     step,
		duration: conf.duration,
		easing:   conf.easing,
		infinite: conf.infinite,
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		a.state = StoppedUnfinished
		a.settle(ErrEngineClosed)
		return a
	}
	a.start = e.clock.Now()
	e.registry.add(a)
	tracer().Debugf("animation started on %v, duration=%v infinite=%v", node, a.duration, a.infinite)
	e.requestFrame()
	return a
}

// Stop stops all animations of node. With finish set, each is advanced to its
// end state, stepped one final time and settles successfully; otherwise they
// settle with ErrStopped and the node's style is left as is.
//
// Stopping a node without animations is a no-op.
func (e *Engine[N]) Stop(node N, finish bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range e.registry.take(node) {
		if finish {
			e.finish(a)
		} else {
			e.abandon(a, ErrStopped)
		}
	}
	e.releaseFrame()
}

// Animating returns the number of active animations for node.
func (e *Engine[N]) Animating(node N) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.count(node)
}

// Active returns the number of active animations for all nodes.
func (e *Engine[N]) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.registry.all())
}

// finish settles a (de-registered) animation successfully after a final step.
// The state is set before the step, so a re-entrant stop will ignore a.
func (e *Engine[N]) finish(a *Animation[N]) {
	if a.state != Running {
		return
	}
	a.state = StoppedFinished
	a.apply(1)
	a.settle(nil)
	tracer().Debugf("animation on %v stopped and finished", a.node)
}

// abandon settles a (de-registered) animation with err, without a further step.
func (e *Engine[N]) abandon(a *Animation[N], err error) {
	if a.state != Running {
		return
	}
	a.state = StoppedUnfinished
	a.settle(err)
	tracer().Debugf("animation on %v abandoned: %v", a.node, err)
}

// tick advances every active animation. It is called by the frame clock.
func (e *Engine[N]) tick(gen uint64, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.frame.gen || e.closed {
		return // stale frame request
	}
	e.frame.requested = false
	e.frame.cancel = nil
	for _, a := range e.registry.all() {
		if a.state != Running { // settled by a step callback earlier in this frame
			continue
		}
		p := a.progress(now)
		a.apply(p)
		if a.infinite || p < 1 || a.state != Running {
			continue
		}
		e.registry.remove(a)
		a.state = Completed
		a.settle(nil)
		tracer().Debugf("animation on %v completed", a.node)
	}
	e.requestFrame()
}

// requestFrame makes sure a frame is pending as long as there are animations.
func (e *Engine[N]) requestFrame() {
	if e.frame.requested || e.closed || e.registry.empty() {
		return
	}
	e.frame.gen++
	gen := e.frame.gen
	e.frame.requested = true
	e.frame.cancel = e.clock.RequestTick(func(now time.Time) {
		e.tick(gen, now)
	})
}

// releaseFrame revokes a pending frame if no animations are left, stopping
// the frame loop.
func (e *Engine[N]) releaseFrame() {
	if !e.frame.requested || !(e.registry.empty() || e.closed) {
		return
	}
	if e.frame.cancel != nil {
		e.frame.cancel()
	}
	e.frame.gen++ // invalidate a frame which already fired but waits for the lock
	e.frame.requested = false
	e.frame.cancel = nil
	tracer().Debugf("frame loop idle")
}
