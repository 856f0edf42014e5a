/*
Package clock provides the frame clock driving animations.

A Clock invokes a callback once per frame. Browsers offer a "request animation
frame" facility for this; in a headless environment we resort to a fixed
interval timer (Ticker). Tests use a Manual clock, which fires frames only when
told to.

Callbacks are requested one frame at a time: a client calls RequestTick, and
re-requests from within the callback if it needs another frame.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package clock

import (
	"sort"
	"sync"
	"time"
)

// DefaultInterval is the frame interval of a Ticker, roughly one frame of a
// 60 Hz display.
const DefaultInterval = 16 * time.Millisecond

// TickFunc is called once per frame with the frame's timestamp.
type TickFunc func(now time.Time)

// CancelFunc revokes a pending frame request. Calling it after the frame has
// fired is a no-op.
type CancelFunc func()

// Clock is the frame clock abstraction.
type Clock interface {
	Now() time.Time                      // current time of this clock
	RequestTick(fn TickFunc) CancelFunc // fire fn once, asynchronously, on the next frame
}

// --- Ticker ----------------------------------------------------------------

// Ticker is a wall-clock Clock firing frames at a fixed interval.
type Ticker struct {
	interval time.Duration
}

// NewTicker creates a wall-clock frame clock. An interval ≤ 0 selects DefaultInterval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{interval: interval}
}

// Interval returns the frame interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Now is part of interface Clock.
func (t *Ticker) Now() time.Time {
	return time.Now()
}

// RequestTick is part of interface Clock.
// fn will be called on a timer goroutine.
func (t *Ticker) RequestTick(fn TickFunc) CancelFunc {
	timer := time.AfterFunc(t.interval, func() {
		fn(time.Now())
	})
	return func() { timer.Stop() }
}

var _ Clock = &Ticker{}

// --- Manual ----------------------------------------------------------------

// Manual is a Clock for tests. Time stands still until Advance is called;
// pending frame requests fire synchronously from within Advance (or Tick).
type Manual struct {
	sync.Mutex
	now     time.Time
	serial  int
	pending map[int]TickFunc
}

// NewManual creates a manual clock set to a fixed epoch.
func NewManual() *Manual {
	return &Manual{
		now:     time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		pending: make(map[int]TickFunc),
	}
}

// Now is part of interface Clock.
func (m *Manual) Now() time.Time {
	m.Lock()
	defer m.Unlock()
	return m.now
}

// RequestTick is part of interface Clock.
func (m *Manual) RequestTick(fn TickFunc) CancelFunc {
	m.Lock()
	defer m.Unlock()
	m.serial++
	id := m.serial
	m.pending[id] = fn
	return func() {
		m.Lock()
		defer m.Unlock()
		delete(m.pending, id)
	}
}

// Pending returns the number of outstanding frame requests.
func (m *Manual) Pending() int {
	m.Lock()
	defer m.Unlock()
	return len(m.pending)
}

// Advance moves the clock forward by d and then fires one frame.
func (m *Manual) Advance(d time.Duration) {
	m.Lock()
	m.now = m.now.Add(d)
	m.Unlock()
	m.Tick()
}

// Skip moves the clock forward by d without firing a frame, simulating a
// period without display refreshes (e.g., a hidden window).
func (m *Manual) Skip(d time.Duration) {
	m.Lock()
	defer m.Unlock()
	m.now = m.now.Add(d)
}

// Tick fires all outstanding frame requests at the current time. Requests
// made from within a callback will be served by the next frame.
func (m *Manual) Tick() {
	m.Lock()
	now := m.now
	ids := make([]int, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]TickFunc, len(ids))
	for i, id := range ids {
		fns[i] = m.pending[id]
		delete(m.pending, id)
	}
	m.Unlock()
	for _, fn := range fns {
		fn(now)
	}
}

var _ Clock = &Manual{}
