package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualFiresOnlyOnAdvance(t *testing.T) {
	c := NewManual()
	start := c.Now()
	var fired []time.Time
	c.RequestTick(func(now time.Time) { fired = append(fired, now) })
	assert.Equal(t, 1, c.Pending())
	assert.Empty(t, fired)
	c.Advance(10 * time.Millisecond)
	require.Len(t, fired, 1)
	assert.Equal(t, start.Add(10*time.Millisecond), fired[0])
	assert.Equal(t, 0, c.Pending())
	c.Advance(10 * time.Millisecond) // no request outstanding
	assert.Len(t, fired, 1)
}

func TestManualCancel(t *testing.T) {
	c := NewManual()
	n := 0
	cancel := c.RequestTick(func(time.Time) { n++ })
	cancel()
	c.Tick()
	assert.Equal(t, 0, n)
	cancel() // second cancel is harmless
}

func TestManualRequestFromCallbackWaitsForNextFrame(t *testing.T) {
	c := NewManual()
	n := 0
	var fn TickFunc
	fn = func(time.Time) {
		n++
		c.RequestTick(fn)
	}
	c.RequestTick(fn)
	c.Tick()
	assert.Equal(t, 1, n)
	c.Tick()
	assert.Equal(t, 2, n)
}

func TestManualSkipDoesNotFire(t *testing.T) {
	c := NewManual()
	start := c.Now()
	n := 0
	c.RequestTick(func(time.Time) { n++ })
	c.Skip(time.Second)
	assert.Equal(t, 0, n)
	assert.Equal(t, start.Add(time.Second), c.Now())
}

func TestTickerFiresAsynchronously(t *testing.T) {
	c := NewTicker(time.Millisecond)
	var n int32
	done := make(chan struct{})
	c.RequestTick(func(time.Time) {
		atomic.AddInt32(&n, 1)
		close(done)
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&n))
}

func TestTickerDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, NewTicker(0).Interval())
}
