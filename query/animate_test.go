package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/dom/style"
	"github.com/npillmayer/domfx/fx"
	"github.com/npillmayer/domfx/fx/preset"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func inline(n *html.Node, key string) style.Property {
	p, _ := dom.StyleProperty(n, key)
	return p
}

func TestFadeOutHidesWhenDone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domfx.query")
	defer teardown()
	//
	q, c := setup(t)
	boxes := q.Must("#one, #two")
	b := boxes.FadeOut(fx.Duration(100*ms), fx.Easing("linear"))
	require.Len(t, b.Animations(), 2)
	c.Advance(50 * ms)
	assert.Equal(t, style.Property("0.25"), inline(boxes.Get(0), "opacity"))
	assert.True(t, boxes.Animating())
	c.Advance(50 * ms)
	require.NoError(t, wait(t, b))
	for _, n := range boxes.Nodes() {
		assert.Equal(t, style.Property("none"), inline(n, "display"))
	}
	assert.False(t, boxes.Animating())
}

func TestBatchThen(t *testing.T) {
	q, c := setup(t)
	called := make(chan int, 1)
	b := q.Must(".box").Rotate(1, fx.Duration(10*ms)).Then(func(sel *Selection) {
		called <- sel.Len()
	})
	c.Advance(20 * ms)
	require.NoError(t, wait(t, b))
	assert.Equal(t, 3, <-called)
	assert.Len(t, b.Animations(), 3)
}

func TestBatchStopIsSelective(t *testing.T) {
	q, c := setup(t)
	one := q.Must("#one")
	first := one.Animate(func(n *html.Node, p float64) {}, fx.Duration(100*ms))
	second := one.Animate(func(n *html.Node, p float64) {}, fx.Duration(100*ms))
	c.Advance(10 * ms)
	first.Stop(false)
	err := wait(t, first)
	assert.ErrorIs(t, err, fx.ErrStopped)
	assert.Equal(t, fx.Running, second.Animations()[0].State())
	assert.True(t, one.Animating())
	c.Advance(100 * ms)
	assert.NoError(t, wait(t, second))
}

func TestStopWithFinishAppliesCompletion(t *testing.T) {
	q, c := setup(t)
	boxes := q.Must(".box").Filter(":not(.hidden)")
	b := boxes.Squeeze(fx.Duration(time.Second))
	c.Advance(10 * ms)
	boxes.Stop(true)
	require.NoError(t, wait(t, b))
	for _, n := range boxes.Nodes() {
		assert.Equal(t, "display: none", dom.InlineStyles(n).String())
	}
	assert.Equal(t, fx.StoppedFinished, b.Animations()[0].State())
}

func TestStopWithoutFinishRejectsThen(t *testing.T) {
	q, c := setup(t)
	b := q.Must("#one").SlideUp(fx.Duration(100*ms), fx.Easing("linear"))
	called := false
	next := b.Then(func(*Selection) { called = true })
	c.Advance(50 * ms)
	q.Must("#one").Stop(false)
	assert.ErrorIs(t, wait(t, next), fx.ErrStopped)
	assert.False(t, called)
	assert.Equal(t, style.Property("20px"), inline(q.Must("#one").Get(0), "height"),
		"style stays at last applied step")
}

func TestRemovePurgesSubtree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domfx.query")
	defer teardown()
	//
	q, c := setup(t)
	paragraphs := q.Must("#list p")
	b := paragraphs.Animate(func(n *html.Node, p float64) {}, fx.Duration(time.Second))
	started := make(chan struct{})
	release := make(chan struct{})
	ran := make(chan struct{})
	one := q.Must("#one")
	one.Queue("", func(ctx context.Context, n *html.Node) error {
		close(started)
		<-release
		return nil
	}).Queue("", func(ctx context.Context, n *html.Node) error {
		close(ran)
		return nil
	})
	<-started
	c.Advance(10 * ms)
	q.Must("#list").Remove()
	err := wait(t, b)
	assert.True(t, errors.Is(err, fx.ErrPurged))
	for _, a := range b.Animations() {
		assert.Equal(t, fx.StoppedUnfinished, a.State())
	}
	assert.Equal(t, 0, q.Engine().Active())
	assert.Equal(t, 0, q.Must("#one").Len())
	assert.Equal(t, 1, one.Queued(""), "only the running task is left")
	close(release)
	select {
	case <-ran:
		t.Fatal("purged task ran")
	case <-time.After(50 * ms):
	}
}

func TestQueuedEffectsRunInSequence(t *testing.T) {
	q, c := setup(t)
	one := q.Must("#one")
	n := one.Get(0)
	done := make(chan struct{})
	one.QueueEffect("", preset.FadeOut(), fx.Duration(100*ms)).
		QueueEffect("", preset.FadeIn(), fx.Duration(100*ms)).
		Queue("", func(ctx context.Context, _ *html.Node) error {
			close(done)
			return nil
		})
	advanceWhileAnimating := func() {
		require.Eventually(t, func() bool { return q.Engine().Animating(n) == 1 },
			time.Second, time.Millisecond)
		c.Advance(150 * ms)
	}
	advanceWhileAnimating()
	assert.False(t, isClosed(done))
	advanceWhileAnimating()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queue did not drain")
	}
	assert.Equal(t, style.Property("1"), inline(n, "opacity"))
	_, hidden := dom.StyleProperty(n, "display")
	assert.False(t, hidden)
}

func TestDelayAndClearQueue(t *testing.T) {
	q, _ := setup(t)
	one := q.Must("#one")
	ran := make(chan struct{})
	one.Delay("x", time.Hour).Queue("x", func(ctx context.Context, _ *html.Node) error {
		close(ran)
		return nil
	})
	assert.Equal(t, 2, one.Queued("x"))
	one.ClearQueue("x")
	assert.Equal(t, 1, one.Queued("x"))
}

func isClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
