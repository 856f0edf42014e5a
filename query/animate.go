package query

import (
	"context"
	"time"

	"github.com/npillmayer/domfx/fx"
	"github.com/npillmayer/domfx/fx/preset"
	"golang.org/x/net/html"
)

// Animate starts an animation with step function step on every node.
// The animations run concurrently with other animations of the nodes.
func (sel *Selection) Animate(step fx.StepFunc[*html.Node], opts ...fx.AnimOption) *Batch {
	b := newBatch(sel)
	sel.atomically(func() {
		for _, n := range sel.nodes {
			b.add(sel.q.engine.Start(n, step, opts...), nil)
		}
	})
	b.track()
	return b
}

// Effect starts a preset effect on every element. The effect's completion
// handler is applied to each element whose animation completes or is
// stopped with finish.
func (sel *Selection) Effect(eff preset.Effect, opts ...fx.AnimOption) *Batch {
	b := newBatch(sel)
	cs := sel.q.styler
	sel.atomically(func() {
		for _, n := range sel.nodes {
			if n.Type != html.ElementNode {
				continue
			}
			a := sel.q.engine.Start(n, eff.Prepare(n, cs), opts...)
			b.add(a, func(n *html.Node) { eff.Complete(n, cs) })
		}
	})
	b.track()
	return b
}

// FadeIn fades all elements in.
func (sel *Selection) FadeIn(opts ...fx.AnimOption) *Batch {
	return sel.Effect(preset.FadeIn(), opts...)
}

// FadeOut fades all elements out and hides them.
func (sel *Selection) FadeOut(opts ...fx.AnimOption) *Batch {
	return sel.Effect(preset.FadeOut(), opts...)
}

// SlideDown shows all elements with a sliding motion.
func (sel *Selection) SlideDown(opts ...fx.AnimOption) *Batch {
	return sel.Effect(preset.SlideDown(), opts...)
}

// SlideUp hides all elements with a sliding motion.
func (sel *Selection) SlideUp(opts ...fx.AnimOption) *Batch {
	return sel.Effect(preset.SlideUp(), opts...)
}

// Rotate turns all elements by a number of full turns.
func (sel *Selection) Rotate(turns float64, opts ...fx.AnimOption) *Batch {
	return sel.Effect(preset.Rotate(turns), opts...)
}

// Squeeze scales all elements down to nothing and hides them.
func (sel *Selection) Squeeze(opts ...fx.AnimOption) *Batch {
	return sel.Effect(preset.Squeeze(), opts...)
}

// Show makes all elements visible.
func (sel *Selection) Show() *Selection {
	cs := sel.q.styler
	return sel.eachElement(func(n *html.Node) { preset.Show(n, cs) })
}

// Hide hides all elements.
func (sel *Selection) Hide() *Selection {
	return sel.eachElement(func(n *html.Node) { preset.Hide(n, nil) })
}

// Stop stops all animations of all nodes. With finish set, every animation
// jumps to its end state and resolves; otherwise animations are rejected
// with fx.ErrStopped, leaving styles as they are.
func (sel *Selection) Stop(finish bool) *Selection {
	sel.atomically(func() {
		for _, n := range sel.nodes {
			sel.q.engine.Stop(n, finish)
		}
	})
	return sel
}

// Animating reports wether any node has running animations.
func (sel *Selection) Animating() bool {
	for _, n := range sel.nodes {
		if sel.q.engine.Animating(n) > 0 {
			return true
		}
	}
	return false
}

// Queue appends a task to a channel of every node. An empty channel name
// denotes fx.DefaultChannel.
func (sel *Selection) Queue(channel string, task fx.Task[*html.Node]) *Selection {
	for _, n := range sel.nodes {
		sel.q.engine.Enqueue(n, channel, task)
	}
	return sel
}

// QueueEffect appends an effect to a channel of every element. The effect
// begins when all tasks queued before it are done. A rejected effect
// discards the rest of the channel.
func (sel *Selection) QueueEffect(channel string, eff preset.Effect, opts ...fx.AnimOption) *Selection {
	cs := sel.q.styler
	e := sel.q.engine
	task := func(ctx context.Context, n *html.Node) error {
		var a *fx.Animation[*html.Node]
		e.Atomically(func() {
			a = e.Start(n, eff.Prepare(n, cs), opts...)
		})
		if err := a.Wait(ctx); err != nil {
			return err
		}
		e.Atomically(func() {
			eff.Complete(n, cs)
		})
		return nil
	}
	for _, n := range sel.nodes {
		if n.Type == html.ElementNode {
			e.Enqueue(n, channel, task)
		}
	}
	return sel
}

// Delay appends a pause to a channel of every node.
func (sel *Selection) Delay(channel string, d time.Duration) *Selection {
	for _, n := range sel.nodes {
		sel.q.engine.Delay(n, channel, d)
	}
	return sel
}

// ClearQueue discards pending tasks of the given channels of every node, or
// of all channels if none are given. Running tasks are not interrupted.
func (sel *Selection) ClearQueue(channels ...string) *Selection {
	for _, n := range sel.nodes {
		sel.q.engine.ClearQueue(n, channels...)
	}
	return sel
}

// Queued returns the number of tasks in a channel of the first node.
func (sel *Selection) Queued(channel string) int {
	n := sel.Get(0)
	if n == nil {
		return 0
	}
	return sel.q.engine.Queued(n, channel)
}
