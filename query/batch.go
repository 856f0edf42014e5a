package query

import (
	"context"
	"sync"

	"github.com/npillmayer/domfx/fx"
	"golang.org/x/net/html"
)

// Batch is the awaitable result of starting an animation on a selection.
// It is done when every animation of the batch has settled and completion
// handlers have been applied.
type Batch struct {
	sel    *Selection
	parent *Batch
	anims  []*fx.Animation[*html.Node]
	after  []func(*html.Node)
	done   chan struct{}
	err    error
}

func newBatch(sel *Selection) *Batch {
	return &Batch{sel: sel, done: make(chan struct{})}
}

func (b *Batch) add(a *fx.Animation[*html.Node], after func(*html.Node)) {
	b.anims = append(b.anims, a)
	b.after = append(b.after, after)
}

// track waits for all animations in the background. The batch error is the
// error of the first failing animation in selection order.
func (b *Batch) track() {
	if len(b.anims) == 0 {
		close(b.done)
		return
	}
	errs := make([]error, len(b.anims))
	var wg sync.WaitGroup
	for i, a := range b.anims {
		wg.Add(1)
		go func(i int, a *fx.Animation[*html.Node]) {
			defer wg.Done()
			<-a.Done()
			if errs[i] = a.Err(); errs[i] == nil && b.after[i] != nil {
				b.sel.atomically(func() {
					b.after[i](a.Node())
				})
			}
		}(i, a)
	}
	go func() {
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				b.err = err
				break
			}
		}
		tracer().Debugf("batch of %d animations settled, err=%v", len(b.anims), b.err)
		close(b.done)
	}()
}

// Done returns a channel which is closed when the batch is done.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Err returns the error of a done batch, or nil if the batch is still
// running or succeeded.
func (b *Batch) Err() error {
	select {
	case <-b.done:
		return b.err
	default:
		return nil
	}
}

// Wait blocks until the batch is done or ctx is cancelled.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Animations returns the animation handles of the batch, in selection order.
func (b *Batch) Animations() []*fx.Animation[*html.Node] {
	if b.parent != nil {
		return b.parent.Animations()
	}
	r := make([]*fx.Animation[*html.Node], len(b.anims))
	copy(r, b.anims)
	return r
}

// Stop stops the animations of this batch only. Other animations of the
// selected nodes keep running.
func (b *Batch) Stop(finish bool) {
	if b.parent != nil {
		b.parent.Stop(finish)
		return
	}
	b.sel.atomically(func() {
		for _, a := range b.anims {
			a.Stop(finish)
		}
	})
}

// Selection returns the selection the batch has been started on.
func (b *Batch) Selection() *Selection {
	return b.sel
}

// Then calls fn with the selection once the batch has succeeded. The
// returned batch is done after fn has returned, or carries the error of b
// if fn has not been called.
func (b *Batch) Then(fn func(*Selection)) *Batch {
	next := newBatch(b.sel)
	next.parent = b
	go func() {
		<-b.done
		if b.err == nil && fn != nil {
			fn(b.sel)
		}
		next.err = b.err
		close(next.done)
	}()
	return next
}
