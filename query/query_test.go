package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/dom/domdbg"
	"github.com/npillmayer/domfx/dom/style"
	"github.com/npillmayer/domfx/fx"
	"github.com/npillmayer/domfx/fx/clock"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const ms = time.Millisecond

const page = `<html><head><style>
.box { opacity: 0.5; height: 40px }
.hidden { display: none }
</style></head><body>
<div id="list" class="container">
  <div class="box" id="one"><p>One</p></div>
  <div class="box" id="two"><p>Two</p></div>
  <div class="box hidden" id="three"><p>Three</p></div>
</div>
<p id="footer">Footer</p>
</body></html>`

func setup(t *testing.T) (*Q, *clock.Manual) {
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	c := clock.NewManual()
	e := fx.New[*html.Node](fx.WithClock(c))
	t.Cleanup(e.Close)
	return New(doc, e), c
}

func ids(sel *Selection) []string {
	var r []string
	for _, n := range sel.Nodes() {
		id, _ := dom.Attr(n, "id")
		r = append(r, id)
	}
	return r
}

func wait(t *testing.T, b *Batch) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := b.Wait(ctx)
	require.False(t, errors.Is(err, context.DeadlineExceeded), "batch did not settle")
	return err
}

type nodeSlice []*html.Node

func (ns nodeSlice) Len() int               { return len(ns) }
func (ns nodeSlice) Item(i int) *html.Node { return ns[i] }

func TestSelectResolvesAndDeduplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domfx.query")
	defer teardown()
	//
	q, _ := setup(t)
	boxes, err := q.Select(".box")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, ids(boxes))
	footer := q.Must("#footer").Get(0)
	sel, err := q.Select("#two", footer, []*html.Node{boxes.Get(1), boxes.Get(0)},
		nodeSlice{footer}, boxes, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "footer", "one", "three"}, ids(sel))
}

func TestSelectErrors(t *testing.T) {
	q, _ := setup(t)
	_, err := q.Select("div[")
	assert.Error(t, err)
	_, err = q.Select(42)
	assert.ErrorIs(t, err, ErrUnsupportedArgument)
	assert.Panics(t, func() { q.Must(3.14) })
	nodoc := New(nil, q.Engine())
	_, err = nodoc.Select(".box")
	assert.ErrorIs(t, err, ErrNoDocument)
	frag, err := nodoc.Select(`<span>a</span><span>b</span>`)
	require.NoError(t, err)
	assert.Equal(t, 2, frag.Len())
	assert.Nil(t, frag.Get(0).Parent)
}

func TestTraversal(t *testing.T) {
	q, _ := setup(t)
	list := q.Must("#list")
	assert.Equal(t, 3, list.Children().Len())
	assert.Equal(t, 3, list.Find("p").Len())
	assert.Equal(t, 0, list.Find("#list").Len(), "Find excludes the node itself")
	boxes := q.Must(".box")
	assert.Equal(t, []string{"three"}, ids(boxes.Filter(".hidden")))
	assert.Equal(t, []string{"list"}, ids(boxes.Parent()), "parents are de-duplicated")
	assert.Equal(t, []string{"one"}, ids(boxes.First()))
	assert.Equal(t, []string{"three"}, ids(boxes.Last()))
	assert.Equal(t, boxes.Get(2), boxes.Get(-1))
	assert.Nil(t, boxes.Get(5))
	ps := list.Find("p")
	assert.Equal(t, []string{"one", "two", "three"}, ids(ps.Closest(".box")))
	assert.Equal(t, []string{"list"}, ids(ps.Closest("#list")))
	bad := boxes.Filter("[")
	assert.Error(t, bad.Err())
	assert.Equal(t, 0, bad.Len())
	count := 0
	boxes.Each(func(i int, n *html.Node) { count++ })
	assert.Equal(t, 3, count)
}

func TestDOMHelpers(t *testing.T) {
	q, _ := setup(t)
	boxes := q.Must(".box")
	boxes.AddClass("x").SetAttr("data-k", "v")
	assert.True(t, boxes.HasClass("x"))
	v, ok := boxes.Attr("data-k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	boxes.ToggleClass("x").RemoveAttr("data-k")
	assert.False(t, boxes.HasClass("x"))
	_, ok = boxes.Attr("data-k")
	assert.False(t, ok)
	boxes.First().AddClass("y").RemoveClass("y")
	assert.False(t, boxes.HasClass("y"))
	//
	assert.Equal(t, style.Property("0.5"), boxes.Css("opacity"))
	boxes.SetCss("opacity", "0.8").SetCss("margin", "1px 2px")
	assert.NoError(t, boxes.Err())
	assert.Equal(t, style.Property("0.8"), boxes.Css("opacity"))
	assert.Equal(t, style.Property("2px"), boxes.Css("margin-right"))
	assert.Equal(t, style.Property("none"), boxes.Last().Css("display"))
	boxes.Last().Show()
	assert.Equal(t, style.Property("block"), boxes.Last().Css("display"))
	boxes.Last().Hide()
	assert.Equal(t, style.Property("none"), boxes.Last().Css("display"))
	//
	assert.Equal(t, "OneTwoThree", boxes.Text())
	boxes.First().SetText("Uno")
	assert.Equal(t, "Uno", boxes.First().Text())
	q.Must("#two").Append("<i>!</i>")
	assert.Equal(t, "Two!", q.Must("#two").Text())
	clone := q.Must("#two").Clone()
	assert.Nil(t, clone.Get(0).Parent)
	clone.AppendTo(q.Must("#list"))
	assert.Equal(t, 4, q.Must("#list").Children().Len())
	t.Logf("\n%s", domdbg.Print(q.Document().Body()))
}

func TestRemoveAndReplace(t *testing.T) {
	q, _ := setup(t)
	q.Must("#two").Remove()
	assert.Equal(t, []string{"one", "three"}, ids(q.Must(".box")))
	r := q.Must("#one").ReplaceWith(`<div class="box" id="new"></div>`)
	require.NoError(t, r.Err())
	assert.Equal(t, []string{"new"}, ids(r))
	assert.Equal(t, []string{"new", "three"}, ids(q.Must(".box")))
	q.Must("#list").Empty()
	assert.Equal(t, 0, q.Must(".box").Len())
}
