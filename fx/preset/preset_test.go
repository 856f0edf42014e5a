package preset

import (
	"testing"
	"time"

	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/dom/style"
	"github.com/npillmayer/domfx/dom/style/css"
	"github.com/npillmayer/domfx/fx"
	"github.com/npillmayer/domfx/fx/clock"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func element(t *testing.T, markup string) (*html.Node, *css.Styler) {
	doc, err := dom.ParseString(markup)
	require.NoError(t, err)
	els := dom.ChildElements(doc.Body())
	require.NotEmpty(t, els)
	return els[0], css.ForDocument(doc)
}

func inline(n *html.Node, key string) style.Property {
	p, _ := dom.StyleProperty(n, key)
	return p
}

func run(t *testing.T, n *html.Node, cs Styles, eff Effect) {
	c := clock.NewManual()
	e := fx.New[*html.Node](fx.WithClock(c))
	defer e.Close()
	a := e.Start(n, eff.Prepare(n, cs), fx.Duration(100*time.Millisecond), fx.Easing("linear"))
	c.Advance(50 * time.Millisecond)
	c.Advance(60 * time.Millisecond)
	require.True(t, a.Settled())
	require.NoError(t, a.Err())
	eff.Complete(n, cs)
}

func TestFadeOutStartsFromComputedOpacity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domfx.fx")
	defer teardown()
	//
	n, cs := element(t, `<style>.half { opacity: 0.5 }</style><div class="half"></div>`)
	step := FadeOut().Prepare(n, cs)
	step(n, 0.5)
	assert.Equal(t, style.Property("0.25"), inline(n, "opacity"))
	run(t, n, cs, FadeOut())
	assert.Equal(t, style.Property("none"), inline(n, "display"))
	_, ok := dom.StyleProperty(n, "opacity")
	assert.False(t, ok)
}

func TestFadeInShowsHiddenElement(t *testing.T) {
	n, cs := element(t, `<div style="display: none"></div>`)
	step := FadeIn().Prepare(n, cs)
	_, ok := dom.StyleProperty(n, "display")
	assert.False(t, ok, "inline display none removed")
	step(n, 0.25)
	assert.Equal(t, style.Property("0.25"), inline(n, "opacity"))
	step(n, 1)
	assert.Equal(t, style.Property("1"), inline(n, "opacity"))
}

func TestFadeInShowsElementHiddenByStylesheet(t *testing.T) {
	n, cs := element(t, `<style>span { display: none }</style><span></span>`)
	FadeIn().Prepare(n, cs)
	assert.Equal(t, style.Property("inline"), inline(n, "display"))
	assert.False(t, IsHidden(n, cs))
}

func TestSlides(t *testing.T) {
	n, cs := element(t, `<div style="height: 40px"></div>`)
	step := SlideUp().Prepare(n, cs)
	assert.Equal(t, style.Property("hidden"), inline(n, "overflow"))
	step(n, 0.25)
	assert.Equal(t, style.Property("30px"), inline(n, "height"))
	SlideUp().Complete(n, cs)
	assert.True(t, IsHidden(n, cs))
	//
	m, cs := element(t, `<div style="display: none"></div>`)
	step = SlideDown().Prepare(m, cs)
	assert.Equal(t, style.Property("0%"), inline(m, "height"))
	step(m, 0.5)
	assert.Equal(t, style.Property("50%"), inline(m, "height"))
	step(m, 1)
	SlideDown().Complete(m, cs)
	assert.Equal(t, "", dom.InlineStyles(m).String())
}

func TestTransforms(t *testing.T) {
	n, _ := element(t, `<div></div>`)
	Rotate(2).Prepare(n, nil)(n, 0.5)
	assert.Equal(t, style.Property("rotate(360deg)"), inline(n, "transform"))
	sq := Squeeze()
	sq.Prepare(n, nil)(n, 0.75)
	assert.Equal(t, style.Property("scale(0.25)"), inline(n, "transform"))
	sq.Complete(n, nil)
	assert.Equal(t, "display: none", dom.InlineStyles(n).String())
}

func TestTweens(t *testing.T) {
	n, _ := element(t, `<div style="width: 10px"></div>`)
	Tween("margin-left", 0, 20, "px").Prepare(n, nil)(n, 0.5)
	assert.Equal(t, style.Property("10px"), inline(n, "margin-left"))
	TweenTo("width", 30, "").Prepare(n, nil)(n, 0.5)
	assert.Equal(t, style.Property("20px"), inline(n, "width"))
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		eff, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, eff.Name)
	}
	_, err := Lookup("explode")
	assert.Error(t, err)
}
