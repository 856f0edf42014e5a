package css

import (
	"testing"

	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<html><head><style>
div { height: 10px; color: green }
.box { height: 20px; opacity: 0.5 }
#main { height: 30px }
div.box { width: 5px !important }
.late { height: 40px }
p { color: inherit }
</style></head><body style="color: red">
<div id="main" class="box late"><p>text</p><span>s</span></div>
<div class="box" style="width: 7px; opacity: 0.75"></div>
<div class="other" style="height: initial"></div>
</body></html>`

func setup(t *testing.T) (*dom.Document, *Styler) {
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	return doc, ForDocument(doc)
}

func divs(doc *dom.Document) []*html.Node {
	var r []*html.Node
	for _, n := range dom.ChildElements(doc.Body()) {
		if n.Data == "div" {
			r = append(r, n)
		}
	}
	return r
}

func TestSpecificityDecides(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domfx.dom")
	defer teardown()
	//
	doc, s := setup(t)
	d := divs(doc)
	require.Len(t, d, 3)
	assert.Equal(t, style.Property("30px"), s.GetProperty(d[0], "height"), "id selector wins over later class rule")
	assert.Equal(t, style.Property("20px"), s.GetProperty(d[1], "height"))
}

func TestInlineStyleAndImportant(t *testing.T) {
	doc, s := setup(t)
	d := divs(doc)
	assert.Equal(t, style.Property("0.75"), s.GetProperty(d[1], "opacity"), "inline wins")
	assert.Equal(t, style.Property("5px"), s.GetProperty(d[1], "width"), "!important beats inline")
}

func TestInheritance(t *testing.T) {
	doc, s := setup(t)
	d := divs(doc)
	p := dom.ChildElements(d[0])[0]
	span := dom.ChildElements(d[0])[1]
	assert.Equal(t, style.Property("green"), s.GetProperty(p, "color"), "explicit inherit")
	assert.Equal(t, style.Property("green"), s.GetProperty(span, "color"), "color is inherited")
	assert.Equal(t, style.Property("red"), s.GetProperty(doc.Body(), "color"))
	assert.Equal(t, style.Property("1"), s.GetProperty(span, "opacity"), "opacity is not inherited")
}

func TestDefaults(t *testing.T) {
	doc, s := setup(t)
	d := divs(doc)
	assert.Equal(t, style.Property("auto"), s.GetProperty(d[2], "height"), "initial resolves to UA default")
	assert.Equal(t, style.Property("block"), s.GetProperty(d[2], "display"))
	span := dom.ChildElements(d[0])[1]
	assert.Equal(t, style.Property("inline"), s.GetProperty(span, "display"))
	pmap := s.ComputedStyles(d[0], "height", "opacity")
	assert.Equal(t, "height: 30px; opacity: 0.5", pmap.String())
}

func TestEmptyStyler(t *testing.T) {
	doc, err := dom.ParseString(`<div style="opacity: 0.1"></div>`)
	require.NoError(t, err)
	s := NewStyler()
	div := dom.ChildElements(doc.Body())[0]
	assert.Equal(t, style.Property("0.1"), s.GetProperty(div, "opacity"))
	assert.Equal(t, style.NullStyle, s.GetProperty(nil, "opacity"))
}
