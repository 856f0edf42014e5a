package dom

import (
	"testing"

	"github.com/npillmayer/domfx/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)


const myhtml = `<html><head><style>p { color: blue }</style></head><body>
<div id="a" class="box big" style="opacity: 0.5"><p>Hello <b>World</b></p></div>
<ul><li>1</li><li>2</li></ul>
</body></html>`

func parse(t *testing.T) *Document {
	doc, err := ParseString(myhtml)
	require.NoError(t, err)
	return doc
}

func byID(doc *Document, id string) *html.Node {
	for _, n := range Descendants(doc.Root()) {
		if v, ok := Attr(n, "id"); ok && v == id {
			return n
		}
	}
	return nil
}

func TestDocumentStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domfx.dom")
	defer teardown()
	//
	doc := parse(t)
	require.NotNil(t, doc.Head())
	require.NotNil(t, doc.Body())
	assert.Equal(t, atom.Body, doc.Body().DataAtom)
	div := byID(doc, "a")
	require.NotNil(t, div)
	assert.True(t, NodeIsElement(div))
	assert.True(t, IsAttached(div))
	anc := Ancestors(div)
	assert.Equal(t, doc.Body(), anc[0])
	assert.Equal(t, doc.Root(), anc[len(anc)-1])
	assert.Len(t, ChildElements(FindElement(doc.Root(), atom.Ul)), 2)
	assert.Equal(t, "Hello World", TextContent(div))
	sheets := doc.StyleSheets()
	require.Len(t, sheets, 1)
	assert.Equal(t, "p", sheets[0].Rules()[0].Selector())
}

func TestSubtreeOrder(t *testing.T) {
	doc := parse(t)
	div := byID(doc, "a")
	sub := Subtree(div)
	assert.Equal(t, div, sub[0])
	var names []string
	for _, n := range sub {
		if NodeIsElement(n) {
			names = append(names, n.Data)
		}
	}
	assert.Equal(t, []string{"div", "p", "b"}, names)
	assert.True(t, NodeIsText(sub[2]))
}

func TestAttributesAndClasses(t *testing.T) {
	doc := parse(t)
	div := byID(doc, "a")
	assert.True(t, HasClass(div, "box"))
	AddClass(div, "box", "new")
	assert.Equal(t, []string{"box", "big", "new"}, Classes(div))
	RemoveClass(div, "big", "box")
	v, _ := Attr(div, "class")
	assert.Equal(t, "new", v)
	RemoveClass(div, "new")
	_, ok := Attr(div, "class")
	assert.False(t, ok, "empty class attribute is removed")
	SetAttr(div, "Data-X", "1")
	v, ok = Attr(div, "data-x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.True(t, RemoveAttr(div, "data-x"))
	assert.False(t, RemoveAttr(div, "data-x"))
}

func TestInlineStyleMutation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domfx.dom")
	defer teardown()
	//
	doc := parse(t)
	div := byID(doc, "a")
	p, ok := StyleProperty(div, "opacity")
	assert.True(t, ok)
	assert.Equal(t, style.Property("0.5"), p)
	require.NoError(t, SetStyleProperty(div, "opacity", style.Number(0.25, "")))
	require.NoError(t, SetStyleProperty(div, "Height", style.Px(12)))
	v, _ := Attr(div, "style")
	assert.Equal(t, "opacity: 0.25; height: 12px", v)
	require.NoError(t, SetStyleProperty(div, "margin", "1px 2px"))
	p, _ = StyleProperty(div, "margin-left")
	assert.Equal(t, style.Property("2px"), p)
	require.NoError(t, SetStyleProperty(div, "height", style.NullStyle))
	_, ok = StyleProperty(div, "height")
	assert.False(t, ok)
	text := &html.Node{Type: html.TextNode, Data: "x"}
	assert.ErrorIs(t, SetStyleProperty(text, "opacity", "1"), ErrNotElement)
}

func TestRemovingLastDeclarationDropsAttribute(t *testing.T) {
	doc := parse(t)
	div := byID(doc, "a")
	assert.True(t, RemoveStyleProperty(div, "opacity"))
	_, ok := Attr(div, "style")
	assert.False(t, ok)
	assert.False(t, RemoveStyleProperty(div, "opacity"))
}

func TestContentManipulation(t *testing.T) {
	doc := parse(t)
	div := byID(doc, "a")
	c := Clone(div)
	assert.Nil(t, c.Parent)
	assert.Equal(t, RenderNode(div), RenderNode(c))
	removed := SetText(div, "plain")
	require.Len(t, removed, 1)
	assert.False(t, IsAttached(removed[0]))
	assert.Equal(t, "plain", TextContent(div))
	nodes, err := ParseFragment(`<span>x</span><i>y</i>`, doc.Body())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.True(t, ReplaceWith(div, nodes...))
	assert.False(t, IsAttached(div))
	assert.Equal(t, doc.Body(), nodes[0].Parent)
	Detach(nodes[1])
	assert.Nil(t, nodes[1].Parent)
	Detach(nodes[1])
	assert.Contains(t, doc.String(), "<span>x</span>")
}
