package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/domfx/dom/style/cssom"
	"github.com/npillmayer/domfx/dom/style/cssom/douceuradapter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNotElement is returned for operations which need an element node.
var ErrNotElement = errors.New("dom: not an element node")

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document. Following HTML5 parsing rules, the
// document will always have <html>, <head> and <body> elements.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: cannot parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromNode wraps an existing parse tree.
func FromNode(root *html.Node) *Document {
	return &Document{root: root}
}

// Root returns the document node.
func (doc *Document) Root() *html.Node {
	return doc.root
}

// Head returns the <head> element.
func (doc *Document) Head() *html.Node {
	return FindElement(doc.root, atom.Head)
}

// Body returns the <body> element.
func (doc *Document) Body() *html.Node {
	return FindElement(doc.root, atom.Body)
}

// Render writes the document as HTML.
func (doc *Document) Render(w io.Writer) error {
	return html.Render(w, doc.root)
}

func (doc *Document) String() string {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		tracer().Errorf("cannot render document: %v", err)
	}
	return buf.String()
}

// StyleSheets returns the stylesheets embedded in <style> elements of the
// document, in document order.
func (doc *Document) StyleSheets() []cssom.StyleSheet {
	extracted := douceuradapter.ExtractStyleElements(doc.root)
	sheets := make([]cssom.StyleSheet, len(extracted))
	for i, s := range extracted {
		sheets[i] = s
	}
	return sheets
}

// ParseFragment parses an HTML fragment in the context of element parent.
// parent may be nil, in which case a <body> context is assumed.
// The returned nodes are detached.
func ParseFragment(fragment string, parent *html.Node) ([]*html.Node, error) {
	context := parent
	if context == nil || context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("dom: cannot parse fragment: %w", err)
	}
	return nodes, nil
}

// RenderNode renders a single node and its subtree as HTML.
func RenderNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		tracer().Errorf("cannot render node: %v", err)
	}
	return buf.String()
}
