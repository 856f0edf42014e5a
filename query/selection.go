package query

import (
	"strings"

	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/dom/style"
	"golang.org/x/net/html"
)

// Selection is an ordered set of distinct nodes. A Selection is not safe
// for concurrent use; the document it refers to is guarded by the engine.
type Selection struct {
	q     *Q
	nodes []*html.Node
	err   error
}

// Err returns the first error of an operation on this selection or on the
// selection it has been derived from.
func (sel *Selection) Err() error {
	return sel.err
}

func (sel *Selection) fail(err error) {
	if err != nil && sel.err == nil {
		tracer().Debugf("selection: %v", err)
		sel.err = err
	}
}

// derive creates a new selection for nodes, inheriting the error state.
func (sel *Selection) derive(nodes []*html.Node) *Selection {
	return &Selection{q: sel.q, nodes: unique(nodes), err: sel.err}
}

func (sel *Selection) atomically(fn func()) {
	sel.q.engine.Atomically(fn)
}

// --- Traversal -----------------------------------------------------------

// Len returns the number of nodes in the selection.
func (sel *Selection) Len() int {
	return len(sel.nodes)
}

// Item returns node i.
func (sel *Selection) Item(i int) *html.Node {
	return sel.Get(i)
}

// Nodes returns a copy of the nodes of the selection.
func (sel *Selection) Nodes() []*html.Node {
	r := make([]*html.Node, len(sel.nodes))
	copy(r, sel.nodes)
	return r
}

// Get returns node i. Negative indices count from the end. Out of range
// indices return nil.
func (sel *Selection) Get(i int) *html.Node {
	if i < 0 {
		i += len(sel.nodes)
	}
	if i < 0 || i >= len(sel.nodes) {
		return nil
	}
	return sel.nodes[i]
}

// Each calls fn for every node. The document is locked against frames
// while fn runs.
func (sel *Selection) Each(fn func(i int, n *html.Node)) *Selection {
	sel.atomically(func() {
		for i, n := range sel.nodes {
			fn(i, n)
		}
	})
	return sel
}

// First selects the first node.
func (sel *Selection) First() *Selection {
	return sel.derive([]*html.Node{sel.Get(0)})
}

// Last selects the last node.
func (sel *Selection) Last() *Selection {
	return sel.derive([]*html.Node{sel.Get(-1)})
}

// Find selects the descendants of all nodes matching a CSS selector.
func (sel *Selection) Find(selector string) *Selection {
	matcher, err := compile(selector)
	if err != nil {
		r := sel.derive(nil)
		r.fail(err)
		return r
	}
	var found []*html.Node
	sel.atomically(func() {
		for _, n := range sel.nodes {
			for _, m := range matcher.MatchAll(n) {
				if m != n {
					found = append(found, m)
				}
			}
		}
	})
	return sel.derive(found)
}

// Filter selects the nodes matching a CSS selector.
func (sel *Selection) Filter(selector string) *Selection {
	matcher, err := compile(selector)
	if err != nil {
		r := sel.derive(nil)
		r.fail(err)
		return r
	}
	var kept []*html.Node
	sel.atomically(func() {
		for _, n := range sel.nodes {
			if matcher.Match(n) {
				kept = append(kept, n)
			}
		}
	})
	return sel.derive(kept)
}

// Parent selects the parent elements of all nodes.
func (sel *Selection) Parent() *Selection {
	var parents []*html.Node
	sel.atomically(func() {
		for _, n := range sel.nodes {
			if dom.NodeIsElement(n.Parent) {
				parents = append(parents, n.Parent)
			}
		}
	})
	return sel.derive(parents)
}

// Children selects the element children of all nodes.
func (sel *Selection) Children() *Selection {
	var children []*html.Node
	sel.atomically(func() {
		for _, n := range sel.nodes {
			children = append(children, dom.ChildElements(n)...)
		}
	})
	return sel.derive(children)
}

// Closest selects, for every node, the node itself or its nearest
// ancestor matching a CSS selector.
func (sel *Selection) Closest(selector string) *Selection {
	matcher, err := compile(selector)
	if err != nil {
		r := sel.derive(nil)
		r.fail(err)
		return r
	}
	var found []*html.Node
	sel.atomically(func() {
		for _, n := range sel.nodes {
			for m := n; m != nil; m = m.Parent {
				if m.Type == html.ElementNode && matcher.Match(m) {
					found = append(found, m)
					break
				}
			}
		}
	})
	return sel.derive(found)
}

// --- Attributes and classes ----------------------------------------------

// Attr returns an attribute of the first node.
func (sel *Selection) Attr(key string) (string, bool) {
	var v string
	var ok bool
	sel.atomically(func() {
		v, ok = dom.Attr(sel.Get(0), key)
	})
	return v, ok
}

// SetAttr sets an attribute for all elements.
func (sel *Selection) SetAttr(key, val string) *Selection {
	return sel.eachElement(func(n *html.Node) { dom.SetAttr(n, key, val) })
}

// RemoveAttr removes an attribute from all elements.
func (sel *Selection) RemoveAttr(key string) *Selection {
	return sel.eachElement(func(n *html.Node) { dom.RemoveAttr(n, key) })
}

// AddClass adds class names to all elements.
func (sel *Selection) AddClass(names ...string) *Selection {
	return sel.eachElement(func(n *html.Node) { dom.AddClass(n, names...) })
}

// RemoveClass removes class names from all elements.
func (sel *Selection) RemoveClass(names ...string) *Selection {
	return sel.eachElement(func(n *html.Node) { dom.RemoveClass(n, names...) })
}

// ToggleClass adds a class name to elements which lack it and removes it
// from the others.
func (sel *Selection) ToggleClass(name string) *Selection {
	return sel.eachElement(func(n *html.Node) {
		if dom.HasClass(n, name) {
			dom.RemoveClass(n, name)
		} else {
			dom.AddClass(n, name)
		}
	})
}

// HasClass reports wether any node carries a class name.
func (sel *Selection) HasClass(name string) bool {
	has := false
	sel.atomically(func() {
		for _, n := range sel.nodes {
			if dom.HasClass(n, name) {
				has = true
				return
			}
		}
	})
	return has
}

func (sel *Selection) eachElement(fn func(n *html.Node)) *Selection {
	sel.atomically(func() {
		for _, n := range sel.nodes {
			if dom.NodeIsElement(n) {
				fn(n)
			}
		}
	})
	return sel
}

// --- Styles --------------------------------------------------------------

// Css returns the computed value of a style property of the first node.
func (sel *Selection) Css(key string) style.Property {
	var p style.Property
	sel.atomically(func() {
		p = sel.q.styler.GetProperty(sel.Get(0), key)
	})
	return p
}

// SetCss sets a style property of all elements. Shorthand properties are
// split into their longhands; an empty value removes the property.
func (sel *Selection) SetCss(key string, value style.Property) *Selection {
	return sel.eachElement(func(n *html.Node) {
		sel.fail(dom.SetStyleProperty(n, key, value))
	})
}

// --- Content -------------------------------------------------------------

// Text returns the combined text content of all nodes.
func (sel *Selection) Text() string {
	var b strings.Builder
	sel.atomically(func() {
		for _, n := range sel.nodes {
			b.WriteString(dom.TextContent(n))
		}
	})
	return b.String()
}

// SetText replaces the content of all elements with text. The previous
// content is purged from the engine.
func (sel *Selection) SetText(text string) *Selection {
	return sel.eachElement(func(n *html.Node) {
		sel.purge(dom.SetText(n, text)...)
	})
}

// Append parses an HTML fragment and appends a copy of it to every element.
func (sel *Selection) Append(fragment string) *Selection {
	return sel.eachElement(func(n *html.Node) {
		nodes, err := dom.ParseFragment(fragment, n)
		if err != nil {
			sel.fail(err)
			return
		}
		for _, ch := range nodes {
			n.AppendChild(ch)
		}
	})
}

// Clone selects detached deep copies of all nodes.
func (sel *Selection) Clone() *Selection {
	var clones []*html.Node
	sel.atomically(func() {
		for _, n := range sel.nodes {
			clones = append(clones, dom.Clone(n))
		}
	})
	return sel.derive(clones)
}

// AppendTo appends the nodes of the selection to the first node of
// target. Nodes are moved, not copied.
func (sel *Selection) AppendTo(target *Selection) *Selection {
	parent := target.Get(0)
	if parent == nil {
		return sel
	}
	sel.atomically(func() {
		for _, n := range sel.nodes {
			if n == parent || isAncestor(n, parent) {
				continue
			}
			dom.Detach(n)
			parent.AppendChild(n)
		}
	})
	return sel
}

// Remove detaches all nodes from the document and purges them and their
// descendants from the engine. The selection keeps the detached nodes.
func (sel *Selection) Remove() *Selection {
	sel.atomically(func() {
		for _, n := range sel.nodes {
			dom.Detach(n)
			sel.purge(n)
		}
	})
	return sel
}

// Empty removes the children of all nodes and purges them from the engine.
func (sel *Selection) Empty() *Selection {
	sel.atomically(func() {
		for _, n := range sel.nodes {
			sel.purge(dom.RemoveChildren(n)...)
		}
	})
	return sel
}

// ReplaceWith replaces every node by a copy of an HTML fragment. The
// replaced nodes are purged from the engine. The result selects the new
// nodes.
func (sel *Selection) ReplaceWith(fragment string) *Selection {
	var inserted []*html.Node
	r := sel.derive(nil)
	sel.atomically(func() {
		for _, n := range sel.nodes {
			nodes, err := dom.ParseFragment(fragment, n.Parent)
			if err != nil {
				r.fail(err)
				continue
			}
			if !dom.ReplaceWith(n, nodes...) {
				continue
			}
			inserted = append(inserted, nodes...)
			sel.purge(n)
		}
	})
	r.nodes = unique(inserted)
	return r
}

// purge tears down removed subtrees in the engine.
func (sel *Selection) purge(roots ...*html.Node) {
	var nodes []*html.Node
	for _, r := range roots {
		nodes = append(nodes, dom.Subtree(r)...)
	}
	if len(nodes) > 0 {
		tracer().Debugf("purging %d nodes", len(nodes))
		sel.q.engine.Purge(nodes...)
	}
}

func isAncestor(a, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}
