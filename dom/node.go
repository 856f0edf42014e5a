package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeIsText is a predicate to match text-nodes of a DOM.
func NodeIsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// NodeIsElement is a predicate to match element-nodes of a DOM.
func NodeIsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Subtree returns n and all its descendants in document order.
func Subtree(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	nodes := []*html.Node{n}
	return append(nodes, Descendants(n)...)
}

// Descendants returns all descendants of n in document order, excluding n.
func Descendants(n *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for ch := p.FirstChild; ch != nil; ch = ch.NextSibling {
			nodes = append(nodes, ch)
			walk(ch)
		}
	}
	if n != nil {
		walk(n)
	}
	return nodes
}

// Ancestors returns the chain of parents of n, nearest first.
func Ancestors(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for p := n.Parent; p != nil; p = p.Parent {
		nodes = append(nodes, p)
	}
	return nodes
}

// ChildElements returns the element children of n.
func ChildElements(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			nodes = append(nodes, ch)
		}
	}
	return nodes
}

// FindElement returns the first element in the subtree of n with tag a.
func FindElement(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := FindElement(ch, a); r != nil {
			return r
		}
	}
	return nil
}

// IsAttached returns true if n is part of a document tree.
func IsAttached(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

// --- Attributes ----------------------------------------------------------

// Attr returns the value of an attribute, together with an indicator
// wether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	key = strings.ToLower(key)
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	key = strings.ToLower(key)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute. It returns false if the attribute was
// not present.
func RemoveAttr(n *html.Node, key string) bool {
	key = strings.ToLower(key)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

// Classes returns the class names of an element.
func Classes(n *html.Node) []string {
	c, _ := Attr(n, "class")
	return strings.Fields(c)
}

// HasClass checks if an element carries class name c.
func HasClass(n *html.Node, c string) bool {
	for _, cl := range Classes(n) {
		if cl == c {
			return true
		}
	}
	return false
}

// AddClass adds class names, skipping the ones already present.
func AddClass(n *html.Node, names ...string) {
	classes := Classes(n)
	changed := false
	for _, c := range names {
		if c == "" || contains(classes, c) {
			continue
		}
		classes = append(classes, c)
		changed = true
	}
	if changed {
		SetAttr(n, "class", strings.Join(classes, " "))
	}
}

// RemoveClass removes class names. An empty class attribute is removed.
func RemoveClass(n *html.Node, names ...string) {
	classes := Classes(n)
	kept := classes[:0]
	for _, c := range classes {
		if !contains(names, c) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// --- Content -------------------------------------------------------------

// TextContent returns the concatenated text of n and all its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for _, d := range Descendants(n) {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return b.String()
}

// SetText replaces all children of n with a single text node.
// It returns the removed children.
func SetText(n *html.Node, text string) []*html.Node {
	removed := RemoveChildren(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return removed
}

// RemoveChildren detaches all children of n and returns them.
func RemoveChildren(n *html.Node) []*html.Node {
	var removed []*html.Node
	for ch := n.FirstChild; ch != nil; ch = n.FirstChild {
		n.RemoveChild(ch)
		removed = append(removed, ch)
	}
	return removed
}

// Detach removes n from its parent. Detaching an unattached node is a no-op.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ReplaceWith replaces n with a list of detached nodes.
// It returns false if n has no parent.
func ReplaceWith(n *html.Node, nodes ...*html.Node) bool {
	if n.Parent == nil {
		return false
	}
	for _, r := range nodes {
		n.Parent.InsertBefore(r, n)
	}
	n.Parent.RemoveChild(n)
	return true
}

// Clone returns a deep copy of n. The copy is detached.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if n.Attr != nil {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(Clone(ch))
	}
	return c
}
