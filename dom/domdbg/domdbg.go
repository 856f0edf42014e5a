/*
Package domdbg implements helpers to debug a DOM tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"strings"

	"github.com/npillmayer/domfx/dom"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// Print renders a DOM (sub-)tree as an indented tree, e.g.
//
//     .
//     └── div#main.box [opacity: 0.5]
//         └── p
//             └── "Hello"
//
// Whitespace-only text nodes and comments are omitted.
func Print(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	p := tp.New()
	ppt(p, n)
	return p.String()
}

func ppt(p tp.Tree, n *html.Node) {
	if skip(n) && n.Parent != nil {
		return
	}
	if n.FirstChild == nil {
		p.AddNode(label(n))
		return
	}
	branch := p.AddBranch(label(n))
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		ppt(branch, ch)
	}
}

func skip(n *html.Node) bool {
	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return true
	case html.TextNode:
		return strings.TrimSpace(n.Data) == ""
	}
	return false
}

func label(n *html.Node) string {
	switch n.Type {
	case html.DocumentNode:
		return "#document"
	case html.TextNode:
		return fmt.Sprintf("%q", shortText(n.Data, 24))
	case html.ElementNode:
		var b strings.Builder
		b.WriteString(n.Data)
		if id, ok := dom.Attr(n, "id"); ok {
			b.WriteString("#" + id)
		}
		for _, c := range dom.Classes(n) {
			b.WriteString("." + c)
		}
		if s := dom.InlineStyles(n); s.Size() > 0 {
			b.WriteString(" [" + s.String() + "]")
		}
		return b.String()
	}
	return n.Data
}

func shortText(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}
