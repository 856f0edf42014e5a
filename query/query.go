package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/dom/style/css"
	"github.com/npillmayer/domfx/fx"
	"golang.org/x/net/html"
)

// ErrNoDocument is returned when a selector is resolved without a document.
var ErrNoDocument = errors.New("query: no document")

// ErrUnsupportedArgument is returned for arguments Select cannot resolve.
var ErrUnsupportedArgument = errors.New("query: unsupported argument")

// Engine is the animation engine type the facade works with.
type Engine = fx.Engine[*html.Node]

// NodeList is implemented by collections of nodes.
type NodeList interface {
	Len() int
	Item(int) *html.Node
}

// Q binds a document to an animation engine.
type Q struct {
	doc    *dom.Document
	engine *Engine
	styler *css.Styler
}

// New creates a facade for a document. doc may be nil, in which case only
// nodes may be selected. If engine is nil, an engine with a real-time frame
// clock is created.
func New(doc *dom.Document, engine *Engine) *Q {
	if engine == nil {
		engine = fx.New[*html.Node]()
	}
	q := &Q{doc: doc, engine: engine}
	q.Restyle()
	return q
}

// Engine returns the animation engine of the facade.
func (q *Q) Engine() *Engine {
	return q.engine
}

// Document returns the document of the facade.
func (q *Q) Document() *dom.Document {
	return q.doc
}

// Restyle re-reads the document's stylesheets. Clients call it after
// modifying <style> elements.
func (q *Q) Restyle() {
	q.engine.Atomically(func() {
		if q.doc == nil {
			q.styler = css.NewStyler()
			return
		}
		q.styler = css.ForDocument(q.doc)
	})
}

// Select resolves its arguments to a selection. Arguments may be
//
//   - a CSS selector, matched against the document in document order
//   - an HTML fragment (starting with '<'), parsed into new detached nodes
//   - a *html.Node or a []*html.Node
//   - a NodeList
//   - a *Selection
//
// Nodes occuring more than once are kept at their first position. nil
// arguments are ignored.
func (q *Q) Select(args ...any) (*Selection, error) {
	var nodes []*html.Node
	var err error
	q.engine.Atomically(func() {
		nodes, err = q.resolve(args)
	})
	if err != nil {
		return nil, err
	}
	return q.selection(nodes), nil
}

// Must is like Select, but panics on errors.
func (q *Q) Must(args ...any) *Selection {
	sel, err := q.Select(args...)
	if err != nil {
		panic(err)
	}
	return sel
}

func (q *Q) resolve(args []any) ([]*html.Node, error) {
	var nodes []*html.Node
	for _, arg := range args {
		switch a := arg.(type) {
		case nil:
		case string:
			found, err := q.resolveString(a)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, found...)
		case *html.Node:
			if a != nil {
				nodes = append(nodes, a)
			}
		case []*html.Node:
			nodes = append(nodes, a...)
		case *Selection:
			if a != nil {
				nodes = append(nodes, a.nodes...)
			}
		case NodeList:
			for i := 0; i < a.Len(); i++ {
				nodes = append(nodes, a.Item(i))
			}
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedArgument, arg)
		}
	}
	return unique(nodes), nil
}

func (q *Q) resolveString(s string) ([]*html.Node, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<") {
		var context *html.Node
		if q.doc != nil {
			context = q.doc.Body()
		}
		return dom.ParseFragment(s, context)
	}
	if q.doc == nil {
		return nil, ErrNoDocument
	}
	sel, err := compile(s)
	if err != nil {
		return nil, err
	}
	return sel.MatchAll(q.doc.Root()), nil
}

func compile(s string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("query: invalid selector %q: %w", s, err)
	}
	return sel, nil
}

func (q *Q) selection(nodes []*html.Node) *Selection {
	return &Selection{q: q, nodes: nodes}
}

// unique removes nil entries and duplicates, keeping first occurences.
func unique(nodes []*html.Node) []*html.Node {
	seen := make(map[*html.Node]struct{}, len(nodes))
	r := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		r = append(r, n)
	}
	return r
}
