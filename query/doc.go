/*
Package query is a chainable facade over a document and an animation engine,
in the spirit of jQuery.

A Q binds a document to an animation engine. Q.Select resolves its
arguments (CSS selectors, HTML fragments, nodes, node lists and other
selections) to a Selection, an ordered set of distinct nodes. Operations on
a selection fan out to every node: DOM helpers for attributes, classes,
styles and content, and animation operations which start effects, stop them
or work with the per-node task queues of the engine.

	q := query.New(doc, engine)
	q.Must(".box").FadeOut(fx.Duration(300 * time.Millisecond)).
		Then(func(sel *query.Selection) {
			sel.Remove()
		})

All access to the document is serialized with the engine's frames, so
application code and running effects do not race. Operations removing
nodes from the document purge them from the engine: their animations are
abandoned and their queues are cleared.

Errors of chainable operations are recorded in the selection and reported
by Selection.Err.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package query

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'domfx.query'.
func tracer() tracing.Trace {
	return tracing.Select("domfx.query")
}
