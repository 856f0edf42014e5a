/*
Package dom provides a headless HTML document for effects and queries.

Overview

Documents are parse trees of golang.org/x/net/html. Package dom adds
the small set of operations effects and the query facade need on top of
them: traversal, attribute and class handling, text content, cloning and
detaching of subtrees, and reading and writing single declarations of an
element's inline style.

Nodes are plain *html.Node values, which makes them usable as keys for the
animation engine. The package does no locking. Clients sharing a document
between goroutines, e.g. between an animation engine's frame loop and
application code, have to serialize access (see fx.Engine.Atomically).

Stylesheets embedded into a document with <style> elements are extracted
by Document.StyleSheets and may be used to compute styles with package
dom/style/css.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'domfx.dom'
func tracer() tracing.Trace {
	return tracing.Select("domfx.dom")
}
