/*
Package css computes the styles of DOM elements.

CSS properties are plentyful and some of them are complicated.
This package trys to shield clients from the complicated semantics of
computing style attributes for a given node. A Styler resolves a property
for an element the way a browser's getComputedStyle would, restricted to
what is relevant for headless effects:

  - declarations of the element's style attribute,
  - declarations of stylesheet rules matching the element (selector
    matching by https://godoc.org/github.com/andybalholm/cascadia),
    honouring !important, selector specificity and source order,
  - inheritance from the parent element for inherited properties and
    for the keyword "inherit",
  - user-agent defaults.

Values are not converted to absolute units.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

// see
// https://developer.mozilla.org/en-US/docs/Web/CSS/Reference#dom-css_cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'domfx.dom'.
func tracer() tracing.Trace {
	return tracing.Select("domfx.dom")
}
