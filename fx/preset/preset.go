/*
Package preset provides ready-made effects for HTML elements.

An Effect knows how to animate one element: Prepare is called once,
when the animation of an element begins, reads the element's current
styles and returns the step function handed to the animation engine. The
step function maps eased progress to CSS values and writes them to the
element's inline style. An optional Done is applied after the animation
has completed successfully, e.g. to hide an element which has been faded
out.

Effects read computed styles through interface Styles, which is
implemented by css.Styler. Without a styler, inline styles and user-agent
defaults are used.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package preset

import (
	"fmt"
	"sort"

	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/dom/style"
	"github.com/npillmayer/domfx/fx"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'domfx.fx'.
func tracer() tracing.Trace {
	return tracing.Select("domfx.fx")
}

// Step is the step function type for effects on HTML elements.
type Step = fx.StepFunc[*html.Node]

// Styles computes style properties of elements.
type Styles interface {
	GetProperty(n *html.Node, key string) style.Property
}

// Effect describes how to animate a single element.
type Effect struct {
	Name    string
	Prepare func(n *html.Node, cs Styles) Step
	Done    func(n *html.Node, cs Styles)
}

// Complete applies the effect's completion handler, if any.
func (eff Effect) Complete(n *html.Node, cs Styles) {
	if eff.Done != nil {
		eff.Done(n, cs)
	}
}

// Names of the built-in effects.
const (
	NameFadeIn    = "fade-in"
	NameFadeOut   = "fade-out"
	NameSlideDown = "slide-down"
	NameSlideUp   = "slide-up"
	NameRotate    = "rotate"
	NameSqueeze   = "squeeze"
)

var effects = map[string]func() Effect{
	NameFadeIn:    FadeIn,
	NameFadeOut:   FadeOut,
	NameSlideDown: SlideDown,
	NameSlideUp:   SlideUp,
	NameRotate:    func() Effect { return Rotate(1) },
	NameSqueeze:   Squeeze,
}

// Lookup returns a built-in effect by name.
func Lookup(name string) (Effect, error) {
	mk, ok := effects[name]
	if !ok {
		return Effect{}, fmt.Errorf("preset: unknown effect %q", name)
	}
	return mk(), nil
}

// Names returns the names of the built-in effects, sorted.
func Names() []string {
	names := make([]string, 0, len(effects))
	for n := range effects {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// --- Helpers -------------------------------------------------------------

// current returns the computed value of a property. Without a styler, the
// inline style and then the user-agent default are consulted.
func current(n *html.Node, cs Styles, key string) style.Property {
	if cs != nil {
		return cs.GetProperty(n, key)
	}
	if p, ok := dom.StyleProperty(n, key); ok {
		return p
	}
	return style.GetUserAgentDefaultProperty(n, key)
}

func set(n *html.Node, key string, value style.Property) {
	if err := dom.SetStyleProperty(n, key, value); err != nil {
		tracer().Debugf("effect cannot set %s: %v", key, err)
	}
}

func lerp(from, to, p float64) float64 {
	return from + (to-from)*p
}

// IsHidden reports wether an element computes to display: none.
func IsHidden(n *html.Node, cs Styles) bool {
	return current(n, cs, "display") == "none"
}

// Show makes an element visible. An inline display: none is removed; if
// the element is still hidden by its stylesheets, its user-agent default
// display value is set.
func Show(n *html.Node, cs Styles) {
	if !dom.NodeIsElement(n) {
		return
	}
	if p, ok := dom.StyleProperty(n, "display"); ok && p == "none" {
		dom.RemoveStyleProperty(n, "display")
	}
	if IsHidden(n, cs) {
		display := style.DisplayPropertyForHTMLNode(n)
		if display == "none" {
			display = "block"
		}
		set(n, "display", display)
	}
}

// Hide sets display: none.
func Hide(n *html.Node, cs Styles) {
	if dom.NodeIsElement(n) {
		set(n, "display", "none")
	}
}
