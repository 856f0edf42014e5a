package preset

import (
	"fmt"

	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/dom/style"
	"golang.org/x/net/html"
)

// Tween animates a numeric CSS property from one value to another.
func Tween(key string, from, to float64, unit string) Effect {
	return Effect{
		Name: "tween-" + key,
		Prepare: func(n *html.Node, cs Styles) Step {
			return func(n *html.Node, p float64) {
				set(n, key, style.Number(lerp(from, to, p), unit))
			}
		},
	}
}

// TweenTo animates a numeric CSS property from its current value to a
// target value. The unit of the current value is kept if to has none.
func TweenTo(key string, to float64, unit string) Effect {
	return Effect{
		Name: "tween-" + key,
		Prepare: func(n *html.Node, cs Styles) Step {
			from, u, ok := current(n, cs, key).Float()
			if !ok {
				from = 0
			}
			if unit == "" {
				unit = u
			}
			return func(n *html.Node, p float64) {
				set(n, key, style.Number(lerp(from, to, p), unit))
			}
		},
	}
}

// FadeIn shows an element and raises its opacity to 1. Hidden elements
// start from opacity 0.
func FadeIn() Effect {
	return Effect{
		Name: NameFadeIn,
		Prepare: func(n *html.Node, cs Styles) Step {
			from := 0.0
			if !IsHidden(n, cs) {
				from = current(n, cs, "opacity").FloatOr(1)
			}
			Show(n, cs)
			return func(n *html.Node, p float64) {
				set(n, "opacity", style.Number(lerp(from, 1, p), ""))
			}
		},
	}
}

// FadeOut lowers an element's opacity to 0 and hides it when done.
// The inline opacity is removed afterwards.
func FadeOut() Effect {
	return Effect{
		Name: NameFadeOut,
		Prepare: func(n *html.Node, cs Styles) Step {
			from := current(n, cs, "opacity").FloatOr(1)
			return func(n *html.Node, p float64) {
				set(n, "opacity", style.Number(lerp(from, 0, p), ""))
			}
		},
		Done: func(n *html.Node, cs Styles) {
			Hide(n, cs)
			dom.RemoveStyleProperty(n, "opacity")
		},
	}
}

// slideRange returns the height an element slides to or from. Elements
// without a pixel height slide in percent of their natural height.
func slideRange(n *html.Node, cs Styles) (float64, string) {
	h, unit, ok := current(n, cs, "height").Float()
	if ok && unit == "px" {
		return h, "px"
	}
	return 100, "%"
}

// SlideDown shows an element by growing its height from 0.
func SlideDown() Effect {
	return Effect{
		Name: NameSlideDown,
		Prepare: func(n *html.Node, cs Styles) Step {
			to, unit := slideRange(n, cs)
			set(n, "overflow", "hidden")
			set(n, "height", style.Number(0, unit))
			Show(n, cs)
			return func(n *html.Node, p float64) {
				set(n, "height", style.Number(lerp(0, to, p), unit))
			}
		},
		Done: func(n *html.Node, cs Styles) {
			dom.RemoveStyleProperty(n, "overflow")
			if unit := heightUnit(n); unit == "%" {
				dom.RemoveStyleProperty(n, "height")
			}
		},
	}
}

// SlideUp hides an element by shrinking its height to 0.
func SlideUp() Effect {
	return Effect{
		Name: NameSlideUp,
		Prepare: func(n *html.Node, cs Styles) Step {
			from, unit := slideRange(n, cs)
			set(n, "overflow", "hidden")
			return func(n *html.Node, p float64) {
				set(n, "height", style.Number(lerp(from, 0, p), unit))
			}
		},
		Done: func(n *html.Node, cs Styles) {
			Hide(n, cs)
			dom.RemoveStyleProperty(n, "overflow")
			dom.RemoveStyleProperty(n, "height")
		},
	}
}

func heightUnit(n *html.Node) string {
	p, _ := dom.StyleProperty(n, "height")
	_, unit, _ := p.Float()
	return unit
}

// Rotate turns an element by a number of full turns.
func Rotate(turns float64) Effect {
	return Effect{
		Name: NameRotate,
		Prepare: func(n *html.Node, cs Styles) Step {
			return func(n *html.Node, p float64) {
				set(n, "transform", style.Property(fmt.Sprintf("rotate(%s)", style.Number(360*turns*p, "deg"))))
			}
		},
	}
}

// Squeeze scales an element down to nothing and hides it when done.
func Squeeze() Effect {
	return Effect{
		Name: NameSqueeze,
		Prepare: func(n *html.Node, cs Styles) Step {
			return func(n *html.Node, p float64) {
				set(n, "transform", style.Property(fmt.Sprintf("scale(%s)", style.Number(1-p, ""))))
			}
		},
		Done: func(n *html.Node, cs Styles) {
			Hide(n, cs)
			dom.RemoveStyleProperty(n, "transform")
		},
	}
}
