package ease

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sort"

	gease "github.com/tanema/gween/ease"
)

// Func is an easing curve. Input t is expected to be clamped to [0,1] by the caller.
type Func func(t float64) float64

// Names of the standard curves.
const (
	Linear    = "linear"
	In        = "ease-in"
	Out       = "ease-out"
	InOut     = "ease-in-out"
	Default   = InOut
	InCubic   = "ease-in-cubic"
	OutCubic  = "ease-out-cubic"
	InOutSine = "ease-in-out-sine"
	OutBounce = "bounce"
	Elastic   = "elastic"
)

// FromTween lifts a gween tween function onto the unit interval.
// Tween functions take (elapsed, begin, change, duration); we run them with
// begin = 0, change = 1 and duration = 1.
func FromTween(fn gease.TweenFunc) Func {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var curves = map[string]Func{
	Linear:    func(t float64) float64 { return t },
	In:        FromTween(gease.InQuad),
	Out:       FromTween(gease.OutQuad),
	InOut:     FromTween(gease.InOutQuad),
	InCubic:   FromTween(gease.InCubic),
	OutCubic:  FromTween(gease.OutCubic),
	InOutSine: FromTween(gease.InOutSine),
	OutBounce: FromTween(gease.OutBounce),
	Elastic:   FromTween(gease.OutElastic),
}

// Lookup returns the curve registered for name and a flag telling if it
// has been found.
func Lookup(name string) (Func, bool) {
	f, ok := curves[name]
	return f, ok
}

// Get returns the curve registered for name. Unknown names yield the
// default curve (ease-in-out).
func Get(name string) Func {
	if f, ok := curves[name]; ok {
		return f
	}
	if name != "" {
		tracer().Infof("unknown easing %q, using %s", name, Default)
	}
	return curves[Default]
}

// Names lists all known curve names in lexical order.
func Names() []string {
	names := make([]string, 0, len(curves))
	for n := range curves {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clamp restricts t to the unit interval.
func Clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
