/*
Package ease provides easing curves for animations.

An easing curve maps normalized time t ∈ [0,1] to an eased progress value.
Curves are looked up by name, as animation options refer to them by name:

    linear       e(t) = t
    ease-in      e(t) = t²
    ease-out     e(t) = 1-(1-t)²
    ease-in-out  quadratic blend, the default

Some additional curves (cubic, sine, bounce, elastic) are available for presets.
The actual interpolation is done by the tween functions of package
github.com/tanema/gween/ease.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ease
