/*
Package cssom provides an abstraction of CSS stylesheets.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML. Animations
read the current value of a style property before they start to interpolate
it, and for this they need the styles an element gets from the stylesheets of
its document, not only its inline style.

CSS handling is de-coupled by introducing appropriate interfaces
StyleSheet and Rule. A concrete implementation based on
github.com/aymerick/douceur may be found in sub-package douceuradapter.
Matching rules to elements is done in package css with the help of
https://godoc.org/github.com/andybalholm/cascadia.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom
