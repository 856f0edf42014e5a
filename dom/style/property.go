package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'domfx.dom'
func tracer() tracing.Trace {
	return tracing.Select("domfx.dom")
}

// Property is a raw value for a CSS property. For example, with
//
//     opacity: 0.5
//
// a property value of "0.5" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient type conversion functions and other helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// Float splits off the numeric part of a property value, e.g.
//
//     "12.5px"  =>  12.5, "px", true
//     ".5"      =>  0.5,  "",   true
//     "auto"    =>  0,    "",   false
//
func (p Property) Float() (float64, string, bool) {
	s := strings.TrimSpace(string(p))
	i := 0
	for i < len(s) && (s[i] == '-' || s[i] == '+' || s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	x, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, "", false
	}
	return x, strings.TrimSpace(s[i:]), true
}

// FloatOr returns the numeric part of a property value, or a default if
// the value is not numeric.
func (p Property) FloatOr(def float64) float64 {
	if x, _, ok := p.Float(); ok {
		return x
	}
	return def
}

// Number creates a property from a number, optionally followed by a unit.
// Numbers are written with at most 4 decimals.
func Number(x float64, unit string) Property {
	s := strconv.FormatFloat(x, 'f', 4, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	return Property(s + unit)
}

// Px creates a pixel dimension property.
func Px(x float64) Property {
	return Number(x, "px")
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Property Map -----------------------------------------------------

// PropertyMap holds CSS declarations in the order they have been set, as
// found in an element's style attribute. nil is a legal (empty) property map
// for reading.
type PropertyMap struct {
	decls []KeyValue
}

// NewPropertyMap returns a new empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

// ParseInline parses the content of a style attribute, e.g.
//
//     "color: red; margin: 0 auto"
//
// Declarations marked as !important keep their marker in the value.
func ParseInline(text string) (*PropertyMap, error) {
	pmap := NewPropertyMap()
	if strings.TrimSpace(text) == "" {
		return pmap, nil
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return pmap, fmt.Errorf("style: cannot parse declarations %q: %w", text, err)
	}
	for _, d := range decls {
		v := d.Value
		if d.Important {
			v += " !important"
		}
		pmap.Set(d.Property, Property(v))
	}
	return pmap, nil
}

// String serializes a property map in style attribute syntax.
func (pmap *PropertyMap) String() string {
	if pmap == nil {
		return ""
	}
	parts := make([]string, len(pmap.decls))
	for i, kv := range pmap.decls {
		parts[i] = kv.Key + ": " + kv.Value.String()
	}
	return strings.Join(parts, "; ")
}

// Size returns the number of declarations.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.decls)
}

// Property returns a style property value, together with an indicator
// wether it has been found in the properties map.
// No cascading is performed
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	if pmap == nil {
		return NullStyle, false
	}
	key = normKey(key)
	for _, kv := range pmap.decls {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return NullStyle, false
}

// Properties returns all declarations in order.
func (pmap *PropertyMap) Properties() []KeyValue {
	if pmap == nil {
		return nil
	}
	r := make([]KeyValue, len(pmap.decls))
	copy(r, pmap.decls)
	return r
}

// Set a property's value. Overwrites an existing value, if present.
// Setting an empty value removes the property.
//
// Style property keys are always converted to lower case.
func (pmap *PropertyMap) Set(key string, p Property) {
	key = normKey(key)
	if p.IsEmpty() {
		pmap.Remove(key)
		return
	}
	for i, kv := range pmap.decls {
		if kv.Key == key {
			pmap.decls[i].Value = p
			return
		}
	}
	pmap.decls = append(pmap.decls, KeyValue{key, p})
}

// Add a property's value. Does not overwrite an existing value, i.e., does nothing
// if a value is already set.
func (pmap *PropertyMap) Add(key string, p Property) {
	if _, exists := pmap.Property(key); !exists {
		pmap.Set(key, p)
	}
}

// Remove deletes a property. It returns false if the property has not been set.
func (pmap *PropertyMap) Remove(key string) bool {
	if pmap == nil {
		return false
	}
	key = normKey(key)
	for i, kv := range pmap.decls {
		if kv.Key == key {
			pmap.decls = append(pmap.decls[:i], pmap.decls[i+1:]...)
			return true
		}
	}
	return false
}

func normKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// --- Cascading and compound properties ----------------------------------

// IsCascading returns wether the standard behaviour for a propery is to be
// inherited or not, i.e., a call to retrieve its value will cascade.
func IsCascading(key string) bool {
	if strings.HasPrefix(key, "list-style") || strings.HasPrefix(key, "font") {
		return true
	}
	switch key {
	case "color", "cursor", "direction", "flow-into", "flow-from":
		return true
	case "letter-spacing", "line-height", "quotes", "visibility", "white-space":
		return true
	case "word-spacing", "word-break", "word-wrap", "text-align":
		return true
	}
	return false
}

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//    SplitCompountProperty("padding", "3px")
// will return
//    "padding-top"    => "3px"
//    "padding-right"  => "3px"
//    "padding-bottom" => "3px"
//    "padding-left  " => "3px"
// For the logic behind this, refer to e.g.
// https://www.w3schools.com/css/css_padding.asp .
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	switch key {
	case "margin":
		return feazeCompound4("margin", "", fourDirs, fields)
	case "padding":
		return feazeCompound4("padding", "", fourDirs, fields)
	case "border-color":
		return feazeCompound4("border", "color", fourDirs, fields)
	case "border-width":
		return feazeCompound4("border", "width", fourDirs, fields)
	case "border-style":
		return feazeCompound4("border", "style", fourDirs, fields)
	case "border-radius":
		return feazeCompound4("border", "radius", fourCorners, fields)
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// IsCompound is a predicate for properties SplitCompoundProperty knows how to split.
func IsCompound(key string) bool {
	switch key {
	case "margin", "padding", "border-color", "border-width", "border-style", "border-radius":
		return true
	}
	return false
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_border.asp
func feazeCompound4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s", p(pre, suf, "*"))
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{p(pre, suf, dirs[0]), Property(fields[0])}
	if l >= 2 {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		if l >= 3 {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
			if l == 4 {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[3])}
			} else {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
			}
		} else {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
			r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
		}
	} else {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[0])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[0])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}
