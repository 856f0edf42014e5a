package css

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/dom/style"
	"github.com/npillmayer/domfx/dom/style/cssom"
	"golang.org/x/net/html"
)

// inlineSpecificity ranks declarations of a style attribute above every
// selector.
var inlineSpecificity = cascadia.Specificity{1 << 20, 0, 0}

const importantMarker = "!important"

// Styler computes styles from a fixed set of stylesheets.
// Selectors are compiled once, when the styler is created.
type Styler struct {
	rules []compiledRule
}

type compiledRule struct {
	selectors cascadia.SelectorGroup
	rule      cssom.Rule
	order     int
}

// NewStyler creates a styler for a list of stylesheets, given in source
// order. Rules with selectors cascadia cannot compile are skipped.
func NewStyler(sheets ...cssom.StyleSheet) *Styler {
	s := &Styler{}
	order := 0
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		for _, r := range sheet.Rules() {
			group, err := cascadia.ParseGroup(r.Selector())
			if err != nil {
				tracer().Infof("skipping rule %q: %v", r.Selector(), err)
				continue
			}
			s.rules = append(s.rules, compiledRule{selectors: group, rule: r, order: order})
			order++
		}
	}
	tracer().Debugf("styler has %d rules", len(s.rules))
	return s
}

// ForDocument creates a styler for the <style> elements of a document.
func ForDocument(doc *dom.Document) *Styler {
	return NewStyler(doc.StyleSheets()...)
}

// candidate is a declaration competing in the cascade.
type candidate struct {
	value       style.Property
	important   bool
	specificity cascadia.Specificity
	order       int
}

// wins reports wether c takes precedence over other.
func (c candidate) wins(other candidate) bool {
	if c.important != other.important {
		return c.important
	}
	if c.specificity != other.specificity {
		return other.specificity.Less(c.specificity)
	}
	return c.order > other.order
}

// GetProperty returns the computed value of property key for element n.
// Every property has a value, at least a user-agent default, which may be
// the empty NullStyle for properties this package does not know about.
func (s *Styler) GetProperty(n *html.Node, key string) style.Property {
	key = strings.ToLower(strings.TrimSpace(key))
	if n == nil || n.Type != html.ElementNode {
		return style.NullStyle
	}
	p, found := s.GetCascadedProperty(n, key)
	switch {
	case p.IsInitial():
		return style.GetUserAgentDefaultProperty(n, key)
	case p.IsInherit(), !found && style.IsCascading(key):
		if parent := parentElement(n); parent != nil {
			return s.GetProperty(parent, key)
		}
		return style.GetUserAgentDefaultProperty(n, key)
	case !found:
		return style.GetUserAgentDefaultProperty(n, key)
	}
	return p
}

// GetCascadedProperty returns the winning declaration for property key from
// the inline style of n and all matching rules. No inheritance or
// defaulting is performed.
func (s *Styler) GetCascadedProperty(n *html.Node, key string) (style.Property, bool) {
	var best candidate
	found := false
	consider := func(c candidate) {
		if !found || c.wins(best) {
			best = c
			found = true
		}
	}
	for _, r := range s.rules {
		spec, ok := matchSpecificity(r.selectors, n)
		if !ok {
			continue
		}
		v := r.rule.Value(key)
		if v.IsEmpty() {
			continue
		}
		consider(candidate{value: v, important: r.rule.IsImportant(key), specificity: spec, order: r.order})
	}
	if v, ok := dom.StyleProperty(n, key); ok {
		value, important := stripImportant(v)
		consider(candidate{value: value, important: important, specificity: inlineSpecificity})
	}
	return best.value, found
}

// ComputedStyles returns the computed values for a list of properties.
func (s *Styler) ComputedStyles(n *html.Node, keys ...string) *style.PropertyMap {
	pmap := style.NewPropertyMap()
	for _, k := range keys {
		pmap.Set(k, s.GetProperty(n, k))
	}
	return pmap
}

// matchSpecificity returns the highest specificity of the selectors of a
// group matching n.
func matchSpecificity(group cascadia.SelectorGroup, n *html.Node) (cascadia.Specificity, bool) {
	var best cascadia.Specificity
	matched := false
	for _, sel := range group {
		if !sel.Match(n) {
			continue
		}
		spec := sel.Specificity()
		if !matched || best.Less(spec) {
			best = spec
		}
		matched = true
	}
	return best, matched
}

func stripImportant(p style.Property) (style.Property, bool) {
	v := strings.TrimSpace(string(p))
	if strings.HasSuffix(v, importantMarker) {
		return style.Property(strings.TrimSpace(strings.TrimSuffix(v, importantMarker))), true
	}
	return style.Property(v), false
}

func parentElement(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}
