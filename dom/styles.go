package dom

import (
	"strings"

	"github.com/npillmayer/domfx/dom/style"
	"golang.org/x/net/html"
)

// InlineStyles returns the declarations of an element's style attribute.
// A malformed style attribute yields the declarations parsed so far.
func InlineStyles(n *html.Node) *style.PropertyMap {
	text, ok := Attr(n, "style")
	if !ok {
		return style.NewPropertyMap()
	}
	pmap, err := style.ParseInline(text)
	if err != nil {
		tracer().Infof("element <%s>: %v", n.Data, err)
	}
	return pmap
}

// StyleProperty returns a declaration of an element's inline style.
func StyleProperty(n *html.Node, key string) (style.Property, bool) {
	return InlineStyles(n).Property(key)
}

// SetStyleProperty sets a single declaration of an element's inline style.
// An empty value removes the declaration. Shorthand properties are split
// into their longhands. This is the mutation primitive for effects.
func SetStyleProperty(n *html.Node, key string, value style.Property) error {
	if !NodeIsElement(n) {
		return ErrNotElement
	}
	key = strings.ToLower(strings.TrimSpace(key))
	pmap := InlineStyles(n)
	if style.IsCompound(key) && !value.IsEmpty() {
		props, err := style.SplitCompoundProperty(key, value)
		if err != nil {
			return err
		}
		for _, kv := range props {
			pmap.Set(kv.Key, kv.Value)
		}
	} else {
		pmap.Set(key, value)
	}
	writeInline(n, pmap)
	return nil
}

// RemoveStyleProperty removes a declaration of an element's inline style.
func RemoveStyleProperty(n *html.Node, key string) bool {
	pmap := InlineStyles(n)
	if !pmap.Remove(key) {
		return false
	}
	writeInline(n, pmap)
	return true
}

func writeInline(n *html.Node, pmap *style.PropertyMap) {
	if pmap.Size() == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", pmap.String())
}
