package render

import (
	"sort"

	"golang.org/x/net/html"
)

// Element is a structured HTML fragment.
type Element struct {
	Tag      string
	ID       string
	Classes  []string
	Attrs    map[string]string
	Text     string
	Hidden   bool
	Children []Element
}

// El is a shorthand constructor: tag plus classes.
func El(tag string, classes ...string) Element {
	return Element{Tag: tag, Classes: classes}
}

// WithText returns a copy of e carrying a text child.
func (e Element) WithText(text string) Element {
	e.Text = text
	return e
}

// WithAttr returns a copy of e with one more attribute.
func (e Element) WithAttr(key, val string) Element {
	attrs := make(map[string]string, len(e.Attrs)+1)
	for k, v := range e.Attrs {
		attrs[k] = v
	}
	attrs[key] = val
	e.Attrs = attrs
	return e
}

// WithChildren returns a copy of e with children appended.
func (e Element) WithChildren(children ...Element) Element {
	e.Children = append(append([]Element(nil), e.Children...), children...)
	return e
}

func (e Element) node() *html.Node {
	n := newElement(e.Tag)

	if e.ID != "" {
		setAttr(n, "id", e.ID)
	}
	for _, c := range e.Classes {
		addClass(n, c)
	}

	// sorted for stable output
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		setAttr(n, k, e.Attrs[k])
	}

	if e.Hidden {
		setStyle(n, "display", "none")
	}
	if e.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
	}
	for _, child := range e.Children {
		n.AppendChild(child.node())
	}
	return n
}
