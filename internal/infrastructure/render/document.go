package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrElementNotFound = errors.New("element not found")

// Document is the in-memory DOM of the page.
//
// Document is NOT safe for concurrent use: every read and mutation must
// happen on the page event loop.
type Document struct {
	root      *html.Node
	listeners map[string]map[EventKind][]Listener
}

// ParseDocument parses a full HTML page.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Document{
		root:      root,
		listeners: make(map[string]map[EventKind][]Listener),
	}, nil
}

// ========================================
// LOOKUP
// ========================================

func (d *Document) byID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return find(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	})
}

func (d *Document) mustByID(id string) (*html.Node, error) {
	n := d.byID(id)
	if n == nil {
		return nil, fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	return n, nil
}

// Exists reports whether an element with the given id is in the page.
func (d *Document) Exists(id string) bool {
	return d.byID(id) != nil
}

// Text returns the concatenated text content of an element.
func (d *Document) Text(id string) string {
	n := d.byID(id)
	if n == nil {
		return ""
	}
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}

// Children returns the number of element children.
func (d *Document) Children(id string) int {
	n := d.byID(id)
	if n == nil {
		return 0
	}
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// ChildIDs returns the ids of element children carrying class, in order.
func (d *Document) ChildIDs(parentID, class string) []string {
	n := d.byID(parentID)
	if n == nil {
		return nil
	}
	var ids []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (class == "" || hasClass(c, class)) {
			ids = append(ids, attr(c, "id"))
		}
	}
	return ids
}

// ChildIDByClass returns the id of the first descendant of parentID
// carrying class.
func (d *Document) ChildIDByClass(parentID, class string) (string, bool) {
	n := d.byID(parentID)
	if n == nil {
		return "", false
	}
	found := find(n, func(c *html.Node) bool {
		return c != n && c.Type == html.ElementNode && hasClass(c, class)
	})
	if found == nil {
		return "", false
	}
	return attr(found, "id"), attr(found, "id") != ""
}

// Attr returns an attribute of an element.
func (d *Document) Attr(id, key string) string {
	n := d.byID(id)
	if n == nil {
		return ""
	}
	return attr(n, key)
}

// ========================================
// MUTATION
// ========================================

// SetText replaces the element's children with one text node.
func (d *Document) SetText(id, text string) error {
	n, err := d.mustByID(id)
	if err != nil {
		return err
	}
	d.removeChildren(n, "")
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return nil
}

// SetHTML replaces the element's children with a parsed markup fragment.
func (d *Document) SetHTML(id, raw string) error {
	n, err := d.mustByID(id)
	if err != nil {
		return err
	}

	nodes, err := html.ParseFragment(strings.NewReader(raw), n)
	if err != nil {
		return fmt.Errorf("failed to parse fragment for #%s: %w", id, err)
	}

	d.removeChildren(n, "")
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// SetFragments replaces the element's children with one node per fragment.
func (d *Document) SetFragments(id string, frags []Element) error {
	n, err := d.mustByID(id)
	if err != nil {
		return err
	}
	d.removeChildren(n, "")
	for _, f := range frags {
		n.AppendChild(f.node())
	}
	return nil
}

// Clear removes children carrying class; an empty class removes all.
func (d *Document) Clear(parentID, class string) error {
	n, err := d.mustByID(parentID)
	if err != nil {
		return err
	}
	d.removeChildren(n, class)
	return nil
}

// Insert adds el before the first child carrying anchorClass, or appends
// it when no such child exists.
func (d *Document) Insert(parentID, anchorClass string, el Element) error {
	n, err := d.mustByID(parentID)
	if err != nil {
		return err
	}

	var anchor *html.Node
	if anchorClass != "" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && hasClass(c, anchorClass) {
				anchor = c
				break
			}
		}
	}

	n.InsertBefore(el.node(), anchor)
	return nil
}

// SetVisible toggles display between block and none.
func (d *Document) SetVisible(id string, visible bool) error {
	n, err := d.mustByID(id)
	if err != nil {
		return err
	}
	if visible {
		setStyle(n, "display", "block")
	} else {
		setStyle(n, "display", "none")
	}
	return nil
}

// Visible reports whether the element is not display:none.
func (d *Document) Visible(id string) bool {
	n := d.byID(id)
	if n == nil {
		return false
	}
	return styleValue(n, "display") != "none"
}

// SetClass adds or removes one class.
func (d *Document) SetClass(id, class string, on bool) error {
	n, err := d.mustByID(id)
	if err != nil {
		return err
	}
	if on {
		addClass(n, class)
	} else {
		removeClass(n, class)
	}
	return nil
}

// HasClass reports whether the element carries class.
func (d *Document) HasClass(id, class string) bool {
	n := d.byID(id)
	return n != nil && hasClass(n, class)
}

// Render serialises the whole page.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) removeChildren(n *html.Node, class string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if class == "" || (c.Type == html.ElementNode && hasClass(c, class)) {
			d.dropListeners(c)
			n.RemoveChild(c)
		}
		c = next
	}
}

// dropListeners forgets listeners of a detached subtree.
func (d *Document) dropListeners(n *html.Node) {
	if n.Type == html.ElementNode {
		if id := attr(n, "id"); id != "" {
			delete(d.listeners, id)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.dropListeners(c)
	}
}

// ========================================
// NODE HELPERS
// ========================================

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	classes := strings.Fields(attr(n, "class"))
	setAttr(n, "class", strings.Join(append(classes, class), " "))
}

func removeClass(n *html.Node, class string) {
	classes := strings.Fields(attr(n, "class"))
	kept := classes[:0]
	for _, c := range classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	setAttr(n, "class", strings.Join(kept, " "))
}

func styleValue(n *html.Node, prop string) string {
	for _, decl := range strings.Split(attr(n, "style"), ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == prop {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func setStyle(n *html.Node, prop, val string) {
	var decls []string
	for _, decl := range strings.Split(attr(n, "style"), ";") {
		k, _, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(k) == prop {
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	decls = append(decls, prop+": "+val)
	setAttr(n, "style", strings.Join(decls, "; "))
}

func newElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}
