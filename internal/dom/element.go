package dom

import (
	"bytes"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/weblarek/larek/internal/errors"
)

// Element is a handle on an element node. Several handles may refer to the
// same node; compare them with Same.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying parse-tree node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the document the element belongs to.
func (e *Element) Document() *Document { return e.doc }

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.node.Data }

// Same reports whether e and other refer to the same node.
func (e *Element) Same(other *Element) bool {
	return e != nil && other != nil && e.node == other.node
}

// -----------------------------------------------------------------------------
// Lookup
// -----------------------------------------------------------------------------

// Query returns the first descendant matching selector, or nil. Template
// contents are never searched. An invalid selector matches nothing.
func (e *Element) Query(selector string) *Element {
	m, err := e.doc.selectors.compile(selector)
	if err != nil {
		return nil
	}
	var found *html.Node
	e.descend(m, func(n *html.Node) bool {
		found = n
		return false
	})
	return e.doc.wrap(found)
}

// QueryAll returns every descendant matching selector in document order.
func (e *Element) QueryAll(selector string) []*Element {
	m, err := e.doc.selectors.compile(selector)
	if err != nil {
		return nil
	}
	var out []*Element
	e.descend(m, func(n *html.Node) bool {
		out = append(out, e.doc.wrap(n))
		return true
	})
	return out
}

// Ensure is Query for elements a view cannot work without. A missing
// element, or an invalid selector, yields a *errors.ConfigError naming both
// the selector and e.
func (e *Element) Ensure(selector string) (*Element, error) {
	if _, err := e.doc.selectors.compile(selector); err != nil {
		return nil, errors.NewConfigError(selector, e.describe()).WithCause(err)
	}
	if el := e.Query(selector); el != nil {
		return el, nil
	}
	return nil, errors.NewConfigError(selector, e.describe())
}

// Matches reports whether e itself matches selector.
func (e *Element) Matches(selector string) bool {
	m, err := e.doc.selectors.compile(selector)
	return err == nil && m.Match(e.node)
}

// Closest returns the nearest inclusive ancestor matching selector.
func (e *Element) Closest(selector string) *Element {
	m, err := e.doc.selectors.compile(selector)
	if err != nil {
		return nil
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && m.Match(n) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// descend visits matching descendants until visit returns false.
func (e *Element) descend(m cascadia.Matcher, visit func(*html.Node) bool) {
	var rec func(*html.Node) bool
	rec = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if m.Match(c) && !visit(c) {
				return false
			}
			if c.DataAtom == atom.Template {
				continue
			}
			if !rec(c) {
				return false
			}
		}
		return true
	}
	rec(e.node)
}

// describe renders a short selector-like name for error messages.
func (e *Element) describe() string {
	var b strings.Builder
	b.WriteString(e.node.Data)
	if id, ok := e.Attr("id"); ok && id != "" {
		b.WriteString("#" + id)
	} else if name, ok := e.Attr("name"); ok && name != "" {
		b.WriteString("[name=" + name + "]")
	} else if cls := e.Classes(); len(cls) > 0 {
		b.WriteString("." + cls[0])
	}
	return b.String()
}

// -----------------------------------------------------------------------------
// Tree
// -----------------------------------------------------------------------------

// Parent returns the parent element, or nil for detached roots.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Attached reports whether e is reachable from the document root.
func (e *Element) Attached() bool {
	for n := e.node; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// Append moves children to the end of e.
func (e *Element) Append(children ...*Element) {
	for _, c := range children {
		if c == nil {
			continue
		}
		detach(c.node)
		e.node.AppendChild(c.node)
	}
}

// ReplaceChildren removes every child of e and appends children. The
// removed nodes are returned so the caller can Release them.
func (e *Element) ReplaceChildren(children ...*Element) []*Element {
	var removed []*Element
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		if c.Type == html.ElementNode {
			removed = append(removed, e.doc.wrap(c))
		}
		c = next
	}
	e.Append(children...)
	return removed
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	detach(e.node)
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// -----------------------------------------------------------------------------
// Content
// -----------------------------------------------------------------------------

// Text returns the concatenated text of e and its descendants.
func (e *Element) Text() string {
	var b strings.Builder
	walk(e.node, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}

// SetText replaces the children of e with a single text node.
func (e *Element) SetText(s string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if s != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, adding it when absent.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
}

// HasAttr reports whether an attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.Classes(), name)
}

// ToggleClass adds name when on is true and removes it otherwise.
func (e *Element) ToggleClass(name string, on bool) {
	cls := e.Classes()
	has := slices.Contains(cls, name)
	switch {
	case on && !has:
		cls = append(cls, name)
	case !on && has:
		cls = slices.DeleteFunc(cls, func(c string) bool { return c == name })
	default:
		return
	}
	e.SetAttr("class", strings.Join(cls, " "))
}

// AddClass adds name to the class list.
func (e *Element) AddClass(name string) { e.ToggleClass(name, true) }

// RemoveClass removes name from the class list.
func (e *Element) RemoveClass(name string) { e.ToggleClass(name, false) }

// Value returns the value attribute of a form control.
func (e *Element) Value() string {
	v, _ := e.Attr("value")
	return v
}

// SetValue sets the value attribute of a form control.
func (e *Element) SetValue(v string) {
	e.SetAttr("value", v)
}

// Disabled reports whether the disabled attribute is present.
func (e *Element) Disabled() bool {
	return e.HasAttr("disabled")
}

// SetDisabled adds or removes the disabled attribute.
func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttr("disabled", "")
	} else {
		e.RemoveAttr("disabled")
	}
}

// HTML renders e and its descendants.
func (e *Element) HTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, e.node)
	return buf.String()
}
