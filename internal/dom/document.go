package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/weblarek/larek/internal/errors"
)

// Document is a parsed page together with its event listeners.
type Document struct {
	root      *html.Node
	listeners map[*html.Node][]listener
	selectors *selectorCache
	nextID    uint64
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing document")
	}
	return &Document{
		root:      root,
		listeners: make(map[*html.Node][]listener),
		selectors: newSelectorCache(),
	}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document node's <html> element.
func (d *Document) Root() *Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return d.wrap(c)
		}
	}
	return d.wrap(d.root)
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	if body := d.Root().Query("body"); body != nil {
		return body
	}
	return d.Root()
}

// Ensure looks up a required element anywhere in the page.
func (d *Document) Ensure(selector string) (*Element, error) {
	return d.Root().Ensure(selector)
}

// Query returns the first element in the page matching selector, or nil.
func (d *Document) Query(selector string) *Element {
	return d.Root().Query(selector)
}

// Template returns a detached deep copy of the first element inside
// <template id="id">. Each call returns a fresh copy.
func (d *Document) Template(id string) (*Element, error) {
	tmpl := d.Root().Query("template#" + id)
	if tmpl == nil {
		return nil, errors.NewTemplateError(id)
	}
	for c := tmpl.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(cloneNode(c)), nil
		}
	}
	return nil, errors.NewTemplateError(id).WithCause(errors.ErrMissingElement)
}

// HTML renders the whole document.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, d.root)
	return buf.String()
}

// ListenerCount returns the number of registered listeners across all
// nodes, attached or detached.
func (d *Document) ListenerCount() int {
	n := 0
	for _, ls := range d.listeners {
		n += len(ls)
	}
	return n
}

// Release forgets the listeners of el and all of its descendants.
func (d *Document) Release(el *Element) {
	if el == nil {
		return
	}
	walk(el.node, func(n *html.Node) {
		delete(d.listeners, n)
	})
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

// cloneNode deep-copies n without parent or siblings.
func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
