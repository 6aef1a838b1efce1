package view

import "github.com/weblarek/larek/internal/dom"

// GalleryState is the render state of the catalog grid.
type GalleryState struct {
	Items Opt[[]*dom.Element]
}

// Gallery is the container for catalog tiles.
type Gallery struct {
	root *dom.Element
}

// NewGallery binds the gallery container.
func NewGallery(root *dom.Element) *Gallery {
	return &Gallery{root: root}
}

// Root returns the container.
func (g *Gallery) Root() *dom.Element { return g.root }

// Render replaces the tiles when Items is set. Replaced tiles are released.
func (g *Gallery) Render(s GalleryState) *dom.Element {
	s.Items.apply(func(items []*dom.Element) {
		replaceReleasing(g.root, items)
	})
	return g.root
}

// replaceReleasing swaps the children of parent and forgets the listeners
// of every removed child that is not being re-inserted.
func replaceReleasing(parent *dom.Element, items []*dom.Element) {
	removed := parent.ReplaceChildren(items...)
	doc := parent.Document()
	for _, old := range removed {
		if !old.Attached() {
			doc.Release(old)
		}
	}
}

var _ View[GalleryState] = (*Gallery)(nil)
