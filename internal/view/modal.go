package view

import (
	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/event"
)

const modalActiveClass = "modal_active"

// ContentKind tags what the modal is showing.
type ContentKind string

const (
	ContentNone     ContentKind = ""
	ContentPreview  ContentKind = "preview"
	ContentBasket   ContentKind = "basket"
	ContentOrder    ContentKind = "order"
	ContentContacts ContentKind = "contacts"
	ContentSuccess  ContentKind = "success"
)

// ephemeral reports whether content of this kind is created per display and
// must be released when replaced.
func (k ContentKind) ephemeral() bool {
	return k == ContentPreview
}

// Modal is the overlay with a single content slot.
type Modal struct {
	bus       *event.Bus
	root      *dom.Element
	container *dom.Element
	content   *dom.Element
	kind      ContentKind
}

// NewModal binds the modal overlay. The close button and clicks on the
// overlay outside the container close it.
func NewModal(bus *event.Bus, root *dom.Element) (*Modal, error) {
	container, err := root.Ensure(".modal__container")
	if err != nil {
		return nil, err
	}
	closeButton, err := root.Ensure(".modal__close")
	if err != nil {
		return nil, err
	}
	content, err := root.Ensure(".modal__content")
	if err != nil {
		return nil, err
	}
	m := &Modal{bus: bus, root: root, container: container, content: content}

	closeButton.Listen(dom.EventClick, func(*dom.Event) { m.Close() })
	root.Listen(dom.EventClick, func(e *dom.Event) {
		if e.Target.Same(root) {
			m.Close()
		}
	})
	return m, nil
}

// Root returns the overlay element.
func (m *Modal) Root() *dom.Element { return m.root }

// Show replaces the content slot with el and opens the modal.
func (m *Modal) Show(kind ContentKind, el *dom.Element) {
	m.setContent(kind, el)
	m.Open()
}

// Open makes the overlay visible.
func (m *Modal) Open() {
	m.root.AddClass(modalActiveClass)
}

// Close hides the overlay and publishes modal:close, even when it was
// already closed. Ephemeral content is discarded.
func (m *Modal) Close() {
	m.root.RemoveClass(modalActiveClass)
	if m.kind.ephemeral() {
		m.setContent(ContentNone, nil)
	}
	m.bus.Publish(event.NewSignal(event.ModalClose))
}

// IsOpen reports whether the overlay is visible.
func (m *Modal) IsOpen() bool { return m.root.HasClass(modalActiveClass) }

// Kind returns the kind of the current content.
func (m *Modal) Kind() ContentKind { return m.kind }

// Showing reports whether the modal is open with content of kind.
func (m *Modal) Showing(kind ContentKind) bool {
	return m.IsOpen() && m.kind == kind
}

// Content returns the element in the content slot, or nil.
func (m *Modal) Content() *dom.Element {
	children := m.content.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func (m *Modal) setContent(kind ContentKind, el *dom.Element) {
	var removed []*dom.Element
	if el != nil {
		removed = m.content.ReplaceChildren(el)
	} else {
		removed = m.content.ReplaceChildren()
	}
	if m.kind.ephemeral() {
		for _, old := range removed {
			if !old.Attached() {
				m.root.Document().Release(old)
			}
		}
	}
	m.kind = kind
}
