package view

import "github.com/weblarek/larek/internal/dom"

const noticeActiveClass = "notice_active"

// Notice is a dismissible, non-blocking message strip.
type Notice struct {
	root *dom.Element
	text *dom.Element
}

// NewNotice binds the notice strip.
func NewNotice(root *dom.Element) (*Notice, error) {
	text, err := root.Ensure(".notice__text")
	if err != nil {
		return nil, err
	}
	closeButton, err := root.Ensure(".notice__close")
	if err != nil {
		return nil, err
	}
	n := &Notice{root: root, text: text}
	closeButton.Listen(dom.EventClick, func(*dom.Event) { n.Hide() })
	return n, nil
}

// Root returns the notice element.
func (n *Notice) Root() *dom.Element { return n.root }

// Show displays msg, replacing any visible message.
func (n *Notice) Show(msg string) {
	n.text.SetText(msg)
	n.root.AddClass(noticeActiveClass)
}

// Hide dismisses the notice.
func (n *Notice) Hide() {
	n.root.RemoveClass(noticeActiveClass)
	n.text.SetText("")
}

// Visible reports whether a message is shown.
func (n *Notice) Visible() bool { return n.root.HasClass(noticeActiveClass) }

// Message returns the shown message.
func (n *Notice) Message() string { return n.text.Text() }
