package view

import (
	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/shop"
)

// ContactsState is the render state of the second checkout step.
type ContactsState struct {
	Email  Opt[string]
	Phone  Opt[string]
	Errors Opt[shop.ValidationErrors]
	Valid  Opt[bool]
	Busy   Opt[bool]
}

// Contacts is the email and phone form that places the order.
type Contacts struct {
	*Form
	email *dom.Element
	phone *dom.Element
}

// NewContacts binds the contacts form cloned from the contacts template.
func NewContacts(bus *event.Bus, root *dom.Element) (*Contacts, error) {
	form, err := NewForm(bus, root, event.ContactsSubmit, shop.FieldEmail, shop.FieldPhone)
	if err != nil {
		return nil, err
	}
	email, err := root.Ensure(`input[name="email"]`)
	if err != nil {
		return nil, err
	}
	phone, err := root.Ensure(`input[name="phone"]`)
	if err != nil {
		return nil, err
	}

	email.Listen(dom.EventInput, func(e *dom.Event) {
		bus.Publish(event.NewFieldChanged(shop.FieldEmail, e.Target.Value()))
	})
	phone.Listen(dom.EventInput, func(e *dom.Event) {
		bus.Publish(event.NewFieldChanged(shop.FieldPhone, e.Target.Value()))
	})

	return &Contacts{Form: form, email: email, phone: phone}, nil
}

// EmailInput returns the email field.
func (c *Contacts) EmailInput() *dom.Element { return c.email }

// PhoneInput returns the phone field.
func (c *Contacts) PhoneInput() *dom.Element { return c.phone }

// Render applies s.
func (c *Contacts) Render(s ContactsState) *dom.Element {
	s.Email.apply(c.email.SetValue)
	s.Phone.apply(c.phone.SetValue)
	s.Errors.apply(c.SetErrors)
	s.Valid.apply(c.SetValid)
	s.Busy.apply(c.SetBusy)
	return c.root
}

var _ View[ContactsState] = (*Contacts)(nil)
