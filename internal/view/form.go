package view

import (
	"strings"

	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/shop"
)

// ErrorSeparator joins the messages shown under a form.
const ErrorSeparator = ", "

// Form adds submit interception, an error line and a submit button driven
// by validity to a view bound to a <form> element.
//
// The owning view supplies the submit event name and the buyer fields whose
// messages it displays, in display order.
type Form struct {
	bus         *event.Bus
	root        *dom.Element
	submit      *dom.Element
	errors      *dom.Element
	submitEvent string
	fields      []shop.Field

	valid bool
	busy  bool
}

// NewForm binds the form helper to root. Submitting the form publishes a
// Signal named submitEvent instead of performing the default action.
func NewForm(bus *event.Bus, root *dom.Element, submitEvent string, fields ...shop.Field) (*Form, error) {
	submit, err := root.Ensure(`button[type="submit"]`)
	if err != nil {
		return nil, err
	}
	errs, err := root.Ensure(".form__errors")
	if err != nil {
		return nil, err
	}
	f := &Form{
		bus:         bus,
		root:        root,
		submit:      submit,
		errors:      errs,
		submitEvent: submitEvent,
		fields:      fields,
		valid:       !submit.Disabled(),
	}
	root.Listen(dom.EventSubmit, func(e *dom.Event) {
		e.PreventDefault()
		f.bus.Publish(event.NewSignal(f.submitEvent))
	})
	return f, nil
}

// Root returns the <form> element.
func (f *Form) Root() *dom.Element { return f.root }

// SubmitButton returns the submit button.
func (f *Form) SubmitButton() *dom.Element { return f.submit }

// SetErrors shows the messages of the form's own fields.
func (f *Form) SetErrors(errs shop.ValidationErrors) {
	f.errors.SetText(strings.Join(errs.Messages(f.fields...), ErrorSeparator))
}

// Errors returns the text of the error line.
func (f *Form) Errors() string { return f.errors.Text() }

// SetValid enables the submit button when the form is valid and not busy.
func (f *Form) SetValid(valid bool) {
	f.valid = valid
	f.sync()
}

// SetBusy disables the submit button while a submission is in flight.
func (f *Form) SetBusy(busy bool) {
	f.busy = busy
	f.sync()
}

// Valid returns the last validity rendered.
func (f *Form) Valid() bool { return f.valid }

// Busy reports whether a submission is in flight.
func (f *Form) Busy() bool { return f.busy }

func (f *Form) sync() {
	f.submit.SetDisabled(!f.valid || f.busy)
}
