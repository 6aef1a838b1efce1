package dom

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"

	"github.com/weblarek/larek/internal/errors"
)

const page = `<!DOCTYPE html>
<html><body>
  <header class="header"><span class="header__counter">0</span></header>
  <main class="gallery"></main>
  <form name="order">
    <input name="address" value="">
    <button type="button" name="card">Card</button>
    <button type="submit" class="order__button">Next</button>
  </form>
  <template id="card"><button class="card"><span class="card__title"></span></button></template>
  <template id="empty"></template>
</body></html>`

func newTestDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(page)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func TestDocument_Query(t *testing.T) {
	doc := newTestDocument(t)

	counter := doc.Query(".header__counter")
	if counter == nil || counter.Text() != "0" {
		t.Fatalf("expected counter with text 0, got %v", counter)
	}
	if doc.Query(".missing") != nil {
		t.Error("expected nil for unmatched selector")
	}
	if doc.Query("[[[") != nil {
		t.Error("invalid selectors should match nothing")
	}
}

func TestDocument_QuerySkipsTemplates(t *testing.T) {
	doc := newTestDocument(t)

	if doc.Query(".card__title") != nil {
		t.Error("template contents must not be searched")
	}
	if doc.Query("template#card") == nil {
		t.Error("the template element itself should be found")
	}
}

func TestElement_Ensure(t *testing.T) {
	doc := newTestDocument(t)
	form, err := doc.Ensure(`form[name="order"]`)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	if _, err := form.Ensure(`input[name="address"]`); err != nil {
		t.Errorf("Ensure existing: %v", err)
	}

	_, err = form.Ensure(".order__errors")
	var cfgErr *errors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cfgErr.Selector != ".order__errors" || cfgErr.Scope != "form[name=order]" {
		t.Errorf("unexpected error context: selector=%q scope=%q", cfgErr.Selector, cfgErr.Scope)
	}

	_, err = form.Ensure("[[[")
	if !errors.Is(err, errors.ErrInvalidSelector) {
		t.Errorf("expected ErrInvalidSelector, got %v", err)
	}
}

func TestDocument_Template(t *testing.T) {
	doc := newTestDocument(t)

	a, err := doc.Template("card")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	b, _ := doc.Template("card")

	if a.Same(b) {
		t.Error("each call should return a fresh clone")
	}
	if a.Attached() {
		t.Error("clones should be detached")
	}
	a.Query(".card__title").SetText("Changed")
	if b.Query(".card__title").Text() != "" {
		t.Error("clones must not share nodes")
	}
	tmpl := doc.Query("template#card")
	if strings.Contains(tmpl.HTML(), "Changed") {
		t.Error("template source must not change")
	}
}

func TestDocument_TemplateErrors(t *testing.T) {
	doc := newTestDocument(t)

	tests := []struct {
		id       string
		sentinel error
	}{
		{"missing", errors.ErrMissingTemplate},
		{"empty", errors.ErrMissingElement},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, err := doc.Template(tt.id)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Template(%q) error = %v, want %v", tt.id, err, tt.sentinel)
			}
		})
	}
}

func TestElement_AttributesAndClasses(t *testing.T) {
	doc := newTestDocument(t)
	btn := doc.Query(".order__button")

	btn.AddClass("button_alt")
	btn.AddClass("button_alt")
	if got := btn.Classes(); len(got) != 2 {
		t.Errorf("Classes() = %v", got)
	}
	btn.ToggleClass("button_alt", false)
	if btn.HasClass("button_alt") {
		t.Error("class should be removed")
	}

	btn.SetDisabled(true)
	if !btn.Disabled() {
		t.Error("expected disabled")
	}
	btn.SetDisabled(false)
	if btn.Disabled() || btn.HasAttr("disabled") {
		t.Error("expected enabled")
	}

	btn.SetAttr("data-id", "x")
	if v, ok := btn.Attr("data-id"); !ok || v != "x" {
		t.Errorf("Attr(data-id) = %q, %v", v, ok)
	}
}

func TestElement_ReplaceChildren(t *testing.T) {
	doc := newTestDocument(t)
	gallery := doc.Query(".gallery")

	first, _ := doc.Template("card")
	second, _ := doc.Template("card")
	gallery.Append(first)

	removed := gallery.ReplaceChildren(second)

	if len(removed) != 1 || !removed[0].Same(first) {
		t.Errorf("expected first card to be returned as removed")
	}
	if first.Attached() || !second.Attached() {
		t.Error("unexpected attachment state")
	}
	if len(gallery.Children()) != 1 {
		t.Errorf("expected one child, got %d", len(gallery.Children()))
	}
}

func TestEvents_Bubbling(t *testing.T) {
	doc := newTestDocument(t)
	form := doc.Query("form")
	btn := form.Query(`button[name="card"]`)

	var order []string
	btn.Listen(EventClick, func(e *Event) { order = append(order, "button") })
	form.Listen(EventClick, func(e *Event) {
		order = append(order, "form")
		if !e.Target.Same(btn) || !e.CurrentTarget.Same(form) {
			t.Error("unexpected target/currentTarget")
		}
	})

	btn.Click()

	if strings.Join(order, ",") != "button,form" {
		t.Errorf("order = %v", order)
	}
}

func TestEvents_SubmitButton(t *testing.T) {
	doc := newTestDocument(t)
	form := doc.Query("form")
	submit := form.Query(".order__button")

	submits := 0
	form.Listen(EventSubmit, func(e *Event) {
		e.PreventDefault()
		submits++
	})

	form.Query(`button[name="card"]`).Click()
	if submits != 0 {
		t.Error("type=button must not submit")
	}

	if submit.Click() {
		t.Error("Click should report the prevented default")
	}
	if submits != 1 {
		t.Errorf("expected one submit, got %d", submits)
	}

	submit.SetDisabled(true)
	submit.Click()
	if submits != 1 {
		t.Error("disabled buttons ignore clicks")
	}
}

func TestEvents_Input(t *testing.T) {
	doc := newTestDocument(t)
	input := doc.Query(`input[name="address"]`)

	var got string
	input.Listen(EventInput, func(e *Event) { got = e.Target.Value() })

	input.Input("Moscow")
	if got != "Moscow" || input.Value() != "Moscow" {
		t.Errorf("got %q, value %q", got, input.Value())
	}
}

func TestEvents_RemoveAndRelease(t *testing.T) {
	doc := newTestDocument(t)
	card, _ := doc.Template("card")

	calls := 0
	remove := card.Listen(EventClick, func(e *Event) { calls++ })
	card.Query(".card__title").Listen(EventClick, func(e *Event) { calls++ })
	if doc.ListenerCount() != 2 {
		t.Fatalf("ListenerCount() = %d, want 2", doc.ListenerCount())
	}

	remove()
	card.Click()
	if calls != 0 {
		t.Errorf("removed listener fired")
	}

	doc.Release(card)
	if doc.ListenerCount() != 0 {
		t.Errorf("Release should drop descendant listeners, %d left", doc.ListenerCount())
	}
}

func TestSelectorCache(t *testing.T) {
	doc := newTestDocument(t)

	for i := 0; i < 3; i++ {
		doc.Query(".header__counter")
	}
	doc.Query(".gallery")

	if got := doc.selectors.Len(); got != 2 {
		t.Errorf("expected 2 cached selectors, got %d", got)
	}
}

func TestSelectorCache_KeepsParseError(t *testing.T) {
	doc := newTestDocument(t)
	_, parseErr := cascadia.ParseGroup("[[[")
	if parseErr == nil {
		t.Fatal("expected cascadia to reject the selector")
	}

	_, err := doc.selectors.compile("[[[")
	if !errors.Is(err, errors.ErrInvalidSelector) {
		t.Errorf("expected ErrInvalidSelector, got %v", err)
	}
	if !chainHas(err, parseErr.Error()) {
		t.Errorf("parse error missing from chain of %v", err)
	}

	_, err = doc.Root().Ensure("[[[")
	if !chainHas(err, parseErr.Error()) {
		t.Errorf("Ensure lost the parse error: %v", err)
	}
}

// chainHas reports whether any error in err's tree has the message msg.
func chainHas(err error, msg string) bool {
	if err == nil {
		return false
	}
	if err.Error() == msg {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return chainHas(u.Unwrap(), msg)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if chainHas(e, msg) {
				return true
			}
		}
	}
	return false
}

func TestElement_Closest(t *testing.T) {
	doc := newTestDocument(t)
	input := doc.Query(`input[name="address"]`)

	if form := input.Closest("form"); form == nil || !form.Same(doc.Query("form")) {
		t.Errorf("Closest(form) = %v", form)
	}
	if !input.Closest("input").Same(input) {
		t.Error("Closest should include the element itself")
	}
	if input.Closest(".gallery") != nil {
		t.Error("Closest should not match siblings of ancestors")
	}
	if input.Closest("[[[") != nil {
		t.Error("invalid selector should match nothing")
	}
}
