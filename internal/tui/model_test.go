package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/loop"
	"github.com/weblarek/larek/internal/presenter"
	"github.com/weblarek/larek/internal/shop"
	"github.com/weblarek/larek/internal/view"
	"github.com/weblarek/larek/internal/web"
)

type stubShop struct {
	orders []shop.OrderRequest
}

func (s *stubShop) ProductList(context.Context) (shop.ProductList, error) {
	items := []shop.Product{
		{ID: "p1", Title: "+1 hour to the day", Category: "soft-skill", Price: decimal.NewNullDecimal(decimal.NewFromInt(750))},
		{ID: "p2", Title: "Mamka-timer", Category: "other"},
	}
	return shop.ProductList{Total: len(items), Items: items}, nil
}

func (s *stubShop) CreateOrder(_ context.Context, req shop.OrderRequest) (shop.OrderResponse, error) {
	s.orders = append(s.orders, req)
	return shop.OrderResponse{ID: "o1", Total: req.Total}, nil
}

func newTestModel(t *testing.T) (Model, *stubShop) {
	t.Helper()
	doc, err := web.Load()
	if err != nil {
		t.Fatalf("web.Load: %v", err)
	}
	bus := event.NewBus()
	views, err := presenter.BindViews(doc, bus, view.DefaultFormatter())
	if err != nil {
		t.Fatalf("BindViews: %v", err)
	}
	s := &stubShop{}
	q := loop.NewQueue()
	p := presenter.New(presenter.Deps{Bus: bus, Doc: doc, Shop: s, Runner: q}, presenter.NewModels(bus), views)

	m := NewModel(context.Background(), p, q, nil)
	return settle(t, m, m.Init()), s
}

// exec runs cmd and flattens batches. Commands that do not finish quickly
// (timers) are dropped.
func exec(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(time.Second):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, exec(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds finished tasks back into the model until none are left.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	pending := exec(t, cmd)
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		if _, ok := msg.(resumeMsg); !ok {
			continue
		}
		next, cmd := m.Update(msg)
		m = next.(Model)
		pending = append(pending, exec(t, cmd)...)
	}
	return m
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(key)
	return settle(t, next.(Model), cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

// focusOn moves focus down until it reaches el.
func focusOn(t *testing.T, m Model, el *dom.Element) Model {
	t.Helper()
	for range len(m.focusables()) + 1 {
		if m.Focus() != nil && m.Focus().Same(el) {
			return m
		}
		m = press(t, m, keyDown)
	}
	t.Fatalf("could not focus %q", label(el))
	return m
}

func typeInto(t *testing.T, m Model, el *dom.Element, text string) Model {
	t.Helper()
	m = focusOn(t, m, el)
	m = press(t, m, keyEnter)
	if !m.Editing() {
		t.Fatalf("expected editing mode on %q", label(el))
	}
	m = press(t, m, runes(text))
	return press(t, m, keyEnter)
}

func TestInit_LoadsCatalog(t *testing.T) {
	m, _ := newTestModel(t)

	if n := len(m.views.Gallery.Root().Children()); n != 2 {
		t.Fatalf("expected 2 tiles, got %d", n)
	}
	if m.Focus() == nil || !m.Focus().Same(m.views.Header.BasketButton()) {
		t.Error("focus should start on the basket button")
	}

	out := m.View()
	for _, want := range []string{"WEB-LAREK", "+1 hour to the day", "750 synapses", "Priceless"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestPreviewAndAdd(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, keyDown)
	m = press(t, m, keyEnter)
	if m.State() != presenter.Previewing {
		t.Fatalf("State() = %v, want previewing", m.State())
	}
	if got := label(m.Focus()); got != "Buy" {
		t.Fatalf("focus = %q, want Buy", got)
	}

	m = press(t, m, keyEnter)
	if m.views.Header.Counter() != "1" {
		t.Errorf("counter = %q", m.views.Header.Counter())
	}
	if got := label(m.Focus()); got != "Remove from basket" {
		t.Errorf("focus = %q after add", got)
	}

	m = press(t, m, keyEsc)
	if m.State() != presenter.Browsing {
		t.Errorf("State() = %v, want browsing", m.State())
	}
}

func TestCheckoutWithKeys(t *testing.T) {
	m, s := newTestModel(t)

	m = press(t, m, keyDown)
	m = press(t, m, keyEnter)
	m = press(t, m, keyEnter)
	m = press(t, m, keyEsc)

	m = press(t, m, runes("b"))
	if m.State() != presenter.BasketOpen {
		t.Fatalf("State() = %v, want basket", m.State())
	}
	m = focusOn(t, m, m.views.Basket.OrderButton())
	m = press(t, m, keyEnter)
	if m.State() != presenter.OrderForm {
		t.Fatalf("State() = %v, want order", m.State())
	}

	m = focusOn(t, m, m.views.Order.PaymentButton(shop.PaymentOffline))
	m = press(t, m, keyEnter)
	m = typeInto(t, m, m.views.Order.AddressInput(), "Moscow")
	if !m.views.Order.Valid() {
		t.Fatalf("order form invalid: %q", m.views.Order.Errors())
	}
	m = focusOn(t, m, m.views.Order.SubmitButton())
	m = press(t, m, keyEnter)
	if m.State() != presenter.ContactsForm {
		t.Fatalf("State() = %v, want contacts", m.State())
	}

	m = typeInto(t, m, m.views.Contacts.EmailInput(), "a@b.c")
	m = typeInto(t, m, m.views.Contacts.PhoneInput(), "+79000000000")
	m = focusOn(t, m, m.views.Contacts.SubmitButton())
	m = press(t, m, keyEnter)

	if len(s.orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(s.orders))
	}
	if s.orders[0].Payment != shop.PaymentOffline || s.orders[0].Address != "Moscow" {
		t.Errorf("unexpected order %+v", s.orders[0])
	}
	if m.State() != presenter.Success {
		t.Fatalf("State() = %v, want success", m.State())
	}
	if !strings.Contains(m.View(), "Written off 750 synapses") {
		t.Error("View() should show the written-off total")
	}

	m = press(t, m, keyEnter)
	if m.State() != presenter.Browsing {
		t.Errorf("State() = %v after continue", m.State())
	}
}

func TestDisabledControlsIgnoreEnter(t *testing.T) {
	m, _ := newTestModel(t)

	m = focusOn(t, m, m.views.Gallery.Root().Children()[1])
	m = press(t, m, keyEnter)
	if got := label(m.Focus()); got != "Unavailable" {
		t.Fatalf("focus = %q", got)
	}
	m = press(t, m, keyEnter)
	if m.views.Header.Counter() != "0" {
		t.Errorf("counter = %q, want 0", m.views.Header.Counter())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestTaskCmd_RecoversPanics(t *testing.T) {
	cmd := taskCmd(context.Background(), func(context.Context) func() {
		panic("boom")
	})

	msg, ok := cmd().(resumeMsg)
	if !ok {
		t.Fatal("expected resumeMsg")
	}
	if msg.err == nil || !strings.Contains(msg.err.Error(), "boom") {
		t.Errorf("err = %v", msg.err)
	}
	if msg.resume != nil {
		t.Error("resume should be nil after a panic")
	}
}

func TestLabel(t *testing.T) {
	doc, err := dom.ParseString(`<div>
		<button id="a"> Place
		  order </button>
		<button id="b" aria-label="close"></button>
		<input id="c" name="email">
	</div>`)
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]string{"#a": "Place order", "#b": "close", "#c": "email"}
	for sel, want := range tests {
		if got := label(doc.Query(sel)); got != want {
			t.Errorf("label(%s) = %q, want %q", sel, got, want)
		}
	}
}
