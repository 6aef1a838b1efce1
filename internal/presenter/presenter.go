// Package presenter wires models to views. It owns the checkout flow: every
// transition is a reaction to a bus event, and every render is a reaction
// to a model change event.
package presenter

import (
	"context"

	"github.com/weblarek/larek/internal/api"
	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/errors"
	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/logging"
	"github.com/weblarek/larek/internal/loop"
	"github.com/weblarek/larek/internal/shop"
	"github.com/weblarek/larek/internal/view"
	"github.com/weblarek/larek/internal/web"
)

// Notices shown for failures without a server-provided message.
const (
	NoticeCatalogFailed = "Could not load the catalog. Please try again later."
	NoticeOrderFailed   = "Could not place the order. Please try again."
	NoticeEmptyBasket   = "Your basket is empty."
)

// State is the checkout state derived from what the modal shows.
type State int

const (
	Browsing State = iota
	Previewing
	BasketOpen
	OrderForm
	ContactsForm
	Submitting
	Success
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Previewing:
		return "previewing"
	case BasketOpen:
		return "basket"
	case OrderForm:
		return "order"
	case ContactsForm:
		return "contacts"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}

// Deps are the collaborators of a Presenter.
type Deps struct {
	Bus       *event.Bus
	Doc       *dom.Document
	Shop      api.Shop
	Runner    loop.Runner
	Logger    *logging.Logger
	Formatter *view.Formatter
}

// Presenter reacts to UI and model events.
type Presenter struct {
	bus    *event.Bus
	doc    *dom.Document
	shop   api.Shop
	runner loop.Runner
	logger *logging.Logger
	f      *view.Formatter

	models Models
	views  Views

	preview    *view.PreviewCard
	submitting bool
	subs       []string
}

// New creates a presenter and subscribes it to the bus.
func New(deps Deps, models Models, views Views) *Presenter {
	p := &Presenter{
		bus:    deps.Bus,
		doc:    deps.Doc,
		shop:   deps.Shop,
		runner: deps.Runner,
		logger: deps.Logger,
		f:      deps.Formatter,
		models: models,
		views:  views,
	}
	if p.logger == nil {
		p.logger = logging.NopLogger()
	}
	p.logger = p.logger.WithComponent("presenter")
	if p.f == nil {
		p.f = view.DefaultFormatter()
	}
	if p.runner == nil {
		p.runner = loop.Inline{}
	}
	p.subscribe()
	return p
}

func (p *Presenter) subscribe() {
	on := func(name string, h event.Handler) {
		p.subs = append(p.subs, p.bus.Subscribe(name, h))
	}

	// Model events
	on(event.CatalogItemsChanged, p.onCatalogChanged)
	on(event.CatalogPreviewChanged, p.onPreviewChanged)
	on(event.CartItemsChanged, p.onCartChanged)
	on(event.BuyerDataChanged, p.onBuyerChanged)

	// UI events
	on(event.CardSelect, p.onCardSelect)
	on(event.CardAdd, p.onCardAdd)
	on(event.CardRemove, p.onCardRemove)
	on(event.BasketOpen, func(event.Event) { p.show(view.ContentBasket, p.views.Basket.Root()) })
	on(event.BasketOrder, p.onBasketOrder)
	on(event.OrderPaymentChange, func(e event.Event) { p.models.Buyer.SetPayment(e.(event.PaymentChanged).Payment) })
	on(event.OrderAddressChange, func(e event.Event) { p.models.Buyer.SetAddress(e.(event.FieldChanged).Value) })
	on(event.ContactsEmailChange, func(e event.Event) { p.models.Buyer.SetEmail(e.(event.FieldChanged).Value) })
	on(event.ContactsPhoneChange, func(e event.Event) { p.models.Buyer.SetPhone(e.(event.FieldChanged).Value) })
	on(event.OrderNext, p.onOrderNext)
	on(event.ContactsSubmit, p.onContactsSubmit)
	on(event.ModalClose, p.onModalClose)
	on(event.SuccessClose, func(event.Event) { p.views.Modal.Close() })
}

// Stop unsubscribes the presenter from the bus.
func (p *Presenter) Stop() {
	for _, id := range p.subs {
		p.bus.Unsubscribe(id)
	}
	p.subs = nil
}

// Start loads the catalog. On failure the catalog is left empty and a
// notice is shown.
func (p *Presenter) Start() {
	p.runner.Go(func(ctx context.Context) func() {
		list, err := p.shop.ProductList(ctx)
		return func() {
			if err != nil {
				p.logger.Failure("catalog load failed", err)
				p.models.Catalog.SetItems(nil)
				p.views.Notice.Show(errors.UserMessage(err, NoticeCatalogFailed))
				return
			}
			p.logger.Info("catalog loaded", "products", len(list.Items))
			p.models.Catalog.SetItems(list.Items)
		}
	})
}

// State returns the current checkout state.
func (p *Presenter) State() State {
	if p.submitting {
		return Submitting
	}
	m := p.views.Modal
	if !m.IsOpen() {
		return Browsing
	}
	switch m.Kind() {
	case view.ContentPreview:
		return Previewing
	case view.ContentBasket:
		return BasketOpen
	case view.ContentOrder:
		return OrderForm
	case view.ContentContacts:
		return ContactsForm
	case view.ContentSuccess:
		return Success
	default:
		return Browsing
	}
}

// Views returns the bound views.
func (p *Presenter) Views() Views { return p.views }

// Models returns the models.
func (p *Presenter) Models() Models { return p.models }

// PreviewCard returns the card shown in the modal, or nil.
func (p *Presenter) PreviewCard() *view.PreviewCard { return p.preview }

// -----------------------------------------------------------------------------
// Catalog
// -----------------------------------------------------------------------------

func (p *Presenter) onCatalogChanged(e event.Event) {
	items := e.(event.CatalogChanged).Items

	tiles := make([]*dom.Element, 0, len(items))
	for _, product := range items {
		root, err := p.doc.Template(web.TemplateCardCatalog)
		if err != nil {
			p.logger.Error("card template missing", "error", err)
			return
		}
		id := product.ID
		card, err := view.NewCatalogCard(root, p.f, func() {
			p.bus.Publish(event.NewCardSelect(id))
		})
		if err != nil {
			p.logger.Error("binding catalog card", "error", err)
			return
		}
		tiles = append(tiles, card.Render(view.CatalogCardFor(product)))
	}
	p.views.Gallery.Render(view.GalleryState{Items: view.Some(tiles)})

	if p.views.Modal.Showing(view.ContentPreview) {
		if preview := p.models.Catalog.Preview(); preview != nil {
			p.showPreview(*preview)
		} else {
			p.views.Modal.Close()
		}
	}
}

func (p *Presenter) onCardSelect(e event.Event) {
	id := e.(event.ProductEvent).ID
	if err := p.models.Catalog.SetPreview(id); err != nil {
		p.logger.Warn("select ignored", "product_id", id, "error", err)
	}
}

func (p *Presenter) onPreviewChanged(e event.Event) {
	preview := e.(event.PreviewChanged).Preview
	if preview == nil {
		p.preview = nil
		return
	}
	p.showPreview(*preview)
}

func (p *Presenter) showPreview(product shop.Product) {
	root, err := p.doc.Template(web.TemplateCardPreview)
	if err != nil {
		p.logger.Error("preview template missing", "error", err)
		return
	}
	id := product.ID
	card, err := view.NewPreviewCard(root, p.f, func() {
		if p.models.Cart.Contains(id) {
			p.bus.Publish(event.NewCardRemove(id))
		} else {
			p.bus.Publish(event.NewCardAdd(id))
		}
	})
	if err != nil {
		p.logger.Error("binding preview card", "error", err)
		return
	}

	state := view.PreviewCardFor(product)
	p.buttonState(product, &state)
	card.Render(state)

	p.preview = card
	p.show(view.ContentPreview, card.Root())
}

func (p *Presenter) buttonState(product shop.Product, state *view.PreviewCardState) {
	cart := p.models.Cart
	state.ButtonText = view.Some(cart.ActionLabel(product))
	state.ButtonDisabled = view.Some(!cart.Contains(product.ID) && !cart.IsPurchasable(product))
}

// -----------------------------------------------------------------------------
// Cart
// -----------------------------------------------------------------------------

func (p *Presenter) onCardAdd(e event.Event) {
	id := e.(event.ProductEvent).ID
	product, ok := p.models.Catalog.ItemByID(id)
	if !ok {
		p.logger.Warn("add ignored: unknown product", "product_id", id)
		return
	}
	if !p.models.Cart.IsPurchasable(product) {
		p.logger.Warn("add ignored: not for sale", "product_id", id)
		return
	}
	p.models.Cart.AddItem(product)
}

func (p *Presenter) onCardRemove(e event.Event) {
	p.models.Cart.RemoveItem(e.(event.ProductEvent).ID)
}

func (p *Presenter) onCartChanged(e event.Event) {
	changed := e.(event.CartChanged)

	p.views.Header.Render(view.HeaderState{Counter: view.Some(changed.Count)})

	lines := make([]*dom.Element, 0, len(changed.Items))
	for i, product := range changed.Items {
		root, err := p.doc.Template(web.TemplateCardBasket)
		if err != nil {
			p.logger.Error("basket line template missing", "error", err)
			return
		}
		id := product.ID
		card, err := view.NewBasketCard(root, p.f, func() {
			p.bus.Publish(event.NewCardRemove(id))
		})
		if err != nil {
			p.logger.Error("binding basket line", "error", err)
			return
		}
		lines = append(lines, card.Render(view.BasketCardState{
			Title: view.Some(product.Title),
			Price: view.Some(product.Price),
			Index: view.Some(i + 1),
		}))
	}
	p.views.Basket.Render(view.BasketState{
		Items: view.Some(lines),
		Total: view.Some(changed.Total),
	})

	if p.preview != nil && p.views.Modal.Showing(view.ContentPreview) {
		if product := p.models.Catalog.Preview(); product != nil {
			var state view.PreviewCardState
			p.buttonState(*product, &state)
			p.preview.Render(state)
		}
	}
}

// -----------------------------------------------------------------------------
// Checkout
// -----------------------------------------------------------------------------

var (
	orderFields    = []shop.Field{shop.FieldPayment, shop.FieldAddress}
	contactsFields = []shop.Field{shop.FieldEmail, shop.FieldPhone}
)

func (p *Presenter) onBasketOrder(event.Event) {
	if p.models.Cart.Count() == 0 {
		p.views.Notice.Show(NoticeEmptyBasket)
		return
	}
	data := p.models.Buyer.Data()
	p.views.Order.Render(view.OrderState{
		Payment: view.Some(data.Payment),
		Address: view.Some(data.Address),
		Errors:  view.Some(shop.ValidationErrors{}),
		Valid:   view.Some(p.models.Buyer.ValidateFields(orderFields...).Valid()),
	})
	p.show(view.ContentOrder, p.views.Order.Root())
}

func (p *Presenter) onBuyerChanged(e event.Event) {
	data := e.(event.BuyerChanged).Data
	errs := p.models.Buyer.Validate()

	p.views.Order.Render(view.OrderState{
		Payment: view.Some(data.Payment),
		Address: view.Some(data.Address),
		Errors:  view.Some(errs),
		Valid:   view.Some(errs.Only(orderFields...).Valid()),
	})
	p.views.Contacts.Render(view.ContactsState{
		Email:  view.Some(data.Email),
		Phone:  view.Some(data.Phone),
		Errors: view.Some(errs),
		Valid:  view.Some(errs.Only(contactsFields...).Valid()),
	})
}

func (p *Presenter) onOrderNext(event.Event) {
	errs := p.models.Buyer.ValidateFields(orderFields...)
	if !errs.Valid() {
		p.views.Order.Render(view.OrderState{
			Errors: view.Some(errs),
			Valid:  view.Some(false),
		})
		return
	}

	data := p.models.Buyer.Data()
	p.views.Contacts.Render(view.ContactsState{
		Email:  view.Some(data.Email),
		Phone:  view.Some(data.Phone),
		Errors: view.Some(shop.ValidationErrors{}),
		Valid:  view.Some(p.models.Buyer.ValidateFields(contactsFields...).Valid()),
	})
	p.show(view.ContentContacts, p.views.Contacts.Root())
}

func (p *Presenter) onContactsSubmit(event.Event) {
	if p.submitting {
		p.logger.Debug("submit ignored: order in flight")
		return
	}

	errs := p.models.Buyer.Validate()
	if !errs.Valid() {
		contactErrs := errs.Only(contactsFields...)
		p.views.Contacts.Render(view.ContactsState{
			Errors: view.Some(errs),
			Valid:  view.Some(contactErrs.Valid()),
		})
		if contactErrs.Valid() {
			// Only the first step is incomplete.
			p.views.Order.Render(view.OrderState{
				Errors: view.Some(errs),
				Valid:  view.Some(false),
			})
			p.show(view.ContentOrder, p.views.Order.Root())
		}
		return
	}

	cart := p.models.Cart
	if cart.Count() == 0 {
		p.views.Notice.Show(NoticeEmptyBasket)
		return
	}

	data := p.models.Buyer.Data()
	req := shop.OrderRequest{
		Payment: data.Payment,
		Email:   data.Email,
		Phone:   data.Phone,
		Address: data.Address,
		Total:   cart.Total(),
		Items:   cart.IDs(),
	}

	p.submitting = true
	p.views.Contacts.Render(view.ContactsState{Busy: view.Some(true)})
	p.logger.Info("submitting order", "items", len(req.Items), "total", req.Total.String())

	p.runner.Go(func(ctx context.Context) func() {
		resp, err := p.shop.CreateOrder(ctx, req)
		return func() { p.orderDone(resp, err) }
	})
}

func (p *Presenter) orderDone(resp shop.OrderResponse, err error) {
	p.submitting = false
	p.views.Contacts.Render(view.ContactsState{Busy: view.Some(false)})

	if err != nil {
		p.logger.Failure("order failed", err, "retryable", errors.IsRetryable(err))
		p.views.Notice.Show(errors.UserMessage(err, NoticeOrderFailed))
		return
	}

	p.logger.Info("order placed", "order_id", resp.ID, "total", resp.Total.String())

	// Check before clearing: the models' change events do not touch the
	// modal, but the user may have closed it while the request was pending.
	stillShowing := p.views.Modal.Showing(view.ContentContacts)

	p.models.Cart.Clear()
	p.models.Buyer.Clear()
	p.views.Success.Render(view.SuccessState{Total: view.Some(resp.Total)})

	if stillShowing {
		p.show(view.ContentSuccess, p.views.Success.Root())
	} else {
		p.views.Notice.Show("Order placed. " + p.f.WrittenOff(resp.Total))
	}
}

func (p *Presenter) onModalClose(event.Event) {
	p.endPreview()
}

// show puts el in the modal. Replacing a preview ends the inspection, so a
// product is under inspection only while its card is on screen.
func (p *Presenter) show(kind view.ContentKind, el *dom.Element) {
	if kind != view.ContentPreview && p.views.Modal.Kind() == view.ContentPreview {
		p.endPreview()
	}
	p.views.Modal.Show(kind, el)
}

func (p *Presenter) endPreview() {
	if p.models.Catalog.Preview() != nil {
		p.models.Catalog.ClearPreview()
	}
	p.preview = nil
}
