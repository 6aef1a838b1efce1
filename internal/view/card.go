package view

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/shop"
)

// CardKind tags the presentation context of a product card.
type CardKind int

const (
	CardCatalog CardKind = iota
	CardPreview
	CardBasket
)

func (k CardKind) String() string {
	switch k {
	case CardCatalog:
		return "catalog"
	case CardPreview:
		return "preview"
	case CardBasket:
		return "basket"
	default:
		return "unknown"
	}
}

// Card is implemented by CatalogCard, PreviewCard and BasketCard.
type Card interface {
	Kind() CardKind
	Root() *dom.Element
	// Release drops the card's listeners. The card must not be used after.
	Release()
}

// cardBase is the title and price rendering shared by every card kind.
type cardBase struct {
	root  *dom.Element
	title *dom.Element
	price *dom.Element
	f     *Formatter
}

func newCardBase(root *dom.Element, f *Formatter) (cardBase, error) {
	title, err := root.Ensure(".card__title")
	if err != nil {
		return cardBase{}, err
	}
	price, err := root.Ensure(".card__price")
	if err != nil {
		return cardBase{}, err
	}
	if f == nil {
		f = DefaultFormatter()
	}
	return cardBase{root: root, title: title, price: price, f: f}, nil
}

func (c *cardBase) Root() *dom.Element { return c.root }

func (c *cardBase) Release() { c.root.Document().Release(c.root) }

func (c *cardBase) renderTitle(title Opt[string]) {
	title.apply(c.title.SetText)
}

func (c *cardBase) renderPrice(price Opt[decimal.NullDecimal]) {
	price.apply(func(p decimal.NullDecimal) {
		c.price.SetText(c.f.Price(p))
	})
}

// imageBlock renders the picture and category badge of catalog and
// preview cards.
type imageBlock struct {
	image    *dom.Element
	category *dom.Element
}

func newImageBlock(root *dom.Element) (imageBlock, error) {
	image, err := root.Ensure(".card__image")
	if err != nil {
		return imageBlock{}, err
	}
	category, err := root.Ensure(".card__category")
	if err != nil {
		return imageBlock{}, err
	}
	return imageBlock{image: image, category: category}, nil
}

func (b imageBlock) render(image, title, category Opt[string]) {
	image.apply(func(src string) { b.image.SetAttr("src", src) })
	title.apply(func(alt string) { b.image.SetAttr("alt", alt) })
	category.apply(func(c string) { applyCategory(b.category, c) })
}

// -----------------------------------------------------------------------------
// Catalog card
// -----------------------------------------------------------------------------

// CatalogCardState is the render state of a gallery tile.
type CatalogCardState struct {
	Title    Opt[string]
	Price    Opt[decimal.NullDecimal]
	Image    Opt[string]
	Category Opt[string]
}

// CatalogCardFor returns a full render state for p.
func CatalogCardFor(p shop.Product) CatalogCardState {
	return CatalogCardState{
		Title:    Some(p.Title),
		Price:    Some(p.Price),
		Image:    Some(p.Image),
		Category: Some(p.Category),
	}
}

// CatalogCard is a clickable gallery tile.
type CatalogCard struct {
	cardBase
	media imageBlock
}

// NewCatalogCard binds a tile cloned from the card-catalog template.
// onSelect runs when the tile is clicked.
func NewCatalogCard(root *dom.Element, f *Formatter, onSelect func()) (*CatalogCard, error) {
	base, err := newCardBase(root, f)
	if err != nil {
		return nil, err
	}
	media, err := newImageBlock(root)
	if err != nil {
		return nil, err
	}
	c := &CatalogCard{cardBase: base, media: media}
	if onSelect != nil {
		root.Listen(dom.EventClick, func(*dom.Event) { onSelect() })
	}
	return c, nil
}

// Kind returns CardCatalog.
func (c *CatalogCard) Kind() CardKind { return CardCatalog }

// Render applies s.
func (c *CatalogCard) Render(s CatalogCardState) *dom.Element {
	c.renderTitle(s.Title)
	c.renderPrice(s.Price)
	c.media.render(s.Image, s.Title, s.Category)
	return c.root
}

// -----------------------------------------------------------------------------
// Preview card
// -----------------------------------------------------------------------------

// PreviewCardState is the render state of the product detail card.
type PreviewCardState struct {
	Title          Opt[string]
	Price          Opt[decimal.NullDecimal]
	Image          Opt[string]
	Category       Opt[string]
	Description    Opt[string]
	ButtonText     Opt[string]
	ButtonDisabled Opt[bool]
}

// PreviewCardFor returns the product fields of a preview render state.
// The caller adds the button fields.
func PreviewCardFor(p shop.Product) PreviewCardState {
	return PreviewCardState{
		Title:       Some(p.Title),
		Price:       Some(p.Price),
		Image:       Some(p.Image),
		Category:    Some(p.Category),
		Description: Some(p.Description),
	}
}

// PreviewCard shows one product with its cart action button.
type PreviewCard struct {
	cardBase
	media  imageBlock
	text   *dom.Element
	button *dom.Element
}

// NewPreviewCard binds a card cloned from the card-preview template.
// onAction runs when the action button is clicked.
func NewPreviewCard(root *dom.Element, f *Formatter, onAction func()) (*PreviewCard, error) {
	base, err := newCardBase(root, f)
	if err != nil {
		return nil, err
	}
	text, err := root.Ensure(".card__text")
	if err != nil {
		return nil, err
	}
	button, err := root.Ensure(".card__button")
	if err != nil {
		return nil, err
	}
	media, err := newImageBlock(root)
	if err != nil {
		return nil, err
	}
	c := &PreviewCard{cardBase: base, media: media, text: text, button: button}
	if onAction != nil {
		button.Listen(dom.EventClick, func(*dom.Event) { onAction() })
	}
	return c, nil
}

// Kind returns CardPreview.
func (c *PreviewCard) Kind() CardKind { return CardPreview }

// Button returns the cart action button.
func (c *PreviewCard) Button() *dom.Element { return c.button }

// Render applies s.
func (c *PreviewCard) Render(s PreviewCardState) *dom.Element {
	c.renderTitle(s.Title)
	c.renderPrice(s.Price)
	c.media.render(s.Image, s.Title, s.Category)
	s.Description.apply(c.text.SetText)
	s.ButtonText.apply(c.button.SetText)
	s.ButtonDisabled.apply(c.button.SetDisabled)
	return c.root
}

// -----------------------------------------------------------------------------
// Basket card
// -----------------------------------------------------------------------------

// BasketCardState is the render state of a basket line.
type BasketCardState struct {
	Title Opt[string]
	Price Opt[decimal.NullDecimal]
	Index Opt[int]
}

// BasketCard is a numbered basket line with a delete button.
type BasketCard struct {
	cardBase
	index  *dom.Element
	delete *dom.Element
}

// NewBasketCard binds a line cloned from the card-basket template.
// onDelete runs when the delete button is clicked.
func NewBasketCard(root *dom.Element, f *Formatter, onDelete func()) (*BasketCard, error) {
	base, err := newCardBase(root, f)
	if err != nil {
		return nil, err
	}
	index, err := root.Ensure(".basket__item-index")
	if err != nil {
		return nil, err
	}
	del, err := root.Ensure(".basket__item-delete")
	if err != nil {
		return nil, err
	}
	c := &BasketCard{cardBase: base, index: index, delete: del}
	if onDelete != nil {
		del.Listen(dom.EventClick, func(*dom.Event) { onDelete() })
	}
	return c, nil
}

// Kind returns CardBasket.
func (c *BasketCard) Kind() CardKind { return CardBasket }

// DeleteButton returns the remove button.
func (c *BasketCard) DeleteButton() *dom.Element { return c.delete }

// Render applies s.
func (c *BasketCard) Render(s BasketCardState) *dom.Element {
	c.renderTitle(s.Title)
	c.renderPrice(s.Price)
	s.Index.apply(func(i int) { c.index.SetText(strconv.Itoa(i)) })
	return c.root
}

var (
	_ Card = (*CatalogCard)(nil)
	_ Card = (*PreviewCard)(nil)
	_ Card = (*BasketCard)(nil)

	_ View[CatalogCardState] = (*CatalogCard)(nil)
	_ View[PreviewCardState] = (*PreviewCard)(nil)
	_ View[BasketCardState]  = (*BasketCard)(nil)
)
