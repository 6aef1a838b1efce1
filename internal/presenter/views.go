package presenter

import (
	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/errors"
	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/model"
	"github.com/weblarek/larek/internal/view"
	"github.com/weblarek/larek/internal/web"
)

// Page anchors outside of templates.
const (
	SelectorHeader  = ".header"
	SelectorGallery = ".gallery"
	SelectorModal   = "#modal-container"
	SelectorNotice  = ".notice"
)

// Views are the singleton views of the page.
type Views struct {
	Header   *view.Header
	Gallery  *view.Gallery
	Modal    *view.Modal
	Notice   *view.Notice
	Basket   *view.Basket
	Order    *view.Order
	Contacts *view.Contacts
	Success  *view.Success
}

// Models are the storefront's observable models.
type Models struct {
	Catalog *model.Catalog
	Cart    *model.Cart
	Buyer   *model.Buyer
}

// NewModels creates empty models publishing on bus.
func NewModels(bus *event.Bus) Models {
	return Models{
		Catalog: model.NewCatalog(bus),
		Cart:    model.NewCart(bus),
		Buyer:   model.NewBuyer(bus),
	}
}

// BindViews binds every singleton view to doc. Missing anchors or templates
// are reported as a *errors.ConfigError; card templates are checked too so
// that a broken page fails at startup rather than on first use.
func BindViews(doc *dom.Document, bus *event.Bus, f *view.Formatter) (Views, error) {
	var v Views

	for _, id := range []string{web.TemplateCardCatalog, web.TemplateCardPreview, web.TemplateCardBasket} {
		if _, err := doc.Template(id); err != nil {
			return Views{}, err
		}
	}

	anchors := make(map[string]*dom.Element)
	for _, sel := range []string{SelectorHeader, SelectorGallery, SelectorModal, SelectorNotice} {
		el, err := doc.Ensure(sel)
		if err != nil {
			return Views{}, err
		}
		anchors[sel] = el
	}

	var err error
	if v.Header, err = view.NewHeader(bus, anchors[SelectorHeader]); err != nil {
		return Views{}, errors.Wrap(err, "binding header")
	}
	v.Gallery = view.NewGallery(anchors[SelectorGallery])
	if v.Modal, err = view.NewModal(bus, anchors[SelectorModal]); err != nil {
		return Views{}, errors.Wrap(err, "binding modal")
	}
	if v.Notice, err = view.NewNotice(anchors[SelectorNotice]); err != nil {
		return Views{}, errors.Wrap(err, "binding notice")
	}

	root, err := doc.Template(web.TemplateBasket)
	if err != nil {
		return Views{}, err
	}
	if v.Basket, err = view.NewBasket(bus, root, f); err != nil {
		return Views{}, errors.Wrap(err, "binding basket")
	}

	if root, err = doc.Template(web.TemplateOrder); err != nil {
		return Views{}, err
	}
	if v.Order, err = view.NewOrder(bus, root); err != nil {
		return Views{}, errors.Wrap(err, "binding order form")
	}

	if root, err = doc.Template(web.TemplateContacts); err != nil {
		return Views{}, err
	}
	if v.Contacts, err = view.NewContacts(bus, root); err != nil {
		return Views{}, errors.Wrap(err, "binding contacts form")
	}

	if root, err = doc.Template(web.TemplateSuccess); err != nil {
		return Views{}, err
	}
	if v.Success, err = view.NewSuccess(bus, root, f); err != nil {
		return Views{}, errors.Wrap(err, "binding success view")
	}

	return v, nil
}
