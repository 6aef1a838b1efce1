// Package web embeds the storefront page: the static layout plus the
// <template> elements views are cloned from.
package web

import (
	_ "embed"

	"github.com/weblarek/larek/internal/dom"
)

//go:embed index.html
var indexHTML string

// Template IDs defined by the page.
const (
	TemplateSuccess     = "success"
	TemplateCardCatalog = "card-catalog"
	TemplateCardPreview = "card-preview"
	TemplateCardBasket  = "card-basket"
	TemplateBasket      = "basket"
	TemplateOrder       = "order"
	TemplateContacts    = "contacts"
)

// Templates lists every template the storefront needs.
func Templates() []string {
	return []string{
		TemplateSuccess,
		TemplateCardCatalog,
		TemplateCardPreview,
		TemplateCardBasket,
		TemplateBasket,
		TemplateOrder,
		TemplateContacts,
	}
}

// Page returns the raw page markup.
func Page() string {
	return indexHTML
}

// Load parses a fresh copy of the page.
func Load() (*dom.Document, error) {
	return dom.ParseString(indexHTML)
}
