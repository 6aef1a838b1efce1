package view

import "github.com/weblarek/larek/internal/dom"

// categoryClasses maps product categories to their badge modifier.
var categoryClasses = map[string]string{
	"soft-skill": "card__category_soft",
	"hard-skill": "card__category_hard",
	"other":      "card__category_other",
	"additional": "card__category_additional",
	"button":     "card__category_button",
}

// CategoryClass returns the modifier class for category, or "" for an
// unknown category.
func CategoryClass(category string) string {
	return categoryClasses[category]
}

// applyCategory writes the category text and leaves exactly the matching
// modifier on el.
func applyCategory(el *dom.Element, category string) {
	el.SetText(category)
	want := CategoryClass(category)
	for _, class := range categoryClasses {
		el.ToggleClass(class, class == want)
	}
}
