package view

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PricelessLabel is shown instead of a price for products not for sale.
const PricelessLabel = "Priceless"

// Formatter renders prices for one locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter for tag.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// NewFormatterFor parses a BCP 47 locale, falling back to English.
func NewFormatterFor(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return NewFormatter(tag)
}

// DefaultFormatter formats for English.
func DefaultFormatter() *Formatter {
	return NewFormatter(language.English)
}

// Number formats d with locale digit grouping.
func (f *Formatter) Number(d decimal.Decimal) string {
	if d.IsInteger() {
		return f.printer.Sprintf("%v", number.Decimal(d.IntPart()))
	}
	v, _ := d.Float64()
	return f.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// Amount renders a sum of money: "1,450 synapses".
func (f *Formatter) Amount(d decimal.Decimal) string {
	return f.Number(d) + " synapses"
}

// Price renders a product price, or PricelessLabel when there is none.
func (f *Formatter) Price(p decimal.NullDecimal) string {
	if !p.Valid {
		return PricelessLabel
	}
	return f.Amount(p.Decimal)
}

// WrittenOff renders the success message for a completed order.
func (f *Formatter) WrittenOff(d decimal.Decimal) string {
	return "Written off " + f.Amount(d)
}
