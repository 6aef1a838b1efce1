// Package shop defines the storefront's domain records and wire formats:
// products, buyer data, validation results and the order exchange with the
// shop backend.
package shop

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend exchanges prices and totals as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry. A product whose Price is not Valid is not for
// sale. Products are immutable once loaded.
type Product struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Price       decimal.NullDecimal `json:"price"`
}

// ForSale reports whether the product has a price.
func (p Product) ForSale() bool {
	return p.Price.Valid
}

// PriceOrZero returns the price, or zero when the product is not for sale.
func (p Product) PriceOrZero() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal
}

// ProductList is the catalog listing returned by GET /product/.
type ProductList struct {
	Total int       `json:"total"`
	Items []Product `json:"items"`
}

// Payment is the buyer's payment method.
type Payment string

const (
	PaymentUnset   Payment = ""
	PaymentOnline  Payment = "online"
	PaymentOffline Payment = "offline"
)

// ParsePayment normalises s to a known payment method. Anything outside the
// closed set becomes PaymentUnset.
func ParsePayment(s string) Payment {
	switch Payment(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentOnline:
		return PaymentOnline
	case PaymentOffline:
		return PaymentOffline
	default:
		return PaymentUnset
	}
}

// Valid reports whether p is a selected payment method.
func (p Payment) Valid() bool {
	return p == PaymentOnline || p == PaymentOffline
}

// Field names a buyer record field.
type Field string

const (
	FieldPayment Field = "payment"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
)

// Fields returns every buyer field in display order.
func Fields() []Field {
	return []Field{FieldPayment, FieldAddress, FieldEmail, FieldPhone}
}

// BuyerData is a snapshot of the buyer record.
type BuyerData struct {
	Payment Payment `json:"payment"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
}

// ValidationErrors maps each currently invalid field to a message. A field
// absent from the map is valid.
type ValidationErrors map[Field]string

// Valid reports whether no field is invalid.
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Only returns the subset of v restricted to fields.
func (v ValidationErrors) Only(fields ...Field) ValidationErrors {
	out := make(ValidationErrors, len(fields))
	for _, f := range fields {
		if msg, ok := v[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// Messages returns the messages for fields, in the order given, skipping
// valid ones.
func (v ValidationErrors) Messages(fields ...Field) []string {
	var msgs []string
	for _, f := range fields {
		if msg, ok := v[f]; ok && msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// OrderRequest is the body of POST /order.
type OrderRequest struct {
	Payment Payment         `json:"payment"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Total   decimal.Decimal `json:"total"`
	Items   []string        `json:"items"`
}

// OrderResponse is the success body of POST /order.
type OrderResponse struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// ErrorResponse is the body the backend sends with a non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
