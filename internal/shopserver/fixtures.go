package shopserver

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/weblarek/larek/internal/shop"
)

//go:embed products.yaml
var defaultProducts []byte

// fixtureProduct is the YAML shape of a catalog entry.
type fixtureProduct struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Price       *float64 `yaml:"price"`
}

// LoadProducts parses a YAML product list.
func LoadProducts(data []byte) ([]shop.Product, error) {
	var raw []fixtureProduct
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing products: %w", err)
	}

	seen := make(map[string]bool, len(raw))
	products := make([]shop.Product, 0, len(raw))
	for i, r := range raw {
		if r.ID == "" {
			return nil, fmt.Errorf("product %d: missing id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("product %d: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = true

		p := shop.Product{
			ID:          r.ID,
			Title:       r.Title,
			Category:    r.Category,
			Description: r.Description,
			Image:       r.Image,
		}
		if r.Price != nil {
			p.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*r.Price))
		}
		products = append(products, p)
	}
	return products, nil
}

// DefaultProducts returns the built-in catalog.
func DefaultProducts() []shop.Product {
	products, err := LoadProducts(defaultProducts)
	if err != nil {
		panic(err)
	}
	return products
}
