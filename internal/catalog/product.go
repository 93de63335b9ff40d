package catalog

import (
	"fmt"
	"strings"
)

// Product is an item with a value (Sales) and a size (Volume).
// Products are plain values and are copied freely between collections.
type Product struct {
	Name   string `json:"name"`
	Sales  int    `json:"sales"`
	Volume int    `json:"volume"`
}

// Validate reports whether p can take part in a placement.
func (p Product) Validate() error {
	if p.Sales < 0 || p.Volume <= 0 {
		return fmt.Errorf("%w: %q (sales=%d, volume=%d)", ErrInvalidProduct, p.Name, p.Sales, p.Volume)
	}
	return nil
}

// NameKey is the case-folded form of a product name. Sorting by name and
// every name search compare NameKey values so the two always agree.
func NameKey(name string) string {
	return strings.ToLower(name)
}

// Clone returns a copy of products that shares no backing array with the input.
func Clone(products []Product) []Product {
	if products == nil {
		return nil
	}
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
