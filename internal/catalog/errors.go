package catalog

import "errors"

var (
	// ErrInvalidCount is returned when a negative number of products is requested.
	ErrInvalidCount = errors.New("product count must be a non-negative integer")
	// ErrInvalidProduct is returned when a product has negative sales or a non-positive volume.
	ErrInvalidProduct = errors.New("product must have sales >= 0 and volume > 0")
)
