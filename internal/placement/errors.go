package placement

import "errors"

var (
	// ErrInvalidArgument is returned for negative shelf counts or capacities and
	// for products with negative sales or non-positive volume.
	ErrInvalidArgument = errors.New("invalid placement argument")
	// ErrUnknownStrategy is returned when a strategy name or value is not recognised.
	ErrUnknownStrategy = errors.New("unknown placement strategy")
)
