// Package catalog defines the Product value type and the utilities that
// produce and order product sets: a seedable synthetic generator and the two
// stable orderings (sales descending, name ascending) used by placement and
// search.
package catalog
