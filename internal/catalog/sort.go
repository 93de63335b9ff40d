package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// SortBySalesDesc orders products by sales, highest first. Products with equal
// sales keep their relative input order.
func SortBySalesDesc(products []Product) {
	slices.SortStableFunc(products, func(a, b Product) int {
		return cmp.Compare(b.Sales, a.Sales)
	})
}

// SortByNameAsc orders products by NameKey ascending. The sort is stable, so
// names that differ only in case keep their relative input order. Binary
// search in package search expects exactly this order.
func SortByNameAsc(products []Product) {
	slices.SortStableFunc(products, func(a, b Product) int {
		return strings.Compare(NameKey(a.Name), NameKey(b.Name))
	})
}
