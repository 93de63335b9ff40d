package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
)

// ErrUnknownMethod is returned when a search method is not recognised.
var ErrUnknownMethod = errors.New("unknown search method")

// Method selects a search algorithm.
type Method int

const (
	// MethodLinear scans the catalog in its current order.
	MethodLinear Method = iota
	// MethodBinary sorts a copy of the catalog by name, then binary searches it.
	MethodBinary
)

func (m Method) String() string {
	switch m {
	case MethodLinear:
		return "linear"
	case MethodBinary:
		return "binary"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod accepts "linear" or "binary" in any case.
func ParseMethod(raw string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "linear":
		return MethodLinear, nil
	case "binary":
		return MethodBinary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, raw)
	}
}

// Outcome is the result of Run. Index refers to the collection that was
// actually searched: the catalog itself for MethodLinear, the name-sorted
// copy for MethodBinary. SortElapsed is zero for MethodLinear.
type Outcome struct {
	Method      Method
	Result      Result
	Product     *catalog.Product
	SortElapsed time.Duration
}

// Run searches products for name with the given method. products is never
// modified; the binary method sorts a private copy first and reports the
// sort time separately from the search time.
func Run(method Method, products []catalog.Product, name string) (Outcome, error) {
	var (
		searched = products
		out      = Outcome{Method: method}
	)

	switch method {
	case MethodLinear:
		out.Result = Linear(products, name)
	case MethodBinary:
		searched = catalog.Clone(products)
		start := time.Now()
		catalog.SortByNameAsc(searched)
		out.SortElapsed = time.Since(start)
		out.Result = Binary(searched, name)
	default:
		return Outcome{}, fmt.Errorf("%w: %d", ErrUnknownMethod, int(method))
	}

	if out.Result.Found {
		p := searched[out.Result.Index]
		out.Product = &p
	}
	return out, nil
}
