package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
)

func TestGreedyPlaceAlwaysScansFromFirstShelf(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{Name: "a", Sales: 10, Volume: 1},
		{Name: "b", Sales: 10, Volume: 1},
		{Name: "c", Sales: 10, Volume: 1},
		{Name: "d", Sales: 10, Volume: 1},
	}

	res, err := GreedyPlace(products, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, productNames(res.Shelves[0].Products))
	assert.Empty(t, res.Shelves[1].Products)
}

func TestGreedyPlaceOrdersBySales(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{Name: "x", Sales: 50, Volume: 2},
		{Name: "y", Sales: 300, Volume: 4},
		{Name: "z", Sales: 200, Volume: 3},
	}

	res, err := GreedyPlace(products, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, productNames(res.Shelves[0].Products))
	assert.Equal(t, []string{"z", "x"}, productNames(res.Shelves[1].Products))
}

func TestGreedyPlaceMonotonicPriority(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 20; seed++ {
		products, err := catalog.Generate(60, seed)
		require.NoError(t, err)

		res, err := GreedyPlace(products, 4, 15)
		require.NoError(t, err)

		placed := make(map[string]bool)
		for _, s := range res.Shelves {
			for i := 1; i < len(s.Products); i++ {
				assert.GreaterOrEqual(t, s.Products[i-1].Sales, s.Products[i].Sales,
					"seed %d: shelf contents must follow sales order", seed)
			}
			for _, p := range s.Products {
				placed[p.Name] = true
			}
		}

		// A dropped product can only lose to lower-selling products that are
		// strictly smaller: anything at most its size would have fit first.
		for _, a := range products {
			if placed[a.Name] {
				continue
			}
			for _, b := range products {
				if placed[b.Name] && a.Sales > b.Sales {
					assert.Greater(t, a.Volume, b.Volume,
						"seed %d: %s dropped while smaller-or-equal %s placed", seed, a.Name, b.Name)
				}
			}
		}
	}
}
