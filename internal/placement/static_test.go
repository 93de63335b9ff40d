package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
)

func TestStaticPlaceRotatesCursor(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{Name: "a", Sales: 10, Volume: 1},
		{Name: "b", Sales: 10, Volume: 1},
		{Name: "c", Sales: 10, Volume: 1},
		{Name: "d", Sales: 10, Volume: 1},
	}

	res, err := StaticPlace(products, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, productNames(res.Shelves[0].Products))
	assert.Equal(t, []string{"b", "d"}, productNames(res.Shelves[1].Products))
}

func TestStaticPlaceAdvancesCursorOnFailedAttempts(t *testing.T) {
	t.Parallel()

	// a -> 0, b -> 1, c fits nowhere (two failed attempts bring the cursor
	// back to 0), d -> 0.
	products := []catalog.Product{
		{Name: "a", Sales: 10, Volume: 3},
		{Name: "b", Sales: 10, Volume: 3},
		{Name: "c", Sales: 10, Volume: 3},
		{Name: "d", Sales: 10, Volume: 2},
		{Name: "e", Sales: 10, Volume: 2},
	}

	res, err := StaticPlace(products, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, productNames(res.Shelves[0].Products))
	assert.Equal(t, []string{"b", "e"}, productNames(res.Shelves[1].Products))
	assert.Equal(t, 1, res.Unplaced(len(products)))
}

func TestStaticPlaceSkipsFullShelves(t *testing.T) {
	t.Parallel()

	// a fills shelf 0, b lands on 1 and resets the cursor to 0; d fails on
	// the full shelf 0 and is placed on shelf 1 by the second attempt.
	products := []catalog.Product{
		{Name: "a", Sales: 10, Volume: 4},
		{Name: "b", Sales: 10, Volume: 1},
		{Name: "d", Sales: 10, Volume: 2},
	}

	res, err := StaticPlace(products, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, productNames(res.Shelves[0].Products))
	assert.Equal(t, []string{"b", "d"}, productNames(res.Shelves[1].Products))

	res, err = StaticPlace([]catalog.Product{
		{Name: "a", Sales: 10, Volume: 1},
		{Name: "big", Sales: 10, Volume: 6},
		{Name: "b", Sales: 10, Volume: 3},
	}, 2, 4)
	require.NoError(t, err)
	// big is dropped after two attempts (cursor 1 -> 0 -> 1), b goes to shelf 1.
	assert.Equal(t, []string{"a"}, productNames(res.Shelves[0].Products))
	assert.Equal(t, []string{"b"}, productNames(res.Shelves[1].Products))
}

func TestStaticPlaceZeroCapacity(t *testing.T) {
	t.Parallel()

	products, err := catalog.Generate(10, 5)
	require.NoError(t, err)

	res, err := StaticPlace(products, 3, 0)
	require.NoError(t, err)
	assert.Zero(t, res.Placed())
	assert.Zero(t, res.Efficiency)
}
