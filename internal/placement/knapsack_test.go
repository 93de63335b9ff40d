package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
)

func TestKnapsackPlaceFirstShelfIsOptimal(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 40; seed++ {
		n := 1 + int(seed%12)
		capacity := 3 + int(seed%17)

		products, err := catalog.Generate(n, seed)
		require.NoError(t, err)

		res, err := KnapsackPlace(products, 2, capacity)
		require.NoError(t, err)

		got := totalSales(res.Shelves[0].Products)
		want := bruteForceBest(products, capacity)
		assert.Equal(t, want, got, "seed %d n=%d capacity=%d", seed, n, capacity)
	}
}

func TestKnapsackPlaceLaterShelvesAreOptimalForRemainder(t *testing.T) {
	t.Parallel()

	for seed := uint64(100); seed < 120; seed++ {
		products, err := catalog.Generate(10, seed)
		require.NoError(t, err)

		res, err := KnapsackPlace(products, 2, 9)
		require.NoError(t, err)

		taken := make(map[string]bool)
		for _, p := range res.Shelves[0].Products {
			taken[p.Name] = true
		}
		remainder := make([]catalog.Product, 0, len(products))
		for _, p := range products {
			if !taken[p.Name] {
				remainder = append(remainder, p)
			}
		}

		assert.Equal(t, bruteForceBest(remainder, 9), totalSales(res.Shelves[1].Products), "seed %d", seed)
	}
}

func TestKnapsackPlaceTrace(t *testing.T) {
	t.Parallel()

	products, err := catalog.Generate(9, 77)
	require.NoError(t, err)

	res, err := KnapsackPlace(products, 3, 12)
	require.NoError(t, err)
	require.NotNil(t, res.Knapsack)

	table := res.Knapsack.Table
	require.Len(t, table, len(products)+1)
	for _, row := range table {
		require.Len(t, row, 13)
	}
	for _, v := range table[0] {
		assert.Zero(t, v)
	}

	assert.Equal(t, res.Shelves[0].Products, res.Knapsack.Chosen)
	assert.Equal(t, table[len(products)][12], totalSales(res.Knapsack.Chosen))
}

func TestKnapsackPlaceBacktrackOrder(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{Name: "A", Sales: 10, Volume: 1},
		{Name: "B", Sales: 20, Volume: 1},
		{Name: "C", Sales: 5, Volume: 2},
	}

	res, err := KnapsackPlace(products, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, productNames(res.Shelves[0].Products))
	assert.Equal(t, []string{"C"}, productNames(res.Shelves[1].Products))
	assert.Equal(t, [][]int{
		{0, 0, 0},
		{0, 10, 10},
		{0, 20, 30},
		{0, 20, 30},
	}, res.Knapsack.Table)
}

func TestKnapsackPlaceRoundTripPrefersHigherSales(t *testing.T) {
	t.Parallel()

	res, err := KnapsackPlace([]catalog.Product{
		{Name: "A", Sales: 100, Volume: 5},
		{Name: "B", Sales: 90, Volume: 5},
	}, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, productNames(res.Knapsack.Chosen))
}

func TestKnapsackPlaceZeroCapacity(t *testing.T) {
	t.Parallel()

	products, err := catalog.Generate(6, 9)
	require.NoError(t, err)

	res, err := KnapsackPlace(products, 2, 0)
	require.NoError(t, err)
	assert.Zero(t, res.Placed())
	require.Len(t, res.Knapsack.Table, 7)
	for _, row := range res.Knapsack.Table {
		assert.Equal(t, []int{0}, row)
	}
	assert.Empty(t, res.Knapsack.Chosen)
}

func TestKnapsackPlaceLeavesTrailingShelvesEmpty(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{Name: "A", Sales: 100, Volume: 2},
		{Name: "B", Sales: 90, Volume: 2},
	}

	res, err := KnapsackPlace(products, 4, 10)
	require.NoError(t, err)
	require.Len(t, res.Shelves, 4)
	assert.Len(t, res.Shelves[0].Products, 2)
	for _, s := range res.Shelves[1:] {
		assert.Empty(t, s.Products)
		assert.Zero(t, s.Used)
	}
}

func TestKnapsackPlaceEmptyInputs(t *testing.T) {
	t.Parallel()

	res, err := KnapsackPlace(nil, 3, 10)
	require.NoError(t, err)
	require.NotNil(t, res.Knapsack)
	assert.Nil(t, res.Knapsack.Table)
	assert.Empty(t, res.Knapsack.Chosen)
	assert.Len(t, res.Shelves, 3)

	res, err = KnapsackPlace([]catalog.Product{{Name: "A", Sales: 1, Volume: 1}}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Shelves)
	assert.Nil(t, res.Knapsack.Table)
}

func TestKnapsackTraceBest(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{Name: "anchor", Sales: 5, Volume: 2},
		{Name: "bolt", Sales: 4, Volume: 3},
		{Name: "crate", Sales: 1, Volume: 4},
	}
	res, err := KnapsackPlace(products, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 9, res.Knapsack.Best())
	assert.Equal(t, totalSales(res.Knapsack.Chosen), res.Knapsack.Best())

	empty, err := KnapsackPlace(nil, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Knapsack.Best())

	var missing *KnapsackTrace
	assert.Equal(t, 0, missing.Best())
}

func TestWithoutKeepsOrder(t *testing.T) {
	t.Parallel()

	pool := []catalog.Product{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	got := without(pool, []int{3, 1})
	assert.Equal(t, []string{"a", "c"}, productNames(got))

	same := []catalog.Product{{Name: "x"}}
	assert.Equal(t, same, without(same, nil))
}

func bruteForceBest(products []catalog.Product, capacity int) int {
	best := 0
	n := len(products)
	for mask := 0; mask < 1<<n; mask++ {
		volume, sales := 0, 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				volume += products[i].Volume
				sales += products[i].Sales
			}
		}
		if volume <= capacity && sales > best {
			best = sales
		}
	}
	return best
}

func totalSales(products []catalog.Product) int {
	total := 0
	for _, p := range products {
		total += p.Sales
	}
	return total
}
