package catalog

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRespectsRanges(t *testing.T) {
	t.Parallel()

	products, err := NewGenerator(42).Generate(500)
	require.NoError(t, err)
	require.Len(t, products, 500)

	for i, p := range products {
		assert.GreaterOrEqual(t, p.Sales, minSales, "sales of %s", p.Name)
		assert.LessOrEqual(t, p.Sales, maxSales, "sales of %s", p.Name)
		assert.GreaterOrEqual(t, p.Volume, minVolume, "volume of %s", p.Name)
		assert.LessOrEqual(t, p.Volume, maxVolume, "volume of %s", p.Name)

		suffix := "_" + strconv.Itoa(i+1)
		require.True(t, strings.HasSuffix(p.Name, suffix), "name %q should end with %q", p.Name, suffix)
		assert.Contains(t, vocabulary, strings.TrimSuffix(p.Name, suffix))
		assert.NoError(t, p.Validate())
	}
}

func TestGenerateNamesAreUniqueWithinBatch(t *testing.T) {
	t.Parallel()

	products, err := Generate(200, 7)
	require.NoError(t, err)

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		_, dup := seen[p.Name]
		require.False(t, dup, "duplicate name %q", p.Name)
		seen[p.Name] = struct{}{}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	first, err := Generate(64, 1234)
	require.NoError(t, err)
	second, err := Generate(64, 1234)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same seed produced different catalogs (-first +second):\n%s", diff)
	}

	other, err := Generate(64, 4321)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestGenerateEdgeCounts(t *testing.T) {
	t.Parallel()

	products, err := Generate(0, 1)
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = Generate(-1, 1)
	assert.True(t, errors.Is(err, ErrInvalidCount), "expected ErrInvalidCount, got %v", err)
}

func TestProductValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{name: "valid", product: Product{Name: "A", Sales: 10, Volume: 1}},
		{name: "zero sales", product: Product{Name: "A", Sales: 0, Volume: 1}},
		{name: "negative sales", product: Product{Name: "A", Sales: -1, Volume: 1}, wantErr: true},
		{name: "zero volume", product: Product{Name: "A", Sales: 1, Volume: 0}, wantErr: true},
		{name: "negative volume", product: Product{Name: "A", Sales: 1, Volume: -3}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.product.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProduct)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Clone(nil))

	src := []Product{{Name: "A", Sales: 1, Volume: 1}}
	dst := Clone(src)
	dst[0].Name = "B"
	assert.Equal(t, "A", src[0].Name)
}

func BenchmarkGenerate(b *testing.B) {
	gen := NewGenerator(1)
	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(1000); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
