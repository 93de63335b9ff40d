package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	newLogger := func(string) (*zap.Logger, error) {
		return zaptest.NewLogger(t), nil
	}
	err := run(context.Background(), args, &out, newLogger)
	return out.String(), err
}

func TestPlacePrintsSummary(t *testing.T) {
	out, err := runCLI(t, "--seed", "11", "place", "--strategy", "dp")
	require.NoError(t, err)

	assert.Contains(t, out, "dp: efficiency")
	assert.Contains(t, out, "/20 |")
	assert.Contains(t, out, "dp shelf 1: best sales")
	assert.NotContains(t, out, "WAREHOUSE MAP")
}

func TestPlaceWithMapIsDeterministic(t *testing.T) {
	args := []string{"--seed", "5", "--plain", "-n", "8", "-s", "2", "-c", "15", "place", "--strategy", "static", "--map"}

	first, err := runCLI(t, args...)
	require.NoError(t, err)
	second, err := runCLI(t, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "WAREHOUSE MAP")
	assert.Contains(t, first, "Shelf 2 | Capacity:15")
}

func TestMapCommandWithoutColourSupport(t *testing.T) {
	out, err := runCLI(t, "--seed", "5", "-s", "1", "map")
	require.NoError(t, err)

	assert.Contains(t, out, "WAREHOUSE MAP")
	assert.NotContains(t, out, "\x1b[", "a buffer should not receive ANSI sequences")
}

func TestCompareListsEveryStrategy(t *testing.T) {
	out, err := runCLI(t, "--seed", "3", "compare")
	require.NoError(t, err)

	for _, label := range []string{"Static", "Greedy", "DP"} {
		assert.Contains(t, out, label)
	}
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestSearchFindsGeneratedProduct(t *testing.T) {
	products, err := catalog.Generate(20, 17)
	require.NoError(t, err)
	name := products[4].Name

	for _, method := range []string{"linear", "binary"} {
		t.Run(method, func(t *testing.T) {
			out, err := runCLI(t, "--seed", "17", "search", "--name", name, "--method", method)
			require.NoError(t, err)
			assert.Contains(t, out, "found at index")
			assert.Contains(t, out, "greedy placement")
		})
	}
}

func TestSearchMissingProduct(t *testing.T) {
	out, err := runCLI(t, "--seed", "17", "search", "--name", "does-not-exist")
	require.NoError(t, err)
	assert.Contains(t, out, "not found")
}

func TestBenchPrintsOneRowPerSize(t *testing.T) {
	out, err := runCLI(t, "--seed", "1", "bench", "--max-n", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "dp(us)")
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown strategy", args: []string{"place", "--strategy", "random"}},
		{name: "unknown method", args: []string{"search", "--name", "x", "--method", "hash"}},
		{name: "missing name", args: []string{"search"}},
		{name: "negative products", args: []string{"-n", "-1", "compare"}},
		{name: "zero max-n", args: []string{"bench", "--max-n", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
