package hclust

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

const floatTol = 1e-10

func generateFlatData(n, dims int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*dims)
	for i := range data {
		data[i] = rng.Float64() * 100
	}
	return data
}

func generateRows(n, dims int, seed int64) [][]float64 {
	flat := generateFlatData(n, dims, seed)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = flat[i*dims : (i+1)*dims]
	}
	return rows
}

// line returns 1-D observations at the given positions.
func line(xs ...float64) [][]float64 {
	rows := make([][]float64, len(xs))
	for i, x := range xs {
		rows[i] = []float64{x}
	}
	return rows
}

func configFor(linkage Linkage, distance Distance) Config {
	cfg := DefaultConfig()
	cfg.Linkage = linkage
	cfg.Distance = distance
	cfg.Workers = 1
	return cfg
}

// requireWellFormed checks the structural invariants every dendrogram of n
// observations must satisfy.
func requireWellFormed(t *testing.T, d *Dendrogram, n int) {
	t.Helper()
	require.Len(t, d.Merge, n-1)
	require.Len(t, d.Height, n-1)
	require.Len(t, d.Order, n)

	seenLeaf := make([]bool, n+1)
	usedStep := make([]bool, n)
	sizes := make([]int, n)
	for i, row := range d.Merge {
		for _, id := range row {
			switch {
			case id < 0:
				require.GreaterOrEqual(t, id, -n, "row %d", i)
				require.False(t, seenLeaf[-id], "leaf %d referenced twice", -id)
				seenLeaf[-id] = true
				sizes[i+1]++
			case id > 0:
				require.LessOrEqual(t, id, i, "row %d references later step %d", i, id)
				require.False(t, usedStep[id], "step %d referenced twice", id)
				usedStep[id] = true
				sizes[i+1] += sizes[id]
			default:
				t.Fatalf("row %d contains id 0", i)
			}
		}
	}
	require.Equal(t, n, sizes[n-1], "root must subsume every observation")

	inOrder := make([]bool, n+1)
	for _, o := range d.Order {
		require.True(t, o >= 1 && o <= n, "order entry %d out of range", o)
		require.False(t, inOrder[o], "order entry %d repeated", o)
		inOrder[o] = true
	}
}

// splits returns the observation set of every merge as sorted-key strings.
func splits(d *Dendrogram) map[string]bool {
	members := make([][]int, len(d.Merge)+1)
	out := make(map[string]bool, len(d.Merge))
	for i, row := range d.Merge {
		var set []int
		for _, id := range row {
			if id < 0 {
				set = append(set, -id)
			} else {
				set = append(set, members[id]...)
			}
		}
		members[i+1] = set
		out[setKey(set)] = true
	}
	return out
}

func setKey(set []int) string {
	sorted := append([]int(nil), set...)
	sort.Ints(sorted)
	return fmt.Sprint(sorted)
}
