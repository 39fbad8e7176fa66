package hclust

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlink_PointerRepresentation(t *testing.T) {
	tests := []struct {
		name   string
		xs     []float64
		pi     []int
		lambda []float64
	}{
		{"chain", []float64{0, 1, 3, 10}, []int{1, 2, 3, 3}, []float64{1, 2, 7, math.Inf(1)}},
		{"two pairs", []float64{0, 1, 10, 12}, []int{1, 3, 3, 3}, []float64{1, 9, 2, math.Inf(1)}},
		// d(0,1) = d(1,2) = 1: 0 links to its real neighbour 1, not to 2.
		{"tie", []float64{0, 1, 2, 10}, []int{1, 2, 3, 3}, []float64{1, 1, 8, math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := slink(tt.xs, len(tt.xs), 1, EuclideanMetric{}, 1)
			assert.Equal(t, tt.pi, p.pi)
			assert.Equal(t, tt.lambda, p.heights())
		})
	}
}

func TestSlink_WorkerCountInvariant(t *testing.T) {
	n, dims := 300, 3
	data := generateFlatData(n, dims, 11)
	want := slink(data, n, dims, ManhattanMetric{}, 1)
	for _, workers := range []int{2, 4, 8} {
		got := slink(data, n, dims, ManhattanMetric{}, workers)
		assert.Equal(t, want.pi, got.pi, "workers=%d", workers)
		assert.Equal(t, want.lambda, got.lambda, "workers=%d", workers)
	}
}

func TestSlink_LinksAreRealNeighbours(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5}
	p := slink(xs, len(xs), 1, EuclideanMetric{}, 1)
	for j := 0; j < len(xs)-1; j++ {
		pair := p.lambda[j].pair
		lo, hi := pair/len(xs), pair%len(xs)
		assert.Equal(t, 1, hi-lo, "link %d names pair (%d,%d)", j, lo, hi)
		assert.Equal(t, 1.0, p.lambda[j].d)
	}
}

func TestPointerRepresentation_Replay(t *testing.T) {
	p := pointerRepresentation{
		pi:     []int{1, 3, 3, 3},
		lambda: []edge{{d: 1, pair: 1}, {d: 9, pair: 6}, {d: 2, pair: 11}, noLink},
	}
	repo := newRepository(4)
	for i := 0; i < 4; i++ {
		repo.addLeaf(i, nil, nil)
	}
	require.NoError(t, p.replay(repo))
	require.True(t, repo.complete())

	// Merges come out in ascending height.
	assert.Equal(t, [2]int{0, 1}, [2]int{repo.at(4).parent1, repo.at(4).parent2})
	assert.Equal(t, [2]int{2, 3}, [2]int{repo.at(5).parent1, repo.at(5).parent2})
	assert.Equal(t, [2]int{4, 5}, [2]int{repo.at(6).parent1, repo.at(6).parent2})
	assert.Equal(t, []float64{1, 2, 9}, []float64{
		repo.at(4).dissimilarity, repo.at(5).dissimilarity, repo.at(6).dissimilarity,
	})
	assert.Equal(t, 4, repo.at(6).size)
}

func TestPointerRepresentation_ReplayRejectsSelfLink(t *testing.T) {
	p := pointerRepresentation{
		pi:     []int{0, 2, 2},
		lambda: []edge{{d: 1, pair: 1}, {d: 2, pair: 5}, noLink},
	}
	repo := newRepository(3)
	for i := 0; i < 3; i++ {
		repo.addLeaf(i, nil, nil)
	}
	err := p.replay(repo)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalInconsistency)
}
