package hclust

import "math"

// edge is a dissimilarity tagged with the observation pair that realises it.
// Edges order by distance, then by pair, so two different pairs never
// compare equal. Single linkage over edges therefore has exactly one merge
// tree, whichever algorithm builds it.
//
// Methods that do not track pairs leave pair at 0, which reduces the order
// to plain distance comparison.
type edge struct {
	d    float64
	pair int
}

var (
	// unbounded is beaten by every finite edge and by no infinite one.
	unbounded = edge{d: math.Inf(1), pair: -1}
	// noLink is beaten by every edge between two observations.
	noLink = edge{d: math.Inf(1), pair: math.MaxInt}
)

// pairKey numbers the pair of observations i and j of n so that keys sort
// by the lower row, then the higher.
func pairKey(n, i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*n + j
}

func (e edge) less(o edge) bool {
	return e.d < o.d || (e.d == o.d && e.pair < o.pair)
}

func minEdge(a, b edge) edge {
	if b.less(a) {
		return b
	}
	return a
}
