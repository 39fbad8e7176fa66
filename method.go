package hclust

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// method pairs a cluster-to-cluster dissimilarity with the payload update
// applied when two clusters merge. The set of implementations is closed:
// wardMethod, observationMethod and storedMethod.
type method interface {
	// leaf initialises the payload of the leaf for observation row.
	leaf(c *node, row int, data []float64)

	// distance returns the dissimilarity of a and b. Once the result is
	// known to exceed bound it may stop early and return +Inf instead.
	distance(a, b *node, bound float64) float64

	// merge fills the payload of dst from its parents a and b.
	merge(dst, a, b *node)
}

// pairedMethod is implemented by methods that can name the observation pair
// behind a dissimilarity. The pair orders candidates at equal distance.
type pairedMethod interface {
	pair(a, b *node) int
}

// wardMethod keeps a running centroid per cluster.
type wardMethod struct{}

func (wardMethod) leaf(c *node, _ int, data []float64) {
	c.center = append([]float64(nil), data...)
}

func (wardMethod) distance(a, b *node, _ float64) float64 {
	d := sumOfSquares(a.center, b.center)
	return d * float64(a.size*b.size) / float64(a.size+b.size)
}

// merge sets the centroid to the size-weighted mean of the parents'.
func (wardMethod) merge(dst, a, b *node) {
	total := float64(dst.size)
	dst.center = make([]float64, len(a.center))
	floats.ScaleTo(dst.center, float64(a.size)/total, a.center)
	floats.AddScaled(dst.center, float64(b.size)/total, b.center)
}

// observationMethod computes average or complete linkage from the original
// observations each cluster subsumes. Merging only concatenates index lists.
type observationMethod struct {
	metric   Metric
	data     []float64
	dims     int
	complete bool
}

func (m *observationMethod) row(i int) []float64 {
	return m.data[i*m.dims : (i+1)*m.dims]
}

func (*observationMethod) leaf(c *node, row int, _ []float64) {
	c.obs = []int{row}
}

func (m *observationMethod) distance(a, b *node, bound float64) float64 {
	if m.complete {
		return m.completeDistance(a, b, bound)
	}
	return m.averageDistance(a, b, bound)
}

// averageDistance compares the unnormalised sum against bound scaled by the
// pair count, so the hot loop never divides.
func (m *observationMethod) averageDistance(a, b *node, bound float64) float64 {
	pairs := float64(a.size * b.size)
	limit := bound * pairs
	var sum float64
	for _, i := range a.obs {
		ri := m.row(i)
		for _, j := range b.obs {
			sum += m.metric.Distance(ri, m.row(j))
			if sum > limit {
				return math.Inf(1)
			}
		}
	}
	return sum / pairs
}

func (m *observationMethod) completeDistance(a, b *node, bound float64) float64 {
	var maxDist float64
	for _, i := range a.obs {
		ri := m.row(i)
		for _, j := range b.obs {
			if d := m.metric.Distance(ri, m.row(j)); d > maxDist {
				maxDist = d
				if maxDist > bound {
					return math.Inf(1)
				}
			}
		}
	}
	return maxDist
}

func (*observationMethod) merge(dst, a, b *node) {
	dst.obs = make([]int, 0, len(a.obs)+len(b.obs))
	dst.obs = append(dst.obs, a.obs...)
	dst.obs = append(dst.obs, b.obs...)
}

// storedMethod reads dissimilarities from a matrix it owns and keeps it
// current with the Lance-Williams recurrence. For single linkage the matrix
// also tracks the observation pair behind each entry, so equal distances
// resolve the way SLINK resolves them on row input.
type storedMethod struct {
	matrix *dissimilarityMatrix
	valid  *validIndexSet
	lw     lanceWilliams
}

func newStoredMethod(packed []float64, n int, lw lanceWilliams) *storedMethod {
	matrix := newDissimilarityMatrix(packed, n)
	if lw.gamma < 0 {
		matrix.trackPairs()
	}
	return &storedMethod{
		matrix: matrix,
		valid:  newValidIndexSet(n),
		lw:     lw,
	}
}

func (*storedMethod) leaf(*node, int, []float64) {}

func (m *storedMethod) distance(a, b *node, _ float64) float64 {
	return m.matrix.at(a.idx, b.idx)
}

func (m *storedMethod) pair(a, b *node) int {
	return m.matrix.edgeAt(a.idx, b.idx).pair
}

// merge assigns dst the smaller slot of its parents and folds the larger
// slot into it.
func (m *storedMethod) merge(dst, a, b *node) {
	if a.idx > b.idx {
		a, b = b, a
	}
	dst.idx = a.idx
	m.lw.update(m.matrix, m.valid, a.idx, b.idx, a.size, b.size)
}
