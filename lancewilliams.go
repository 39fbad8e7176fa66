package hclust

// dissimilarityMatrix stores the strictly lower triangle of a symmetric n×n
// matrix packed column by column: column 0 holds d(1,0)..d(n-1,0), column 1
// holds d(2,1)..d(n-1,1), and so on. This is the layout of R's dist objects.
type dissimilarityMatrix struct {
	n    int
	data []float64
	// pairs, when tracked, holds the pairKey of the observations behind
	// each entry, in the same layout as data.
	pairs []int
}

// newDissimilarityMatrix copies packed so that in-place updates never reach
// the caller's buffer.
func newDissimilarityMatrix(packed []float64, n int) *dissimilarityMatrix {
	data := make([]float64, len(packed))
	copy(data, packed)
	return &dissimilarityMatrix{n: n, data: data}
}

// trackPairs tags every entry with its own observation pair.
func (m *dissimilarityMatrix) trackPairs() {
	m.pairs = make([]int, len(m.data))
	for j := 0; j < m.n; j++ {
		for i := j + 1; i < m.n; i++ {
			m.pairs[packedIndex(m.n, i, j)] = pairKey(m.n, i, j)
		}
	}
}

// packedLen is the number of strictly-lower entries of an n×n matrix.
func packedLen(n int) int { return n * (n - 1) / 2 }

// packedIndex addresses entry (i, j) with i > j.
func packedIndex(n, i, j int) int {
	return n*j - j*(j+1)/2 + i - j - 1
}

// index addresses entry (i, j) for any i != j.
func (m *dissimilarityMatrix) index(i, j int) int {
	if i < j {
		i, j = j, i
	}
	return packedIndex(m.n, i, j)
}

// at returns d(i, j) for any i != j.
func (m *dissimilarityMatrix) at(i, j int) float64 {
	return m.data[m.index(i, j)]
}

// edgeAt returns entry (i, j) with its pair, or pair 0 when pairs are not
// tracked.
func (m *dissimilarityMatrix) edgeAt(i, j int) edge {
	return m.edge(m.index(i, j))
}

func (m *dissimilarityMatrix) edge(k int) edge {
	e := edge{d: m.data[k]}
	if m.pairs != nil {
		e.pair = m.pairs[k]
	}
	return e
}

// assign copies the entry at packed position src to dst.
func (m *dissimilarityMatrix) assign(dst, src int) {
	m.data[dst] = m.data[src]
	if m.pairs != nil {
		m.pairs[dst] = m.pairs[src]
	}
}

// lanceWilliams holds the recurrence for one linkage family:
//
//	d(new,i) = alpha(a)*d(a,i) + alpha(b)*d(b,i) + gamma*|d(a,i)-d(b,i)|
//
// With both alphas at one half, gamma = -1/2 and +1/2 reduce to min and max.
// Those are evaluated directly so that infinite entries stay infinite.
type lanceWilliams struct {
	// weighted selects size-proportional alphas (average linkage);
	// otherwise both alphas are 0.5.
	weighted bool
	gamma    float64
}

var (
	lanceWilliamsAverage  = lanceWilliams{weighted: true}
	lanceWilliamsSingle   = lanceWilliams{gamma: -0.5}
	lanceWilliamsComplete = lanceWilliams{gamma: 0.5}
)

func (lw lanceWilliams) alphas(sizeA, sizeB int) (float64, float64) {
	if !lw.weighted {
		return 0.5, 0.5
	}
	total := float64(sizeA + sizeB)
	return float64(sizeA) / total, float64(sizeB) / total
}

// update merges slot cb into slot ca (ca < cb) in place. cb leaves the valid
// set before the scan; ca receives the merged row. The scan is split at ca
// and cb so every access stays in the strictly-lower addressing.
func (lw lanceWilliams) update(m *dissimilarityMatrix, valid *validIndexSet, ca, cb, sizeA, sizeB int) {
	valid.remove(cb)
	alphaA, alphaB := lw.alphas(sizeA, sizeB)
	// fold combines the entry at packed position src into dst.
	fold := func(dst, src int) {
		switch {
		case lw.gamma < 0:
			if m.edge(src).less(m.edge(dst)) {
				m.assign(dst, src)
			}
		case lw.gamma > 0:
			if m.edge(dst).less(m.edge(src)) {
				m.assign(dst, src)
			}
		default:
			m.data[dst] = alphaA*m.data[dst] + alphaB*m.data[src]
		}
	}

	n := m.n
	i := valid.first()
	for ; i < ca; i = valid.successor(i) {
		fold(packedIndex(n, ca, i), packedIndex(n, cb, i))
	}
	// i == ca here; cb has already been unlinked.
	for i = valid.successor(i); i < cb; i = valid.successor(i) {
		fold(packedIndex(n, i, ca), packedIndex(n, cb, i))
	}
	for end := valid.end(); i < end; i = valid.successor(i) {
		fold(packedIndex(n, i, ca), packedIndex(n, i, cb))
	}
}
