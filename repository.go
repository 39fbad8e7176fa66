package hclust

// repository owns every node of one clustering run. The first n entries are
// the leaves in row order; each merge appends one node. Capacity is reserved
// for all 2n-1 nodes up front, so handles (indices) stay valid and the
// backing array is never copied.
type repository struct {
	nodes   []node
	initial int
}

func newRepository(n int) *repository {
	return &repository{
		nodes:   make([]node, 0, 2*n-1),
		initial: n,
	}
}

// addLeaf appends the leaf for observation row and returns its handle.
func (r *repository) addLeaf(row int, m method, data []float64) int {
	h := len(r.nodes)
	r.nodes = append(r.nodes, node{
		id:      leafID(row),
		size:    1,
		parent1: noParent,
		parent2: noParent,
		idx:     row,
	})
	if m != nil {
		m.leaf(&r.nodes[h], row, data)
	}
	return h
}

// addMerge appends the node formed by merging a and b at height d. The
// merge functor of m runs exactly once, after both parents are complete.
func (r *repository) addMerge(a, b int, d float64, m method) int {
	h := len(r.nodes)
	pa, pb := &r.nodes[a], &r.nodes[b]
	r.nodes = append(r.nodes, node{
		id:            unsetID,
		size:          pa.size + pb.size,
		parent1:       a,
		parent2:       b,
		dissimilarity: d,
		idx:           min(pa.idx, pb.idx),
	})
	if m != nil {
		m.merge(&r.nodes[h], &r.nodes[a], &r.nodes[b])
	}
	return h
}

func (r *repository) at(h int) *node { return &r.nodes[h] }

func (r *repository) len() int { return len(r.nodes) }

// complete reports whether the forest holds all 2n-1 nodes.
func (r *repository) complete() bool { return len(r.nodes) == 2*r.initial-1 }
