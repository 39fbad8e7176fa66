package hclust

// validIndexSet is a doubly-linked list over the matrix slots 0..n-1 that are
// still active. Removal and forward traversal are O(1). Traversal ends at
// end(), which equals the capacity n.
type validIndexSet struct {
	next    []int
	prev    []int
	head    int
	removed []bool
}

func newValidIndexSet(n int) *validIndexSet {
	s := &validIndexSet{
		next:    make([]int, n),
		prev:    make([]int, n),
		removed: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		s.next[i] = i + 1
		s.prev[i] = i - 1
	}
	return s
}

func (s *validIndexSet) end() int { return len(s.next) }

// first returns the smallest valid index, or end() if none remain.
func (s *validIndexSet) first() int { return s.head }

// successor returns the next valid index after i, or end().
func (s *validIndexSet) successor(i int) int { return s.next[i] }

// contains reports whether i is a slot that has not been removed.
func (s *validIndexSet) contains(i int) bool {
	return i >= 0 && i < len(s.removed) && !s.removed[i]
}

// remove unlinks i. Removing an index twice, or one outside the set, is a
// no-op.
func (s *validIndexSet) remove(i int) {
	if !s.contains(i) {
		return
	}
	s.removed[i] = true
	p, nx := s.prev[i], s.next[i]
	if p >= 0 {
		s.next[p] = nx
	} else {
		s.head = nx
	}
	if nx < len(s.next) {
		s.prev[nx] = p
	}
}
