package hclust

// UnionFind tracks which observations a sequence of merges has joined. It
// replays SLINK links into repository handles and applies the first merges
// of a dendrogram for Cut. Labels follow the merge forest: observations are
// 0..n-1 and the k-th merge (0-based) creates label n+k, so after each
// Merge the root of a set is the label of the merge that formed it.
type UnionFind struct {
	parent []int
	size   []int
	// nextLabel is the label of the next merge, starting at n.
	nextLabel int
}

// NewUnionFind creates a UnionFind for n observations, each in its own set.
func NewUnionFind(n int) *UnionFind {
	total := 2*n - 1
	if total < 1 {
		total = 1
	}
	parent := make([]int, total)
	size := make([]int, total)
	for i := range parent {
		parent[i] = -1
	}
	for i := 0; i < n; i++ {
		size[i] = 1
	}
	return &UnionFind{
		parent:    parent,
		size:      size,
		nextLabel: n,
	}
}

// Find returns the label of the merge that last grew x's set, or x itself
// while x is unmerged. It compresses the path it walks.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// Merge joins the sets rooted at a and b under the next merge label and
// returns that label. a and b must be distinct roots.
func (uf *UnionFind) Merge(a, b int) int {
	label := uf.nextLabel
	uf.size[label] = uf.size[a] + uf.size[b]
	uf.parent[a] = label
	uf.parent[b] = label
	uf.nextLabel++
	return label
}

// Size returns the number of observations under label root. replay checks
// it against the repository node of the same handle.
func (uf *UnionFind) Size(root int) int {
	return uf.size[root]
}
