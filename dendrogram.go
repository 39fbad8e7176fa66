package hclust

import (
	"math"
	"sort"
)

// Dendrogram is the merge tree in the layout of R's hclust objects.
type Dendrogram struct {
	// Merge has one row per agglomeration step. A negative entry -j is
	// observation j (1-based); a positive entry k is the cluster formed at
	// step k (1-based).
	Merge [][2]int `json:"merge" yaml:"merge"`

	// Height is the dissimilarity at which each step merged.
	Height []float64 `json:"height" yaml:"height"`

	// Order is a permutation of 1..n listing observations left to right so
	// that the plotted dendrogram has no crossing branches.
	Order []int `json:"order" yaml:"order"`

	Linkage Linkage `json:"linkage" yaml:"linkage"`

	// Distance is empty when the input was a dissimilarity matrix.
	Distance Distance `json:"distance,omitempty" yaml:"distance,omitempty"`
}

// N returns the number of clustered observations.
func (d *Dendrogram) N() int { return len(d.Order) }

// formatDendrogram numbers the merged nodes of a complete forest and emits
// the merge/height/order triple. Merged nodes are ranked by height, then by
// their observation pair when the method tracked one, then by construction
// order. Each rank key is raised to at least the keys of the node's parents
// so a child never outranks its parent. When rounding makes a merge lower
// than one of its parents, the emitted heights are therefore not in
// ascending order. Formatting the same repository again yields the same result.
func formatDendrogram(repo *repository) (*Dendrogram, error) {
	n := repo.initial
	if !repo.complete() {
		return nil, inconsistencyf("forest has %d clusters, expected %d", repo.len(), 2*n-1)
	}

	leaves := make([]int, 0, n)
	merged := make([]int, 0, n-1)
	key := make([]float64, repo.len())
	for h := range repo.nodes {
		c := repo.at(h)
		if c.initial() {
			leaves = append(leaves, h)
			key[h] = math.Inf(-1)
			continue
		}
		merged = append(merged, h)
		key[h] = max(c.dissimilarity, key[c.parent1], key[c.parent2])
	}
	if len(leaves) != n || len(merged) != n-1 {
		return nil, inconsistencyf("forest has %d leaves and %d merges, expected %d and %d", len(leaves), len(merged), n, n-1)
	}

	sort.SliceStable(leaves, func(i, j int) bool {
		return repo.at(leaves[i]).id > repo.at(leaves[j]).id
	})
	for i, h := range leaves {
		if id := repo.at(h).id; id != leafID(i) {
			return nil, inconsistencyf("leaf %d has id %d, expected %d", i, id, leafID(i))
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if key[a] != key[b] {
			return key[a] < key[b]
		}
		return repo.at(a).pair < repo.at(b).pair
	})
	for rank, h := range merged {
		repo.at(h).id = rank + 1
	}

	d := &Dendrogram{
		Merge:  make([][2]int, n-1),
		Height: make([]float64, n-1),
	}
	for i, h := range merged {
		c := repo.at(h)
		d.Merge[i] = canonicalMerge(repo.at(c.parent1).id, repo.at(c.parent2).id)
		d.Height[i] = c.dissimilarity
	}
	d.Order = leafOrder(d.Merge, n)

	if len(d.Order) != n {
		return nil, inconsistencyf("order has %d entries, expected %d", len(d.Order), n)
	}
	return d, nil
}

// canonicalMerge orders a merge row the way R's hclust does: a row that
// references an earlier step is written smaller id first (a singleton
// therefore precedes a cluster), and a row of two singletons lists the
// lower-numbered observation first.
func canonicalMerge(a, b int) [2]int {
	hi, lo := max(a, b), min(a, b)
	if hi > 0 {
		return [2]int{lo, hi}
	}
	return [2]int{hi, lo}
}

// leafOrder walks the tree from the last merge, visiting column 0 before
// column 1, and lists the observations in the order they are reached.
func leafOrder(merge [][2]int, n int) []int {
	order := make([]int, 0, n)
	stack := make([]int, 0, n)
	stack = append(stack, len(merge))
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v < 0 {
			order = append(order, -v)
			continue
		}
		row := merge[v-1]
		stack = append(stack, row[1], row[0])
	}
	return order
}

// Cut assigns each observation to one of k groups by undoing the last k-1
// merges. Groups are numbered from 1 in order of their first observation.
func (d *Dendrogram) Cut(k int) ([]int, error) {
	n := d.N()
	if k < 1 || k > n {
		return nil, invalidArgumentf("cut k must be in [1, %d], got %d", n, k)
	}

	uf := NewUnionFind(n)
	label := func(id int) int {
		if id < 0 {
			return -id - 1
		}
		return n + id - 1
	}
	for _, row := range d.Merge[:n-k] {
		uf.Merge(uf.Find(label(row[0])), uf.Find(label(row[1])))
	}

	groups := make([]int, n)
	seen := make(map[int]int, k)
	for i := range groups {
		root := uf.Find(i)
		g, ok := seen[root]
		if !ok {
			g = len(seen) + 1
			seen[root] = g
		}
		groups[i] = g
	}
	return groups, nil
}

// CutHeight groups observations that are joined at or below height h. The
// merges are applied in step order up to the first one above h.
func (d *Dendrogram) CutHeight(h float64) []int {
	steps := 0
	for steps < len(d.Height) && d.Height[steps] <= h {
		steps++
	}
	groups, _ := d.Cut(d.N() - steps)
	return groups
}
