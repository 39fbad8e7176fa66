package hclust

import "sort"

// pointerRepresentation is the output of SLINK: observation j joins the
// cluster of pi[j] (pi[j] > j) at lambda[j]. The last observation has
// pi = itself and lambda = noLink.
type pointerRepresentation struct {
	pi     []int
	lambda []edge
}

// slink runs Sibson's single-linkage algorithm over n rows of dims columns
// (flat, row-major) in O(n²) time and O(n) extra space. Each column of
// distances to the new point is filled in parallel.
//
// Distances are compared as edges, so equal distances are ordered by
// observation pair and every link names a pair that is actually that close.
func slink(data []float64, n, dims int, metric Metric, workers int) pointerRepresentation {
	pi := make([]int, n)
	lambda := make([]edge, n)
	m := make([]edge, n)

	for i := 0; i < n; i++ {
		pi[i] = i
		lambda[i] = noLink

		ri := data[i*dims : (i+1)*dims]
		parallelFor(i, workers, func(start, end int) {
			for j := start; j < end; j++ {
				m[j] = edge{d: metric.Distance(ri, data[j*dims:(j+1)*dims]), pair: pairKey(n, j, i)}
			}
		})

		for j := 0; j < i; j++ {
			p := pi[j]
			if !lambda[j].less(m[j]) {
				m[p] = minEdge(m[p], lambda[j])
				lambda[j] = m[j]
				pi[j] = i
			} else {
				m[p] = minEdge(m[p], m[j])
			}
		}

		for j := 0; j < i; j++ {
			if !lambda[j].less(lambda[pi[j]]) {
				pi[j] = i
			}
		}
	}

	return pointerRepresentation{pi: pi, lambda: lambda}
}

// heights returns the merge height of every link.
func (p pointerRepresentation) heights() []float64 {
	out := make([]float64, len(p.lambda))
	for j, l := range p.lambda {
		out[j] = l.d
	}
	return out
}

// replay appends the n-1 merges encoded by p to repo, whose first n nodes
// must be the leaves. Links are applied in edge order, so the merges come
// out already height-ordered. The union-find labels coincide with
// repository handles: leaf j is handle j and the k-th merge is handle n+k.
func (p pointerRepresentation) replay(repo *repository) error {
	n := len(p.pi)
	links := make([]int, n-1)
	for j := range links {
		links[j] = j
	}
	sort.SliceStable(links, func(a, b int) bool {
		return p.lambda[links[a]].less(p.lambda[links[b]])
	})

	uf := NewUnionFind(n)
	for _, j := range links {
		a := uf.Find(j)
		b := uf.Find(p.pi[j])
		if a == b {
			return inconsistencyf("link %d joins observation %d to its own cluster", j, p.pi[j])
		}
		h := repo.addMerge(a, b, p.lambda[j].d, nil)
		repo.at(h).pair = p.lambda[j].pair
		if label := uf.Merge(a, b); label != h || uf.Size(label) != repo.at(h).size {
			return inconsistencyf("link %d produced cluster %d of size %d, expected %d of size %d",
				j, label, uf.Size(label), h, repo.at(h).size)
		}
	}
	return nil
}
