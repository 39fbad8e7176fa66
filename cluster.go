package hclust

import "math"

// unsetID marks a merged node whose public id has not been assigned yet.
const unsetID = math.MinInt

// noParent is the parent handle of a leaf.
const noParent = -1

// node is one cluster of the merge forest. Parents are referenced by their
// handle in the owning repository, which never reallocates during a run.
type node struct {
	// id is -(row+1) for leaves. Merged nodes hold unsetID until the
	// dendrogram is formatted, then their 1-based merge step.
	id   int
	size int

	parent1, parent2 int

	// dissimilarity is the merge height, 0 for leaves.
	dissimilarity float64

	// pair is the observation pair behind dissimilarity when the method
	// tracks one. It orders merges of equal height.
	pair int

	// idx is the node's slot in the shared dissimilarity matrix. Only the
	// stored-distance method reads it.
	idx int

	// Payloads. center is set by the Ward method, obs by the
	// observation-set methods; the stored-distance method uses neither.
	center []float64
	obs    []int
}

func (c *node) initial() bool {
	return c.parent1 == noParent || c.parent2 == noParent
}

func leafID(row int) int { return -(row + 1) }
