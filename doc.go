// Package hclust implements hierarchical agglomerative clustering and
// produces dendrograms in the layout of R's hclust objects.
//
// Ward, average and complete linkage run on the nearest-neighbour chain,
// which needs O(n²) dissimilarity evaluations for these reducible linkages.
// Single linkage on observation rows uses SLINK. Precomputed dissimilarity
// matrices are clustered with the Lance-Williams recurrence, updating the
// matrix in place.
//
// Basic usage:
//
//	cfg := hclust.DefaultConfig()
//	cfg.Linkage = hclust.LinkageAverage
//	cfg.Distance = hclust.DistanceManhattan
//	d, err := hclust.Cluster(data, cfg)
//	// d.Merge[i] are the two clusters joined at step i+1 (negative = observation)
//	// d.Height[i] is the dissimilarity of that step
//	// d.Order lists observations left to right for plotting
//
// For precomputed dissimilarities in R's dist layout:
//
//	d, err := hclust.ClusterDistances(dist, n, cfg)
//
// # Errors
//
// Every error wraps one of [ErrInvalidArgument], [ErrDimensionMismatch] or
// [ErrInternalInconsistency]; test for them with errors.Is.
package hclust
