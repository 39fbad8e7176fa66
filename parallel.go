package hclust

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minParallelChunk is the smallest range a worker is given. Shorter scans
// run on the calling goroutine.
const minParallelChunk = 32

// parallelFor splits [0, n) into contiguous ranges and runs fn on each from
// its own goroutine. With workers <= 1, or too little work to share, fn runs
// once over the whole range on the caller's goroutine. Ranges never overlap,
// so fn may write to disjoint slots of a shared slice without locking.
func parallelFor(n, workers int, fn func(start, end int)) {
	workers = min(workers, n/minParallelChunk)
	if workers <= 1 {
		fn(0, n)
		return
	}

	perWorker := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * perWorker
		if start >= n {
			break
		}
		end := min(start+perWorker, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}

// PairwiseDistances computes the packed strictly-lower-triangular distance
// vector of n rows of dims columns (flat, row-major) under distance d. The
// result is the input expected by ClusterDistances and is bitwise identical
// for every worker count. workers = 0 means runtime.NumCPU().
func PairwiseDistances(data []float64, n, dims int, d Distance, p float64, workers int) ([]float64, error) {
	if n < 2 {
		return nil, dimensionMismatchf("need at least 2 observations, got %d", n)
	}
	if dims < 1 || len(data) != n*dims {
		return nil, dimensionMismatchf("data length %d does not match n*dims = %d (n=%d, dims=%d)", len(data), n*dims, n, dims)
	}
	metric, err := NewMetric(d, p)
	if err != nil {
		return nil, err
	}
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	result := make([]float64, packedLen(n))
	// Column j owns the contiguous block of entries (i, j) for i > j.
	parallelFor(n-1, workers, func(start, end int) {
		for j := start; j < end; j++ {
			rj := data[j*dims : (j+1)*dims]
			base := packedIndex(n, j+1, j)
			for i := j + 1; i < n; i++ {
				result[base+i-j-1] = metric.Distance(data[i*dims:(i+1)*dims], rj)
			}
		}
	})
	return result, nil
}
