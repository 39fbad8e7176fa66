package hclust

import (
	"math"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Linkage selects the cluster-to-cluster dissimilarity.
type Linkage string

const (
	LinkageWard     Linkage = "ward"
	LinkageAverage  Linkage = "average"
	LinkageSingle   Linkage = "single"
	LinkageComplete Linkage = "complete"
)

// Linkages lists the supported linkage names in their canonical order.
func Linkages() []Linkage {
	return []Linkage{LinkageWard, LinkageAverage, LinkageSingle, LinkageComplete}
}

// ParseLinkage maps a case-insensitive name to a Linkage.
func ParseLinkage(name string) (Linkage, error) {
	l := Linkage(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Linkages() {
		if l == known {
			return l, nil
		}
	}
	return "", invalidArgumentf("unknown linkage %q", name)
}

// Layout describes how a flat buffer stores a matrix.
type Layout int

const (
	// RowMajor stores each observation's columns contiguously.
	RowMajor Layout = iota
	// ColMajor stores each column contiguously, as R and Fortran do.
	ColMajor
)

// Config controls hierarchical clustering.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Linkage is the rule for the dissimilarity between two clusters.
	// Ward requires observation rows and the Euclidean distance.
	// Default: LinkageWard.
	Linkage Linkage

	// Distance is the dissimilarity between two observations. Ignored for
	// precomputed dissimilarity input. Default: DistanceEuclidean.
	Distance Distance

	// P is the Minkowski power. It is fixed for the whole run and only read
	// when Distance is DistanceMinkowski. Must be >= 1. Default: 2.
	P float64

	// Workers controls the number of goroutines used by the nearest-neighbour
	// scan and the SLINK distance columns. Results do not depend on it.
	// 0 means runtime.NumCPU(); 1 runs everything on the calling goroutine.
	Workers int

	// Logger receives run diagnostics. Default: a no-op logger.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Linkage:  LinkageWard,
		Distance: DistanceEuclidean,
		P:        2,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Linkage == "" {
		cfg.Linkage = LinkageWard
	}
	if cfg.Distance == "" {
		cfg.Distance = DistanceEuclidean
	}
	if cfg.P == 0 {
		cfg.P = 2
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// validateConfig checks cfg for the given input kind and returns a
// descriptive error if it cannot be used.
func validateConfig(cfg *Config, precomputed bool) error {
	if _, err := ParseLinkage(string(cfg.Linkage)); err != nil {
		return err
	}
	if cfg.Workers < 0 {
		return invalidArgumentf("Workers must be >= 0, got %d", cfg.Workers)
	}
	if precomputed {
		if cfg.Linkage == LinkageWard {
			return invalidArgumentf("linkage %q needs observation rows, not a dissimilarity matrix", cfg.Linkage)
		}
		return nil
	}
	if _, err := NewMetric(cfg.Distance, cfg.P); err != nil {
		return err
	}
	if cfg.Linkage == LinkageWard && cfg.Distance != DistanceEuclidean {
		return invalidArgumentf("linkage %q supports only the %q distance, got %q", cfg.Linkage, DistanceEuclidean, cfg.Distance)
	}
	return nil
}

// checkFinite rejects NaN and infinite input values.
func checkFinite(values []float64, what string) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidArgumentf("%s[%d] is %v; values must be finite", what, i, v)
		}
	}
	return nil
}

// Cluster builds the dendrogram of the given observations. Each element is
// one observation; all must have the same number of columns.
func Cluster(data [][]float64, cfg Config) (*Dendrogram, error) {
	n := len(data)
	if n == 0 {
		return nil, dimensionMismatchf("need at least 2 observations, got 0")
	}
	dims := len(data[0])
	flat := make([]float64, n*dims)
	for i, row := range data {
		if len(row) != dims {
			return nil, dimensionMismatchf("row %d has %d columns, expected %d", i, len(row), dims)
		}
		copy(flat[i*dims:], row)
	}
	return clusterRows(flat, n, dims, cfg)
}

// ClusterFlat builds the dendrogram of n observations with dims columns
// stored in data with the given layout. data is not modified.
func ClusterFlat(data []float64, n, dims int, layout Layout, cfg Config) (*Dendrogram, error) {
	if n < 0 || dims < 0 || len(data) != n*dims {
		return nil, dimensionMismatchf("data length %d does not match n*dims = %d (n=%d, dims=%d)", len(data), n*dims, n, dims)
	}
	switch layout {
	case RowMajor:
		return clusterRows(data, n, dims, cfg)
	case ColMajor:
		rows := make([]float64, len(data))
		for i := 0; i < n; i++ {
			for j := 0; j < dims; j++ {
				rows[i*dims+j] = data[j*n+i]
			}
		}
		return clusterRows(rows, n, dims, cfg)
	}
	return nil, invalidArgumentf("unknown layout %d", layout)
}

// ClusterMatrix builds the dendrogram of the rows of m.
func ClusterMatrix(m mat.Matrix, cfg Config) (*Dendrogram, error) {
	n, dims := m.Dims()
	if n < 2 || dims < 1 {
		return nil, dimensionMismatchf("matrix is %d×%d; need at least 2 rows and 1 column", n, dims)
	}
	raw := mat.DenseCopyOf(m).RawMatrix()
	return clusterRows(raw.Data, n, dims, cfg)
}

// ClusterDistances builds the dendrogram from precomputed dissimilarities.
// dist holds the strictly lower triangle of the n×n matrix column by column,
// n*(n-1)/2 values in all: d(2,1), d(3,1), …, d(n,1), d(3,2), … (R's dist
// layout). dist is copied and never modified.
func ClusterDistances(dist []float64, n int, cfg Config) (*Dendrogram, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg, true); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, dimensionMismatchf("need at least 2 observations, got %d", n)
	}
	if len(dist) != packedLen(n) {
		return nil, dimensionMismatchf("dist length %d does not match n*(n-1)/2 = %d (n=%d)", len(dist), packedLen(n), n)
	}
	if err := checkFinite(dist, "dist"); err != nil {
		return nil, err
	}
	cfg.Distance = ""

	var lw lanceWilliams
	switch cfg.Linkage {
	case LinkageAverage:
		lw = lanceWilliamsAverage
	case LinkageSingle:
		lw = lanceWilliamsSingle
	case LinkageComplete:
		lw = lanceWilliamsComplete
	}

	run := newRun(cfg, n, 0, "lance_williams")
	m := newStoredMethod(dist, n, lw)
	repo := newRepository(n)
	for i := 0; i < n; i++ {
		repo.addLeaf(i, m, nil)
	}
	chain := newRNNChain(repo, m, cfg.Workers)
	chain.run()
	run.forcedInfMerges = chain.infMerges

	d, err := formatDendrogram(repo)
	if err != nil {
		return nil, err
	}
	d.Linkage = cfg.Linkage
	run.finish(d)
	return d, nil
}

// ClusterSymmetric builds the dendrogram from a symmetric dissimilarity
// matrix. Only the strictly lower triangle is read.
func ClusterSymmetric(s mat.Symmetric, cfg Config) (*Dendrogram, error) {
	n := s.SymmetricDim()
	packed := make([]float64, 0, max(packedLen(n), 0))
	for j := 0; j < n; j++ {
		for i := j + 1; i < n; i++ {
			packed = append(packed, s.At(i, j))
		}
	}
	return ClusterDistances(packed, n, cfg)
}

// clusterRows validates row input and dispatches to SLINK for single
// linkage and to the nearest-neighbour chain otherwise.
func clusterRows(data []float64, n, dims int, cfg Config) (*Dendrogram, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg, false); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, dimensionMismatchf("need at least 2 observations, got %d", n)
	}
	if dims < 1 {
		return nil, dimensionMismatchf("observations need at least 1 column, got %d", dims)
	}
	if err := checkFinite(data, "data"); err != nil {
		return nil, err
	}
	metric, err := NewMetric(cfg.Distance, cfg.P)
	if err != nil {
		return nil, err
	}

	repo := newRepository(n)
	var run *runLog
	switch cfg.Linkage {
	case LinkageSingle:
		run = newRun(cfg, n, dims, "slink")
		for i := 0; i < n; i++ {
			repo.addLeaf(i, nil, nil)
		}
		if err := slink(data, n, dims, metric, cfg.Workers).replay(repo); err != nil {
			return nil, err
		}
	default:
		var m method
		if cfg.Linkage == LinkageWard {
			run = newRun(cfg, n, dims, "rnn_centroid")
			m = wardMethod{}
		} else {
			run = newRun(cfg, n, dims, "rnn_observations")
			m = &observationMethod{
				metric:   metric,
				data:     data,
				dims:     dims,
				complete: cfg.Linkage == LinkageComplete,
			}
		}
		for i := 0; i < n; i++ {
			repo.addLeaf(i, m, data[i*dims:(i+1)*dims])
		}
		chain := newRNNChain(repo, m, cfg.Workers)
		chain.run()
		run.forcedInfMerges = chain.infMerges
	}

	d, err := formatDendrogram(repo)
	if err != nil {
		return nil, err
	}
	d.Linkage = cfg.Linkage
	d.Distance = cfg.Distance
	run.finish(d)
	return d, nil
}

// runLog reports the start and end of one clustering run.
type runLog struct {
	logger          *zap.Logger
	start           time.Time
	forcedInfMerges int
}

func newRun(cfg Config, n, dims int, path string) *runLog {
	logger := cfg.Logger.With(
		zap.String("linkage", string(cfg.Linkage)),
		zap.String("path", path),
	)
	logger.Debug("clustering started",
		zap.Int("n", n),
		zap.Int("dims", dims),
		zap.String("distance", string(cfg.Distance)),
		zap.Int("workers", cfg.Workers),
	)
	return &runLog{logger: logger, start: time.Now()}
}

func (r *runLog) finish(d *Dendrogram) {
	infinite := 0
	for _, h := range d.Height {
		if math.IsInf(h, 1) {
			infinite++
		}
	}
	if infinite > 0 {
		r.logger.Warn("dendrogram contains merges at +Inf height",
			zap.Int("count", infinite),
			zap.Int("forced", r.forcedInfMerges),
		)
	}
	r.logger.Debug("clustering finished",
		zap.Int("merges", len(d.Merge)),
		zap.Duration("elapsed", time.Since(r.start)),
	)
}
