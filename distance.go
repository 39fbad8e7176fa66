package hclust

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Distance names the observation-level dissimilarity used for row input.
type Distance string

const (
	DistanceEuclidean Distance = "euclidean"
	DistanceManhattan Distance = "manhattan"
	DistanceMaximum   Distance = "maximum"
	DistanceMinkowski Distance = "minkowski"
)

// Distances lists the supported distance names in their canonical order.
func Distances() []Distance {
	return []Distance{DistanceEuclidean, DistanceManhattan, DistanceMaximum, DistanceMinkowski}
}

// ParseDistance maps a case-insensitive name to a Distance.
func ParseDistance(name string) (Distance, error) {
	d := Distance(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Distances() {
		if d == known {
			return d, nil
		}
	}
	return "", invalidArgumentf("unknown distance %q", name)
}

// Metric computes the dissimilarity of two observation vectors of equal length.
type Metric interface {
	Distance(a, b []float64) float64
}

// NewMetric returns the Metric for d. The Minkowski power p is bound here and
// stays fixed for the lifetime of the metric. Powers 1, 2 and +Inf resolve to
// the Manhattan, Euclidean and Maximum implementations so that their results
// are bitwise identical to those distances.
func NewMetric(d Distance, p float64) (Metric, error) {
	switch d {
	case DistanceEuclidean:
		return EuclideanMetric{}, nil
	case DistanceManhattan:
		return ManhattanMetric{}, nil
	case DistanceMaximum:
		return MaximumMetric{}, nil
	case DistanceMinkowski:
		switch {
		case math.IsNaN(p) || p < 1:
			return nil, invalidArgumentf("minkowski power must be >= 1, got %v", p)
		case p == 1:
			return ManhattanMetric{}, nil
		case p == 2:
			return EuclideanMetric{}, nil
		case math.IsInf(p, 1):
			return MaximumMetric{}, nil
		}
		return MinkowskiMetric{P: p}, nil
	}
	return nil, invalidArgumentf("unknown distance %q", d)
}

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return math.Sqrt(sumOfSquares(a, b))
}

func sumOfSquares(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// MaximumMetric computes the maximum (Chebyshev / L-infinity) distance.
type MaximumMetric struct{}

func (MaximumMetric) Distance(a, b []float64) float64 {
	var maxVal float64
	for i := range a {
		if v := math.Abs(a[i] - b[i]); v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// MinkowskiMetric computes the Minkowski distance (sum |a-b|^P)^(1/P).
// Use NewMetric rather than constructing it directly when bitwise agreement
// with the special-case distances matters.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, m.P)
}
