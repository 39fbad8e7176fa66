package hclust

import "github.com/cockroachdb/errors"

// Sentinel errors. Every error returned by this package wraps exactly one of
// them, so callers can branch with errors.Is.
var (
	// ErrInvalidArgument reports an unknown or unsupported linkage/distance
	// combination, or an input value the algorithms cannot accept.
	ErrInvalidArgument = errors.New("hclust: invalid argument")

	// ErrDimensionMismatch reports a buffer whose length disagrees with the
	// declared shape, or fewer than two observations.
	ErrDimensionMismatch = errors.New("hclust: dimension mismatch")

	// ErrInternalInconsistency reports a violated post-condition. It always
	// indicates a bug in this package, never bad input.
	ErrInternalInconsistency = errors.New("hclust: internal inconsistency")
)

func invalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func dimensionMismatchf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDimensionMismatch, format, args...)
}

func inconsistencyf(format string, args ...interface{}) error {
	return errors.WithStack(errors.Wrapf(ErrInternalInconsistency, format, args...))
}
