// Package filter models the client side of the contig-filter pipeline: the
// closed set of filtering methods, their parameter schemas, per-method
// validation, and the pipeline configuration submitted to the analysis
// engine.
package filter

import "github.com/GKamundia/KrinoSeq/internal/domain"

// Method identifies one filtering method. The set is closed; values are the
// exact lowercase identifiers the engine accepts on the wire.
type Method string

const (
	// MethodMinMax filters by explicit minimum/maximum length thresholds.
	MethodMinMax Method = "min_max"

	// MethodIQR removes length outliers using interquartile-range fences.
	MethodIQR Method = "iqr"

	// MethodZScore removes length outliers beyond a Z-score threshold.
	MethodZScore Method = "zscore"

	// MethodAdaptive lets the engine choose between IQR and Z-score based on
	// the shape of the length distribution.
	MethodAdaptive Method = "adaptive"

	// MethodN50Optimize searches minimum-length cutoffs for the one that
	// maximizes N50.
	MethodN50Optimize Method = "n50_optimize"

	// MethodNatural cuts at natural breakpoints found by Gaussian-mixture
	// decomposition of the length distribution.
	MethodNatural Method = "natural"
)

// methods lists every member of the closed set, in registry order.
var methods = []Method{
	MethodMinMax,
	MethodIQR,
	MethodZScore,
	MethodAdaptive,
	MethodN50Optimize,
	MethodNatural,
}

// Methods returns the closed set of filtering methods in stable order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

func (m Method) String() string { return string(m) }

// Known reports whether m is a member of the closed set.
func (m Method) Known() bool {
	_, ok := registry[m]
	return ok
}

// ParseMethod maps a wire identifier to a Method. Unrecognized identifiers
// yield an UnknownMethodError; with a healthy upstream this is unreachable
// and signals stale persisted state.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !m.Known() {
		return "", &domain.UnknownMethodError{Method: s}
	}
	return m, nil
}
