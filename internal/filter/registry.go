package filter

import "github.com/GKamundia/KrinoSeq/internal/domain"

// Descriptor is the registry entry for one filtering method: its default
// parameter shape, a human-readable description, the validation predicate
// applied to its parameters, and the identifier of the interpretation
// routine the result dispatcher uses for this method's payloads.
type Descriptor struct {
	Method      Method
	Description string

	// Defaults returns a fresh default parameter value. Always a new value,
	// never shared state, so callers can't corrupt the registry.
	Defaults func() StageParams

	// Validate applies the method's domain constraints to a parameter bag.
	// It returns field-level errors; empty means valid. The predicate also
	// rejects a bag whose concrete shape doesn't match the method.
	Validate func(StageParams) []domain.FieldError

	// Interpreter names the interpretation routine for the method's result
	// payload. Result dispatch keys off this, not the Method value, so an
	// interpretation routine can serve more than one method.
	Interpreter string
}

// Interpretation routine identifiers referenced by Descriptor.Interpreter.
const (
	InterpretMinMax   = "min_max"
	InterpretIQR      = "iqr"
	InterpretZScore   = "zscore"
	InterpretAdaptive = "adaptive"
	InterpretN50      = "n50_optimize"
	InterpretNatural  = "natural"
)

// registry is process-wide static data: built once, read-only thereafter.
// The closed method set makes dynamic registration unnecessary.
var registry = map[Method]Descriptor{
	MethodMinMax: {
		Method:      MethodMinMax,
		Description: "Filter contigs by explicit minimum and/or maximum length",
		Defaults:    func() StageParams { return MinMaxParams{} },
		Validate:    validateMinMax,
		Interpreter: InterpretMinMax,
	},
	MethodIQR: {
		Method:      MethodIQR,
		Description: "Remove length outliers beyond k times the interquartile range",
		Defaults:    func() StageParams { return IQRParams{K: DefaultIQRK} },
		Validate:    validateIQR,
		Interpreter: InterpretIQR,
	},
	MethodZScore: {
		Method:      MethodZScore,
		Description: "Remove length outliers beyond a Z-score threshold",
		Defaults:    func() StageParams { return ZScoreParams{Threshold: DefaultZScoreThreshold} },
		Validate:    validateZScore,
		Interpreter: InterpretZScore,
	},
	MethodAdaptive: {
		Method:      MethodAdaptive,
		Description: "Let the engine pick IQR or Z-score from the distribution shape",
		Defaults:    func() StageParams { return AdaptiveParams{} },
		Validate:    validateAdaptive,
		Interpreter: InterpretAdaptive,
	},
	MethodN50Optimize: {
		Method:      MethodN50Optimize,
		Description: "Search minimum-length cutoffs for the one maximizing N50",
		Defaults:    func() StageParams { return N50OptimizeParams{Step: DefaultN50Step} },
		Validate:    validateN50Optimize,
		Interpreter: InterpretN50,
	},
	MethodNatural: {
		Method:      MethodNatural,
		Description: "Cut at natural breakpoints from Gaussian-mixture decomposition",
		Defaults: func() StageParams {
			return NaturalBreakpointParams{
				GMMCutoffMethod:          GMMCutoffMidpoint,
				Transform:                TransformBoxCox,
				ComponentSelectionMethod: ComponentSelectBIC,
			}
		},
		Validate:    validateNatural,
		Interpreter: InterpretNatural,
	},
}

// Lookup returns the registry entry for a method. An unrecognized method
// yields an UnknownMethodError; given the closed enumeration this indicates
// an upstream data-integrity problem, not a user mistake.
func Lookup(m Method) (Descriptor, error) {
	desc, ok := registry[m]
	if !ok {
		return Descriptor{}, &domain.UnknownMethodError{Method: string(m)}
	}
	return desc, nil
}
