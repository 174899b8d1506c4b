package filter

import (
	"fmt"

	"github.com/GKamundia/KrinoSeq/internal/domain"
)

// Default parameter values and domain bounds. These mirror the constraints
// the engine enforces, so a configuration that validates here is accepted
// upstream.
const (
	DefaultIQRK            = 1.5
	DefaultZScoreThreshold = 2.5
	DefaultN50Step         = 10

	// IQR k and Z-score threshold share the open-closed domain (0.1, 10].
	multiplierMin = 0.1
	multiplierMax = 10

	n50StepMin = 1
	n50StepMax = 1000
)

func wrongShape(m Method, got StageParams) []domain.FieldError {
	return []domain.FieldError{{
		Field:   "params",
		Message: fmt.Sprintf("parameter shape %T does not match method %q", got, m),
	}}
}

func validateMinMax(sp StageParams) []domain.FieldError {
	p, ok := sp.(MinMaxParams)
	if !ok {
		return wrongShape(MethodMinMax, sp)
	}
	var errs []domain.FieldError
	if p.MinLength != nil && *p.MinLength < 0 {
		errs = append(errs, domain.FieldError{Field: "min_length", Message: "must not be negative"})
	}
	if p.MaxLength != nil && *p.MaxLength < 0 {
		errs = append(errs, domain.FieldError{Field: "max_length", Message: "must not be negative"})
	}
	if p.MinLength != nil && p.MaxLength != nil && *p.MinLength > *p.MaxLength {
		errs = append(errs, domain.FieldError{Field: "min_length", Message: "must not exceed max_length"})
	}
	return errs
}

func validateIQR(sp StageParams) []domain.FieldError {
	p, ok := sp.(IQRParams)
	if !ok {
		return wrongShape(MethodIQR, sp)
	}
	if p.K <= multiplierMin || p.K > multiplierMax {
		return []domain.FieldError{{
			Field:   "k",
			Message: fmt.Sprintf("must be greater than %v and at most %v", multiplierMin, multiplierMax),
		}}
	}
	return nil
}

func validateZScore(sp StageParams) []domain.FieldError {
	p, ok := sp.(ZScoreParams)
	if !ok {
		return wrongShape(MethodZScore, sp)
	}
	if p.Threshold <= multiplierMin || p.Threshold > multiplierMax {
		return []domain.FieldError{{
			Field:   "threshold",
			Message: fmt.Sprintf("must be greater than %v and at most %v", multiplierMin, multiplierMax),
		}}
	}
	return nil
}

func validateAdaptive(sp StageParams) []domain.FieldError {
	if _, ok := sp.(AdaptiveParams); !ok {
		return wrongShape(MethodAdaptive, sp)
	}
	return nil
}

func validateN50Optimize(sp StageParams) []domain.FieldError {
	p, ok := sp.(N50OptimizeParams)
	if !ok {
		return wrongShape(MethodN50Optimize, sp)
	}
	var errs []domain.FieldError
	if p.Step < n50StepMin || p.Step > n50StepMax {
		errs = append(errs, domain.FieldError{
			Field:   "step",
			Message: fmt.Sprintf("must be between %d and %d", n50StepMin, n50StepMax),
		})
	}
	if p.MinCutoff != nil && *p.MinCutoff < 0 {
		errs = append(errs, domain.FieldError{Field: "min_cutoff", Message: "must not be negative"})
	}
	if p.MaxCutoff != nil && *p.MaxCutoff < 0 {
		errs = append(errs, domain.FieldError{Field: "max_cutoff", Message: "must not be negative"})
	}
	if p.MinCutoff != nil && p.MaxCutoff != nil && *p.MinCutoff >= *p.MaxCutoff {
		errs = append(errs, domain.FieldError{Field: "min_cutoff", Message: "must be less than max_cutoff"})
	}
	return errs
}

func validateNatural(sp StageParams) []domain.FieldError {
	p, ok := sp.(NaturalBreakpointParams)
	if !ok {
		return wrongShape(MethodNatural, sp)
	}
	var errs []domain.FieldError
	switch p.GMMCutoffMethod {
	case GMMCutoffMidpoint, GMMCutoffIntersection, GMMCutoffProbability, GMMCutoffValley:
	default:
		errs = append(errs, domain.FieldError{Field: "gmm_method", Message: "must be one of midpoint, intersection, probability, valley"})
	}
	switch p.Transform {
	case TransformBoxCox, TransformLog, TransformNone:
	default:
		errs = append(errs, domain.FieldError{Field: "transform", Message: "must be one of box-cox, log, none"})
	}
	switch p.ComponentSelectionMethod {
	case ComponentSelectBIC, ComponentSelectAIC, ComponentSelectLOO, ComponentSelectDirichlet:
	default:
		errs = append(errs, domain.FieldError{Field: "component_method", Message: "must be one of bic, aic, loo, dirichlet"})
	}
	return errs
}

// ValidateStage applies the registry predicate for the stage's method to its
// parameters. An unknown method is reported as a field error on "method" so
// one corrupt stage never aborts validation of its siblings.
func ValidateStage(s Stage) []domain.FieldError {
	desc, err := Lookup(s.Method)
	if err != nil {
		return []domain.FieldError{{Field: "method", Message: err.Error()}}
	}
	if s.Params == nil {
		return []domain.FieldError{{Field: "params", Message: "parameters are missing"}}
	}
	return desc.Validate(s.Params)
}
