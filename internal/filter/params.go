package filter

import (
	"encoding/json"
	"fmt"

	"github.com/GKamundia/KrinoSeq/internal/domain"
)

// StageParams is the parameter bag for one stage, keyed by the stage's
// method. Each method has a structurally unrelated schema, so params travel
// as a closed tagged union: the concrete type is determined by the Method
// discriminator and nothing else.
type StageParams interface {
	// method returns the discriminator this parameter shape belongs to.
	// Unexported so the union stays closed to this package.
	method() Method
}

// MinMaxParams configures explicit length thresholds. Both bounds are
// optional and independent; nil means unbounded on that side.
type MinMaxParams struct {
	MinLength *int `json:"min_length,omitempty"`
	MaxLength *int `json:"max_length,omitempty"`
}

func (MinMaxParams) method() Method { return MethodMinMax }

// IQRParams configures the interquartile-range fence multiplier.
type IQRParams struct {
	K float64 `json:"k"`
}

func (IQRParams) method() Method { return MethodIQR }

// ZScoreParams configures the Z-score outlier threshold.
type ZScoreParams struct {
	Threshold float64 `json:"threshold"`
}

func (ZScoreParams) method() Method { return MethodZScore }

// AdaptiveParams is empty: the engine selects the method internally.
type AdaptiveParams struct{}

func (AdaptiveParams) method() Method { return MethodAdaptive }

// N50OptimizeParams configures the cutoff search. Nil cutoff bounds defer to
// engine-side heuristics (min length / 10 and the median length).
type N50OptimizeParams struct {
	MinCutoff *int `json:"min_cutoff,omitempty"`
	MaxCutoff *int `json:"max_cutoff,omitempty"`
	Step      int  `json:"step"`
}

func (N50OptimizeParams) method() Method { return MethodN50Optimize }

// Cutoff calculation methods for natural-breakpoint filtering.
const (
	GMMCutoffMidpoint     = "midpoint"
	GMMCutoffIntersection = "intersection"
	GMMCutoffProbability  = "probability"
	GMMCutoffValley       = "valley"
)

// Data transforms applied before GMM fitting.
const (
	TransformBoxCox = "box-cox"
	TransformLog    = "log"
	TransformNone   = "none"
)

// Component-count selection criteria for the GMM.
const (
	ComponentSelectBIC       = "bic"
	ComponentSelectAIC       = "aic"
	ComponentSelectLOO       = "loo"
	ComponentSelectDirichlet = "dirichlet"
)

// NaturalBreakpointParams configures Gaussian-mixture breakpoint detection.
// Wire keys follow the engine's parameter names.
type NaturalBreakpointParams struct {
	GMMCutoffMethod          string `json:"gmm_method"`
	Transform                string `json:"transform"`
	ComponentSelectionMethod string `json:"component_method"`
}

func (NaturalBreakpointParams) method() Method { return MethodNatural }

// decodeParams unmarshals a raw parameter object into the shape selected by
// the method discriminator. An empty or absent object decodes to the
// method's defaults, matching the engine's behavior of filling defaults for
// omitted parameters.
func decodeParams(m Method, raw json.RawMessage) (StageParams, error) {
	desc, err := Lookup(m)
	if err != nil {
		return nil, err
	}
	params := desc.Defaults()
	if len(raw) == 0 {
		return params, nil
	}

	switch m {
	case MethodMinMax:
		p := params.(MinMaxParams)
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s params: %w", m, err)
		}
		return p, nil
	case MethodIQR:
		p := params.(IQRParams)
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s params: %w", m, err)
		}
		return p, nil
	case MethodZScore:
		p := params.(ZScoreParams)
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s params: %w", m, err)
		}
		return p, nil
	case MethodAdaptive:
		return AdaptiveParams{}, nil
	case MethodN50Optimize:
		p := params.(N50OptimizeParams)
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s params: %w", m, err)
		}
		return p, nil
	case MethodNatural:
		p := params.(NaturalBreakpointParams)
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s params: %w", m, err)
		}
		return p, nil
	}
	return nil, &domain.UnknownMethodError{Method: string(m)}
}

// intPtr is a small helper for building optional bounds in literals.
func intPtr(v int) *int { return &v }
