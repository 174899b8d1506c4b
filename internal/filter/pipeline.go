package filter

import (
	"encoding/json"

	"github.com/GKamundia/KrinoSeq/internal/assess"
	"github.com/GKamundia/KrinoSeq/internal/domain"
)

// PipelineConfig is an ordered sequence of stages plus optional
// assembly-assessment options. Stage order is execution order; results come
// back positionally. A config exclusively owns its stages.
type PipelineConfig struct {
	Stages []Stage `json:"stages"`

	// Assessment configures the optional downstream quality-assessment pass.
	// Nil means the pass is skipped.
	Assessment *assess.Options `json:"auxiliaryOptions,omitempty"`
}

// NewPipeline builds a config with one default stage per given method.
func NewPipeline(methods ...Method) (PipelineConfig, error) {
	var cfg PipelineConfig
	for _, m := range methods {
		s, err := NewStage(m)
		if err != nil {
			return PipelineConfig{}, err
		}
		cfg.Stages = append(cfg.Stages, s)
	}
	return cfg, nil
}

// Validate checks the whole configuration: at least one stage, every stage's
// parameters against its method's constraints, and the assessment options if
// present. All failures are collected; partial submission is not supported,
// so any failure rejects the pipeline as a whole.
func (c PipelineConfig) Validate() domain.ValidationResult {
	var res domain.ValidationResult
	if len(c.Stages) == 0 {
		res.AddPipeline("at least one stage required")
	}
	for i, s := range c.Stages {
		res.AddStage(i, ValidateStage(s))
	}
	if c.Assessment != nil {
		for _, e := range c.Assessment.Validate() {
			res.AddPipeline("auxiliaryOptions." + e.Error())
		}
	}
	return res
}

// EncodeRequest serializes the configuration into the engine's request
// shape. It refuses to encode a configuration that fails validation, so an
// invalid pipeline can never reach the wire.
func (c PipelineConfig) EncodeRequest() ([]byte, error) {
	if res := c.Validate(); !res.OK() {
		return nil, &InvalidConfigError{Result: res}
	}
	return json.Marshal(c)
}

// InvalidConfigError wraps a failed validation for callers that submit
// configurations off the happy path (file loading, stored configs).
type InvalidConfigError struct {
	Result domain.ValidationResult
}

func (e *InvalidConfigError) Error() string { return e.Result.Summary() }
