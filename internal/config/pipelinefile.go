package config

import (
	"encoding/json"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/GKamundia/KrinoSeq/internal/filter"
)

// LoadPipeline reads a pipeline description file (YAML, or JSON as a YAML
// subset) into a validated PipelineConfig. Files describe the same shape
// the engine accepts:
//
//	stages:
//	  - method: iqr
//	    params: {k: 2.0}
//	auxiliaryOptions:
//	  eukaryote: true
//
// A file whose stages fail validation is rejected with the full validation
// result attached, so callers can print every field error at once.
func LoadPipeline(path string) (filter.PipelineConfig, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return filter.PipelineConfig{}, fmt.Errorf("load pipeline file %s: %w", path, err)
	}

	// Round-trip through JSON so the method-discriminated stage decoding in
	// the filter package applies to file input exactly as to wire input.
	raw, err := json.Marshal(k.Raw())
	if err != nil {
		return filter.PipelineConfig{}, fmt.Errorf("normalize pipeline file: %w", err)
	}

	var cfg filter.PipelineConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return filter.PipelineConfig{}, fmt.Errorf("parse pipeline file %s: %w", path, err)
	}

	if res := cfg.Validate(); !res.OK() {
		return filter.PipelineConfig{}, &filter.InvalidConfigError{Result: res}
	}
	return cfg, nil
}
