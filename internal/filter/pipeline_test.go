package filter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/GKamundia/KrinoSeq/internal/assess"
)

func TestPipelineValidateEmpty(t *testing.T) {
	var cfg PipelineConfig
	res := cfg.Validate()
	if res.OK() {
		t.Fatal("empty pipeline passed validation")
	}
	if len(res.Pipeline) != 1 || !strings.Contains(res.Pipeline[0], "at least one stage") {
		t.Errorf("unexpected pipeline errors: %v", res.Pipeline)
	}
}

func TestPipelineValidateCollectsAllStages(t *testing.T) {
	cfg := PipelineConfig{Stages: []Stage{
		{Method: MethodIQR, Params: IQRParams{K: 50}},
		{Method: MethodZScore, Params: ZScoreParams{Threshold: 2.5}},
		{Method: MethodN50Optimize, Params: N50OptimizeParams{Step: 0}},
	}}
	res := cfg.Validate()
	if res.OK() {
		t.Fatal("invalid pipeline passed validation")
	}
	if _, ok := res.Stages[0]; !ok {
		t.Error("stage 0 error missing")
	}
	if _, ok := res.Stages[1]; ok {
		t.Errorf("valid stage 1 reported errors: %v", res.Stages[1])
	}
	if _, ok := res.Stages[2]; !ok {
		t.Error("stage 2 error missing")
	}
}

func TestPipelineValidateAssessment(t *testing.T) {
	cfg, err := NewPipeline(MethodIQR)
	if err != nil {
		t.Fatal(err)
	}
	opts := assess.DefaultOptions()
	opts.Threads = 0
	cfg.Assessment = &opts

	res := cfg.Validate()
	if res.OK() {
		t.Fatal("invalid assessment options passed validation")
	}
	found := false
	for _, msg := range res.Pipeline {
		if strings.HasPrefix(msg, "auxiliaryOptions.threads") {
			found = true
		}
	}
	if !found {
		t.Errorf("assessment error not prefixed with auxiliaryOptions: %v", res.Pipeline)
	}
}

func TestEncodeRequestRefusesInvalid(t *testing.T) {
	cfg := PipelineConfig{Stages: []Stage{{Method: MethodIQR, Params: IQRParams{K: 0}}}}
	_, err := cfg.EncodeRequest()
	var invalid *InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}
	if invalid.Result.OK() {
		t.Error("error carries an OK validation result")
	}
}

func TestEncodeRequestWireShape(t *testing.T) {
	cfg, err := NewPipeline(MethodMinMax, MethodIQR)
	if err != nil {
		t.Fatal(err)
	}
	opts := assess.DefaultOptions()
	if err := opts.SetGenomeType(assess.GenomeEukaryote); err != nil {
		t.Fatal(err)
	}
	cfg.Assessment = &opts

	data, err := cfg.EncodeRequest()
	if err != nil {
		t.Fatal(err)
	}
	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatal(err)
	}
	stages, ok := wire["stages"].([]any)
	if !ok || len(stages) != 2 {
		t.Fatalf("wire form has %v stages, want 2: %s", wire["stages"], data)
	}
	if _, ok := wire["auxiliaryOptions"]; !ok {
		t.Errorf("assessment options missing from wire form under auxiliaryOptions: %s", data)
	}
}

func TestNewPipelineUnknownMethod(t *testing.T) {
	_, err := NewPipeline(MethodIQR, Method("bogus"))
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestPipelineConfigJSONRoundTrip(t *testing.T) {
	cfg, err := NewPipeline(MethodAdaptive, MethodNatural)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var back PipelineConfig
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Stages) != 2 {
		t.Fatalf("round trip lost stages: %+v", back)
	}
	if back.Stages[0].Method != MethodAdaptive || back.Stages[1].Method != MethodNatural {
		t.Errorf("round trip reordered stages: %+v", back.Stages)
	}
	if res := back.Validate(); !res.OK() {
		t.Errorf("round-tripped config fails validation: %v", res)
	}
}
