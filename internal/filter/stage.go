package filter

import (
	"encoding/json"
	"fmt"
)

// Stage is one step of the pipeline: a method plus the matching parameter
// bag. Stages are values; changing the method produces a new Stage rather
// than mutating the old one, so a Stage is never observable in a
// type-inconsistent intermediate state.
type Stage struct {
	Method Method
	Params StageParams
}

// NewStage builds a stage for a method with the registry defaults.
func NewStage(m Method) (Stage, error) {
	desc, err := Lookup(m)
	if err != nil {
		return Stage{}, err
	}
	return Stage{Method: m, Params: desc.Defaults()}, nil
}

// WithMethod returns a new stage using the given method and that method's
// default parameters. Previously entered parameter values are discarded: the
// per-method schemas are structurally unrelated, so no migration is
// attempted.
func (s Stage) WithMethod(m Method) (Stage, error) {
	return NewStage(m)
}

// stageWire is the serialized form: the method discriminator plus an opaque
// parameter object whose shape the discriminator selects.
type stageWire struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// MarshalJSON encodes the stage in the engine's request shape.
func (s Stage) MarshalJSON() ([]byte, error) {
	if _, err := Lookup(s.Method); err != nil {
		return nil, err
	}
	params, err := json.Marshal(s.Params)
	if err != nil {
		return nil, fmt.Errorf("marshal %s params: %w", s.Method, err)
	}
	return json.Marshal(stageWire{Method: string(s.Method), Params: params})
}

// UnmarshalJSON decodes a stage, dispatching on the method discriminator to
// pick the parameter shape. Omitted parameters decode to the method's
// defaults.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var wire stageWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode stage: %w", err)
	}
	m, err := ParseMethod(wire.Method)
	if err != nil {
		return err
	}
	params, err := decodeParams(m, wire.Params)
	if err != nil {
		return err
	}
	s.Method = m
	s.Params = params
	return nil
}
