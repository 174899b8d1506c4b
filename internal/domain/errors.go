// Package domain provides the error taxonomy and validation result types
// shared by the configuration and result-interpretation layers.
package domain

import (
	"fmt"
	"sort"
)

// UnknownMethodError reports a stage referencing a method outside the closed
// set. This indicates stale persisted state or an engine/client version skew,
// never user input; it is fatal for the affected stage only.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown filter method: %q", e.Method)
}

// MissingFieldError reports a result payload lacking a field the chosen
// interpretation needs for its primary visualization. Callers recover by
// rendering a "detail unavailable" placeholder for that stage.
type MissingFieldError struct {
	Method string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("result detail for method %q is missing required field %q", e.Method, e.Field)
}

// FieldError is a single field-level validation failure. Field uses the wire
// name of the offending parameter so an editing UI can highlight the input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult aggregates validation failures for a pipeline
// configuration. Pipeline holds configuration-level messages (such as an
// empty stage list); Stages holds per-stage field errors keyed by stage
// index. Validation failures are returned as values, never as errors, so
// callers can render every problem at once.
type ValidationResult struct {
	Pipeline []string             `json:"pipeline,omitempty"`
	Stages   map[int][]FieldError `json:"stages,omitempty"`
}

// OK reports whether the configuration passed validation.
func (r ValidationResult) OK() bool {
	return len(r.Pipeline) == 0 && len(r.Stages) == 0
}

// AddPipeline records a configuration-level failure.
func (r *ValidationResult) AddPipeline(msg string) {
	r.Pipeline = append(r.Pipeline, msg)
}

// AddStage records field errors for the stage at the given index.
func (r *ValidationResult) AddStage(index int, errs []FieldError) {
	if len(errs) == 0 {
		return
	}
	if r.Stages == nil {
		r.Stages = make(map[int][]FieldError)
	}
	r.Stages[index] = append(r.Stages[index], errs...)
}

// Summary renders a one-line description of a failed validation for boundary
// logging. Validation failures travel as values, not errors.
func (r ValidationResult) Summary() string {
	if r.OK() {
		return "configuration is valid"
	}
	n := len(r.Pipeline)
	indexes := make([]int, 0, len(r.Stages))
	for i, errs := range r.Stages {
		n += len(errs)
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return fmt.Sprintf("configuration invalid: %d error(s), stages %v", n, indexes)
}
