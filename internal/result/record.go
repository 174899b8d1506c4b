// Package result interprets the per-stage outcomes the analysis engine
// returns after executing a filter pipeline. The engine's detail payloads
// are loosely structured and have drifted across versions, so every field
// access goes through tolerant accessors and each method's interpreter maps
// the raw payload onto a closed, typed detail shape.
package result

import "encoding/json"

// Record is the outcome of one executed pipeline stage, read-only to the
// client. Detail carries the method-specific payload; any subset of its
// documented fields may be absent.
type Record struct {
	Method           string  `json:"method"`
	SequencesBefore  int     `json:"sequences_before"`
	SequencesAfter   int     `json:"sequences_after"`
	ReductionPercent float64 `json:"reduction_percent"`
	Detail           Detail  `json:"process_details"`
}

// UnmarshalJSON tolerates a missing or null process_details object; a Record
// with no detail still carries its counts and summarizes normally.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Detail == nil {
		a.Detail = Detail{}
	}
	*r = Record(a)
	return nil
}
