package result

import (
	"errors"
	"log/slog"

	"github.com/GKamundia/KrinoSeq/internal/domain"
	"github.com/GKamundia/KrinoSeq/internal/filter"
)

// DetailKind discriminates the closed set of interpreted detail shapes.
type DetailKind string

const (
	KindMinMax   DetailKind = "min_max"
	KindIQR      DetailKind = "iqr"
	KindZScore   DetailKind = "zscore"
	KindAdaptive DetailKind = "adaptive"
	KindN50      DetailKind = "n50_optimize"
	KindNatural  DetailKind = "natural"

	// KindUnavailable marks a stage whose detail lacked a field its primary
	// chart needs; the stage renders a placeholder and its siblings are
	// unaffected.
	KindUnavailable DetailKind = "unavailable"

	// KindUnsupported marks a stage naming a method outside the closed set.
	KindUnsupported DetailKind = "unsupported"
)

// Interpreted is the dispatcher's output for one record: a closed tagged
// union with exactly one variant populated according to Kind, plus the
// record's own counts for rendering alongside the detail.
type Interpreted struct {
	Method           string     `json:"method"`
	Kind             DetailKind `json:"kind"`
	SequencesBefore  int        `json:"sequences_before"`
	SequencesAfter   int        `json:"sequences_after"`
	ReductionPercent float64    `json:"reduction_percent"`

	MinMax   *MinMaxDetail   `json:"min_max,omitempty"`
	IQR      *IQRDetail      `json:"iqr,omitempty"`
	ZScore   *ZScoreDetail   `json:"zscore,omitempty"`
	Adaptive *AdaptiveDetail `json:"adaptive,omitempty"`
	N50      *N50Detail      `json:"n50,omitempty"`
	Natural  *NaturalDetail  `json:"natural,omitempty"`

	// Reason explains an unavailable or unsupported outcome.
	Reason string `json:"reason,omitempty"`
}

// interpretFunc unpacks one method's raw detail payload. A returned
// MissingFieldError means the primary chart cannot be rendered; any other
// error is treated the same way since the payload is beyond saving.
type interpretFunc func(d Detail) (*Interpreted, error)

// interpreters maps the registry's interpretation-routine identifiers to
// their implementations. Keyed by routine id rather than method so a routine
// can serve several methods if the registry says so.
var interpreters = map[string]interpretFunc{
	filter.InterpretMinMax:   interpretMinMax,
	filter.InterpretIQR:      interpretIQR,
	filter.InterpretZScore:   interpretZScore,
	filter.InterpretAdaptive: interpretAdaptive,
	filter.InterpretN50:      interpretN50,
	filter.InterpretNatural:  interpretNatural,
}

// Dispatcher routes records to the interpretation routine matching their
// method. It never fails a whole result set: per-stage problems become
// per-stage placeholder outcomes.
type Dispatcher struct {
	logger *slog.Logger
}

// NewDispatcher builds a dispatcher. A nil logger falls back to the default.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// Interpret maps one record to its interpreted detail. Pure with respect to
// its input: re-interpreting an unchanged record yields an identical value.
func (dp *Dispatcher) Interpret(rec Record) Interpreted {
	out := Interpreted{
		Method:           rec.Method,
		SequencesBefore:  rec.SequencesBefore,
		SequencesAfter:   rec.SequencesAfter,
		ReductionPercent: rec.ReductionPercent,
	}

	method, err := filter.ParseMethod(rec.Method)
	if err != nil {
		dp.logger.Warn("unsupported method in result record",
			slog.String("method", rec.Method))
		out.Kind = KindUnsupported
		out.Reason = err.Error()
		return out
	}
	desc, err := filter.Lookup(method)
	if err != nil {
		out.Kind = KindUnsupported
		out.Reason = err.Error()
		return out
	}

	fn, ok := interpreters[desc.Interpreter]
	if !ok {
		// Registry names a routine this build doesn't carry; treat like an
		// unknown method so the stage degrades instead of panicking.
		dp.logger.Error("no interpreter for routine",
			slog.String("routine", desc.Interpreter))
		out.Kind = KindUnsupported
		out.Reason = "no interpreter registered for " + desc.Interpreter
		return out
	}

	interpreted, err := fn(rec.Detail)
	if err != nil {
		var missing *domain.MissingFieldError
		if errors.As(err, &missing) {
			dp.logger.Warn("stage detail unavailable",
				slog.String("method", rec.Method),
				slog.String("field", missing.Field))
		} else {
			dp.logger.Warn("stage detail uninterpretable",
				slog.String("method", rec.Method),
				slog.String("error", err.Error()))
		}
		out.Kind = KindUnavailable
		out.Reason = err.Error()
		return out
	}

	out.Kind = interpreted.Kind
	out.MinMax = interpreted.MinMax
	out.IQR = interpreted.IQR
	out.ZScore = interpreted.ZScore
	out.Adaptive = interpreted.Adaptive
	out.N50 = interpreted.N50
	out.Natural = interpreted.Natural
	return out
}

// InterpretAll interprets an ordered record sequence positionally. One
// stage's unrenderable detail never blocks its siblings.
func (dp *Dispatcher) InterpretAll(records []Record) []Interpreted {
	out := make([]Interpreted, len(records))
	for i, rec := range records {
		out[i] = dp.Interpret(rec)
	}
	return out
}
