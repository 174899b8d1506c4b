package result

import (
	"log/slog"
	"sort"
)

// StageSummary is the per-stage slice of a pipeline summary.
type StageSummary struct {
	Index            int     `json:"index"`
	Method           string  `json:"method"`
	SequencesBefore  int     `json:"sequences_before"`
	SequencesAfter   int     `json:"sequences_after"`
	Removed          int     `json:"removed"`
	ReductionPercent float64 `json:"reduction_percent"`
}

// MethodImpact aggregates removal across all stages sharing a method.
type MethodImpact struct {
	Method  string `json:"method"`
	Stages  int    `json:"stages"`
	Removed int    `json:"removed"`
}

// IntegrityWarning records adjacent stages whose before/after counts don't
// chain. The two numbers come from independent engine computations, so a
// mismatch is logged and surfaced but never fatal.
type IntegrityWarning struct {
	StageIndex int `json:"stage_index"`
	After      int `json:"after"`
	NextBefore int `json:"next_before"`
}

// Summary is the pipeline-wide reduction report, recomputed on demand from
// an ordered record sequence and never mutated in place.
type Summary struct {
	TotalBefore           int     `json:"total_before"`
	TotalAfter            int     `json:"total_after"`
	TotalRemoved          int     `json:"total_removed"`
	TotalReductionPercent float64 `json:"total_reduction_percent"`

	Stages    []StageSummary     `json:"stages"`
	PerMethod []MethodImpact     `json:"per_method"`
	Warnings  []IntegrityWarning `json:"warnings,omitempty"`
}

// reductionPercent computes (before-after)/before*100 with the convention
// that an empty input stage reduces by 0%, never a division error.
func reductionPercent(before, after int) float64 {
	if before <= 0 {
		return 0
	}
	return float64(before-after) / float64(before) * 100
}

// Summarize reduces an ordered record sequence into pipeline-wide
// statistics. Deterministic and side-effect free apart from warning logs:
// summarizing the same records twice yields identical summaries.
func Summarize(records []Record, logger *slog.Logger) Summary {
	if logger == nil {
		logger = slog.Default()
	}

	var sum Summary
	if len(records) == 0 {
		sum.Stages = []StageSummary{}
		sum.PerMethod = []MethodImpact{}
		return sum
	}

	sum.TotalBefore = records[0].SequencesBefore
	sum.TotalAfter = records[len(records)-1].SequencesAfter
	sum.TotalRemoved = sum.TotalBefore - sum.TotalAfter
	sum.TotalReductionPercent = reductionPercent(sum.TotalBefore, sum.TotalAfter)

	impacts := make(map[string]*MethodImpact)
	sum.Stages = make([]StageSummary, len(records))
	for i, rec := range records {
		removed := rec.SequencesBefore - rec.SequencesAfter
		sum.Stages[i] = StageSummary{
			Index:            i,
			Method:           rec.Method,
			SequencesBefore:  rec.SequencesBefore,
			SequencesAfter:   rec.SequencesAfter,
			Removed:          removed,
			ReductionPercent: reductionPercent(rec.SequencesBefore, rec.SequencesAfter),
		}

		imp, ok := impacts[rec.Method]
		if !ok {
			imp = &MethodImpact{Method: rec.Method}
			impacts[rec.Method] = imp
		}
		imp.Stages++
		imp.Removed += removed

		if i+1 < len(records) && rec.SequencesAfter != records[i+1].SequencesBefore {
			w := IntegrityWarning{
				StageIndex: i,
				After:      rec.SequencesAfter,
				NextBefore: records[i+1].SequencesBefore,
			}
			sum.Warnings = append(sum.Warnings, w)
			logger.Warn("stage counts do not chain",
				slog.Int("stage", i),
				slog.Int("after", w.After),
				slog.Int("next_before", w.NextBefore))
		}
	}

	sum.PerMethod = make([]MethodImpact, 0, len(impacts))
	for _, imp := range impacts {
		sum.PerMethod = append(sum.PerMethod, *imp)
	}
	// Map iteration order is random; sort so summaries are comparable.
	sort.Slice(sum.PerMethod, func(i, j int) bool {
		return sum.PerMethod[i].Method < sum.PerMethod[j].Method
	})

	return sum
}
