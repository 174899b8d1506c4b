package result

import "github.com/GKamundia/KrinoSeq/internal/domain"

// GMMComponent is one Gaussian sub-population of the length distribution.
// Transformed-space parameters come straight from the fit; original-space
// values are the engine's back-transformation when it provides one.
type GMMComponent struct {
	Weight float64 `json:"weight"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`

	MeanOriginal float64 `json:"mean_original,omitempty"`
	StdOriginal  float64 `json:"std_original,omitempty"`
}

// ComponentCurve is the sampled density of one component in original space.
type ComponentCurve struct {
	Curve
	ComponentIndex int     `json:"component_index"`
	Weight         float64 `json:"weight"`
}

// FilteringStats summarizes the effect of applying the recommended cutoff.
type FilteringStats struct {
	Cutoff                 float64 `json:"cutoff"`
	TotalContigs           int     `json:"total_contigs"`
	RetainedContigs        int     `json:"retained_contigs"`
	RetainedContigsPercent float64 `json:"retained_contigs_percent"`
	TotalBP                float64 `json:"total_bp"`
	RetainedBP             float64 `json:"retained_bp"`
	RetainedBPPercent      float64 `json:"retained_bp_percent"`
}

// NaturalDetail is the interpreted outcome of a natural-breakpoint stage.
// The component count is not fixed: zero or one component is a valid,
// renderable outcome meaning no meaningful cutoff exists, which is distinct
// from component data being absent altogether.
type NaturalDetail struct {
	Components []GMMComponent `json:"components"`
	Histogram  Histogram      `json:"histogram"`

	ComponentCurves []ComponentCurve `json:"component_curves,omitempty"`

	RecommendedCutoffs []float64 `json:"recommended_cutoffs"`
	SelectedCutoff     *float64  `json:"selected_cutoff,omitempty"`
	PeakCutoffs        []float64 `json:"peak_cutoffs,omitempty"`
	ValleyCutoffs      []float64 `json:"valley_cutoffs,omitempty"`

	BICScores []float64 `json:"bic_scores,omitempty"`
	AICScores []float64 `json:"aic_scores,omitempty"`
	LOOScores []float64 `json:"loo_scores,omitempty"`

	MethodUsed               string `json:"method_used,omitempty"`
	ComponentSelectionMethod string `json:"component_selection_method,omitempty"`
	TransformType            string `json:"transform_type,omitempty"`

	IsMultimodal bool `json:"is_multimodal"`

	// SingleComponent flags the degenerate one-population outcome so the
	// renderer can explain why no cutoff is drawn.
	SingleComponent bool `json:"single_component"`

	FilteringStats *FilteringStats `json:"filtering_stats,omitempty"`
}

func interpretNatural(d Detail) (*Interpreted, error) {
	// Engines wrap the payload under natural_breakpoint_details in some
	// versions; unwrap before reading.
	if nested, ok := d.Map("natural_breakpoint_details"); ok {
		d = nested
	}

	// Component data absent is an error; present but short is a valid
	// degenerate outcome. Has() keeps that distinction.
	if !d.Has("components") {
		return nil, &domain.MissingFieldError{Method: "natural", Field: "components"}
	}
	comps, _ := d.Maps("components")

	h, ok := histogramAt(d, "histogram")
	if !ok || h.Empty() {
		return nil, &domain.MissingFieldError{Method: "natural", Field: "histogram"}
	}

	out := &NaturalDetail{
		Histogram:                h,
		PeakCutoffs:              d.FloatsOr("peak_cutoffs"),
		ValleyCutoffs:            d.FloatsOr("valley_cutoffs"),
		BICScores:                d.FloatsOr("bic_scores"),
		AICScores:                d.FloatsOr("aic_scores"),
		LOOScores:                d.FloatsOr("loo_scores"),
		MethodUsed:               d.StringOr("method_used", ""),
		ComponentSelectionMethod: d.StringOr("component_selection_method", ""),
		IsMultimodal:             d.BoolOr("is_multimodal", false),
	}

	out.Components = make([]GMMComponent, 0, len(comps))
	for _, c := range comps {
		out.Components = append(out.Components, GMMComponent{
			Weight:       c.FloatOr("weight", 0),
			Mean:         c.FloatOr("mean", 0),
			Std:          c.FloatOr("std", 0),
			MeanOriginal: c.FloatOr("mean_original", 0),
			StdOriginal:  c.FloatOr("std_original", 0),
		})
	}
	out.SingleComponent = len(out.Components) <= 1

	// The cutoff list key drifted across versions; first present wins.
	for _, key := range []string{"recommended_cutoffs", "recommended", "gmm_based"} {
		if cutoffs, ok := d.Floats(key); ok {
			out.RecommendedCutoffs = cutoffs
			break
		}
	}
	if out.RecommendedCutoffs == nil {
		out.RecommendedCutoffs = []float64{}
	}
	if v, ok := d.Float("selected_cutoff"); ok {
		out.SelectedCutoff = &v
	} else if len(out.RecommendedCutoffs) > 0 {
		out.SelectedCutoff = &out.RecommendedCutoffs[0]
	}

	if tp, ok := d.Map("transform_params"); ok {
		out.TransformType = tp.StringOr("type", "")
	}

	if curves, ok := d.Maps("component_curves"); ok {
		for _, c := range curves {
			out.ComponentCurves = append(out.ComponentCurves, ComponentCurve{
				Curve:          Curve{X: c.FloatsOr("x"), Y: c.FloatsOr("y")},
				ComponentIndex: c.IntOr("component_index", len(out.ComponentCurves)),
				Weight:         c.FloatOr("weight", 0),
			})
		}
	}

	if fs, ok := d.Map("filtering_stats"); ok && len(fs) > 0 {
		out.FilteringStats = &FilteringStats{
			Cutoff:                 fs.FloatOr("cutoff", 0),
			TotalContigs:           fs.IntOr("total_contigs", 0),
			RetainedContigs:        fs.IntOr("retained_contigs", 0),
			RetainedContigsPercent: fs.FloatOr("retained_contigs_percent", 0),
			TotalBP:                fs.FloatOr("total_bp", 0),
			RetainedBP:             fs.FloatOr("retained_bp", 0),
			RetainedBPPercent:      fs.FloatOr("retained_bp_percent", 0),
		}
	}

	return &Interpreted{Kind: KindNatural, Natural: out}, nil
}
