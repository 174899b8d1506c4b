package result

import "github.com/GKamundia/KrinoSeq/internal/domain"

// N50Detail is the interpreted outcome of a cutoff-search stage: the curve
// of candidate cutoffs against the N50 they would yield, plus the optimum
// the engine settled on.
type N50Detail struct {
	Cutoffs   []float64 `json:"cutoffs"`
	N50Values []float64 `json:"n50_values"`
	L50Values []float64 `json:"l50_values,omitempty"`

	OptimalCutoff float64 `json:"optimal_cutoff"`
	OptimalN50    float64 `json:"optimal_n50"`
}

func interpretN50(d Detail) (*Interpreted, error) {
	out := &N50Detail{
		Cutoffs:       d.FloatsOr("cutoffs"),
		N50Values:     d.FloatsOr("n50_values"),
		L50Values:     d.FloatsOr("l50_values"),
		OptimalCutoff: d.FloatOr("optimal_cutoff", 0),
		OptimalN50:    d.FloatOr("optimal_n50", 0),
	}

	// Some engine versions emit the search curve as a list of point
	// objects instead of parallel arrays.
	if len(out.Cutoffs) == 0 {
		if points, ok := d.Maps("search_curve"); ok {
			for _, p := range points {
				c, cok := p.Float("cutoff")
				n, nok := p.Float("n50")
				if cok && nok {
					out.Cutoffs = append(out.Cutoffs, c)
					out.N50Values = append(out.N50Values, n)
				}
			}
		}
	}

	// The curve is the primary chart; without it the stage has nothing to
	// render beyond its counts.
	if len(out.Cutoffs) == 0 || len(out.N50Values) == 0 {
		return nil, &domain.MissingFieldError{Method: "n50_optimize", Field: "cutoffs"}
	}
	return &Interpreted{Kind: KindN50, N50: out}, nil
}
