package result

import "github.com/GKamundia/KrinoSeq/internal/domain"

// ZScoreDetail is the interpreted outcome of a Z-score stage: distribution
// moments, the threshold, derived bounds, removed outliers, and the length
// histogram.
type ZScoreDetail struct {
	Mean      float64 `json:"mean"`
	Std       float64 `json:"std"`
	Threshold float64 `json:"threshold"`

	LowerThreshold float64 `json:"lower_threshold"`
	UpperThreshold float64 `json:"upper_threshold"`

	Histogram Histogram      `json:"histogram"`
	Outliers  OutlierSummary `json:"outliers"`
}

// decodeZScoreDetail unpacks a Z-score payload, accepting the statistics
// nested under zscore_details or inlined. Histogram is essential.
func decodeZScoreDetail(d Detail) (*ZScoreDetail, error) {
	stats := d
	if nested, ok := d.Map("zscore_details"); ok {
		stats = nested
	}

	out := &ZScoreDetail{
		Mean:           stats.FloatOr("mean", 0),
		Std:            stats.FloatOr("std", 0),
		Threshold:      stats.FloatOr("threshold", 0),
		LowerThreshold: stats.FloatOr("lower_threshold", 0),
		UpperThreshold: stats.FloatOr("upper_threshold", 0),
		Outliers:       outliersFrom(d),
	}

	h, ok := histogramAt(d, "histogram")
	if !ok {
		h, ok = histogramAt(stats, "histogram")
	}
	if !ok || h.Empty() {
		return nil, &domain.MissingFieldError{Method: "zscore", Field: "histogram"}
	}
	out.Histogram = h
	return out, nil
}

func interpretZScore(d Detail) (*Interpreted, error) {
	detail, err := decodeZScoreDetail(d)
	if err != nil {
		return nil, err
	}
	return &Interpreted{Kind: KindZScore, ZScore: detail}, nil
}
