package result

import "github.com/GKamundia/KrinoSeq/internal/domain"

// OutlierSummary counts and samples the sequences a fence-based stage
// removed on each side.
type OutlierSummary struct {
	LowerCount int       `json:"lower_count"`
	UpperCount int       `json:"upper_count"`
	Lower      []float64 `json:"lower,omitempty"`
	Upper      []float64 `json:"upper,omitempty"`
}

// outliersFrom reads the outlier block, accepting either sampled lists or
// bare counts depending on engine version.
func outliersFrom(d Detail) OutlierSummary {
	var out OutlierSummary
	o, ok := d.Map("outliers")
	if !ok {
		return out
	}
	out.Lower = o.FloatsOr("lower_outliers")
	out.Upper = o.FloatsOr("upper_outliers")
	out.LowerCount = o.IntOr("lower_count", len(out.Lower))
	out.UpperCount = o.IntOr("upper_count", len(out.Upper))
	return out
}

// IQRDetail is the interpreted outcome of an interquartile-range stage:
// quartiles, derived fences, removed outliers, and the length histogram the
// fences are drawn over.
type IQRDetail struct {
	Q1  float64 `json:"q1"`
	Q3  float64 `json:"q3"`
	IQR float64 `json:"iqr"`
	K   float64 `json:"k"`

	LowerThreshold float64 `json:"lower_threshold"`
	UpperThreshold float64 `json:"upper_threshold"`

	Histogram Histogram      `json:"histogram"`
	Outliers  OutlierSummary `json:"outliers"`
}

// decodeIQRDetail unpacks an IQR payload. Newer engines nest the statistics
// under iqr_details; older ones inline them. The histogram is essential:
// without bins the fence chart cannot be drawn.
func decodeIQRDetail(d Detail) (*IQRDetail, error) {
	stats := d
	if nested, ok := d.Map("iqr_details"); ok {
		stats = nested
	}

	out := &IQRDetail{
		Q1:             stats.FloatOr("q1", 0),
		Q3:             stats.FloatOr("q3", 0),
		IQR:            stats.FloatOr("iqr", 0),
		K:              stats.FloatOr("k", 0),
		LowerThreshold: stats.FloatOr("lower_threshold", 0),
		UpperThreshold: stats.FloatOr("upper_threshold", 0),
		Outliers:       outliersFrom(d),
	}
	if out.IQR == 0 && out.Q3 > out.Q1 {
		out.IQR = out.Q3 - out.Q1
	}

	h, ok := histogramAt(d, "histogram")
	if !ok {
		h, ok = histogramAt(stats, "histogram")
	}
	if !ok || h.Empty() {
		return nil, &domain.MissingFieldError{Method: "iqr", Field: "histogram"}
	}
	out.Histogram = h
	return out, nil
}

func interpretIQR(d Detail) (*Interpreted, error) {
	detail, err := decodeIQRDetail(d)
	if err != nil {
		return nil, err
	}
	return &Interpreted{Kind: KindIQR, IQR: detail}, nil
}
