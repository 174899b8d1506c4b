package result

import (
	"fmt"

	"github.com/GKamundia/KrinoSeq/internal/domain"
)

// AdaptiveDetail is the interpreted outcome of an adaptive stage. The engine
// picked IQR or Z-score from the distribution shape; exactly one of the
// nested details is set, matching SelectedMethod. Skewness and kurtosis are
// the documented rationale for the selection and are always surfaced
// alongside the recursed interpretation.
type AdaptiveDetail struct {
	SelectedMethod string  `json:"selected_method"`
	Skewness       float64 `json:"skewness"`
	Kurtosis       float64 `json:"kurtosis"`

	IQR    *IQRDetail    `json:"iqr,omitempty"`
	ZScore *ZScoreDetail `json:"zscore,omitempty"`
}

func interpretAdaptive(d Detail) (*Interpreted, error) {
	selected, ok := d.String("selected_method")
	if !ok {
		return nil, &domain.MissingFieldError{Method: "adaptive", Field: "selected_method"}
	}

	out := &AdaptiveDetail{
		SelectedMethod: selected,
		Skewness:       d.FloatOr("skewness", 0),
		Kurtosis:       d.FloatOr("kurtosis", 0),
	}

	inner, ok := d.Map("method_details")
	if !ok {
		return nil, &domain.MissingFieldError{Method: "adaptive", Field: "method_details"}
	}

	switch selected {
	case "iqr":
		detail, err := decodeIQRDetail(inner)
		if err != nil {
			return nil, err
		}
		out.IQR = detail
	case "zscore":
		detail, err := decodeZScoreDetail(inner)
		if err != nil {
			return nil, err
		}
		out.ZScore = detail
	default:
		return nil, fmt.Errorf("adaptive detail selected unknown method %q", selected)
	}

	return &Interpreted{Kind: KindAdaptive, Adaptive: out}, nil
}
