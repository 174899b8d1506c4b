package result

// MinMaxDetail is the interpreted outcome of an explicit-threshold stage:
// the thresholds applied plus samples of what was removed. Nothing here is
// essential; the record's own counts carry the primary story.
type MinMaxDetail struct {
	MinLength *float64 `json:"min_length,omitempty"`
	MaxLength *float64 `json:"max_length,omitempty"`

	RemovedCount       int       `json:"removed_count"`
	RemovedTotalLength float64   `json:"removed_total_length"`
	RemovedLengths     []float64 `json:"removed_lengths,omitempty"`
}

func interpretMinMax(d Detail) (*Interpreted, error) {
	out := &MinMaxDetail{}
	if v, ok := d.Float("min_length"); ok {
		out.MinLength = &v
	}
	if v, ok := d.Float("max_length"); ok {
		out.MaxLength = &v
	}
	out.RemovedLengths = d.FloatsOr("removed_lengths")
	// Prefer explicit counts; fall back to deriving them from the samples.
	out.RemovedCount = d.IntOr("removed_count", len(out.RemovedLengths))
	if v, ok := d.Float("removed_total_length"); ok {
		out.RemovedTotalLength = v
	} else {
		for _, l := range out.RemovedLengths {
			out.RemovedTotalLength += l
		}
	}
	return &Interpreted{Kind: KindMinMax, MinMax: out}, nil
}
