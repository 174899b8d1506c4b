package result

// Chart-ready shapes shared by several interpreters. These mirror the
// engine's visualization payloads; the client never computes them, only
// unpacks and forwards them to the renderer.

// Histogram holds binned length counts. BinCenters and Counts align
// one-to-one; BinEdges has one extra element when present.
type Histogram struct {
	BinEdges   []float64 `json:"bin_edges,omitempty"`
	BinCenters []float64 `json:"bin_centers"`
	Counts     []float64 `json:"counts"`
}

// Empty reports whether the histogram carries no renderable bins.
func (h Histogram) Empty() bool {
	return len(h.BinCenters) == 0 || len(h.Counts) == 0
}

// histogramAt unpacks a histogram object stored under key. The second return
// distinguishes "key absent or malformed" from a present histogram.
func histogramAt(d Detail, key string) (Histogram, bool) {
	m, ok := d.Map(key)
	if !ok {
		return Histogram{}, false
	}
	h := Histogram{
		BinEdges:   m.FloatsOr("bin_edges"),
		BinCenters: m.FloatsOr("bin_centers"),
		Counts:     m.FloatsOr("counts"),
	}
	// Older engine versions emit edges without centers; derive centers so
	// the renderer only ever sees one convention.
	if len(h.BinCenters) == 0 && len(h.BinEdges) > 1 {
		h.BinCenters = make([]float64, len(h.BinEdges)-1)
		for i := range h.BinCenters {
			h.BinCenters[i] = (h.BinEdges[i] + h.BinEdges[i+1]) / 2
		}
	}
	return h, true
}

// Curve is a sampled x/y series (KDE trace, mixture-component density).
type Curve struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Cumulative is the descending cumulative length distribution.
type Cumulative struct {
	Lengths           []float64 `json:"lengths"`
	CumulativePercent []float64 `json:"cumulative_percent"`
}

// Distribution bundles the three distribution views the engine renders for
// an assembly snapshot.
type Distribution struct {
	Histogram  Histogram  `json:"histogram"`
	KDE        Curve      `json:"kde"`
	Cumulative Cumulative `json:"cumulative"`
}

// distributionFrom unpacks a full distribution payload, tolerating any
// missing sub-view.
func distributionFrom(d Detail) Distribution {
	var out Distribution
	if h, ok := histogramAt(d, "histogram"); ok {
		out.Histogram = h
	}
	if kde, ok := d.Map("kde"); ok {
		out.KDE = Curve{X: kde.FloatsOr("x"), Y: kde.FloatsOr("density")}
	}
	if cum, ok := d.Map("cumulative"); ok {
		out.Cumulative = Cumulative{
			Lengths:           cum.FloatsOr("lengths"),
			CumulativePercent: cum.FloatsOr("cumulative_percent"),
		}
	}
	return out
}

// BeforeAfter pairs the input and output distribution snapshots of a run.
type BeforeAfter struct {
	Before Distribution `json:"before"`
	After  Distribution `json:"after"`
}

// DecodeBeforeAfter unpacks the engine's top-level visualization payload.
func DecodeBeforeAfter(raw map[string]any) BeforeAfter {
	d := Detail(raw)
	var out BeforeAfter
	if b, ok := d.Map("before"); ok {
		out.Before = distributionFrom(b)
	}
	if a, ok := d.Map("after"); ok {
		out.After = distributionFrom(a)
	}
	return out
}
