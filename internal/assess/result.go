package assess

// Result types for the assembly-assessment pass. Unlike the per-stage
// filter details these are emitted by a stable report parser upstream, so
// plain struct decoding suffices; optional sections are pointers.

// AssemblyMetrics holds the assessment report for one assembly.
type AssemblyMetrics struct {
	Name            string             `json:"name"`
	Metrics         map[string]any     `json:"metrics"`
	ContigCounts    map[string]int     `json:"contig_counts"`
	LengthStats     map[string]float64 `json:"length_stats"`
	AssemblyQuality map[string]float64 `json:"assembly_quality"`

	ReferenceMetrics map[string]float64 `json:"reference_metrics,omitempty"`
	GeneMetrics      map[string]float64 `json:"gene_metrics,omitempty"`
}

// Comparison contrasts the filtered assembly against the original,
// metric by metric.
type Comparison struct {
	AbsoluteChange map[string]float64 `json:"absolute_change"`
	PercentChange  map[string]float64 `json:"percent_change"`
	Improvements   map[string]bool    `json:"improvements"`

	OverallImprovementScore float64 `json:"overall_improvement_score"`
	OverallImproved         bool    `json:"overall_improved"`

	PositiveMetricCount   int `json:"positive_metric_count"`
	NegativeMetricCount   int `json:"negative_metric_count"`
	TotalEvaluatedMetrics int `json:"total_evaluated_metrics"`
}

// Result is the complete assessment outcome attached to a finished run.
type Result struct {
	Success         bool   `json:"success"`
	HTMLReportPath  string `json:"html_report_path,omitempty"`
	OutputDirectory string `json:"output_directory,omitempty"`

	Assemblies []AssemblyMetrics `json:"assemblies"`
	Comparison *Comparison       `json:"comparison,omitempty"`

	HasReference      bool `json:"has_reference"`
	HasGenePrediction bool `json:"has_gene_prediction"`

	ErrorMessage string `json:"error_message,omitempty"`
}

// Improved reports whether the filtered assembly scored better overall.
// False when no comparison was produced.
func (r *Result) Improved() bool {
	return r.Comparison != nil && r.Comparison.OverallImproved
}
