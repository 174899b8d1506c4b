// Package assess models the optional downstream assembly-assessment pass:
// the options sent with a pipeline configuration and the quality metrics the
// engine returns for the original and filtered assemblies.
package assess

import (
	"encoding/json"
	"fmt"

	"github.com/GKamundia/KrinoSeq/internal/domain"
)

// Plot output formats accepted by the assessment tool.
const (
	PlotsPNG = "png"
	PlotsPDF = "pdf"
	PlotsPS  = "ps"
)

// Ambiguity handling modes.
const (
	AmbiguityOne  = "one"
	AmbiguityAll  = "all"
	AmbiguityNone = "none"
)

const (
	threadsMin = 1
	threadsMax = 32
)

// GenomeType selects the organism-specific assessment mode. The modes are
// mutually exclusive on the wire: at most one flag may be set.
type GenomeType string

const (
	GenomeLargeGenome GenomeType = "large_genome"
	GenomeEukaryote   GenomeType = "eukaryote"
	GenomeFungus      GenomeType = "fungus"
	GenomeProkaryote  GenomeType = "prokaryote"
	GenomeMetagenome  GenomeType = "metagenome"
)

// Options configures the assembly-assessment pass. The zero value plus
// DefaultOptions' fills matches the engine's own defaults.
type Options struct {
	MinContig             int      `json:"min_contig"`
	Threads               int      `json:"threads"`
	GeneFinding           bool     `json:"gene_finding"`
	ConservedGenesFinding bool     `json:"conserved_genes_finding"`
	ScaffoldGapMaxSize    int      `json:"scaffold_gap_max_size"`
	ReferenceGenome       string   `json:"reference_genome,omitempty"`
	Labels                []string `json:"labels,omitempty"`

	LargeGenome bool `json:"large_genome"`
	Eukaryote   bool `json:"eukaryote"`
	Fungus      bool `json:"fungus"`
	Prokaryote  bool `json:"prokaryote"`
	Metagenome  bool `json:"metagenome"`

	PlotsFormat    string `json:"plots_format"`
	MinAlignment   int    `json:"min_alignment"`
	AmbiguityUsage string `json:"ambiguity_usage"`
}

// DefaultOptions returns the engine's default assessment configuration.
func DefaultOptions() Options {
	return Options{
		MinContig:             500,
		Threads:               4,
		GeneFinding:           true,
		ConservedGenesFinding: true,
		ScaffoldGapMaxSize:    1000,
		PlotsFormat:           PlotsPNG,
		MinAlignment:          65,
		AmbiguityUsage:        AmbiguityOne,
	}
}

// UnmarshalJSON fills engine defaults for omitted options, matching the
// upstream validator's behavior, so a file that names only the options it
// changes still decodes to a valid value.
func (o *Options) UnmarshalJSON(data []byte) error {
	type alias Options
	a := alias(DefaultOptions())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = Options(a)
	return nil
}

// SetGenomeType selects one organism mode and clears the others, keeping the
// mutual-exclusion invariant without the caller juggling five booleans.
func (o *Options) SetGenomeType(t GenomeType) error {
	o.LargeGenome = false
	o.Eukaryote = false
	o.Fungus = false
	o.Prokaryote = false
	o.Metagenome = false
	switch t {
	case GenomeLargeGenome:
		o.LargeGenome = true
	case GenomeEukaryote:
		o.Eukaryote = true
	case GenomeFungus:
		o.Fungus = true
	case GenomeProkaryote:
		o.Prokaryote = true
	case GenomeMetagenome:
		o.Metagenome = true
	case "":
		// no mode selected
	default:
		return fmt.Errorf("unknown genome type: %q", t)
	}
	return nil
}

// GenomeTypeFlags returns the currently selected modes. A valid Options has
// at most one entry.
func (o Options) GenomeTypeFlags() []GenomeType {
	var set []GenomeType
	if o.LargeGenome {
		set = append(set, GenomeLargeGenome)
	}
	if o.Eukaryote {
		set = append(set, GenomeEukaryote)
	}
	if o.Fungus {
		set = append(set, GenomeFungus)
	}
	if o.Prokaryote {
		set = append(set, GenomeProkaryote)
	}
	if o.Metagenome {
		set = append(set, GenomeMetagenome)
	}
	return set
}

// Validate applies the assessment option constraints. The zero value is not
// valid on its own (threads would be 0); validate the result of
// DefaultOptions or a value built from it.
func (o Options) Validate() []domain.FieldError {
	var errs []domain.FieldError
	if o.MinContig < 0 {
		errs = append(errs, domain.FieldError{Field: "min_contig", Message: "must not be negative"})
	}
	if o.Threads < threadsMin || o.Threads > threadsMax {
		errs = append(errs, domain.FieldError{
			Field:   "threads",
			Message: fmt.Sprintf("must be between %d and %d", threadsMin, threadsMax),
		})
	}
	if o.ScaffoldGapMaxSize < 1 {
		errs = append(errs, domain.FieldError{Field: "scaffold_gap_max_size", Message: "must be at least 1"})
	}
	if o.MinAlignment < 0 {
		errs = append(errs, domain.FieldError{Field: "min_alignment", Message: "must not be negative"})
	}
	switch o.PlotsFormat {
	case PlotsPNG, PlotsPDF, PlotsPS:
	default:
		errs = append(errs, domain.FieldError{Field: "plots_format", Message: "must be one of png, pdf, ps"})
	}
	switch o.AmbiguityUsage {
	case AmbiguityOne, AmbiguityAll, AmbiguityNone:
	default:
		errs = append(errs, domain.FieldError{Field: "ambiguity_usage", Message: "must be one of one, all, none"})
	}
	if flags := o.GenomeTypeFlags(); len(flags) > 1 {
		errs = append(errs, domain.FieldError{
			Field:   "genome_type",
			Message: fmt.Sprintf("genome-type modes are mutually exclusive, got %v", flags),
		})
	}
	return errs
}
