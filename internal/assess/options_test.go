package assess

import (
	"encoding/json"
	"testing"
)

func TestDefaultOptionsAreValid(t *testing.T) {
	if errs := DefaultOptions().Validate(); len(errs) != 0 {
		t.Errorf("default options fail validation: %v", errs)
	}
}

func TestSetGenomeTypeIsExclusive(t *testing.T) {
	o := DefaultOptions()
	if err := o.SetGenomeType(GenomeLargeGenome); err != nil {
		t.Fatal(err)
	}
	if err := o.SetGenomeType(GenomeEukaryote); err != nil {
		t.Fatal(err)
	}

	flags := o.GenomeTypeFlags()
	if len(flags) != 1 || flags[0] != GenomeEukaryote {
		t.Errorf("flags = %v, want only eukaryote", flags)
	}
	if o.LargeGenome {
		t.Error("large_genome still set after switching to eukaryote")
	}
}

func TestSetGenomeTypeClearAll(t *testing.T) {
	o := DefaultOptions()
	if err := o.SetGenomeType(GenomeFungus); err != nil {
		t.Fatal(err)
	}
	if err := o.SetGenomeType(""); err != nil {
		t.Fatal(err)
	}
	if flags := o.GenomeTypeFlags(); len(flags) != 0 {
		t.Errorf("flags = %v, want none", flags)
	}
}

func TestSetGenomeTypeUnknown(t *testing.T) {
	o := DefaultOptions()
	if err := o.SetGenomeType(GenomeType("virus")); err == nil {
		t.Error("expected error for unknown genome type")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Options)
		wantField string
	}{
		{"threads zero", func(o *Options) { o.Threads = 0 }, "threads"},
		{"threads too many", func(o *Options) { o.Threads = 64 }, "threads"},
		{"negative min_contig", func(o *Options) { o.MinContig = -5 }, "min_contig"},
		{"bad plots format", func(o *Options) { o.PlotsFormat = "svg" }, "plots_format"},
		{"bad ambiguity", func(o *Options) { o.AmbiguityUsage = "some" }, "ambiguity_usage"},
		{"zero gap size", func(o *Options) { o.ScaffoldGapMaxSize = 0 }, "scaffold_gap_max_size"},
		{"two genome modes", func(o *Options) { o.Fungus = true; o.Metagenome = true }, "genome_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			errs := o.Validate()
			if len(errs) != 1 || errs[0].Field != tt.wantField {
				t.Errorf("got %v, want a single error on %s", errs, tt.wantField)
			}
		})
	}
}

func TestUnmarshalFillsDefaults(t *testing.T) {
	var o Options
	if err := json.Unmarshal([]byte(`{"eukaryote":true,"threads":8}`), &o); err != nil {
		t.Fatal(err)
	}
	if o.Threads != 8 {
		t.Errorf("threads = %d, want 8", o.Threads)
	}
	if !o.Eukaryote {
		t.Error("eukaryote flag lost")
	}
	if o.MinContig != 500 || o.PlotsFormat != PlotsPNG || o.AmbiguityUsage != AmbiguityOne {
		t.Errorf("omitted fields did not default: %+v", o)
	}
	if errs := o.Validate(); len(errs) != 0 {
		t.Errorf("partially specified options invalid after defaulting: %v", errs)
	}
}
