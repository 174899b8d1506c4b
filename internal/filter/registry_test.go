package filter

import (
	"errors"
	"testing"

	"github.com/GKamundia/KrinoSeq/internal/domain"
)

func TestRegistryDefaultsAreValid(t *testing.T) {
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			desc, err := Lookup(m)
			if err != nil {
				t.Fatalf("Lookup(%s) failed: %v", m, err)
			}
			if errs := desc.Validate(desc.Defaults()); len(errs) != 0 {
				t.Errorf("default params for %s failed validation: %v", m, errs)
			}
			if desc.Description == "" {
				t.Errorf("method %s has no description", m)
			}
			if desc.Interpreter == "" {
				t.Errorf("method %s has no interpreter", m)
			}
		})
	}
}

func TestRegistryDefaultsAreFreshValues(t *testing.T) {
	desc, err := Lookup(MethodIQR)
	if err != nil {
		t.Fatal(err)
	}
	a := desc.Defaults().(IQRParams)
	a.K = 99
	b := desc.Defaults().(IQRParams)
	if b.K != DefaultIQRK {
		t.Errorf("mutating one defaults value leaked into the next: got k=%v", b.K)
	}
}

func TestLookupUnknownMethod(t *testing.T) {
	_, err := Lookup(Method("bogus"))
	var unknown *domain.UnknownMethodError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMethodError, got %v", err)
	}
	if unknown.Method != "bogus" {
		t.Errorf("error names method %q, want %q", unknown.Method, "bogus")
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"min_max", MethodMinMax, false},
		{"iqr", MethodIQR, false},
		{"zscore", MethodZScore, false},
		{"adaptive", MethodAdaptive, false},
		{"n50_optimize", MethodN50Optimize, false},
		{"natural", MethodNatural, false},
		{"IQR", "", true},
		{"", "", true},
		{"median", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMethod(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMethodsIsStableAndComplete(t *testing.T) {
	ms := Methods()
	if len(ms) != 6 {
		t.Fatalf("expected 6 methods, got %d", len(ms))
	}
	for _, m := range ms {
		if !m.Known() {
			t.Errorf("method %s not known to registry", m)
		}
	}
	// Callers may mutate the returned slice without corrupting the set.
	ms[0] = Method("mutated")
	if Methods()[0] != MethodMinMax {
		t.Error("mutating the returned slice changed the registry order")
	}
}
