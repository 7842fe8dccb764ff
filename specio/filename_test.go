package specio

import (
	"errors"
	"testing"

	"github.com/stellarnet/spectra/spectrum"
)

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected spectrum.Labels
	}{
		{"plain", "5777_4.44_0.02.tsv", spectrum.Labels{Teff: 5777, LogG: 4.44, MH: 0.02}},
		{"with perturbations", "6200_4.0_-0.5_150_100_10.tsv", spectrum.Labels{Teff: 6200, LogG: 4.0, MH: -0.5}},
		{"full path", "/data/grid/5000_4.5_0.0.tsv", spectrum.Labels{Teff: 5000, LogG: 4.5, MH: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFileName(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("ParseFileName(%q) = %+v, expected %+v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestParseFileNameInvalid(t *testing.T) {
	for _, path := range []string{"spectrum.tsv", "a_b_c.tsv", "5777_4.44.tsv"} {
		if _, err := ParseFileName(path); !errors.Is(err, ErrFileName) {
			t.Errorf("ParseFileName(%q): expected ErrFileName, got %v", path, err)
		}
	}
}

func TestFileName(t *testing.T) {
	s, err := spectrum.New([]float64{400, 401}, []float64{1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := FileName(s); !errors.Is(err, ErrFileName) {
		t.Errorf("expected ErrFileName for unlabeled spectrum, got %v", err)
	}

	s.SetLabels(spectrum.Labels{Teff: 5777, LogG: 4.44, MH: 0.02})

	name, err := FileName(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if name != "5777_4.44_0.02.tsv" {
		t.Errorf("FileName() = %q, expected %q", name, "5777_4.44_0.02.tsv")
	}

	s.MarkVsiniApplied(150)
	s.MarkNoiseApplied(100)

	name, err = FileName(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Radial velocity was never applied, so its slot records zero.
	if name != "5777_4.44_0.02_150_100_0.tsv" {
		t.Errorf("FileName() = %q, expected %q", name, "5777_4.44_0.02_150_100_0.tsv")
	}
}
