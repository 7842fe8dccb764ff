package specio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stellarnet/spectra/spectrum"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return path
}

func TestReadTSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "spec.tsv",
		"# synthetic test spectrum\n"+
			"400\t0.9\n"+
			"401\t0.8\n"+
			"\n"+
			"402\t0.95\n")

	s, err := ReadTSV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", s.Len())
	}

	if s.Wavelengths()[2] != 402 || s.Fluxes()[1] != 0.8 {
		t.Errorf("unexpected samples: %v %v", s.Wavelengths(), s.Fluxes())
	}

	if s.FluxErrors() != nil {
		t.Error("expected no flux error column")
	}
}

func TestReadTSVWithErrorsColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "spec.tsv",
		"400\t0.9\t0.01\n401\t0.8\t0.02\n")

	s, err := ReadTSV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.FluxErrors(); len(got) != 2 || got[1] != 0.02 {
		t.Errorf("FluxErrors() = %v, expected [0.01 0.02]", got)
	}
}

func TestReadTSVReadRange(t *testing.T) {
	var content string
	for i := 0; i < 10; i++ {
		content += formatValue(400+float64(i)) + "\t1\n"
	}

	path := writeFile(t, t.TempDir(), "spec.tsv", content)

	// [402, 405) selects 402, 403, 404; 405 itself is exclusive.
	s, err := ReadTSV(path, WithReadRange(402, 405))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waves := s.Wavelengths()
	if len(waves) != 3 || waves[0] != 402 || waves[2] != 404 {
		t.Errorf("Wavelengths() = %v, expected [402 403 404]", waves)
	}
}

func TestReadTSVReadRangeSnapsToNearest(t *testing.T) {
	path := writeFile(t, t.TempDir(), "spec.tsv",
		"400\t1\n401\t1\n402\t1\n403\t1\n")

	s, err := ReadTSV(path, WithReadRange(400.9, 402.9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waves := s.Wavelengths()
	if len(waves) != 2 || waves[0] != 401 || waves[1] != 402 {
		t.Errorf("Wavelengths() = %v, expected [401 402]", waves)
	}
}

func TestReadTSVMalformed(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"single column", "400\n"},
		{"four columns", "400\t1\t0.1\t7\n"},
		{"non-numeric", "400\tabc\n"},
		{"mixed column count", "400\t1\n401\t1\t0.1\n"},
		{"empty", "# only a comment\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.tsv", tt.content)

			if _, err := ReadTSV(path); !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestReadTSVInvalidRange(t *testing.T) {
	path := writeFile(t, t.TempDir(), "spec.tsv", "400\t1\n401\t1\n")

	if _, err := ReadTSV(path, WithReadRange(500, 400)); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestReadTSVParsesLabels(t *testing.T) {
	path := writeFile(t, t.TempDir(), "5777_4.44_0.02.tsv", "400\t1\n401\t1\n")

	s, err := ReadTSV(path, WithLabelsFromName())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	labels, ok := s.Labels()
	if !ok {
		t.Fatal("expected labels to be set")
	}

	if labels.Teff != 5777 || labels.LogG != 4.44 || labels.MH != 0.02 {
		t.Errorf("labels = %+v", labels)
	}
}

func TestWriteTSVRoundTrip(t *testing.T) {
	waves := []float64{400, 400.5, 401, 401.5}
	fluxes := []float64{0.9, 0.85, 1, 0.95}
	fluxErrs := []float64{0.01, 0.01, 0.02, 0.01}

	s, err := spectrum.NewWithErrors(waves, fluxes, fluxErrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.tsv")
	if err := WriteTSV(s, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ReadTSV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Len() != s.Len() {
		t.Fatalf("Len() = %d, expected %d", got.Len(), s.Len())
	}

	for i := range waves {
		if math.Abs(got.Wavelengths()[i]-waves[i]) > 1e-15 ||
			math.Abs(got.Fluxes()[i]-fluxes[i]) > 1e-15 ||
			math.Abs(got.FluxErrors()[i]-fluxErrs[i]) > 1e-15 {
			t.Errorf("sample %d does not round-trip", i)
		}
	}
}

func TestNearestIndex(t *testing.T) {
	waves := []float64{400, 401, 402, 403}

	tests := []struct {
		target   float64
		expected int
	}{
		{399, 0},
		{400, 0},
		{401.4, 1},
		{401.6, 2},
		{500, 3},
	}

	for _, tt := range tests {
		if got := nearestIndex(waves, tt.target); got != tt.expected {
			t.Errorf("nearestIndex(%g) = %d, expected %d", tt.target, got, tt.expected)
		}
	}
}
