package perturb

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestApplyNoiseStatistics(t *testing.T) {
	const (
		n   = 20000
		snr = 100.0
	)

	s := uniformSpectrum(t, 4000, 0.01, n, 2.0)

	src := rand.NewPCG(42, 0)
	if err := ApplyNoise(s, snr, WithRandSource(src)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flux is peak-normalized before the noise draw, so the clean level
	// is 1.0 and the per-sample sigma is 1/snr.
	mean := 0.0
	for _, f := range s.Fluxes() {
		mean += f
	}
	mean /= n

	if math.Abs(mean-1) > 5.0/snr/math.Sqrt(n) {
		t.Errorf("mean flux = %v, expected ~1", mean)
	}

	variance := 0.0
	for _, f := range s.Fluxes() {
		variance += (f - mean) * (f - mean)
	}
	variance /= n

	sigma := math.Sqrt(variance)
	if sigma < 0.8/snr || sigma > 1.2/snr {
		t.Errorf("noise sigma = %v, expected ~%v", sigma, 1/snr)
	}

	if !s.NoiseApplied() || s.NoiseValue() != snr {
		t.Error("noise flag/value not recorded")
	}
}

func TestApplyNoiseReproducible(t *testing.T) {
	a := uniformSpectrum(t, 4000, 1, 100, 1.0)
	b := uniformSpectrum(t, 4000, 1, 100, 1.0)

	if err := ApplyNoise(a, 150, WithRandSource(rand.NewPCG(7, 7))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ApplyNoise(b, 150, WithRandSource(rand.NewPCG(7, 7))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range a.Fluxes() {
		if a.Fluxes()[i] != b.Fluxes()[i] {
			t.Fatalf("flux[%d] differs between identically seeded runs", i)
		}
	}
}

func TestApplyNoiseAlreadyApplied(t *testing.T) {
	s := uniformSpectrum(t, 4000, 1, 100, 1.0)

	if err := ApplyNoise(s, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ApplyNoise(s, 200); !errors.Is(err, ErrNoiseApplied) {
		t.Errorf("expected ErrNoiseApplied, got %v", err)
	}
}

func TestApplyNoiseParamRange(t *testing.T) {
	tests := []struct {
		name    string
		snr     float64
		wantErr error
	}{
		{name: "zero", snr: 0, wantErr: ErrParamTooSmall},
		{name: "negative", snr: -50, wantErr: ErrParamTooSmall},
		{name: "beyond maximum", snr: 2e4, wantErr: ErrParamTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := uniformSpectrum(t, 4000, 1, 11, 1.0)

			if err := ApplyNoise(s, tt.snr); !errors.Is(err, tt.wantErr) {
				t.Errorf("ApplyNoise(%g) = %v, expected %v", tt.snr, err, tt.wantErr)
			}

			if s.NoiseApplied() {
				t.Error("noise flag set on failed perturbation")
			}
		})
	}
}
