package perturb

import (
	"errors"
	"math"
	"testing"

	"github.com/stellarnet/spectra/spectrum"
)

func TestApplyRadialVelocityShiftsFlux(t *testing.T) {
	// Flux linear in wavelength: after shifting by factor and resampling
	// back, interior samples carry flux w/factor exactly (linear
	// interpolation is exact on linear data).
	n := 101

	waves := make([]float64, n)
	fluxes := make([]float64, n)
	for i := range waves {
		waves[i] = 4000 + float64(i)
		fluxes[i] = waves[i]
	}

	s, err := spectrum.New(waves, fluxes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rv := 100.0
	if err := ApplyRadialVelocity(s, rv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	beta := rv * 1000 / (speedOfLightKMS * 1000)
	factor := math.Sqrt((1 - beta) / (1 + beta))

	// Positive velocity blueshifts: features move to shorter wavelengths,
	// so skip the red-end samples clamped to the edge flux.
	for i := 5; i < n-5; i++ {
		want := waves[i] / factor
		if math.Abs(s.Fluxes()[i]-want) > 1e-6 {
			t.Fatalf("flux[%d] = %v, expected %v", i, s.Fluxes()[i], want)
		}
	}

	// The wavelength grid itself stays aligned with the original.
	for i := range waves {
		if s.Wavelengths()[i] != waves[i] {
			t.Fatalf("wavelength[%d] changed to %v", i, s.Wavelengths()[i])
		}
	}

	if !s.RadialVelocityApplied() || s.RadialVelocityValue() != rv {
		t.Error("radial-velocity flag/value not recorded")
	}
}

func TestApplyRadialVelocityZeroIsIdentity(t *testing.T) {
	s := uniformSpectrum(t, 4000, 1, 51, 1.0)
	s.Fluxes()[25] = 0.5

	if err := ApplyRadialVelocity(s, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(s.Fluxes()[25]-0.5) > 1e-12 {
		t.Errorf("flux[25] = %v after zero shift, expected 0.5", s.Fluxes()[25])
	}
}

func TestApplyRadialVelocityAlreadyApplied(t *testing.T) {
	s := uniformSpectrum(t, 4000, 1, 51, 1.0)

	if err := ApplyRadialVelocity(s, 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ApplyRadialVelocity(s, -30); !errors.Is(err, ErrRadialVelocityApplied) {
		t.Errorf("expected ErrRadialVelocityApplied, got %v", err)
	}
}

func TestApplyRadialVelocityParamRange(t *testing.T) {
	tests := []struct {
		name    string
		rv      float64
		wantErr error
	}{
		{name: "too negative", rv: -501, wantErr: ErrParamTooSmall},
		{name: "too positive", rv: 501, wantErr: ErrParamTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := uniformSpectrum(t, 4000, 1, 11, 1.0)

			if err := ApplyRadialVelocity(s, tt.rv); !errors.Is(err, tt.wantErr) {
				t.Errorf("ApplyRadialVelocity(%g) = %v, expected %v", tt.rv, err, tt.wantErr)
			}

			if s.RadialVelocityApplied() {
				t.Error("radial-velocity flag set on failed perturbation")
			}
		})
	}
}
