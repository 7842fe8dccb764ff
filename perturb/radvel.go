package perturb

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/interp"

	"github.com/stellarnet/spectra/spectrum"
)

// ApplyRadialVelocity Doppler-shifts the spectrum by a line-of-sight
// velocity rv in km/s, using the relativistic wavelength correction
// sqrt((1-v/c)/(1+v/c)). To keep the wavelength grid aligned for
// downstream stacking and broadening, the shifted flux is linearly
// interpolated back onto the original grid; samples shifted past either
// end take the nearest edge flux.
//
// Fails with ErrParamTooSmall/ErrParamTooLarge for rv outside
// [-MaxRadialVelocity, MaxRadialVelocity] and with
// ErrRadialVelocityApplied on reapplication. The spectrum is not touched
// on any failure.
func ApplyRadialVelocity(s *spectrum.Spectrum, rv float64, opts ...Option) error {
	cfg, err := applyOptions(opts)
	if err != nil {
		return err
	}

	if err := validateRadialVelocity(rv); err != nil {
		return err
	}

	if s.RadialVelocityApplied() {
		return fmt.Errorf("%w: previous value %g km/s", ErrRadialVelocityApplied, s.RadialVelocityValue())
	}

	cfg.logger.Debug("applying radial-velocity shift", zap.Float64("rv_kms", rv))

	// Relativistic Doppler factor, velocity in m/s. Positive velocity
	// shrinks the factor (blueshift) per the reference convention.
	beta := rv * 1000 / (speedOfLightKMS * 1000)
	factor := sqrtRatio(beta)

	waves := s.Wavelengths()

	shifted := make([]float64, len(waves))
	for i, w := range waves {
		shifted[i] = w * factor
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(shifted, s.Fluxes()); err != nil {
		return fmt.Errorf("perturb: radial-velocity resample: %w", err)
	}

	// Predict clamps to the endpoint values outside the shifted range,
	// which gives the edge-flux fill documented above.
	resampled := make([]float64, len(waves))
	for i, w := range waves {
		resampled[i] = pl.Predict(w)
	}

	if err := s.SetFluxes(resampled); err != nil {
		return err
	}

	s.MarkRadialVelocityApplied(rv)

	return nil
}

func sqrtRatio(beta float64) float64 {
	return math.Sqrt((1 - beta) / (1 + beta))
}
