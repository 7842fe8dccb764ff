package perturb

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/stellarnet/spectra/spectrum"
)

// speedOfLightKMS is the speed of light in km/s.
const speedOfLightKMS = 299792.458

// RotationalKernel builds the normalized rotational-broadening line-spread
// profile of Gray (1992, Eq. 17.12) for a velocity step deltav and a
// projected rotational velocity vsini (both km/s), with linear
// limb-darkening coefficient epsilon. The kernel length is
// ceil(2*vsini/deltav) forced odd, so it is symmetric about a central
// sample, and the weights sum to 1.
func RotationalKernel(deltav, vsini, epsilon float64) ([]float64, error) {
	if deltav <= 0 || math.IsNaN(deltav) {
		return nil, fmt.Errorf("perturb: velocity step must be > 0: %g", deltav)
	}
	if err := validateVsini(vsini); err != nil {
		return nil, err
	}
	if epsilon < 0 || epsilon > 1 || math.IsNaN(epsilon) {
		return nil, fmt.Errorf("perturb: limb-darkening coefficient must be in [0, 1]: %g", epsilon)
	}

	npts := int(math.Ceil(2 * vsini / deltav))
	if npts%2 == 0 {
		npts++
	}
	if npts < 1 {
		npts = 1
	}

	half := npts / 2

	e1 := 2 * (1 - epsilon)
	e2 := math.Pi * epsilon / 2
	e3 := math.Pi * (1 - epsilon/3)

	kernel := make([]float64, npts)
	sum := 0.0

	for k := range kernel {
		// Normalized velocity coordinate in [-1, 1]; the extremes map to
		// +-vsini and are clamped against float rounding.
		xi := float64(k-half) * deltav / vsini
		if xi < -1 {
			xi = -1
		} else if xi > 1 {
			xi = 1
		}

		x1 := math.Abs(1 - xi*xi)
		kernel[k] = (e1*math.Sqrt(x1) + e2*x1) / e3
		sum += kernel[k]
	}

	for k := range kernel {
		kernel[k] /= sum
	}

	return kernel, nil
}

// ApplyVsini convolves the spectrum's flux with a rotational-broadening
// kernel, simulating a projected rotational velocity of vsini km/s. The
// flux is replaced in place with an array of identical length.
//
// The convolution operates on line depths (1 - flux), so samples beyond
// the array ends behave as if the spectrum continued at the continuum
// level 1.0.
//
// Fails with ErrParamTooSmall/ErrParamTooLarge for vsini outside
// (0, MaxVsini], with ErrVsiniApplied on reapplication, and with
// spectrum.ErrWavelengthSpacing on a non-uniform grid. The flux is not
// touched on any failure.
func ApplyVsini(s *spectrum.Spectrum, vsini float64, opts ...Option) error {
	cfg, err := applyOptions(opts)
	if err != nil {
		return err
	}

	if err := validateVsini(vsini); err != nil {
		return err
	}

	if s.VsiniApplied() {
		return fmt.Errorf("%w: previous value %g km/s", ErrVsiniApplied, s.VsiniValue())
	}

	if err := s.ValidateUniformGrid(); err != nil {
		return err
	}

	waves := s.Wavelengths()
	if len(waves) < 2 {
		return fmt.Errorf("perturb: spectrum too short to broaden: %d samples", len(waves))
	}

	// Velocity-space sampling implied by the grid spacing, evaluated at
	// the blue end of the grid.
	dl := waves[1] - waves[0]
	l0 := (waves[0] + waves[1]) / 2
	deltav := dl / l0 * speedOfLightKMS

	kernel, err := RotationalKernel(deltav, vsini, cfg.epsilon)
	if err != nil {
		return err
	}

	cfg.logger.Debug("applying rotational broadening",
		zap.Float64("vsini_kms", vsini),
		zap.Float64("deltav_kms", deltav),
		zap.Int("kernel_len", len(kernel)))

	fluxes := s.Fluxes()

	depths := make([]float64, len(fluxes))
	for i, f := range fluxes {
		depths[i] = 1 - f
	}

	convolved, err := convolveSame(depths, kernel)
	if err != nil {
		return err
	}

	broadened := make([]float64, len(convolved))
	for i, d := range convolved {
		broadened[i] = 1 - d
	}

	if err := s.SetFluxes(broadened); err != nil {
		return err
	}

	s.MarkVsiniApplied(vsini)

	return nil
}
