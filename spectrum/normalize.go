package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// MaxNormalize divides the flux array by its peak value. This is the
// normalization applied at training time; prediction must use the same
// scaling (see the predict package).
func (s *Spectrum) MaxNormalize() error {
	peak := floats.Max(s.fluxes)
	if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return fmt.Errorf("%w: peak flux %g", ErrNonFinite, peak)
	}

	inv := 1 / peak
	for i := range s.fluxes {
		s.fluxes[i] *= inv
	}

	return nil
}

// SplineNormalize divides the flux by a pseudo-continuum obtained from a
// natural cubic spline through local flux maxima. Anchor points are the
// flux maxima of consecutive windows of width knotSpacing (in wavelength
// units). Continuum samples that divide to a non-finite flux are reset
// to 1.0.
func (s *Spectrum) SplineNormalize(knotSpacing float64) error {
	if knotSpacing <= 0 || math.IsNaN(knotSpacing) {
		return fmt.Errorf("spectrum: knot spacing must be > 0: %g", knotSpacing)
	}

	anchorWaves, anchorFluxes := s.continuumAnchors(knotSpacing)

	// A natural cubic spline needs at least two anchors; fewer means the
	// knot spacing is wider than the spectrum.
	if len(anchorWaves) < 2 {
		return fmt.Errorf("%w: %d anchors with knot spacing %g", ErrContinuumFit, len(anchorWaves), knotSpacing)
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(anchorWaves, anchorFluxes); err != nil {
		return fmt.Errorf("%w: %v", ErrContinuumFit, err)
	}

	invContinuum := make([]float64, len(s.wavelengths))
	for i, w := range s.wavelengths {
		invContinuum[i] = 1 / spline.Predict(w)
	}

	vecmath.MulBlockInPlace(s.fluxes, invContinuum)

	for i, f := range s.fluxes {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s.fluxes[i] = 1.0
		}
	}

	return nil
}

// continuumAnchors slides a window of width knotSpacing across the grid
// and records the wavelength and flux of the local maximum in each window.
func (s *Spectrum) continuumAnchors(knotSpacing float64) (waves, fluxes []float64) {
	lo := s.wavelengths[0]
	maxWave := s.wavelengths[len(s.wavelengths)-1]
	left := 0

	for lo+knotSpacing <= maxWave {
		hi := lo + knotSpacing

		right := left
		for right < len(s.wavelengths) && s.wavelengths[right] < hi {
			right++
		}

		if right > left {
			best := left
			for i := left + 1; i < right; i++ {
				if s.fluxes[i] > s.fluxes[best] {
					best = i
				}
			}

			if len(waves) == 0 || waves[len(waves)-1] != s.wavelengths[best] {
				waves = append(waves, s.wavelengths[best])
				fluxes = append(fluxes, s.fluxes[best])
			}
		}

		lo = hi
		left = right
	}

	return waves, fluxes
}
