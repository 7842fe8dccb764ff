package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// FluxOnGrid linearly interpolates the flux onto the given wavelength
// grid and returns the result. Every grid point must lie inside the
// spectrum's wavelength range; out-of-range points fail with
// [ErrWavelengthRange] rather than extrapolating.
func (s *Spectrum) FluxOnGrid(grid []float64) ([]float64, error) {
	if len(grid) == 0 {
		return nil, ErrEmpty
	}

	lo := s.wavelengths[0]
	hi := s.wavelengths[len(s.wavelengths)-1]

	for _, w := range grid {
		if w < lo || w > hi {
			return nil, fmt.Errorf("%w: %g outside [%g, %g]", ErrWavelengthRange, w, lo, hi)
		}
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(s.wavelengths, s.fluxes); err != nil {
		return nil, fmt.Errorf("spectrum: interpolation fit: %w", err)
	}

	out := make([]float64, len(grid))
	for i, w := range grid {
		out[i] = pl.Predict(w)
	}

	return out, nil
}

// ResampleToGrid replaces the spectrum with a linear interpolation onto an
// n-point evenly spaced grid spanning the current wavelength range. With
// replaceNaN set, NaN fluxes are reset to the continuum level 1.0 before
// interpolating; otherwise a NaN flux fails with [ErrNonFinite].
//
// This is the shared resampling step that maps spectra onto the fixed
// input shape a trained network expects.
func (s *Spectrum) ResampleToGrid(n int, replaceNaN bool) error {
	if n < 2 {
		return fmt.Errorf("spectrum: grid size must be >= 2: %d", n)
	}

	for i, f := range s.fluxes {
		if math.IsNaN(f) {
			if !replaceNaN {
				return fmt.Errorf("%w: index %d", ErrNonFinite, i)
			}

			s.fluxes[i] = 1.0
		}
	}

	lo := s.wavelengths[0]
	hi := s.wavelengths[len(s.wavelengths)-1]

	grid := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	grid[n-1] = hi // exact endpoint, avoids range failures from rounding

	fluxes, err := s.FluxOnGrid(grid)
	if err != nil {
		return err
	}

	s.wavelengths = grid
	s.fluxes = fluxes
	s.fluxErrors = nil

	return nil
}
