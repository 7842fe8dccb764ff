package spectrum

import "errors"

// Errors returned by spectrum construction and validation.
var (
	// ErrEmpty indicates a spectrum with no samples.
	ErrEmpty = errors.New("spectrum: empty input")

	// ErrLengthMismatch indicates wavelength and flux arrays of unequal length.
	ErrLengthMismatch = errors.New("spectrum: wavelength/flux length mismatch")

	// ErrNotIncreasing indicates a wavelength grid that is not strictly increasing.
	ErrNotIncreasing = errors.New("spectrum: wavelengths not strictly increasing")

	// ErrWavelengthSpacing indicates a non-uniform wavelength grid where
	// uniform spacing is required.
	ErrWavelengthSpacing = errors.New("spectrum: non-uniform wavelength spacing")

	// ErrWavelengthRange indicates a target grid extending beyond the
	// wavelength range covered by the spectrum.
	ErrWavelengthRange = errors.New("spectrum: wavelength outside spectrum range")

	// ErrNonFinite indicates NaN or infinite flux values where finite
	// values are required.
	ErrNonFinite = errors.New("spectrum: non-finite flux value")

	// ErrContinuumFit indicates that too few continuum anchor points were
	// found to fit a spline continuum.
	ErrContinuumFit = errors.New("spectrum: not enough continuum anchor points")
)
