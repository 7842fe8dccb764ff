package spectrum

import (
	"fmt"
	"math"
)

// Relative tolerance for the uniform-grid check. The reference behavior
// compares deltas with exact equality; a relative tolerance keeps grids
// produced by linspace-style generators valid under float rounding.
const (
	gridSpacingRelTol = 1e-6
	gridSpacingAbsTol = 1e-12
)

// Labels holds the stellar atmospheric parameters attached to a synthetic
// spectrum: effective temperature (K), surface gravity (dex), and
// metallicity [M/H] (dex).
type Labels struct {
	Teff float64
	LogG float64
	MH   float64
}

// Spectrum is a stellar spectrum: a strictly increasing wavelength grid
// with index-aligned flux values, plus the one-shot perturbation state
// used to guard against double application.
type Spectrum struct {
	wavelengths []float64
	fluxes      []float64
	fluxErrors  []float64

	vsiniApplied bool
	vsiniValue   float64

	radialVelocityApplied bool
	radialVelocityValue   float64

	noiseApplied bool
	noiseValue   float64

	labels    Labels
	hasLabels bool
}

// New creates a Spectrum from a wavelength grid and index-aligned fluxes.
// Both slices are retained, not copied.
func New(wavelengths, fluxes []float64) (*Spectrum, error) {
	if len(wavelengths) == 0 || len(fluxes) == 0 {
		return nil, ErrEmpty
	}
	if len(wavelengths) != len(fluxes) {
		return nil, fmt.Errorf("%w: %d wavelengths, %d fluxes", ErrLengthMismatch, len(wavelengths), len(fluxes))
	}

	for i := 1; i < len(wavelengths); i++ {
		if wavelengths[i] <= wavelengths[i-1] {
			return nil, fmt.Errorf("%w: index %d", ErrNotIncreasing, i)
		}
	}

	return &Spectrum{wavelengths: wavelengths, fluxes: fluxes}, nil
}

// NewWithErrors creates a Spectrum with a per-sample flux error column.
func NewWithErrors(wavelengths, fluxes, fluxErrors []float64) (*Spectrum, error) {
	s, err := New(wavelengths, fluxes)
	if err != nil {
		return nil, err
	}

	if len(fluxErrors) != len(fluxes) {
		return nil, fmt.Errorf("%w: %d fluxes, %d errors", ErrLengthMismatch, len(fluxes), len(fluxErrors))
	}

	s.fluxErrors = fluxErrors

	return s, nil
}

// Len returns the number of samples.
func (s *Spectrum) Len() int {
	return len(s.wavelengths)
}

// Wavelengths returns the wavelength grid. The slice is not copied;
// callers must not reorder it.
func (s *Spectrum) Wavelengths() []float64 {
	return s.wavelengths
}

// Fluxes returns the flux array. The slice is not copied.
func (s *Spectrum) Fluxes() []float64 {
	return s.fluxes
}

// FluxErrors returns the per-sample flux errors, or nil if none were set.
func (s *Spectrum) FluxErrors() []float64 {
	return s.fluxErrors
}

// SetFluxes replaces the flux array. The replacement must match the
// wavelength grid length.
func (s *Spectrum) SetFluxes(fluxes []float64) error {
	if len(fluxes) != len(s.wavelengths) {
		return fmt.Errorf("%w: %d wavelengths, %d fluxes", ErrLengthMismatch, len(s.wavelengths), len(fluxes))
	}

	s.fluxes = fluxes

	return nil
}

// ValidateUniformGrid checks that consecutive wavelength deltas agree
// within a relative tolerance of 1e-6. Grid-dependent transforms such as
// rotational broadening must call this before mutating the flux.
func (s *Spectrum) ValidateUniformGrid() error {
	if len(s.wavelengths) < 3 {
		return nil
	}

	ref := s.wavelengths[1] - s.wavelengths[0]
	tol := math.Abs(ref) * gridSpacingRelTol
	if tol < gridSpacingAbsTol {
		tol = gridSpacingAbsTol
	}

	for i := 1; i < len(s.wavelengths)-1; i++ {
		forward := s.wavelengths[i+1] - s.wavelengths[i]
		backward := s.wavelengths[i] - s.wavelengths[i-1]
		if math.Abs(forward-backward) > tol {
			return fmt.Errorf("%w: index %d (deltas %g and %g)", ErrWavelengthSpacing, i, backward, forward)
		}
	}

	return nil
}

// VsiniApplied reports whether rotational broadening has been applied.
func (s *Spectrum) VsiniApplied() bool { return s.vsiniApplied }

// VsiniValue returns the applied vsini in km/s (0 if none).
func (s *Spectrum) VsiniValue() float64 { return s.vsiniValue }

// RadialVelocityApplied reports whether a radial-velocity shift has been applied.
func (s *Spectrum) RadialVelocityApplied() bool { return s.radialVelocityApplied }

// RadialVelocityValue returns the applied radial velocity in km/s (0 if none).
func (s *Spectrum) RadialVelocityValue() float64 { return s.radialVelocityValue }

// NoiseApplied reports whether SNR noise has been applied.
func (s *Spectrum) NoiseApplied() bool { return s.noiseApplied }

// NoiseValue returns the applied SNR (0 if none).
func (s *Spectrum) NoiseValue() float64 { return s.noiseValue }

// MarkVsiniApplied records a successful rotational-broadening pass.
// Intended for use by the perturb package.
func (s *Spectrum) MarkVsiniApplied(vsini float64) {
	s.vsiniApplied = true
	s.vsiniValue = vsini
}

// MarkRadialVelocityApplied records a successful radial-velocity shift.
// Intended for use by the perturb package.
func (s *Spectrum) MarkRadialVelocityApplied(rv float64) {
	s.radialVelocityApplied = true
	s.radialVelocityValue = rv
}

// MarkNoiseApplied records a successful noise pass.
// Intended for use by the perturb package.
func (s *Spectrum) MarkNoiseApplied(snr float64) {
	s.noiseApplied = true
	s.noiseValue = snr
}

// SetLabels attaches stellar parameter labels to the spectrum.
func (s *Spectrum) SetLabels(l Labels) {
	s.labels = l
	s.hasLabels = true
}

// Labels returns the attached stellar parameter labels, if any.
func (s *Spectrum) Labels() (Labels, bool) {
	return s.labels, s.hasLabels
}

// Clone returns a deep copy, including perturbation state and labels.
// Batch augmentation clones the source spectrum so that disjoint
// perturbation combinations never overlap.
func (s *Spectrum) Clone() *Spectrum {
	out := *s
	out.wavelengths = append([]float64(nil), s.wavelengths...)
	out.fluxes = append([]float64(nil), s.fluxes...)
	if s.fluxErrors != nil {
		out.fluxErrors = append([]float64(nil), s.fluxErrors...)
	}

	return &out
}

// ConvertToNanometers divides the wavelength grid by 10 when it appears to
// be in Angstroms (minimum wavelength above 1000). Visible-range spectra
// in nanometers are unaffected.
func (s *Spectrum) ConvertToNanometers() {
	if s.wavelengths[0] <= 1000 {
		return
	}

	for i := range s.wavelengths {
		s.wavelengths[i] /= 10
	}
}
