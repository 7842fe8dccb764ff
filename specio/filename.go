package specio

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stellarnet/spectra/spectrum"
)

// ParseFileName extracts stellar parameter labels from a grid file name
// of the form teff_logg_mh.tsv or teff_logg_mh_vsini_snr_rv.tsv. Any
// extension is tolerated; only the first three fields are read.
func ParseFileName(path string) (spectrum.Labels, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(base, "_")
	if len(parts) < 3 {
		return spectrum.Labels{}, fmt.Errorf("%w: %q", ErrFileName, filepath.Base(path))
	}

	var vals [3]float64

	for i := range vals {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return spectrum.Labels{}, fmt.Errorf("%w: %q: field %d: %v", ErrFileName, filepath.Base(path), i, err)
		}

		vals[i] = v
	}

	return spectrum.Labels{Teff: vals[0], LogG: vals[1], MH: vals[2]}, nil
}

// FileName builds the grid file name for a labeled spectrum. Spectra
// with any perturbation applied get the six-field form that records the
// perturbation values; unperturbed spectra get the three-field form.
func FileName(s *spectrum.Spectrum) (string, error) {
	labels, ok := s.Labels()
	if !ok {
		return "", fmt.Errorf("%w: spectrum has no labels", ErrFileName)
	}

	fields := []string{
		formatValue(labels.Teff),
		formatValue(labels.LogG),
		formatValue(labels.MH),
	}

	if s.VsiniApplied() || s.NoiseApplied() || s.RadialVelocityApplied() {
		fields = append(fields,
			formatValue(s.VsiniValue()),
			formatValue(s.NoiseValue()),
			formatValue(s.RadialVelocityValue()))
	}

	return strings.Join(fields, "_") + ".tsv", nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
