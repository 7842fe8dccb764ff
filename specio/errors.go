package specio

import "errors"

var (
	// ErrFormat indicates a malformed spectrum or parameter file.
	ErrFormat = errors.New("specio: malformed file")

	// ErrFileName indicates a file name that does not follow the
	// teff_logg_mh[_vsini_snr_rv].tsv convention.
	ErrFileName = errors.New("specio: unrecognized file name")

	// ErrDatasetShape indicates spectra of differing lengths in one
	// dataset directory.
	ErrDatasetShape = errors.New("specio: inconsistent spectrum length in dataset")
)
