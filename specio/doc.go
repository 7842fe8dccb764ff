// Package specio reads and writes spectra as tab-separated column files
// and assembles training datasets from grid directories.
//
// Column files hold two or three columns: wavelength, flux, and an
// optional flux error. Synthetic grid files encode their stellar
// parameters in the file name as teff_logg_mh.tsv, extended to
// teff_logg_mh_vsini_snr_rv.tsv once perturbations have been applied.
package specio
