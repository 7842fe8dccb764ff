// Package spectrum defines the Spectrum data entity shared by the
// perturbation engine and the prediction pipeline.
//
// A Spectrum pairs a strictly increasing wavelength grid with an
// index-aligned flux array. Construction validates the pairing, and
// [Spectrum.ValidateUniformGrid] checks the even spacing required by
// grid-dependent transforms such as rotational broadening.
//
// The package also provides the flux-domain operations shared by training
// and inference: peak normalization, cubic-spline continuum normalization,
// and interpolation onto a fixed wavelength grid.
//
// A Spectrum is not safe for concurrent mutation. Independent Spectrum
// instances may be processed in parallel without coordination.
package spectrum
