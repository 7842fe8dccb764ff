// Package perturb transforms synthetic spectra so they resemble real
// observations before network training.
//
// Three perturbations are provided, each applied in place and guarded
// against double application:
//
//   - [ApplyVsini]:          rotational broadening with the classical
//     limb-darkened line-spread kernel (Gray 1992, Eq. 17.12)
//   - [ApplyRadialVelocity]: relativistic Doppler shift, resampled back
//     onto the original wavelength grid
//   - [ApplyNoise]:          additive Gaussian noise for a target
//     signal-to-noise ratio
//
// Broadening convolves line depths (1 - flux) so that samples beyond the
// array ends behave as continuum. Short kernels use direct convolution;
// long kernels switch to an FFT-based path.
//
// [Augment] fans a set of perturbation combinations out over clones of a
// spectrum list, one goroutine pool, for training-set generation. No two
// goroutines ever touch the same Spectrum instance; the one-shot flags
// are not synchronized.
package perturb
