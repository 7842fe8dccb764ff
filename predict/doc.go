// Package predict maps a spectrum onto the fixed input contract of a
// trained network and produces stellar parameter estimates.
//
// The network itself is an opaque collaborator behind the [Model]
// interface; this package owns the input conditioning that must match
// training exactly: linear resampling onto the training wavelength grid
// (no extrapolation) and peak normalization of the flux. Getting either
// wrong silently skews every prediction, so both are fixed here rather
// than left to callers.
package predict
