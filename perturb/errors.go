package perturb

import "errors"

// Errors returned by perturbation functions.
var (
	// ErrParamTooSmall indicates a physical parameter below its valid range.
	ErrParamTooSmall = errors.New("perturb: parameter too small")

	// ErrParamTooLarge indicates a physical parameter above its valid range.
	ErrParamTooLarge = errors.New("perturb: parameter too large")

	// ErrVsiniApplied indicates rotational broadening applied twice.
	ErrVsiniApplied = errors.New("perturb: vsini already applied")

	// ErrRadialVelocityApplied indicates a radial-velocity shift applied twice.
	ErrRadialVelocityApplied = errors.New("perturb: radial velocity already applied")

	// ErrNoiseApplied indicates SNR noise applied twice.
	ErrNoiseApplied = errors.New("perturb: noise already applied")
)
