package perturb

import (
	"fmt"
	"math"
)

// Physical parameter bounds. Vsini above 500 km/s is beyond any plausible
// stellar rotation; the radial-velocity window matches it symmetrically.
const (
	MaxVsini          = 500.0 // km/s
	MaxRadialVelocity = 500.0 // km/s, either sign
	MaxSNR            = 1e4
)

// Params bundles one perturbation combination: rotational velocity,
// radial-velocity shift, and target signal-to-noise ratio. A zero Vsini or
// SNR means "skip that perturbation" during batch augmentation; a zero
// RadialVelocity shifts nothing.
type Params struct {
	Vsini          float64 // km/s, (0, MaxVsini]
	RadialVelocity float64 // km/s, [-MaxRadialVelocity, MaxRadialVelocity]
	SNR            float64 // (0, MaxSNR]
}

// Validate checks every parameter against its documented range.
func (p Params) Validate() error {
	if err := validateVsini(p.Vsini); err != nil {
		return err
	}
	if err := validateRadialVelocity(p.RadialVelocity); err != nil {
		return err
	}

	return validateSNR(p.SNR)
}

func validateVsini(v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return fmt.Errorf("%w: vsini %g km/s must be > 0", ErrParamTooSmall, v)
	}
	if v > MaxVsini {
		return fmt.Errorf("%w: vsini %g km/s exceeds %g", ErrParamTooLarge, v, MaxVsini)
	}

	return nil
}

func validateRadialVelocity(rv float64) error {
	if math.IsNaN(rv) || rv < -MaxRadialVelocity {
		return fmt.Errorf("%w: radial velocity %g km/s below %g", ErrParamTooSmall, rv, -MaxRadialVelocity)
	}
	if rv > MaxRadialVelocity {
		return fmt.Errorf("%w: radial velocity %g km/s exceeds %g", ErrParamTooLarge, rv, MaxRadialVelocity)
	}

	return nil
}

func validateSNR(snr float64) error {
	if math.IsNaN(snr) || snr <= 0 {
		return fmt.Errorf("%w: snr %g must be > 0", ErrParamTooSmall, snr)
	}
	if snr > MaxSNR {
		return fmt.Errorf("%w: snr %g exceeds %g", ErrParamTooLarge, snr, MaxSNR)
	}

	return nil
}
