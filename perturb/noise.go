package perturb

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stellarnet/spectra/spectrum"
)

// ApplyNoise perturbs the spectrum with zero-mean Gaussian noise for a
// target signal-to-noise ratio. The flux is first normalized to its peak,
// then each sample gets an independent draw from N(0, 1/snr), matching
// the training-time noise model.
//
// Pass [WithRandSource] with a seeded source for reproducible noise.
//
// Fails with ErrParamTooSmall/ErrParamTooLarge for snr outside
// (0, MaxSNR] and with ErrNoiseApplied on reapplication. The flux is not
// touched on any failure.
func ApplyNoise(s *spectrum.Spectrum, snr float64, opts ...Option) error {
	cfg, err := applyOptions(opts)
	if err != nil {
		return err
	}

	if err := validateSNR(snr); err != nil {
		return err
	}

	if s.NoiseApplied() {
		return fmt.Errorf("%w: previous snr %g", ErrNoiseApplied, s.NoiseValue())
	}

	cfg.logger.Debug("applying gaussian noise", zap.Float64("snr", snr))

	src := cfg.src
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	if err := s.MaxNormalize(); err != nil {
		return err
	}

	dist := distuv.Normal{Mu: 0, Sigma: 1 / snr, Src: src}

	fluxes := s.Fluxes()
	for i := range fluxes {
		fluxes[i] += dist.Rand()
	}

	s.MarkNoiseApplied(snr)

	return nil
}
