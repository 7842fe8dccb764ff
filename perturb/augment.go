package perturb

import (
	"errors"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/stellarnet/spectra/spectrum"
)

// Augment applies every perturbation combination in combos to a clone of
// every input spectrum and returns the perturbed clones, ordered by
// spectrum then combination. Zero-valued Params fields are skipped, so a
// combo can broaden without adding noise and vice versa.
//
// Clones are processed concurrently by a fixed goroutine pool
// ([WithWorkers], default GOMAXPROCS); each clone is touched by exactly
// one goroutine, which is all the isolation the one-shot flags need.
// With [WithSeed], every job draws noise from its own deterministically
// seeded source, making the whole batch reproducible.
func Augment(spectra []*spectrum.Spectrum, combos []Params, opts ...Option) ([]*spectrum.Spectrum, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	if len(spectra) == 0 || len(combos) == 0 {
		return nil, nil
	}

	total := len(spectra) * len(combos)
	out := make([]*spectrum.Spectrum, total)
	errs := make([]error, total)

	workers := cfg.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}

	type job struct {
		idx   int
		spec  *spectrum.Spectrum
		combo Params
	}

	jobs := make(chan job, workers*2)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range jobs {
				out[j.idx], errs[j.idx] = augmentOne(j.spec, j.combo, cfg, uint64(j.idx))
			}
		}()
	}

	idx := 0
	for _, s := range spectra {
		for _, combo := range combos {
			jobs <- job{idx: idx, spec: s, combo: combo}
			idx++
		}
	}
	close(jobs)

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return out, nil
}

func augmentOne(src *spectrum.Spectrum, p Params, cfg config, jobIndex uint64) (*spectrum.Spectrum, error) {
	s := src.Clone()

	perOpts := []Option{
		WithLimbDarkening(cfg.epsilon),
		WithLogger(cfg.logger),
	}
	if cfg.seeded {
		perOpts = append(perOpts, WithRandSource(rand.NewPCG(cfg.seed, jobIndex)))
	}

	if p.Vsini != 0 {
		if err := ApplyVsini(s, p.Vsini, perOpts...); err != nil {
			return nil, err
		}
	}

	if p.RadialVelocity != 0 {
		if err := ApplyRadialVelocity(s, p.RadialVelocity, perOpts...); err != nil {
			return nil, err
		}
	}

	if p.SNR != 0 {
		if err := ApplyNoise(s, p.SNR, perOpts...); err != nil {
			return nil, err
		}
	}

	return s, nil
}
