package perturb

import (
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Default limb-darkening coefficient for the photosphere.
const defaultLimbDarkening = 0.6

type config struct {
	src     rand.Source
	epsilon float64
	logger  *zap.Logger
	workers int
	seed    uint64
	seeded  bool
}

func defaultConfig() config {
	return config{
		epsilon: defaultLimbDarkening,
		logger:  zap.NewNop(),
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

// Option configures a perturbation call.
type Option func(*config) error

// WithRandSource sets the random source used for noise draws. Pass a
// seeded source for reproducible output; the default is a randomly seeded
// PCG source.
func WithRandSource(src rand.Source) Option {
	return func(cfg *config) error {
		cfg.src = src
		return nil
	}
}

// WithLimbDarkening sets the limb-darkening coefficient of the
// rotational-broadening kernel (default 0.6, must be in [0, 1]).
func WithLimbDarkening(epsilon float64) Option {
	return func(cfg *config) error {
		if epsilon < 0 || epsilon > 1 || math.IsNaN(epsilon) {
			return fmt.Errorf("perturb: limb-darkening coefficient must be in [0, 1]: %g", epsilon)
		}

		cfg.epsilon = epsilon

		return nil
	}
}

// WithLogger sets the logger used by perturbation calls (default no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("perturb: nil logger")
		}

		cfg.logger = logger

		return nil
	}
}

// WithWorkers sets the goroutine count for [Augment] (default GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("perturb: workers must be > 0: %d", n)
		}

		cfg.workers = n

		return nil
	}
}

// WithSeed sets the base seed for per-job random sources in [Augment],
// making batch augmentation deterministic. Ignored by the single-spectrum
// functions; use [WithRandSource] there.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		cfg.seeded = true

		return nil
	}
}
