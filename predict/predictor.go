package predict

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/stellarnet/spectra/spectrum"
)

// Errors returned by the prediction pipeline.
var (
	// ErrNilModel indicates a Predictor constructed without a model.
	ErrNilModel = errors.New("predict: nil model")

	// ErrInvalidGrid indicates an unusable training wavelength grid.
	ErrInvalidGrid = errors.New("predict: invalid input grid")

	// ErrInvalidInput indicates a conditioned flux vector that violates
	// the model's input contract.
	ErrInvalidInput = errors.New("predict: invalid model input")
)

// Estimate holds one set of stellar parameter estimates.
type Estimate struct {
	Teff float64 // effective temperature, K
	LogG float64 // surface gravity, dex
	MH   float64 // metallicity [M/H], dex
}

// Scaling is an affine transform applied to one raw model output:
// physical = Scale*raw + Offset.
type Scaling struct {
	Scale  float64
	Offset float64
}

func identityScaling() Scaling {
	return Scaling{Scale: 1}
}

type config struct {
	teffScaling Scaling
	loggScaling Scaling
	mhScaling   Scaling
	logger      *zap.Logger
}

// Option configures a Predictor.
type Option func(*config) error

// WithLabelScaling sets the inverse transforms that map raw model outputs
// back to physical units. Defaults to identity, for models trained on
// unscaled labels.
func WithLabelScaling(teff, logg, mh Scaling) Option {
	return func(cfg *config) error {
		for _, s := range []Scaling{teff, logg, mh} {
			if s.Scale == 0 || math.IsNaN(s.Scale) || math.IsNaN(s.Offset) {
				return fmt.Errorf("predict: invalid label scaling %+v", s)
			}
		}

		cfg.teffScaling = teff
		cfg.loggScaling = logg
		cfg.mhScaling = mh

		return nil
	}
}

// WithLogger sets the logger used by prediction calls (default no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("predict: nil logger")
		}

		cfg.logger = logger

		return nil
	}
}

// Predictor conditions spectra onto a model's input contract and invokes
// the model.
type Predictor struct {
	model Model
	grid  []float64
	cfg   config
}

// New creates a Predictor for a trained model and the wavelength grid the
// model was trained on. The grid is copied and must be strictly
// increasing with at least two points.
func New(model Model, grid []float64, opts ...Option) (*Predictor, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	if len(grid) < 2 {
		return nil, fmt.Errorf("%w: %d points", ErrInvalidGrid, len(grid))
	}

	for i := 1; i < len(grid); i++ {
		if grid[i] <= grid[i-1] {
			return nil, fmt.Errorf("%w: not strictly increasing at index %d", ErrInvalidGrid, i)
		}
	}

	cfg := config{
		teffScaling: identityScaling(),
		loggScaling: identityScaling(),
		mhScaling:   identityScaling(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Predictor{
		model: model,
		grid:  append([]float64(nil), grid...),
		cfg:   cfg,
	}, nil
}

// GridSize returns the model's expected input length.
func (p *Predictor) GridSize() int {
	return len(p.grid)
}

// Predict conditions the spectrum and returns the model's parameter
// estimates. The spectrum must cover the full training wavelength range
// (out-of-range grids fail with spectrum.ErrWavelengthRange rather than
// extrapolating), and the conditioned flux must be finite. There are no
// retries; every failure indicates caller misuse and propagates as is.
func (p *Predictor) Predict(s *spectrum.Spectrum) (Estimate, error) {
	flux, err := s.FluxOnGrid(p.grid)
	if err != nil {
		return Estimate{}, err
	}

	if len(flux) != len(p.grid) {
		return Estimate{}, fmt.Errorf("%w: resampled to %d samples, expected %d", ErrInvalidInput, len(flux), len(p.grid))
	}

	// Peak normalization, identical to training time.
	peak := floats.Max(flux)
	if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return Estimate{}, fmt.Errorf("%w: peak flux %g", ErrInvalidInput, peak)
	}

	inv := 1 / peak
	for i := range flux {
		flux[i] *= inv

		if math.IsNaN(flux[i]) || math.IsInf(flux[i], 0) {
			return Estimate{}, fmt.Errorf("%w: non-finite flux at index %d", ErrInvalidInput, i)
		}
	}

	teff, logg, mh, err := p.model.Predict(flux)
	if err != nil {
		return Estimate{}, fmt.Errorf("predict: model inference: %w", err)
	}

	est := Estimate{
		Teff: p.cfg.teffScaling.Scale*teff + p.cfg.teffScaling.Offset,
		LogG: p.cfg.loggScaling.Scale*logg + p.cfg.loggScaling.Offset,
		MH:   p.cfg.mhScaling.Scale*mh + p.cfg.mhScaling.Offset,
	}

	p.cfg.logger.Debug("prediction complete",
		zap.Float64("teff", est.Teff),
		zap.Float64("logg", est.LogG),
		zap.Float64("mh", est.MH))

	return est, nil
}
