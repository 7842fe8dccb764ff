package specio

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/stellarnet/spectra/spectrum"
)

type readConfig struct {
	minWavelength float64
	maxWavelength float64
	hasRange      bool
	parseLabels   bool
	logger        *zap.Logger
}

// ReadOption configures ReadTSV.
type ReadOption func(*readConfig) error

// WithReadRange restricts the read to [min, max): samples from the one
// closest to min up to but excluding the one closest to max. Values
// that fall between grid points snap to their nearest sample.
func WithReadRange(min, max float64) ReadOption {
	return func(cfg *readConfig) error {
		if !(min < max) {
			return fmt.Errorf("specio: invalid read range [%g, %g)", min, max)
		}

		cfg.minWavelength = min
		cfg.maxWavelength = max
		cfg.hasRange = true

		return nil
	}
}

// WithLabelsFromName parses stellar parameter labels from the file name
// and attaches them to the returned spectrum.
func WithLabelsFromName() ReadOption {
	return func(cfg *readConfig) error {
		cfg.parseLabels = true

		return nil
	}
}

// WithLogger sets the logger used during reads (default no-op).
func WithLogger(logger *zap.Logger) ReadOption {
	return func(cfg *readConfig) error {
		if logger == nil {
			return fmt.Errorf("specio: nil logger")
		}

		cfg.logger = logger

		return nil
	}
}

// ReadTSV reads a two or three column spectrum file. Columns are
// wavelength, flux, and an optional flux error, separated by tabs or
// spaces. Blank lines and lines starting with '#' are skipped.
func ReadTSV(path string, opts ...ReadOption) (*spectrum.Spectrum, error) {
	cfg := readConfig{logger: zap.NewNop()}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("specio: %w", err)
	}
	defer f.Close()

	cfg.logger.Debug("reading spectrum", zap.String("path", path))

	var (
		waves, fluxes, errsCol []float64
		columns                int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("%w: %s line %d: %d columns", ErrFormat, path, line, len(fields))
		}

		if columns == 0 {
			columns = len(fields)
		} else if len(fields) != columns {
			return nil, fmt.Errorf("%w: %s line %d: expected %d columns", ErrFormat, path, line, columns)
		}

		w, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrFormat, path, line, err)
		}

		fl, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrFormat, path, line, err)
		}

		waves = append(waves, w)
		fluxes = append(fluxes, fl)

		if columns == 3 {
			fe, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d: %v", ErrFormat, path, line, err)
			}

			errsCol = append(errsCol, fe)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("specio: %s: %w", path, err)
	}

	if len(waves) == 0 {
		return nil, fmt.Errorf("%w: %s: no samples", ErrFormat, path)
	}

	if cfg.hasRange {
		lo := nearestIndex(waves, cfg.minWavelength)
		hi := nearestIndex(waves, cfg.maxWavelength)

		if lo >= hi {
			return nil, fmt.Errorf("%w: %s: read range [%g, %g) selects no samples",
				ErrFormat, path, cfg.minWavelength, cfg.maxWavelength)
		}

		waves = waves[lo:hi]
		fluxes = fluxes[lo:hi]

		if errsCol != nil {
			errsCol = errsCol[lo:hi]
		}
	}

	var s *spectrum.Spectrum

	if errsCol != nil {
		s, err = spectrum.NewWithErrors(waves, fluxes, errsCol)
	} else {
		s, err = spectrum.New(waves, fluxes)
	}

	if err != nil {
		return nil, fmt.Errorf("specio: %s: %w", path, err)
	}

	if cfg.parseLabels {
		labels, err := ParseFileName(path)
		if err != nil {
			return nil, err
		}

		s.SetLabels(labels)
	}

	return s, nil
}

// WriteTSV writes the spectrum as tab-separated columns, overwriting
// any existing file. A flux error column is written when present.
func WriteTSV(s *spectrum.Spectrum, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("specio: %w", err)
	}

	w := bufio.NewWriter(f)

	waves := s.Wavelengths()
	fluxes := s.Fluxes()
	fluxErrs := s.FluxErrors()

	for i := range waves {
		w.WriteString(strconv.FormatFloat(waves[i], 'g', -1, 64))
		w.WriteByte('\t')
		w.WriteString(strconv.FormatFloat(fluxes[i], 'g', -1, 64))

		if fluxErrs != nil {
			w.WriteByte('\t')
			w.WriteString(strconv.FormatFloat(fluxErrs[i], 'g', -1, 64))
		}

		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("specio: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("specio: %w", err)
	}

	return nil
}

// nearestIndex returns the index of the sample closest to target.
func nearestIndex(waves []float64, target float64) int {
	best := 0
	bestDist := math.Abs(waves[0] - target)

	for i := 1; i < len(waves); i++ {
		d := math.Abs(waves[i] - target)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	return best
}
