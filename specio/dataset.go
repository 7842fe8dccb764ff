package specio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/stellarnet/spectra/spectrum"
)

// Dataset holds training data assembled from a grid directory: one flux
// row per spectrum, index-aligned with its stellar parameter labels.
type Dataset struct {
	Fluxes [][]float64
	Labels []spectrum.Labels
}

// BuildDataset walks a directory of labeled .tsv grid spectra and
// assembles a training dataset. Files are read in lexical order;
// macOS resource-fork droppings ("._" prefix) and non-.tsv files are
// skipped. All spectra must share one grid length.
func BuildDataset(dir string, opts ...ReadOption) (*Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("specio: %w", err)
	}

	cfg := readConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	ds := &Dataset{}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".tsv") || strings.HasPrefix(name, "._") {
			continue
		}

		readOpts := append([]ReadOption{WithLabelsFromName(), WithLogger(cfg.logger)}, opts...)

		s, err := ReadTSV(filepath.Join(dir, name), readOpts...)
		if err != nil {
			return nil, err
		}

		labels, _ := s.Labels()

		if len(ds.Fluxes) > 0 && s.Len() != len(ds.Fluxes[0]) {
			return nil, fmt.Errorf("%w: %s has %d samples, expected %d",
				ErrDatasetShape, name, s.Len(), len(ds.Fluxes[0]))
		}

		ds.Fluxes = append(ds.Fluxes, s.Fluxes())
		ds.Labels = append(ds.Labels, labels)

		cfg.logger.Debug("dataset file added",
			zap.String("file", name),
			zap.Int("samples", s.Len()))
	}

	if len(ds.Fluxes) == 0 {
		return nil, fmt.Errorf("%w: %s: no .tsv spectra", ErrFormat, dir)
	}

	return ds, nil
}
