package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stellarnet/spectra/perturb"
	"github.com/stellarnet/spectra/specio"
	"github.com/stellarnet/spectra/spectrum"
)

func perturbCmd() *cobra.Command {
	var (
		vsiniValues []float64
		snrValues   []float64
		rvValues    []float64
		limbDark    float64
		seed        uint64
		seeded      bool
		workers     int
		convertToNM bool
	)

	cmd := &cobra.Command{
		Use:   "perturb <in-dir> <out-dir>",
		Short: "Batch-perturb a grid of spectra",
		Long: `Apply every combination of the given vsini, SNR, and radial velocity
values to each labeled spectrum in the input directory and write the
perturbed spectra to the output directory.

A value of 0 in any list skips that perturbation for the combination,
so "--vsini 0,50,150 --snr 0,100" also emits the unperturbed and the
single-perturbation variants.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inDir, outDir := args[0], args[1]

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			combos := buildCombos(vsiniValues, snrValues, rvValues)
			if len(combos) == 0 {
				return fmt.Errorf("no perturbation values given; use --vsini, --snr, or --rv")
			}

			spectra, err := readGrid(inDir, logger)
			if err != nil {
				return err
			}

			if convertToNM {
				for _, s := range spectra {
					s.ConvertToNanometers()
				}
			}

			opts := []perturb.Option{
				perturb.WithLimbDarkening(limbDark),
				perturb.WithLogger(logger),
			}
			if workers > 0 {
				opts = append(opts, perturb.WithWorkers(workers))
			}
			if seeded {
				opts = append(opts, perturb.WithSeed(seed))
			}

			logger.Info("starting batch augmentation",
				zap.Int("spectra", len(spectra)),
				zap.Int("combinations", len(combos)))

			out, err := perturb.Augment(spectra, combos, opts...)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			for _, s := range out {
				name, err := specio.FileName(s)
				if err != nil {
					return err
				}

				if err := specio.WriteTSV(s, filepath.Join(outDir, name)); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d spectra to %s\n", len(out), outDir)

			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&vsiniValues, "vsini", nil, "rotational velocities in km/s (0 skips)")
	cmd.Flags().Float64SliceVar(&snrValues, "snr", nil, "signal-to-noise ratios (0 skips)")
	cmd.Flags().Float64SliceVar(&rvValues, "rv", nil, "radial velocities in km/s (0 skips)")
	cmd.Flags().Float64Var(&limbDark, "limb-darkening", 0.6, "limb-darkening coefficient")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "base seed for reproducible noise")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&convertToNM, "to-nm", false, "convert Angstrom grids to nanometers before perturbing")

	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		seeded = cmd.Flags().Changed("seed")
	}

	return cmd
}

// buildCombos expands the flag value lists into their cartesian product.
// Empty lists contribute a single zero, which Augment treats as "skip
// this perturbation".
func buildCombos(vsinis, snrs, rvs []float64) []perturb.Params {
	if len(vsinis) == 0 && len(snrs) == 0 && len(rvs) == 0 {
		return nil
	}

	if len(vsinis) == 0 {
		vsinis = []float64{0}
	}
	if len(snrs) == 0 {
		snrs = []float64{0}
	}
	if len(rvs) == 0 {
		rvs = []float64{0}
	}

	combos := make([]perturb.Params, 0, len(vsinis)*len(snrs)*len(rvs))
	for _, v := range vsinis {
		for _, snr := range snrs {
			for _, rv := range rvs {
				combos = append(combos, perturb.Params{Vsini: v, SNR: snr, RadialVelocity: rv})
			}
		}
	}

	return combos
}

// readGrid loads every labeled .tsv spectrum in dir.
func readGrid(dir string, logger *zap.Logger) ([]*spectrum.Spectrum, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var spectra []*spectrum.Spectrum

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".tsv") || strings.HasPrefix(name, "._") {
			continue
		}

		s, err := specio.ReadTSV(filepath.Join(dir, name),
			specio.WithLabelsFromName(),
			specio.WithLogger(logger))
		if err != nil {
			return nil, err
		}

		spectra = append(spectra, s)
	}

	if len(spectra) == 0 {
		return nil, fmt.Errorf("no .tsv spectra in %s", dir)
	}

	return spectra, nil
}
