package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stellarnet/spectra/specio"
)

func infoCmd() *cobra.Command {
	var parseLabels bool

	cmd := &cobra.Command{
		Use:   "info <file.tsv>",
		Short: "Summarize a spectrum file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var opts []specio.ReadOption
			if parseLabels {
				opts = append(opts, specio.WithLabelsFromName())
			}

			s, err := specio.ReadTSV(args[0], opts...)
			if err != nil {
				return err
			}

			waves := s.Wavelengths()

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)

			fmt.Fprintf(w, "samples\t%d\n", s.Len())
			fmt.Fprintf(w, "range\t%g - %g\n", waves[0], waves[len(waves)-1])

			if s.Len() > 1 {
				fmt.Fprintf(w, "spacing\t%g\n", waves[1]-waves[0])

				if err := s.ValidateUniformGrid(); err != nil {
					fmt.Fprintf(w, "uniform grid\tno\n")
				} else {
					fmt.Fprintf(w, "uniform grid\tyes\n")
				}
			}

			fmt.Fprintf(w, "flux errors\t%v\n", s.FluxErrors() != nil)

			if labels, ok := s.Labels(); ok {
				fmt.Fprintf(w, "Teff\t%g K\n", labels.Teff)
				fmt.Fprintf(w, "log g\t%g\n", labels.LogG)
				fmt.Fprintf(w, "[M/H]\t%g\n", labels.MH)
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&parseLabels, "labels", false, "parse stellar parameters from the file name")

	return cmd
}
