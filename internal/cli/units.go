package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type dimensionOutput struct {
	Name      string  `json:"name"`
	SIScaling float64 `json:"si_scaling"`
}

func newUnitsCommand(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List the dimensions of the selected unit system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			dims := a.Units()
			if asJSON {
				out := make([]dimensionOutput, len(dims))
				for i, d := range dims {
					out[i] = dimensionOutput{Name: d.Name, SIScaling: d.SIScaling}
				}
				enc := json.NewEncoder(opts.out)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "unit system %s\n", a.Registry().Name())
			fmt.Fprintln(w, "DIMENSION\tSI SCALING")
			for _, d := range dims {
				fmt.Fprintf(w, "%s\t%g\n", d.Name, d.SIScaling)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON.")
	return cmd
}
