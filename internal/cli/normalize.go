package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/deckgo/internal/app"
)

type normalizeFlags struct {
	name              string
	dimensions        []string
	defaultDimensions []string
	defaultValue      float64
	json              bool
}

func newNormalizeCommand(opts *options) *cobra.Command {
	f := &normalizeFlags{}

	cmd := &cobra.Command{
		Use:   "normalize [flags] VALUES",
		Short: "Convert the values of one record field to SI units",
		Long: `Convert the values of one record field to SI units.

VALUES is an HCL expression: a number or a list such as '[1, 2.5, null]'.
null marks a value omitted in the deck; it is replaced by --default.
Each --dimension attaches one unit factor; several factors cycle over the
values. --default-dimension pairs with --dimension by position and is used
when a default was applied before the factor was attached.`,
		Example: `  deckgo normalize --system FIELD --dimension Length '[1, 2, null]' --default 10
  deckgo normalize --dimension Length --dimension Length --dimension Time '[1, 2, 3, 4, 5, 6]'`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError("normalize expects exactly one VALUES argument, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[0])
			if err != nil {
				return err
			}

			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.Normalize(app.NormalizeRequest{
				Name:              f.name,
				Values:            values,
				Default:           f.defaultValue,
				Dimensions:        f.dimensions,
				DefaultDimensions: f.defaultDimensions,
			})
			if err != nil {
				return err
			}

			if f.json {
				enc := json.NewEncoder(opts.out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printNormalized(cmd, res)
		},
	}

	cmd.Flags().StringVar(&f.name, "name", "ITEM", "Item name used in messages.")
	cmd.Flags().StringArrayVar(&f.dimensions, "dimension", nil, "Active dimension expression, e.g. 'Length' or 'LiquidSurfaceVolume/Time'. Repeatable.")
	cmd.Flags().StringArrayVar(&f.defaultDimensions, "default-dimension", nil, "Dimension used when a default was applied. Repeatable, paired with --dimension.")
	cmd.Flags().Float64Var(&f.defaultValue, "default", 0, "Value substituted for null entries.")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output as JSON.")
	return cmd
}

// parseValues evaluates an HCL expression without variables or functions.
func parseValues(src string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "VALUES", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return cty.NilVal, usageError("invalid VALUES expression: %s", diags.Error())
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, usageError("invalid VALUES expression: %s", diags.Error())
	}
	return val, nil
}

func printNormalized(cmd *cobra.Command, res *app.NormalizeResult) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "item %s (%s), factors: %s, default applied: %t\n", res.Name, res.System, strings.Join(res.Factors, ", "), res.DefaultApplied)
	fmt.Fprintln(w, "INDEX\tRAW\tSI")
	for i := range res.Raw {
		fmt.Fprintf(w, "%d\t%g\t%g\n", i, res.Raw[i], res.Normalized[i])
	}
	return w.Flush()
}
