// Command scatgo evaluates acoustic scattering models against the
// built-in reference targets.
package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scatgo/internal/logger"
	"scatgo/params"
	"scatgo/refdata"
	"scatgo/scatter"
	"scatgo/scatter/catalog"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "scatgo",
		Short: "Acoustic target strength calculations for reference targets",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetDefault(logger.NewConsoleLogger(logger.DebugLevel))
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	root.AddCommand(newTargetsCommand())
	root.AddCommand(newModelsCommand())
	root.AddCommand(newTSCommand())
	return root
}

func newTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the built-in reference targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := refdata.Default()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODEL\tDESCRIPTION")
			for _, name := range reg.Names() {
				spec, _ := reg.Specification(name)
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					name, spec["model"], spec["description"])
			}
			return w.Flush()
		},
	}
}

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the available scattering models",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tSHAPES\tFULL NAME")
			for _, meta := range catalog.Default().Metadata() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					meta.ShortName, meta.AnalyticalType,
					strings.Join(meta.Shapes, ", "), meta.LongName)
			}
			return w.Flush()
		},
	}
}

func newTSCommand() *cobra.Command {
	var (
		target    string
		modelName string
		freqs     []float64
		thetas    []float64
		parallel  bool
	)

	cmd := &cobra.Command{
		Use:   "ts",
		Short: "Compute target strength for a reference target",
		Long: "Compute target strength for a reference target, sweeping " +
			"frequency and incidence angle. Omitted sweeps use the values " +
			"from the target definition.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := refdata.Default()
			if err != nil {
				return err
			}
			p, ok := reg.Parameters(target)
			if !ok {
				return fmt.Errorf("unknown target %q (see `scatgo targets`)", target)
			}
			if modelName == "" {
				modelName, _ = reg.Model(target)
			}
			model, err := catalog.Default().Get(modelName)
			if err != nil {
				return err
			}

			table, err := buildSweep(model, p, freqs, thetas)
			if err != nil {
				return err
			}
			res := scatter.EvaluateBatch(model, table,
				scatter.BatchOptions{Parallel: parallel})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FREQ (kHz)\tTS (dB)")
			for i := 0; i < table.Len(); i++ {
				row := scatter.Params(table.RowMap(i))
				f, _ := row.Float("f")
				if err := res.Err(i); err != nil {
					fmt.Fprintf(w, "%.1f\t%v\n", f/1e3, err)
					continue
				}
				fmt.Fprintf(w, "%.1f\t%.2f\n", f/1e3, res.TS[i])
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "reference target name")
	cmd.Flags().StringVarP(&modelName, "model", "m", "",
		"model short name (default: the target's own model)")
	cmd.Flags().Float64SliceVarP(&freqs, "freq", "f", nil,
		"frequencies in Hz to sweep")
	cmd.Flags().Float64SliceVar(&thetas, "theta", nil,
		"incidence angles in degrees to sweep")
	cmd.Flags().BoolVar(&parallel, "parallel", false,
		"evaluate rows across a worker pool")
	cobra.CheckErr(cmd.MarkFlagRequired("target"))
	return cmd
}

// buildSweep turns a target's parameters plus the requested sweeps into
// an evaluation table. Parameter keys are added in sorted order so row
// order is reproducible, and bulk quantities stay unexpanded.
func buildSweep(model scatter.Model, p scatter.Params,
	freqs, thetas []float64) (*params.Table, error) {

	noExpand := map[string]bool{}
	for _, name := range model.Metadata().NoExpand {
		noExpand[name] = true
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	space := params.NewSpace()
	for _, k := range keys {
		if noExpand[k] {
			space.SetMeta(k, p[k])
			continue
		}
		if err := space.Set(k, p[k]); err != nil {
			return nil, err
		}
	}
	if len(freqs) > 0 {
		for _, f := range freqs {
			if f <= 0 || math.IsNaN(f) {
				return nil, fmt.Errorf("frequency %v is not positive", f)
			}
		}
		if err := space.Set("f", freqs); err != nil {
			return nil, err
		}
	}
	if len(thetas) > 0 {
		if err := space.Set("theta", thetas); err != nil {
			return nil, err
		}
	}
	return space.Expand(), nil
}
