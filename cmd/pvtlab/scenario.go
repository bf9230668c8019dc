package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pvtlab/internal/automation"
	"github.com/san-kum/pvtlab/internal/export"
	"github.com/san-kum/pvtlab/internal/metrics"
	"github.com/san-kum/pvtlab/internal/pvt"
)

var outDir string

func scenarioCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scripted batch of sweeps",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&outDir, "out-dir", "", "directory for relative save_as paths")
	return runCmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	r := &automation.Runner{
		Catalog: catalog,
		Config:  newAnalyzerConfig(),
		HTML:    export.HTMLOptions{Width: cfg.Width, Height: cfg.Height},
		Dir:     outDir,
	}
	results, err := r.Run(cmd.Context(), sc)

	fmt.Printf("%s: %d/%d steps\n\n", sc.Name, len(results), len(sc.Steps))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tCORRELATION\tSWEEP\tRESULT\tCOVERAGE\tSENSITIVITY\tSAVED")
	for _, res := range results {
		if res.View == nil {
			fmt.Fprintf(w, "%d\t%s\t-\t%s\t-\t-\t-\n", res.Index, res.Step.Correlation, pvt.KindOf(res.Err))
			continue
		}
		readings := metrics.Summarize(res.View.Result, metrics.NewCoverage(), metrics.NewSensitivity())
		saved := res.Saved
		if saved == "" {
			saved = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.5f\t%s\t%s\t%s\n",
			res.Index, res.Step.Correlation, res.View.Result.Param, res.View.Output.Result,
			readings[0], readings[1], saved)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}
