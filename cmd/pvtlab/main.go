package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pvtlab/internal/config"
	"github.com/san-kum/pvtlab/internal/correlations"
	"github.com/san-kum/pvtlab/internal/experiment"
	"github.com/san-kum/pvtlab/internal/monitoring"
	"github.com/san-kum/pvtlab/internal/storage"
	"github.com/san-kum/pvtlab/internal/tui"
	"github.com/san-kum/pvtlab/internal/viz"
)

var (
	configFile string
	verbose    bool
	dbPath     string
	session    string

	cfg     = config.DefaultConfig()
	catalog = correlations.NewCatalog()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pvtlab",
		Short:        "PVT correlation calculator and sensitivity explorer",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.DefaultConfig()
			if verbose {
				monitoring.SetLogger(monitoring.WriterLogger(os.Stderr, "pvtlab "))
			} else {
				monitoring.SetLogger(nil)
			}
			if configFile != "" {
				loaded, err := config.Load(configFile)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = loaded
			}
			if dbPath != "" {
				cfg.Store.Driver = "sqlite"
				cfg.Store.Path = dbPath
			}
			viz.SetTheme(cfg.Theme)
			return nil
		},
		RunE: runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite session database (implies the sqlite store)")
	rootCmd.PersistentFlags().StringVar(&session, "session", "default", "session id in the sqlite store")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list correlations",
		RunE:  listCorrelations,
	}

	paramsCmd := &cobra.Command{
		Use:   "params [id]",
		Short: "show the inputs of a correlation",
		Args:  cobra.ExactArgs(1),
		RunE:  showParams,
	}

	evalCmd := &cobra.Command{
		Use:   "eval [id]",
		Short: "evaluate a correlation once",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}
	addInputFlags(evalCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [id]",
		Short: "sweep one input across its range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addInputFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "input to sweep (default: the first one)")
	sweepCmd.Flags().IntVar(&points, "points", 0, "grid points (default from config)")
	sweepCmd.Flags().StringVar(&chartKind, "chart", "", "chart kind: polar, line, bar, radar, scatter")
	sweepCmd.Flags().StringVar(&format, "format", "", "output: ascii, table, csv, json, html, png, svg")
	sweepCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	sweepCmd.Flags().StringVar(&sweepRange, "range", "", "sweep interval min:max within the declared range")

	presetsCmd := &cobra.Command{
		Use:   "presets [id]",
		Short: "list input presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive analyzer",
		RunE:  runTUI,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(listCmd, paramsCmd, evalCmd, sweepCmd, presetsCmd, sessionCommand(), scenarioCommand(), tuiCmd, configCmd)
	return rootCmd
}

var force bool

// openStore returns the configured session store.
func openStore() (storage.ParamStore, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return storage.OpenSQL(cfg.Store.Path, session)
	default:
		return storage.NewMemoryStore(), nil
	}
}

func newAnalyzerConfig() experiment.Config {
	return experiment.Config{
		Points:  cfg.Points,
		Chart:   cfg.ChartKind(),
		Options: cfg.ChartOptions(),
	}
}

func newAnalyzer(store storage.ParamStore) *experiment.Analyzer {
	return experiment.New(catalog, store, newAnalyzerConfig())
}

func listCorrelations(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUNIT\tINPUTS")
	for _, c := range catalog.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID(), c.Name(), c.Unit(), len(c.Params()))
	}
	return w.Flush()
}

func showParams(cmd *cobra.Command, args []string) error {
	c, err := catalog.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n\n", c.Name(), c.Unit())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAMETER\tMIN\tMAX\tSTEP\tDEFAULT")
	for _, p := range c.Params() {
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n", p.Label(), p.Min, p.Max, p.Step, p.Default)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if extras := c.Extras(); len(extras) > 0 {
		fmt.Printf("\nextras: %v\n", extras)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	ids := catalog.IDs()
	if len(args) == 1 {
		if _, err := catalog.Get(args[0]); err != nil {
			return err
		}
		ids = args
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CORRELATION\tPRESET\tVALUES")
	for _, id := range ids {
		for _, name := range config.ListPresets(id) {
			p := config.GetPreset(id, name)
			fmt.Fprintf(w, "%s\t%s\t%s\n", id, name, formatSnapshot(p))
		}
	}
	return w.Flush()
}

func runTUI(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return tui.RunInteractive(context.Background(), newAnalyzer(store))
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "pvtlab.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
