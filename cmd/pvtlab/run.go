package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/config"
	"github.com/san-kum/pvtlab/internal/experiment"
	"github.com/san-kum/pvtlab/internal/export"
	"github.com/san-kum/pvtlab/internal/mixture"
	"github.com/san-kum/pvtlab/internal/pvt"
	"github.com/san-kum/pvtlab/internal/storage"
	"github.com/san-kum/pvtlab/internal/viz"
)

var (
	sets       []string
	preset     string
	components int
	masses     []string
	densities  []string

	sweepParam string
	points     int
	chartKind  string
	format     string
	outFile    string
	sweepRange string
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&sets, "set", nil, "input override name=value (repeatable)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
	cmd.Flags().IntVar(&components, "components", 0, "mixture component count")
	cmd.Flags().StringArrayVar(&masses, "mass", nil, "mixture component mass i=value (repeatable)")
	cmd.Flags().StringArrayVar(&densities, "dens", nil, "mixture component density i=value (repeatable)")
}

// parseAssignments turns name=value pairs into a snapshot.
func parseAssignments(pairs []string, key func(string) (string, error)) (pvt.Snapshot, error) {
	s := make(pvt.Snapshot, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q (want name=value)", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", pair, err)
		}
		name = strings.TrimSpace(name)
		if key != nil {
			if name, err = key(name); err != nil {
				return nil, err
			}
		}
		s[name] = v
	}
	return s, nil
}

func componentKey(prefix func(int) string) func(string) (string, error) {
	return func(index string) (string, error) {
		i, err := strconv.Atoi(index)
		if err != nil || i < 1 || i > mixture.MaxComponents {
			return "", fmt.Errorf("component index %q outside 1..%d", index, mixture.MaxComponents)
		}
		return prefix(i), nil
	}
}

func formatSnapshot(s pvt.Snapshot) string {
	parts := make([]string, 0, len(s))
	for _, k := range s.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%g", k, s[k]))
	}
	return strings.Join(parts, " ")
}

// prepare selects id on an analyzer seeded from the session store and
// applies the command line inputs on top. Overrides never reach the
// session store.
func prepare(ctx context.Context, id string) (*experiment.Analyzer, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	scratch := storage.NewMemoryStore()
	saved, err := store.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := storage.SetAll(ctx, scratch, id, saved); err != nil {
		return nil, err
	}

	a := newAnalyzer(scratch)
	if err := a.Select(ctx, id); err != nil {
		return nil, err
	}

	if preset != "" {
		p := config.GetPreset(id, preset)
		if p == nil {
			return nil, fmt.Errorf("preset %q not found for %s", preset, id)
		}
		if err := a.Apply(ctx, p); err != nil {
			return nil, err
		}
	}

	overrides, err := parseAssignments(sets, nil)
	if err != nil {
		return nil, err
	}
	if components > 0 {
		overrides[mixture.CountParam] = float64(components)
	}
	for _, group := range []struct {
		pairs []string
		key   func(int) string
	}{{masses, mixture.MassKey}, {densities, mixture.DensityKey}} {
		s, err := parseAssignments(group.pairs, componentKey(group.key))
		if err != nil {
			return nil, err
		}
		overrides = overrides.Merge(s)
	}
	if err := a.Apply(ctx, overrides); err != nil {
		return nil, err
	}
	return a, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	a, err := prepare(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out, err := a.Live()
	fmt.Fprintln(cmd.OutOrStdout(), viz.Box(a.Current().ID(), viz.Readout(a.Current(), a.Inputs(), out, err), 64))
	if err != nil {
		return fmt.Errorf("%s: %w", pvt.KindOf(err), err)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if points != 0 {
		cfg.Points = points
	}
	if chartKind != "" {
		cfg.Chart = chartKind
	}
	if format != "" {
		cfg.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := prepare(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if sweepParam != "" {
		if err := a.SelectParam(sweepParam); err != nil {
			return err
		}
	}
	if sweepRange != "" {
		r, err := analysis.ParseRange(sweepRange)
		if err != nil {
			return err
		}
		if err := a.SetRange(r); err != nil {
			return err
		}
	}

	view, err := a.Refresh()
	if err != nil {
		return fmt.Errorf("%s: %w", pvt.KindOf(err), err)
	}

	w := cmd.OutOrStdout()
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	} else if isBinary(cfg.Format) {
		return errors.New("png output needs --out")
	}

	if err := writeView(w, a, view); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s sweep of %s written to %s\n", a.Current().ID(), a.SweepParam(), outFile)
	}
	return nil
}

func isBinary(format string) bool { return format == "png" }

func writeView(w io.Writer, a *experiment.Analyzer, view *experiment.View) error {
	switch cfg.Format {
	case "ascii":
		fmt.Fprintln(w, viz.Render(view.Chart, 72, 20))
		if legend := viz.Legend(view.Chart); legend != "" {
			fmt.Fprintln(w, legend)
		}
		fmt.Fprintln(w, viz.Metrics(view.Result))
		fmt.Fprintln(w, viz.Readout(a.Current(), view.Inputs, view.Output, nil))
		return nil
	case "table":
		_, err := fmt.Fprintln(w, viz.SweepTable(view.Result))
		return err
	}
	return export.Write(w, cfg.Format, view.Result, view.Chart, export.HTMLOptions{Width: cfg.Width, Height: cfg.Height})
}
