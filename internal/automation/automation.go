// Package automation runs scripted batches of sweeps described in YAML.
package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pvtlab/internal/chart"
	"github.com/san-kum/pvtlab/internal/config"
	"github.com/san-kum/pvtlab/internal/correlations"
	"github.com/san-kum/pvtlab/internal/experiment"
	"github.com/san-kum/pvtlab/internal/export"
	"github.com/san-kum/pvtlab/internal/monitoring"
	"github.com/san-kum/pvtlab/internal/pvt"
)

// Scenario is a named sequence of sweeps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one correlation evaluated at fixed inputs and swept over one of
// them. Params are applied on top of Preset.
type Step struct {
	Correlation string             `yaml:"correlation"`
	Preset      string             `yaml:"preset"`
	Params      map[string]float64 `yaml:"params"`
	Sweep       string             `yaml:"sweep"`
	Points      int                `yaml:"points"`
	Chart       string             `yaml:"chart"`
	SaveAs      string             `yaml:"save_as"`
}

// StepResult is what one step produced. Err holds a live evaluation
// failure, in which case View is nil.
type StepResult struct {
	Index int
	Step  Step
	View  *experiment.View
	Err   error
	Saved string
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &sc, nil
}

// Runner executes scenarios against a catalog.
type Runner struct {
	Catalog *correlations.Catalog
	Config  experiment.Config
	HTML    export.HTMLOptions
	// Dir is prepended to relative SaveAs paths.
	Dir string
}

// Run executes every step in order. Live evaluation failures are recorded
// on the step and the scenario continues; setup errors abort it.
func (r *Runner) Run(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		monitoring.Logf("scenario %s: step %d/%d: %s", sc.Name, i+1, len(sc.Steps), step.Correlation)

		res, err := r.runStep(ctx, i+1, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runStep(ctx context.Context, index int, step Step) (StepResult, error) {
	cfg := r.Config
	if step.Points != 0 {
		cfg.Points = step.Points
	}
	if step.Chart != "" {
		kind, err := chart.ParseKind(step.Chart)
		if err != nil {
			return StepResult{}, err
		}
		cfg.Chart = kind
	}

	a := experiment.New(r.Catalog, nil, cfg)
	if err := a.Select(ctx, step.Correlation); err != nil {
		return StepResult{}, err
	}
	if step.Preset != "" {
		p := config.GetPreset(step.Correlation, step.Preset)
		if p == nil {
			return StepResult{}, fmt.Errorf("preset %q not found for %s", step.Preset, step.Correlation)
		}
		if err := a.Apply(ctx, p); err != nil {
			return StepResult{}, err
		}
	}
	if err := a.Apply(ctx, pvt.Snapshot(step.Params)); err != nil {
		return StepResult{}, err
	}
	if step.Sweep != "" {
		if err := a.SelectParam(step.Sweep); err != nil {
			return StepResult{}, err
		}
	}

	out := StepResult{Index: index, Step: step}
	view, err := a.Refresh()
	if err != nil {
		if pvt.KindOf(err) == pvt.KindUnknown {
			return StepResult{}, err
		}
		out.Err = err
		return out, nil
	}
	out.View = view

	if step.SaveAs != "" {
		path := step.SaveAs
		if r.Dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(r.Dir, path)
		}
		if err := r.save(path, view); err != nil {
			return StepResult{}, err
		}
		out.Saved = path
	}
	return out, nil
}

func (r *Runner) save(path string, view *experiment.View) error {
	format, err := export.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Write(f, format, view.Result, view.Chart, r.HTML); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
