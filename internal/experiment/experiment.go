// Package experiment runs one interactive analysis session: the live
// evaluation of the selected correlation, the sweep over one of its inputs
// and the chart projection of that sweep.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/chart"
	"github.com/san-kum/pvtlab/internal/correlations"
	"github.com/san-kum/pvtlab/internal/mixture"
	"github.com/san-kum/pvtlab/internal/monitoring"
	"github.com/san-kum/pvtlab/internal/pvt"
	"github.com/san-kum/pvtlab/internal/storage"
)

// ErrNoSelection is returned before a correlation has been selected.
var ErrNoSelection = errors.New("no correlation selected")

type Config struct {
	Points  int
	Chart   chart.Kind
	Options chart.Options
}

func DefaultConfig() Config {
	return Config{
		Points:  analysis.DefaultPoints,
		Chart:   chart.Kinds[0],
		Options: chart.DefaultOptions(),
	}
}

// View is what one pipeline run produced.
type View struct {
	Inputs pvt.Snapshot
	Output pvt.Output
	Result *analysis.Result
	Chart  *chart.Description
}

// Analyzer owns the session state: the selected correlation, its inputs,
// the mixture component set and the last successful view.
type Analyzer struct {
	catalog *correlations.Catalog
	store   storage.ParamStore
	cfg     Config
	session string

	current    pvt.Correlation
	inputs     pvt.Snapshot
	components *mixture.Set
	param      string
	span       *analysis.Range
	kind       chart.Kind

	view    *View
	liveErr error
}

func New(catalog *correlations.Catalog, store storage.ParamStore, cfg Config) *Analyzer {
	if cfg.Points < 2 {
		cfg.Points = analysis.DefaultPoints
	}
	if cfg.Chart == "" {
		cfg.Chart = chart.Kinds[0]
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return &Analyzer{
		catalog: catalog,
		store:   store,
		cfg:     cfg,
		session: uuid.NewString(),
		kind:    cfg.Chart,
	}
}

func (a *Analyzer) Session() string { return a.session }

func (a *Analyzer) Current() pvt.Correlation { return a.current }

func (a *Analyzer) Catalog() *correlations.Catalog { return a.catalog }

func (a *Analyzer) SweepParam() string { return a.param }

func (a *Analyzer) ChartKind() chart.Kind { return a.kind }

// LastView is the most recent successful pipeline run, or nil.
func (a *Analyzer) LastView() *View { return a.view }

// LastError is the live evaluation error of the latest Refresh.
func (a *Analyzer) LastError() error { return a.liveErr }

func (a *Analyzer) Inputs() pvt.Snapshot { return a.inputs.Clone() }

// Select makes id the current correlation. Inputs come from the store,
// falling back to the declared defaults; the first parameter becomes the
// swept one.
func (a *Analyzer) Select(ctx context.Context, id string) error {
	c, err := a.catalog.Get(id)
	if err != nil {
		return err
	}
	stored, err := a.store.Snapshot(ctx, id)
	if err != nil {
		return fmt.Errorf("load inputs for %s: %w", id, err)
	}

	inputs := pvt.Defaults(c)
	for k, v := range stored {
		if spec, ok := pvt.FindParam(c, k); ok {
			inputs[k] = spec.Clamp(v)
		}
	}

	a.current = c
	a.inputs = inputs
	a.setParam(c.Params()[0].Name)
	a.view = nil
	a.liveErr = nil
	a.components = nil
	if id == mixture.NewDensity().ID() {
		if err := a.rebuildComponents(ctx, int(math.Trunc(inputs[mixture.CountParam]))); err != nil {
			return err
		}
	}
	monitoring.Logf("analyzer %s: selected %s", a.session[:8], id)
	return nil
}

// SelectParam changes the swept parameter. Only parameters the current
// inputs activate can be swept.
func (a *Analyzer) SelectParam(name string) error {
	if a.current == nil {
		return ErrNoSelection
	}
	if !slices.Contains(a.activeParams(), name) {
		return pvt.Fail(a.current.ID(), pvt.ErrUnknownParameter, name, 0)
	}
	a.setParam(name)
	return nil
}

// NextParam cycles the swept parameter through the declared inputs. For
// the mixture correlation only C and the active components are offered.
func (a *Analyzer) NextParam() string {
	names := a.activeParams()
	for i, n := range names {
		if n == a.param {
			a.setParam(names[(i+1)%len(names)])
			return a.param
		}
	}
	if len(names) > 0 {
		a.setParam(names[0])
	}
	return a.param
}

// setParam changes the swept parameter and drops any range override.
func (a *Analyzer) setParam(name string) {
	a.param = name
	a.span = nil
}

// SetRange narrows the sweep of the current parameter to r, which must lie
// within the declared range. It holds until the swept parameter changes.
func (a *Analyzer) SetRange(r analysis.Range) error {
	if a.current == nil {
		return ErrNoSelection
	}
	spec, ok := pvt.FindParam(a.current, a.param)
	if !ok {
		return pvt.Fail(a.current.ID(), pvt.ErrUnknownParameter, a.param, 0)
	}
	if !(r.Min < r.Max) {
		return fmt.Errorf("%w: min %g not below max %g", pvt.ErrInvalidGrid, r.Min, r.Max)
	}
	for _, v := range []float64{r.Min, r.Max} {
		if !spec.Contains(v) {
			return pvt.Fail(a.current.ID(), pvt.ErrDomainInvalid, a.param, v)
		}
	}
	a.span = &r
	return nil
}

// Range is the interval the next sweep covers.
func (a *Analyzer) Range() analysis.Range {
	if a.span != nil {
		return *a.span
	}
	if a.current == nil {
		return analysis.Range{}
	}
	spec, _ := pvt.FindParam(a.current, a.param)
	return analysis.Range{Min: spec.Min, Max: spec.Max}
}

func (a *Analyzer) activeParams() []string {
	if a.current == nil {
		return nil
	}
	return pvt.ActiveNames(a.current, a.inputs)
}

// ActiveParams lists the parameters the session currently offers.
func (a *Analyzer) ActiveParams() []pvt.ParameterSpec {
	if a.current == nil {
		return nil
	}
	return pvt.Active(a.current, a.inputs)
}

// Set commits one input value and writes it to the store. Values outside
// the declared range are clamped.
func (a *Analyzer) Set(ctx context.Context, name string, v float64) error {
	if a.current == nil {
		return ErrNoSelection
	}
	spec, ok := pvt.FindParam(a.current, name)
	if !ok {
		return pvt.Fail(a.current.ID(), pvt.ErrUnknownParameter, name, v)
	}
	v = spec.Clamp(v)

	if a.components != nil {
		if name == mixture.CountParam {
			return a.rebuildComponents(ctx, int(math.Trunc(v)))
		}
		if err := a.components.SetParam(name, v); err != nil {
			return pvt.Fail(a.current.ID(), pvt.ErrUnknownParameter, name, v)
		}
	}

	a.inputs[name] = v
	if err := a.store.Set(ctx, a.current.ID(), name, v); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	return nil
}

// Nudge moves name by n steps on its declared lattice.
func (a *Analyzer) Nudge(ctx context.Context, name string, n int) error {
	if a.current == nil {
		return ErrNoSelection
	}
	spec, ok := pvt.FindParam(a.current, name)
	if !ok {
		return pvt.Fail(a.current.ID(), pvt.ErrUnknownParameter, name, 0)
	}
	return a.Set(ctx, name, spec.Nudge(a.inputs[name], n))
}

// Apply commits every value of s, stopping at the first error.
func (a *Analyzer) Apply(ctx context.Context, s pvt.Snapshot) error {
	// C first so component values land on the resized set
	if v, ok := s[mixture.CountParam]; ok && a.components != nil {
		if err := a.Set(ctx, mixture.CountParam, v); err != nil {
			return err
		}
	}
	for _, k := range s.Keys() {
		if k == mixture.CountParam && a.components != nil {
			continue
		}
		if err := a.Set(ctx, k, s[k]); err != nil {
			return err
		}
	}
	return nil
}

// SetComponents resizes the mixture component set.
func (a *Analyzer) SetComponents(ctx context.Context, count int) error {
	if a.components == nil {
		return fmt.Errorf("%s has no component set", a.currentID())
	}
	return a.rebuildComponents(ctx, count)
}

// Components returns the active mixture components, or nil.
func (a *Analyzer) Components() []mixture.Component {
	if a.components == nil {
		return nil
	}
	return a.components.Components()
}

// rebuildComponents resizes the set to count and rewrites the flat inputs:
// components past count fall back to defaults and leave the store.
func (a *Analyzer) rebuildComponents(ctx context.Context, count int) error {
	id := a.current.ID()
	if count < 1 || count > mixture.MaxComponents {
		return pvt.Fail(id, pvt.ErrDomainInvalid, mixture.CountParam, float64(count))
	}

	if a.components == nil {
		a.components = mixture.NewSet(count)
		for i := 1; i <= count; i++ {
			c := mixture.Component{Mass: a.inputs[mixture.MassKey(i)], Density: a.inputs[mixture.DensityKey(i)]}
			if err := a.components.Update(i, c); err != nil {
				return err
			}
		}
	} else {
		a.components.Resize(count)
	}

	ex, err := a.components.Expand()
	if err != nil {
		return err
	}
	a.inputs[mixture.CountParam] = float64(count)
	if err := a.store.Set(ctx, id, mixture.CountParam, float64(count)); err != nil {
		return err
	}
	for i := 1; i <= mixture.MaxComponents; i++ {
		mk, dk := mixture.MassKey(i), mixture.DensityKey(i)
		if i <= count {
			a.inputs[mk], a.inputs[dk] = ex.Params[mk], ex.Params[dk]
			if err := a.store.Set(ctx, id, mk, a.inputs[mk]); err != nil {
				return err
			}
			if err := a.store.Set(ctx, id, dk, a.inputs[dk]); err != nil {
				return err
			}
			continue
		}
		a.inputs[mk], a.inputs[dk] = mixture.DefaultMass, mixture.DefaultDensity
		if err := a.store.Delete(ctx, id, mk); err != nil {
			return err
		}
		if err := a.store.Delete(ctx, id, dk); err != nil {
			return err
		}
	}

	if a.param != "" && !slices.Contains(a.activeParams(), a.param) {
		a.setParam(mixture.CountParam)
	}
	return nil
}

func (a *Analyzer) currentID() string {
	if a.current == nil {
		return ""
	}
	return a.current.ID()
}

// Live evaluates the current inputs once.
func (a *Analyzer) Live() (pvt.Output, error) {
	if a.current == nil {
		return pvt.Output{}, ErrNoSelection
	}
	return analysis.Evaluate(a.current, a.inputs)
}

// Refresh runs the whole pipeline. A live evaluation failure is returned
// together with the previous view, which stays current.
func (a *Analyzer) Refresh() (*View, error) {
	if a.current == nil {
		return nil, ErrNoSelection
	}

	out, err := a.Live()
	if err != nil {
		a.liveErr = err
		monitoring.Logf("analyzer %s: live evaluation failed: %v", a.session[:8], err)
		return a.view, err
	}
	a.liveErr = nil

	r := a.Range()
	grid, err := analysis.BuildGrid(r.Min, r.Max, a.cfg.Points)
	if err != nil {
		return a.view, fmt.Errorf("parameter %s: %w", a.param, err)
	}
	res, err := analysis.Sweep(a.current, a.inputs, a.param, grid)
	if err != nil {
		return a.view, err
	}
	desc, err := chart.Project(a.kind, res, chart.LiveFrom(a.inputs.Clone(), out), a.cfg.Options)
	if err != nil {
		return a.view, err
	}

	a.view = &View{Inputs: a.inputs.Clone(), Output: out, Result: res, Chart: desc}
	return a.view, nil
}

// SetChart changes the projection. The last sweep is re-projected without
// evaluating the correlation again.
func (a *Analyzer) SetChart(kind chart.Kind) (*View, error) {
	a.kind = kind
	if a.view == nil {
		return nil, nil
	}
	live := chart.LiveFrom(a.view.Inputs, a.view.Output)
	desc, err := chart.Project(kind, a.view.Result, live, a.cfg.Options)
	if err != nil {
		return a.view, err
	}
	a.view = &View{Inputs: a.view.Inputs, Output: a.view.Output, Result: a.view.Result, Chart: desc}
	return a.view, nil
}

// NextChart cycles to the following chart kind.
func (a *Analyzer) NextChart() (*View, error) {
	return a.SetChart(a.kind.Next())
}
