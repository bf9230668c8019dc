package analysis

import (
	"fmt"
	"slices"

	"github.com/san-kum/pvtlab/internal/monitoring"
	"github.com/san-kum/pvtlab/internal/pvt"
)

// ResultKey names the primary output column.
const ResultKey = "Result"

// Point is one evaluated grid point.
type Point struct {
	X      float64
	Inputs pvt.Snapshot
	Result pvt.Value
	Extras map[string]pvt.Value
	// Reason is set when Result is absent.
	Reason pvt.Kind
}

// Result is an ordered sweep over one parameter. Points follow grid order.
type Result struct {
	Correlation string
	Param       string
	Unit        string
	// Inputs are the parameters the correlation reads at the fixed values.
	Inputs      []string
	Extras      []string
	Points      []Point
}

// Sweep evaluates c at every grid value of param with the other inputs taken
// from fixed. extras selects secondary outputs; none means all declared ones.
func Sweep(c pvt.Correlation, fixed pvt.Snapshot, param string, grid []float64, extras ...string) (*Result, error) {
	if _, ok := pvt.FindParam(c, param); !ok {
		return nil, pvt.Fail(c.ID(), pvt.ErrUnknownParameter, param, 0)
	}
	if err := pvt.Require(c, fixed, param); err != nil {
		return nil, err
	}
	inputs := pvt.ActiveNames(c, fixed)
	if !slices.Contains(inputs, param) {
		return nil, pvt.Fail(c.ID(), pvt.ErrUnknownParameter, param, 0)
	}
	if len(grid) < 2 {
		return nil, fmt.Errorf("%w: %d grid points", pvt.ErrInvalidGrid, len(grid))
	}
	if len(extras) == 0 {
		extras = c.Extras()
	}

	res := &Result{
		Correlation: c.ID(),
		Param:       param,
		Unit:        c.Unit(),
		Inputs:      inputs,
		Extras:      append([]string(nil), extras...),
		Points:      make([]Point, 0, len(grid)),
	}

	absent := 0
	for _, g := range grid {
		snap := fixed.With(param, g)
		pt := Point{X: g, Inputs: snap, Extras: make(map[string]pvt.Value, len(extras))}

		out, err := safeEvaluate(c, snap)
		if err != nil {
			pt.Result = pvt.Absent
			pt.Reason = pvt.KindOf(err)
			for _, k := range extras {
				pt.Extras[k] = pvt.Absent
			}
			absent++
		} else {
			pt.Result = pvt.Some(out.Result)
			for _, k := range extras {
				pt.Extras[k] = out.Extra(k)
			}
		}
		res.Points = append(res.Points, pt)
	}

	monitoring.Logf("sweep %s over %s: %d points, %d absent", c.ID(), param, len(grid), absent)
	return res, nil
}

// Run sweeps param over its declared range with count points.
func Run(c pvt.Correlation, fixed pvt.Snapshot, param string, count int, extras ...string) (*Result, error) {
	spec, ok := pvt.FindParam(c, param)
	if !ok {
		return nil, pvt.Fail(c.ID(), pvt.ErrUnknownParameter, param, 0)
	}
	grid, err := GridFor(spec, count)
	if err != nil {
		return nil, err
	}
	return Sweep(c, fixed, param, grid, extras...)
}

// Evaluate is a single live evaluation. Unlike Sweep, every failure is
// returned to the caller.
func Evaluate(c pvt.Correlation, s pvt.Snapshot) (pvt.Output, error) {
	if err := pvt.Require(c, s); err != nil {
		return pvt.Output{}, err
	}
	return safeEvaluate(c, s)
}

func safeEvaluate(c pvt.Correlation, s pvt.Snapshot) (out pvt.Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = pvt.Fail(c.ID(), fmt.Errorf("%w: %v", pvt.ErrMathUndefined, r), "", 0)
		}
	}()
	return c.Evaluate(s)
}

// Xs returns the swept values in order.
func (r *Result) Xs() []float64 {
	xs := make([]float64, len(r.Points))
	for i, p := range r.Points {
		xs[i] = p.X
	}
	return xs
}

// Column returns the series for key: ResultKey, an extra, or an input name.
func (r *Result) Column(key string) []pvt.Value {
	col := make([]pvt.Value, len(r.Points))
	for i, p := range r.Points {
		switch {
		case key == ResultKey:
			col[i] = p.Result
		case slices.Contains(r.Extras, key):
			col[i] = p.Extras[key]
		default:
			if v, ok := p.Inputs[key]; ok {
				col[i] = pvt.Some(v)
			}
		}
	}
	return col
}

// SeriesKeys lists the tracked output series: the result then each extra.
func (r *Result) SeriesKeys() []string {
	return append([]string{ResultKey}, r.Extras...)
}

// AbsentCount is the number of points without a result.
func (r *Result) AbsentCount() int {
	n := 0
	for _, p := range r.Points {
		if !p.Result.OK {
			n++
		}
	}
	return n
}
