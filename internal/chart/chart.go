package chart

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/pvt"
)

type Kind string

const (
	Line    Kind = "line"
	Bar     Kind = "bar"
	Scatter Kind = "scatter"
	Polar   Kind = "polar"
	Radar   Kind = "radar"
)

// Kinds lists every projection in selector order.
var Kinds = []Kind{Polar, Line, Bar, Radar, Scatter}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chart kind: %s", s)
}

// Next cycles to the following kind in selector order.
func (k Kind) Next() Kind {
	for i, known := range Kinds {
		if known == k {
			return Kinds[(i+1)%len(Kinds)]
		}
	}
	return Kinds[0]
}

// Pair is one plotted point. For polar and radar X is the angle in degrees
// (or the axis index) and Y the radius.
type Pair struct {
	X      float64
	Y      float64
	Absent bool
}

type Series struct {
	Name   string
	Points []Pair
	// Live marks the highlighted current-evaluation polygon on radar charts.
	Live bool
}

// Description is what a renderer needs to draw one chart.
type Description struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	// Categories labels the grid points (bar groups, polar angles) or the
	// radar axes.
	Categories []string
	Series     []Series
	// RadialMin and RadialMax bound the shared radial axis of polar and
	// radar charts.
	RadialMin float64
	RadialMax float64
	// Shift was added to every polar radius.
	Shift float64
}

// Unshift maps a rendered polar radius back to the data value.
func (d *Description) Unshift(r float64) float64 {
	return r - d.Shift
}

// Live is the single-point evaluation shown next to a sweep.
type Live struct {
	Inputs pvt.Snapshot
	Result pvt.Value
	Extras map[string]pvt.Value
}

// LiveFrom builds a Live from a successful evaluation. A failed one is
// Live{Inputs: inputs}: its result and extras are absent.
func LiveFrom(inputs pvt.Snapshot, out pvt.Output) Live {
	l := Live{Inputs: inputs, Extras: make(map[string]pvt.Value)}
	l.Result = pvt.Some(out.Result)
	for k, v := range out.Extras {
		l.Extras[k] = pvt.Some(v)
	}
	return l
}

type Options struct {
	// MaxPolygons caps the sampled radar polygons.
	MaxPolygons int
	// Margin expands the radar range on both sides, as a fraction of the span.
	Margin float64
}

func DefaultOptions() Options {
	return Options{MaxPolygons: 10, Margin: 0.1}
}

// Project builds the description of kind from res.
func Project(kind Kind, res *analysis.Result, live Live, opts Options) (*Description, error) {
	if res == nil || len(res.Points) == 0 {
		return nil, fmt.Errorf("empty sweep result")
	}
	if opts.MaxPolygons <= 0 {
		opts.MaxPolygons = DefaultOptions().MaxPolygons
	}
	if opts.Margin < 0 {
		opts.Margin = DefaultOptions().Margin
	}

	d := &Description{
		Kind:   kind,
		Title:  res.Correlation,
		XLabel: res.Param,
		YLabel: res.Unit,
	}

	switch kind {
	case Line, Scatter:
		d.Series = cartesian(res)
	case Bar:
		d.Series = cartesian(res)
		d.Categories = gridLabels(res)
	case Polar:
		projectPolar(d, res)
	case Radar:
		projectRadar(d, res, live, opts)
	default:
		return nil, fmt.Errorf("unknown chart kind: %s", kind)
	}
	return d, nil
}

func cartesian(res *analysis.Result) []Series {
	keys := res.SeriesKeys()
	out := make([]Series, 0, len(keys))
	for _, k := range keys {
		col := res.Column(k)
		s := Series{Name: k, Points: make([]Pair, len(col))}
		for i, v := range col {
			s.Points[i] = Pair{X: res.Points[i].X, Y: v.V, Absent: !v.OK}
		}
		out = append(out, s)
	}
	return out
}

func gridLabels(res *analysis.Result) []string {
	labels := make([]string, len(res.Points))
	for i, p := range res.Points {
		labels[i] = formatTick(p.X)
	}
	return labels
}

// projectPolar places grid point i at angle 360*i/n and shifts every radius
// by s = max(0, -min) over all series.
func projectPolar(d *Description, res *analysis.Result) {
	d.Series = cartesian(res)
	d.Categories = gridLabels(res)

	vals := present(d.Series)
	n := float64(len(res.Points))
	if len(vals) > 0 {
		d.Shift = math.Max(0, -floats.Min(vals))
		d.RadialMax = floats.Max(vals) + d.Shift
	}
	d.RadialMin = 0

	for si := range d.Series {
		for i := range d.Series[si].Points {
			p := &d.Series[si].Points[i]
			p.X = 360 * float64(i) / n
			if !p.Absent {
				p.Y += d.Shift
			}
		}
	}
}

// projectRadar draws axes inputs+extras+Result for every sampled grid point
// and the live point, on one shared radial scale.
func projectRadar(d *Description, res *analysis.Result, live Live, opts Options) {
	axes := append(append([]string{}, res.Inputs...), res.Extras...)
	axes = append(axes, analysis.ResultKey)
	d.Categories = axes

	step := int(math.Ceil(float64(len(res.Points)) / float64(opts.MaxPolygons)))
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(res.Points); i += step {
		p := res.Points[i]
		s := Series{Name: fmt.Sprintf("%s=%.3f", res.Param, p.X)}
		for ai, a := range axes {
			v := pointValue(p, res.Extras, a)
			s.Points = append(s.Points, Pair{X: float64(ai), Y: v.V, Absent: !v.OK})
		}
		d.Series = append(d.Series, s)
	}

	cur := Series{Name: "Current", Live: true}
	for ai, a := range axes {
		var v pvt.Value
		switch {
		case a == analysis.ResultKey:
			v = live.Result
		case slices.Contains(res.Extras, a):
			v = live.Extras[a]
		default:
			if x, ok := live.Inputs[a]; ok {
				v = pvt.Some(x)
			}
		}
		cur.Points = append(cur.Points, Pair{X: float64(ai), Y: v.V, Absent: !v.OK})
	}
	d.Series = append(d.Series, cur)

	d.RadialMin, d.RadialMax = radialRange(present(d.Series), opts.Margin)
}

func pointValue(p analysis.Point, extras []string, axis string) pvt.Value {
	switch {
	case axis == analysis.ResultKey:
		return p.Result
	case slices.Contains(extras, axis):
		return p.Extras[axis]
	}
	if v, ok := p.Inputs[axis]; ok {
		return pvt.Some(v)
	}
	return pvt.Absent
}

// radialRange expands [min, max] by margin of the span (or by margin itself
// when the span is zero); the lower bound is 0 when no value is negative.
func radialRange(vals []float64, margin float64) (lo, hi float64) {
	if len(vals) == 0 {
		return 0, 1
	}
	vmin, vmax := floats.Min(vals), floats.Max(vals)
	buf := (vmax - vmin) * margin
	if buf == 0 {
		buf = margin
	}
	lo, hi = vmin-buf, vmax+buf
	if vmin >= 0 {
		lo = 0
	}
	return lo, hi
}

func present(series []Series) []float64 {
	var vals []float64
	for _, s := range series {
		for _, p := range s.Points {
			if !p.Absent {
				vals = append(vals, p.Y)
			}
		}
	}
	return vals
}

func formatTick(v float64) string {
	switch a := math.Abs(v); {
	case a != 0 && (a < 1e-3 || a >= 1e6):
		return fmt.Sprintf("%.3g", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
