// Package metrics summarizes a sweep: how much of the grid evaluated, how
// far the result moves and how steeply it responds to the swept input.
package metrics

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/pvtlab/internal/analysis"
)

// Metric accumulates one figure over the points of a sweep.
type Metric interface {
	Name() string
	Observe(p analysis.Point)
	Value() float64
	Reset()
}

// Reading is a named metric value.
type Reading struct {
	Name  string
	Value float64
}

func (r Reading) String() string {
	if math.IsNaN(r.Value) {
		return "-"
	}
	return strconv.FormatFloat(r.Value, 'g', 5, 64)
}

// Default returns the metrics shown with every sweep.
func Default() []Metric {
	return []Metric{NewCoverage(), NewSpread(), NewSensitivity(), NewDeviation()}
}

// Summarize resets each metric, feeds it every point of res in grid order
// and returns the readings in the order given.
func Summarize(res *analysis.Result, ms ...Metric) []Reading {
	if len(ms) == 0 {
		ms = Default()
	}
	out := make([]Reading, 0, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, p := range res.Points {
			m.Observe(p)
		}
		out = append(out, Reading{Name: m.Name(), Value: m.Value()})
	}
	return out
}

// Coverage is the fraction of grid points with a present result.
type Coverage struct {
	present int
	samples int
}

func NewCoverage() *Coverage { return &Coverage{} }

func (c *Coverage) Name() string { return "coverage" }

func (c *Coverage) Observe(p analysis.Point) {
	c.samples++
	if p.Result.OK {
		c.present++
	}
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.present) / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.present = 0
	c.samples = 0
}

// Spread is max minus min of the present results. NaN when none.
type Spread struct {
	values []float64
}

func NewSpread() *Spread { return &Spread{} }

func (s *Spread) Name() string { return "spread" }

func (s *Spread) Observe(p analysis.Point) {
	if p.Result.OK {
		s.values = append(s.values, p.Result.V)
	}
}

func (s *Spread) Value() float64 {
	if len(s.values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.values) - floats.Min(s.values)
}

func (s *Spread) Reset() { s.values = s.values[:0] }

// Sensitivity is the mean absolute slope dResult/dX between consecutive
// present points. A gap breaks the chain.
type Sensitivity struct {
	sum      float64
	segments int
	prev     analysis.Point
	havePrev bool
}

func NewSensitivity() *Sensitivity { return &Sensitivity{} }

func (s *Sensitivity) Name() string { return "sensitivity" }

func (s *Sensitivity) Observe(p analysis.Point) {
	if !p.Result.OK {
		s.havePrev = false
		return
	}
	if s.havePrev && p.X != s.prev.X {
		s.sum += math.Abs((p.Result.V - s.prev.Result.V) / (p.X - s.prev.X))
		s.segments++
	}
	s.prev = p
	s.havePrev = true
}

func (s *Sensitivity) Value() float64 {
	if s.segments == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.segments)
}

func (s *Sensitivity) Reset() {
	s.sum = 0
	s.segments = 0
	s.havePrev = false
}

// Deviation is the sample standard deviation of the present results.
type Deviation struct {
	values []float64
}

func NewDeviation() *Deviation { return &Deviation{} }

func (d *Deviation) Name() string { return "stddev" }

func (d *Deviation) Observe(p analysis.Point) {
	if p.Result.OK {
		d.values = append(d.values, p.Result.V)
	}
}

func (d *Deviation) Value() float64 {
	if len(d.values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(d.values, nil)
}

func (d *Deviation) Reset() { d.values = d.values[:0] }
