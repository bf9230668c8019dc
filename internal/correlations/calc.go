package correlations

import (
	"math"

	"github.com/san-kum/pvtlab/internal/pvt"
)

// maxExponent bounds arguments to math.Exp before evaluation.
const maxExponent = 700.0

// base carries the declaration shared by every correlation.
type base struct {
	id     string
	name   string
	unit   string
	params []pvt.ParameterSpec
	extras []string
}

func (b *base) ID() string   { return b.id }
func (b *base) Name() string { return b.name }
func (b *base) Unit() string { return b.unit }

func (b *base) Params() []pvt.ParameterSpec {
	out := make([]pvt.ParameterSpec, len(b.params))
	copy(out, b.params)
	return out
}

func (b *base) Extras() []string {
	out := make([]string, len(b.extras))
	copy(out, b.extras)
	return out
}

// read pulls the named inputs from s in order.
func (b *base) read(s pvt.Snapshot, names ...string) ([]float64, error) {
	vals := make([]float64, len(names))
	for i, n := range names {
		v, err := s.Lookup(b.id, n)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// calc evaluates guarded math and keeps the first failure.
type calc struct {
	id  string
	err error
}

func (c *calc) fail(err error, name string, v float64) float64 {
	if c.err == nil {
		c.err = pvt.Fail(c.id, err, name, v)
	}
	return math.NaN()
}

func (c *calc) div(name string, num, den float64) float64 {
	if den == 0 {
		return c.fail(pvt.ErrDivisionByZero, name, den)
	}
	return num / den
}

func (c *calc) exp(name string, x float64) float64 {
	if math.Abs(x) > maxExponent {
		return c.fail(pvt.ErrOverflow, name, x)
	}
	return math.Exp(x)
}

func (c *calc) log(name string, x float64) float64 {
	if !(x > 0) {
		return c.fail(pvt.ErrMathUndefined, name, x)
	}
	return math.Log(x)
}

func (c *calc) pow(name string, x, y float64) float64 {
	switch {
	case x == 0 && y < 0:
		return c.fail(pvt.ErrDivisionByZero, name, x)
	case x < 0 && y != math.Trunc(y):
		return c.fail(pvt.ErrMathUndefined, name, x)
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) {
		return c.fail(pvt.ErrOverflow, name, x)
	}
	return r
}

// within reports a DomainInvalid failure when v is outside [lo, hi].
func (c *calc) within(name string, v, lo, hi float64) {
	if c.err != nil {
		return
	}
	if math.IsNaN(v) || v < lo || v > hi {
		c.fail(pvt.ErrDomainInvalid, name, v)
	}
}

// finish checks the result and builds the output record.
func (c *calc) finish(unit string, result float64, extras map[string]float64) (pvt.Output, error) {
	if c.err != nil {
		return pvt.Output{}, c.err
	}
	if err := pvt.Finite(c.id, "result", result); err != nil {
		return pvt.Output{}, err
	}
	for k, v := range extras {
		if err := pvt.Finite(c.id, k, v); err != nil {
			return pvt.Output{}, err
		}
	}
	return pvt.Output{Result: result, Unit: unit, Extras: extras}, nil
}

// vbCoefficients returns the Vasquez-Beggs C1..C3 for solution gas.
func vbCoefficients(api float64) (c1, c2, c3 float64) {
	if api <= 30 {
		return 0.0362, 1.0937, 25.72
	}
	return 0.0178, 1.187, 23.931
}

func param(name string, min, max, step, def float64, unit string) pvt.ParameterSpec {
	return pvt.ParameterSpec{Name: name, Min: min, Max: max, Step: step, Default: def, Unit: unit}
}

const (
	unitDensity = "lbm/ft³"
	unitPsia    = "psia"
	unitGOR     = "scf/STB"
	unitFVF     = "bbl/STB"
	unitTemp    = "°F"
	unitAPI     = "API"
	unitCompr   = "1/psi"
	unitVisc    = "cP"
)
