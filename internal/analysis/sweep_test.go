package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/pvtlab/internal/correlations"
	"github.com/san-kum/pvtlab/internal/mixture"
	"github.com/san-kum/pvtlab/internal/pvt"
)

func TestSweepOilDensityRs(t *testing.T) {
	c := correlations.NewOilDensityBasic()
	fixed := pvt.Snapshot{"Yo": 0.85, "Yg": 0.7, "Bo": 1.2}

	res, err := Run(c, fixed, "Rs", DefaultPoints)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Points) != DefaultPoints {
		t.Fatalf("expected %d points, got %d", DefaultPoints, len(res.Points))
	}
	if res.AbsentCount() != 0 {
		t.Errorf("expected no absent points, got %d", res.AbsentCount())
	}

	first, last := res.Points[0].Result.V, res.Points[len(res.Points)-1].Result.V
	if math.Abs(first-44.1526) > 1e-3 {
		t.Errorf("first = %v, want ~44.1526", first)
	}
	if math.Abs(last-67.9638) > 1e-3 {
		t.Errorf("last = %v, want ~67.9638", last)
	}
	for i := 1; i < len(res.Points); i++ {
		if !(res.Points[i].Result.V > res.Points[i-1].Result.V) {
			t.Fatalf("result not strictly increasing at %d", i)
		}
		if !(res.Points[i].X > res.Points[i-1].X) {
			t.Fatalf("x not strictly increasing at %d", i)
		}
	}
}

func TestSweepFullyValidHasNoAbsent(t *testing.T) {
	cat := correlations.NewCatalog()
	cases := []struct {
		id    string
		param string
	}{
		{"oil-density-basic", "Yo"},
		{"oil-gravity-api", "Yapi"},
		{"standing-pb", "Tr"},
		{"vasquez-beggs-rs", "p"},
		{"standing-bo", "Rs"},
		{"beggs-robinson-mu", "Rsb"},
		{"mixture-density", "C"},
	}

	for _, tc := range cases {
		c, err := cat.Get(tc.id)
		if err != nil {
			t.Fatal(err)
		}
		res, err := Run(c, pvt.Defaults(c), tc.param, DefaultPoints)
		if err != nil {
			t.Fatalf("%s: %v", tc.id, err)
		}
		if len(res.Points) != DefaultPoints || res.AbsentCount() != 0 {
			t.Errorf("%s over %s: %d points, %d absent", tc.id, tc.param, len(res.Points), res.AbsentCount())
		}
	}
}

func TestSweepLasaterAllAbsent(t *testing.T) {
	c := correlations.NewLasaterPb()
	fixed := pvt.Defaults(c).With("Rsb", 3)

	res, err := Run(c, fixed, "Tr", DefaultPoints)
	if err != nil {
		t.Fatalf("sweep must not fail: %v", err)
	}
	if len(res.Points) != DefaultPoints {
		t.Fatalf("point count not preserved: %d", len(res.Points))
	}
	for i, p := range res.Points {
		if p.Result.OK {
			t.Errorf("point %d: expected absent, got %v", i, p.Result)
		}
		if p.Reason != pvt.KindDomainInvalid {
			t.Errorf("point %d: reason %q", i, p.Reason)
		}
		for _, k := range res.Extras {
			if p.Extras[k].OK {
				t.Errorf("point %d: extra %s should be absent", i, k)
			}
		}
	}
}

func TestSweepVasquezBeggsNonPositivePs(t *testing.T) {
	c := correlations.NewVasquezBeggsPb()
	for _, ps := range []float64{0, -14.7} {
		fixed := pvt.Defaults(c).With("Ps", ps)

		res, err := Run(c, fixed, "Rsb", DefaultPoints)
		if err != nil {
			t.Fatalf("Ps=%v: %v", ps, err)
		}
		if res.AbsentCount() != DefaultPoints {
			t.Errorf("Ps=%v: expected all %d absent, got %d", ps, DefaultPoints, res.AbsentCount())
		}
		if res.Points[0].Reason != pvt.KindMathUndefined {
			t.Errorf("Ps=%v: reason %q", ps, res.Points[0].Reason)
		}
	}
}

func TestSweepPartialFailureKeepsOrder(t *testing.T) {
	c := correlations.NewOilDensityPressure()
	fixed := pvt.Defaults(c)

	res, err := Run(c, fixed, "P", DefaultPoints)
	if err != nil {
		t.Fatal(err)
	}

	sawAbsent, sawValue := false, false
	for _, p := range res.Points {
		below := p.X < fixed["Pb"]
		if below && p.Result.OK {
			t.Errorf("P=%v below Pb should be absent", p.X)
		}
		if !below && !p.Result.OK {
			t.Errorf("P=%v above Pb should be computed", p.X)
		}
		sawAbsent = sawAbsent || !p.Result.OK
		sawValue = sawValue || p.Result.OK
	}
	if !sawAbsent || !sawValue {
		t.Error("expected a mix of absent and computed points")
	}
}

func TestSweepExtrasAbsentNotZero(t *testing.T) {
	c := correlations.NewLasaterPb()
	res, err := Run(c, pvt.Defaults(c), "Rsb", DefaultPoints)
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range res.Points {
		mo := p.Extras["Mo"]
		if p.Result.OK && !mo.OK {
			t.Errorf("Rsb=%v: Mo missing on a computed point", p.X)
		}
		if !p.Result.OK && (mo.OK || mo.V != 0) {
			t.Errorf("Rsb=%v: Mo should be the absent sentinel, got %+v", p.X, mo)
		}
	}
}

func TestSweepRequestedExtraNeverProduced(t *testing.T) {
	c := correlations.NewOilGravityAPI()
	res, err := Run(c, pvt.Defaults(c), "Yapi", 5, "Mo")
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range res.Column("Mo") {
		if v.OK {
			t.Fatalf("unexpected value %v", v)
		}
	}
}

func TestSweepContractErrors(t *testing.T) {
	c := correlations.NewOilDensityBasic()
	grid, _ := BuildGrid(0, 3000, 10)

	_, err := Sweep(c, pvt.Defaults(c), "Pb", grid)
	if !errors.Is(err, pvt.ErrUnknownParameter) {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}

	fixed := pvt.Defaults(c)
	delete(fixed, "Bo")
	_, err = Sweep(c, fixed, "Rs", grid)
	if !errors.Is(err, pvt.ErrMissingParameter) {
		t.Errorf("expected ErrMissingParameter, got %v", err)
	}

	_, err = Sweep(c, pvt.Defaults(c), "Rs", []float64{1})
	if !errors.Is(err, pvt.ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}
}

func TestSweepDoesNotNeedSweptValue(t *testing.T) {
	c := correlations.NewOilDensityBasic()
	fixed := pvt.Defaults(c)
	delete(fixed, "Rs")

	if _, err := Run(c, fixed, "Rs", 10); err != nil {
		t.Errorf("the swept parameter must not be required in fixed values: %v", err)
	}
}

func TestSweepIdempotent(t *testing.T) {
	cat := correlations.NewCatalog()
	for _, c := range cat.List() {
		param := c.Params()[0].Name
		a, err := Run(c, pvt.Defaults(c), param, DefaultPoints)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Run(c, pvt.Defaults(c), param, DefaultPoints)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%s: sweep not deterministic (-first +second):\n%s", c.ID(), diff)
		}
	}
}

func TestSweepMixtureOverCount(t *testing.T) {
	d := mixture.NewDensity()
	fixed := pvt.Defaults(d)
	fixed[mixture.MassKey(1)] = 100
	fixed[mixture.DensityKey(1)] = 20

	res, err := Run(d, fixed, mixture.CountParam, DefaultPoints)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Points[0].Result.V; math.Abs(got-20) > 1e-9 {
		t.Errorf("C=1 should give the first component density, got %v", got)
	}
	last := res.Points[len(res.Points)-1]
	if !last.Result.OK || last.Extras["total_mass"].V != 140 {
		t.Errorf("C=5: unexpected point %+v", last)
	}
}

func TestSweepMixtureExpansion(t *testing.T) {
	d := mixture.NewDensity()
	ex, err := mixture.Expand(3, func(i int) (mixture.Component, bool) {
		return mixture.Component{Mass: float64(10 * i), Density: 50}, true
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := Run(d, ex.Params, mixture.MassKey(1), DefaultPoints)
	if err != nil {
		t.Fatalf("expanded components must sweep as they are: %v", err)
	}
	want := []string{"C", "mass_1", "dens_1", "mass_2", "dens_2", "mass_3", "dens_3"}
	if diff := cmp.Diff(want, res.Inputs); diff != "" {
		t.Errorf("inputs (-want +got):\n%s", diff)
	}
	if res.AbsentCount() != 0 {
		t.Errorf("expected no absent points, got %d", res.AbsentCount())
	}
	for _, p := range res.Points {
		if math.Abs(p.Result.V-50) > 1e-9 {
			t.Fatalf("equal densities must give 50 at mass_1=%v, got %v", p.X, p.Result)
		}
	}

	_, err = Run(d, ex.Params, mixture.MassKey(4), DefaultPoints)
	if !errors.Is(err, pvt.ErrUnknownParameter) {
		t.Errorf("inactive component: expected ErrUnknownParameter, got %v", err)
	}

	// counts beyond the expansion have no values to read
	res, err = Run(d, ex.Params, mixture.CountParam, DefaultPoints)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Points[0].Result.OK {
		t.Errorf("C=1 should evaluate, got %v", res.Points[0].Reason)
	}
	if last := res.Points[len(res.Points)-1]; last.Reason != pvt.KindMissingParameter {
		t.Errorf("C=5: expected MissingParameter, got %q", last.Reason)
	}
}

type panicky struct{ correlations.OilGravityAPI }

func (p *panicky) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	if s["Yapi"] > 50 {
		panic("index out of range")
	}
	return p.OilGravityAPI.Evaluate(s)
}

func TestSweepRecoversPanics(t *testing.T) {
	c := &panicky{*correlations.NewOilGravityAPI()}
	res, err := Run(c, pvt.Defaults(c), "Yapi", DefaultPoints)
	if err != nil {
		t.Fatal(err)
	}
	if res.AbsentCount() == 0 || res.AbsentCount() == DefaultPoints {
		t.Errorf("expected partial failure, got %d absent", res.AbsentCount())
	}
}

func TestEvaluateLive(t *testing.T) {
	c := correlations.NewVasquezBeggsPb()
	if _, err := Evaluate(c, pvt.Defaults(c).With("Ps", 0)); !errors.Is(err, pvt.ErrMathUndefined) {
		t.Errorf("expected ErrMathUndefined, got %v", err)
	}
	if _, err := Evaluate(c, pvt.Snapshot{}); !errors.Is(err, pvt.ErrMissingParameter) {
		t.Errorf("expected ErrMissingParameter, got %v", err)
	}
}

func TestColumn(t *testing.T) {
	c := correlations.NewStandingBo()
	res, err := Run(c, pvt.Defaults(c), "T", 5)
	if err != nil {
		t.Fatal(err)
	}

	if got := res.SeriesKeys(); !cmp.Equal(got, []string{ResultKey, "F"}) {
		t.Errorf("SeriesKeys = %v", got)
	}
	ts := res.Column("T")
	for i, v := range ts {
		if !v.OK || v.V != res.Points[i].X {
			t.Errorf("input column mismatch at %d: %v", i, v)
		}
	}
	if yg := res.Column("Yg"); yg[0].V != 0.7 {
		t.Errorf("fixed input column = %v", yg[0])
	}
}
