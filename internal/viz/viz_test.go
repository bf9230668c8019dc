package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/chart"
	"github.com/san-kum/pvtlab/internal/correlations"
	"github.com/san-kum/pvtlab/internal/pvt"
)

func TestCanvasSetAndLine(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.Dots(); w != 8 || h != 8 {
		t.Fatalf("dots = %dx%d, want 8x8", w, h)
	}

	c.Set(0, 0)
	if got := c.Rows()[0][0:3]; got != string(rune(brailleBase|0x01)) {
		t.Errorf("first cell = %q", got)
	}

	c.Set(-1, 3)
	c.Set(100, 100)

	c.Clear()
	c.Line(0, 0, 7, 7)
	for _, row := range c.Rows() {
		if strings.Trim(row, string(rune(brailleBase))) == "" {
			t.Errorf("diagonal missed row %q", row)
		}
	}
}

func TestPlottableDropsAllAbsentSeries(t *testing.T) {
	series := []chart.Series{
		{Name: "ok", Points: []chart.Pair{{Y: 1}, {Absent: true}, {Y: 3}}},
		{Name: "dead", Points: []chart.Pair{{Absent: true}, {Absent: true}}},
	}
	names, data := Plottable(series)
	if len(names) != 1 || names[0] != "ok" {
		t.Fatalf("names = %v", names)
	}
	if !math.IsNaN(data[0][1]) {
		t.Errorf("gap should be NaN, got %v", data[0][1])
	}
}

func densityResult(t *testing.T) *analysis.Result {
	t.Helper()
	c := correlations.NewOilDensityBasic()
	res, err := analysis.Run(c, pvt.Defaults(c), "Rs", 20)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestRenderEveryKind(t *testing.T) {
	res := densityResult(t)
	live := chart.LiveFrom(pvt.Defaults(correlations.NewOilDensityBasic()), pvt.Output{Result: 50})

	for _, kind := range chart.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			d, err := chart.Project(kind, res, live, chart.DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}
			out := Render(d, 60, 12)
			if !strings.Contains(out, "oil-density-basic") {
				t.Errorf("missing title in %q", out)
			}
			if strings.Contains(out, "no valid points") {
				t.Errorf("unexpected empty chart")
			}
		})
	}
}

func TestRenderAllAbsent(t *testing.T) {
	c := correlations.NewLasaterPb()
	res, err := analysis.Run(c, pvt.Defaults(c).With("Rsb", 3), "Tr", 10)
	if err != nil {
		t.Fatal(err)
	}

	for _, kind := range []chart.Kind{chart.Line, chart.Scatter, chart.Bar, chart.Polar} {
		d, err := chart.Project(kind, res, chart.Live{}, chart.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if out := Render(d, 60, 10); !strings.Contains(out, "no valid points") {
			t.Errorf("%s: expected empty-chart notice, got %q", kind, out)
		}
	}
}

func TestSparkline(t *testing.T) {
	s := Sparkline([]float64{0, 1, math.NaN(), 3}, 4)
	if got := []rune(s); len(got) != 4 || got[0] != '▁' || got[2] != ' ' || got[3] != '█' {
		t.Errorf("sparkline = %q", s)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("empty sparkline = %q", got)
	}
}

func TestBoxAndSeparator(t *testing.T) {
	box := Box("oil-density-basic", "Result 50", 40)
	if !strings.Contains(box, "oil-density-basic") || !strings.Contains(box, "Result 50") {
		t.Errorf("box lost its content: %q", box)
	}
	if got := strings.Count(Separator(5), "─"); got != 5 {
		t.Errorf("separator width = %d", got)
	}
	if Separator(-1) != Separator(0) {
		t.Error("negative width should render empty")
	}
}

func TestSweepTable(t *testing.T) {
	res := densityResult(t)
	out := SweepTable(res)
	if !strings.Contains(out, "Rs") || !strings.Contains(out, "Result") {
		t.Errorf("missing headers in table")
	}
	if !strings.Contains(out, "20 points, 0 absent") {
		t.Errorf("missing summary in %q", out)
	}
	if !strings.Contains(out, "coverage") || !strings.Contains(out, "sensitivity") {
		t.Errorf("missing metrics in %q", out)
	}
}

func TestReadoutShowsError(t *testing.T) {
	c := correlations.NewOilDensityPressure()
	in := pvt.Defaults(c)
	out, err := c.Evaluate(in.With("P", 100).With("Pb", 2000))
	if err == nil {
		t.Fatal("expected domain error")
	}
	if got := Readout(c, in, out, err); !strings.Contains(got, string(pvt.KindDomainInvalid)) {
		t.Errorf("readout should name the error kind: %q", got)
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme(ThemeDefault.Name)
	SetTheme("retro")
	if CurrentTheme.Name != "retro" {
		t.Errorf("theme = %s", CurrentTheme.Name)
	}
	SetTheme("nope")
	if CurrentTheme.Name != ThemeDefault.Name {
		t.Errorf("unknown theme should fall back to default")
	}
}
