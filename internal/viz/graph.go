package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pvtlab/internal/chart"
)

// Render draws d for the terminal within roughly width x height cells.
// Line charts use asciigraph; scatter, polar and radar are drawn on a
// Braille canvas; bars are horizontal blocks.
func Render(d *chart.Description, width, height int) string {
	if width < 20 {
		width = 20
	}
	if height < 5 {
		height = 5
	}

	var body string
	switch d.Kind {
	case chart.Line:
		body = renderLine(d, width, height)
	case chart.Scatter:
		body = renderScatter(d, width, height)
	case chart.Bar:
		body = renderBars(d, width, height)
	case chart.Polar:
		body = renderPolar(d, height)
	case chart.Radar:
		body = renderRadar(d, height)
	default:
		return ErrorText.Render(fmt.Sprintf("unsupported chart kind %s", d.Kind))
	}

	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("%s vs %s (%s)", d.Title, d.XLabel, d.Kind)))
	b.WriteByte('\n')
	b.WriteString(body)
	if legend := Legend(d); legend != "" {
		b.WriteByte('\n')
		b.WriteString(legend)
	}
	return b.String()
}

// Plottable returns the series with at least one present point, as
// NaN-gapped slices. asciigraph cannot scale an all-NaN series.
func Plottable(series []chart.Series) (names []string, data [][]float64) {
	for _, s := range series {
		vals := make([]float64, len(s.Points))
		found := false
		for i, p := range s.Points {
			if p.Absent {
				vals[i] = math.NaN()
				continue
			}
			vals[i] = p.Y
			found = true
		}
		if found {
			names = append(names, s.Name)
			data = append(data, vals)
		}
	}
	return names, data
}

func noData() string {
	return AbsentText.Render("no valid points in sweep")
}

func renderLine(d *chart.Description, width, height int) string {
	names, data := Plottable(d.Series)
	if len(data) == 0 {
		return noData()
	}
	colors := make([]asciigraph.AnsiColor, len(data))
	for i := range colors {
		colors[i] = CurrentTheme.seriesColor(i)
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
		asciigraph.Caption(fmt.Sprintf("%s over %s grid", d.YLabel, d.XLabel)),
	)
}

func renderScatter(d *chart.Description, width, height int) string {
	lo, hi, ok := seriesRange(d.Series)
	if !ok {
		return noData()
	}
	xlo, xhi := xRange(d.Series)
	c := NewCanvas(width, height)
	w, h := c.Dots()
	for _, s := range d.Series {
		for _, p := range s.Points {
			if p.Absent {
				continue
			}
			x := scale(p.X, xlo, xhi, float64(w-1))
			y := float64(h-1) - scale(p.Y, lo, hi, float64(h-1))
			c.Set(int(math.Round(x)), int(math.Round(y)))
		}
	}
	return fmt.Sprintf("%s\n%s\n%s",
		Subtle.Render(fmt.Sprintf("y: %.4g .. %.4g", lo, hi)),
		c.String(),
		Subtle.Render(fmt.Sprintf("x: %.4g .. %.4g", xlo, xhi)))
}

// renderBars draws the first series as one row per grid category, sampled
// down to height rows.
func renderBars(d *chart.Description, width, height int) string {
	if len(d.Series) == 0 {
		return noData()
	}
	s := d.Series[0]
	lo, hi, ok := seriesRange(d.Series[:1])
	if !ok {
		return noData()
	}
	lo = math.Min(lo, 0)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := (len(s.Points) + height - 1) / height
	if step < 1 {
		step = 1
	}
	labelW := 10
	barW := max(width-labelW-14, 5)

	var b strings.Builder
	for i := 0; i < len(s.Points); i += step {
		p := s.Points[i]
		label := fmt.Sprintf("%*s ", labelW, category(d, i))
		if p.Absent {
			b.WriteString(label + AbsentText.Render("-") + "\n")
			continue
		}
		b.WriteString(label + Value.Render(Bar((p.Y-lo)/span, barW)) + fmt.Sprintf(" %.4g\n", p.Y))
	}
	return strings.TrimRight(b.String(), "\n")
}

func category(d *chart.Description, i int) string {
	if i < len(d.Categories) {
		return d.Categories[i]
	}
	return fmt.Sprint(i)
}

// polarCanvas returns a square-ish canvas and its center and radius in dots.
func polarCanvas(height int) (*Canvas, int, int, float64) {
	c := NewCanvas(height*2, height)
	w, h := c.Dots()
	r := float64(min(w, h))/2 - 1
	return c, w / 2, h / 2, r
}

// plotPolar converts (angle in radians clockwise from north, fraction of
// radius) to dots.
func plotPolar(cx, cy int, r, angle, frac float64) (int, int) {
	x := float64(cx) + frac*r*math.Sin(angle)
	y := float64(cy) - frac*r*math.Cos(angle)
	return int(math.Round(x)), int(math.Round(y))
}

func radial(d *chart.Description, v float64) float64 {
	span := d.RadialMax - d.RadialMin
	if span <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, (v-d.RadialMin)/span))
}

func renderPolar(d *chart.Description, height int) string {
	if _, _, ok := seriesRange(d.Series); !ok {
		return noData()
	}
	c, cx, cy, r := polarCanvas(height)
	c.Circle(cx, cy, int(r))

	for _, s := range d.Series {
		var px, py int
		pen := false
		for _, p := range s.Points {
			if p.Absent {
				pen = false
				continue
			}
			x, y := plotPolar(cx, cy, r, p.X*math.Pi/180, radial(d, p.Y))
			if pen {
				c.Line(px, py, x, y)
			} else {
				c.Set(x, y)
			}
			px, py, pen = x, y, true
		}
	}

	caption := fmt.Sprintf("r: %.4g .. %.4g", d.Unshift(d.RadialMin), d.Unshift(d.RadialMax))
	if d.Shift != 0 {
		caption += fmt.Sprintf(" (shifted by %.4g)", d.Shift)
	}
	return c.String() + "\n" + Subtle.Render(caption)
}

func renderRadar(d *chart.Description, height int) string {
	n := len(d.Categories)
	if n == 0 {
		return noData()
	}
	c, cx, cy, r := polarCanvas(height)
	angle := func(i float64) float64 { return 2 * math.Pi * i / float64(n) }

	for i := 0; i < n; i++ {
		x, y := plotPolar(cx, cy, r, angle(float64(i)), 1)
		c.Line(cx, cy, x, y)
	}

	live := ""
	for _, s := range d.Series {
		var pts [][2]int
		for _, p := range s.Points {
			if p.Absent {
				continue
			}
			x, y := plotPolar(cx, cy, r, angle(p.X), radial(d, p.Y))
			pts = append(pts, [2]int{x, y})
		}
		for i := range pts {
			j := (i + 1) % len(pts)
			c.Line(pts[i][0], pts[i][1], pts[j][0], pts[j][1])
		}
		if s.Live {
			live = liveSummary(d, s)
		}
	}

	axes := make([]string, n)
	for i, a := range d.Categories {
		axes[i] = fmt.Sprintf("%d:%s", i+1, a)
	}
	out := c.String() + "\n" + Subtle.Render("axes (clockwise) "+strings.Join(axes, " "))
	out += "\n" + Subtle.Render(fmt.Sprintf("range %.4g .. %.4g", d.RadialMin, d.RadialMax))
	if live != "" {
		out += "\n" + live
	}
	return out
}

func liveSummary(d *chart.Description, s chart.Series) string {
	parts := make([]string, 0, len(s.Points))
	for i, p := range s.Points {
		v := "-"
		if !p.Absent {
			v = fmt.Sprintf("%.4g", p.Y)
		}
		parts = append(parts, fmt.Sprintf("%s=%s", category(d, i), v))
	}
	return LiveText.Render(s.Name+": ") + strings.Join(parts, " ")
}

// Legend lists the series names. Line charts carry their own asciigraph
// legend and bars show a single series.
func Legend(d *chart.Description) string {
	switch d.Kind {
	case chart.Line, chart.Bar:
		return ""
	}
	if len(d.Series) <= 1 {
		return ""
	}
	names := make([]string, 0, len(d.Series))
	for _, s := range d.Series {
		if s.Live {
			names = append(names, LiveText.Render(s.Name))
			continue
		}
		names = append(names, Subtle.Render(s.Name))
	}
	return strings.Join(names, " ")
}

func seriesRange(series []chart.Series) (lo, hi float64, ok bool) {
	var vals []float64
	for _, s := range series {
		for _, p := range s.Points {
			if !p.Absent {
				vals = append(vals, p.Y)
			}
		}
	}
	return finiteRange(vals)
}

func xRange(series []chart.Series) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			lo, hi = math.Min(lo, p.X), math.Max(hi, p.X)
		}
	}
	return lo, hi
}

// finiteRange returns min and max of the non-NaN values.
func finiteRange(vals []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		lo, hi, ok = math.Min(lo, v), math.Max(hi, v), true
	}
	return lo, hi, ok
}

func scale(v, lo, hi, size float64) float64 {
	if hi == lo {
		return size / 2
	}
	return (v - lo) / (hi - lo) * size
}
