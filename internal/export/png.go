package export

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/pvtlab/internal/chart"
)

// WritePNG renders the cartesian kinds (line, scatter, bar) with gonum/plot.
// Polar and radar have no PNG rendering; use HTML or SVG for those.
func WritePNG(w io.Writer, d *chart.Description, width, height int) error {
	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = d.XLabel
	p.Y.Label.Text = d.YLabel
	p.Add(plotter.NewGrid())

	var err error
	switch d.Kind {
	case chart.Line:
		err = addLines(p, d.Series)
	case chart.Scatter:
		err = addScatter(p, d.Series)
	case chart.Bar:
		err = addBars(p, d)
	default:
		return fmt.Errorf("png: unsupported chart kind %s", d.Kind)
	}
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}

	wt, err := p.WriterTo(vg.Points(float64(width)), vg.Points(float64(height)), "png")
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// segments splits a series into runs of present points; gonum rejects NaN.
func segments(points []chart.Pair) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for _, pt := range points {
		if pt.Absent {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: pt.X, Y: pt.Y})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func addLines(p *plot.Plot, series []chart.Series) error {
	for i, s := range series {
		for j, seg := range segments(s.Points) {
			l, sc, err := plotter.NewLinePoints(seg)
			if err != nil {
				return err
			}
			l.Color = plotutil.Color(i)
			sc.Color = plotutil.Color(i)
			sc.Radius = vg.Points(1.5)
			p.Add(l, sc)
			if j == 0 {
				p.Legend.Add(s.Name, l)
			}
		}
	}
	return nil
}

func addScatter(p *plot.Plot, series []chart.Series) error {
	for i, s := range series {
		var pts plotter.XYs
		for _, seg := range segments(s.Points) {
			pts = append(pts, seg...)
		}
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	}
	return nil
}

// addBars draws grouped bars; absent points become zero-height bars.
func addBars(p *plot.Plot, d *chart.Description) error {
	n := len(d.Series)
	if n == 0 {
		return nil
	}
	bw := vg.Points(40 / float64(n))
	for i, s := range d.Series {
		vals := make(plotter.Values, len(s.Points))
		for j, pt := range s.Points {
			if !pt.Absent {
				vals[j] = pt.Y
			}
		}
		bars, err := plotter.NewBarChart(vals, bw)
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * bw
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	p.NominalX(d.Categories...)
	return nil
}
