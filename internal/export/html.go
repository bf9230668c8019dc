package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/pvtlab/internal/chart"
)

// Palette is shared by every renderer so series keep their color across
// output formats.
var Palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
	"#9467bd", "#7f7f7f", "#bcbd22", "#17becf",
}

const (
	liveColor = "#ff0000"
	// missing is the echarts placeholder that breaks a line.
	missing = "-"
)

func color(i int) string {
	return Palette[i%len(Palette)]
}

// HTMLOptions sizes the page.
type HTMLOptions struct {
	Width  int
	Height int
	Theme  string
}

// size fills in the default 1000x600 canvas.
func (o HTMLOptions) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 1000
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

func (o HTMLOptions) initialization(title string) opts.Initialization {
	w, h := o.size()
	theme := o.Theme
	if theme == "" {
		theme = "dark"
	}
	return opts.Initialization{
		PageTitle: title,
		Theme:     theme,
		Width:     fmt.Sprintf("%dpx", w),
		Height:    fmt.Sprintf("%dpx", h),
	}
}

// WriteHTML renders d as a standalone echarts page.
func WriteHTML(w io.Writer, d *chart.Description, o HTMLOptions) error {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(o.initialization(d.Title)),
		charts.WithTitleOpts(opts.Title{Title: d.Title, Subtitle: fmt.Sprintf("%s sweep (%s)", d.XLabel, d.Kind)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(d.Kind != chart.Radar)}),
	}

	switch d.Kind {
	case chart.Line:
		return lineHTML(d, global).Render(w)
	case chart.Scatter:
		return scatterHTML(d, global).Render(w)
	case chart.Bar:
		return barHTML(d, global).Render(w)
	case chart.Polar:
		return polarHTML(d, global).Render(w)
	case chart.Radar:
		return radarHTML(d, global).Render(w)
	}
	return fmt.Errorf("html: unsupported chart kind %s", d.Kind)
}

func cartesianAxes(d *chart.Description) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: d.XLabel, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: d.YLabel, Scale: opts.Bool(true)}),
	}
}

func lineHTML(d *chart.Description, global []charts.GlobalOpts) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(global, cartesianAxes(d)...)...)

	for i, s := range d.Series {
		data := make([]opts.LineData, len(s.Points))
		for j, p := range s.Points {
			var y interface{} = p.Y
			if p.Absent {
				y = missing
			}
			data[j] = opts.LineData{Value: []interface{}{p.X, y}}
		}
		line.AddSeries(s.Name, data,
			charts.WithLineChartOpts(opts.LineChart{ConnectNulls: opts.Bool(false), ShowSymbol: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color(i)}),
		)
	}
	return line
}

func scatterHTML(d *chart.Description, global []charts.GlobalOpts) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(global, cartesianAxes(d)...)...)

	for i, s := range d.Series {
		data := make([]opts.ScatterData, 0, len(s.Points))
		for _, p := range s.Points {
			if p.Absent {
				continue
			}
			data = append(data, opts.ScatterData{Value: []float64{p.X, p.Y}, SymbolSize: 8})
		}
		sc.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: color(i), Opacity: opts.Float(0.8)}))
	}
	return sc
}

func barHTML(d *chart.Description, global []charts.GlobalOpts) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Name: d.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: d.YLabel, Scale: opts.Bool(true)}),
	)...)
	bar.SetXAxis(d.Categories)

	for i, s := range d.Series {
		data := make([]opts.BarData, len(s.Points))
		for j, p := range s.Points {
			data[j] = opts.BarData{Value: p.Y}
			if p.Absent {
				data[j] = opts.BarData{Value: missing}
			}
		}
		bar.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: color(i)}))
	}
	return bar
}

// polarHTML draws on a line chart bound to the polar coordinate system.
// Echarts polar data is [radius, angle].
func polarHTML(d *chart.Description, global []charts.GlobalOpts) *charts.Line {
	line := charts.NewLine()
	radius := opts.RadiusAxis{PolarAxisBase: opts.PolarAxisBase{Type: "value", Min: d.RadialMin, Max: d.RadialMax}}
	if d.Shift != 0 {
		radius.Name = fmt.Sprintf("value + %.4g", d.Shift)
	}
	line.SetGlobalOptions(append(global,
		charts.WithPolarOps(opts.Polar{}),
		charts.WithAngleAxisOps(opts.AngleAxis{
			PolarAxisBase: opts.PolarAxisBase{Type: "value", Min: 0, Max: 360, StartAngle: 90},
		}),
		charts.WithRadiusAxisOps(radius),
	)...)

	for i, s := range d.Series {
		data := make([]opts.LineData, len(s.Points))
		for j, p := range s.Points {
			var r interface{} = p.Y
			if p.Absent {
				r = missing
			}
			data[j] = opts.LineData{Value: []interface{}{r, p.X}}
		}
		line.AddSeries(s.Name, data,
			charts.WithLineChartOpts(opts.LineChart{CoordSystem: "polar", ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color(i), Width: 2}),
		)
	}
	return line
}

func radarHTML(d *chart.Description, global []charts.GlobalOpts) *charts.Radar {
	radar := charts.NewRadar()
	indicators := make([]*opts.Indicator, len(d.Categories))
	for i, name := range d.Categories {
		indicators[i] = &opts.Indicator{Name: name, Min: float32(d.RadialMin), Max: float32(d.RadialMax)}
	}
	radar.SetGlobalOptions(append(global,
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators, Shape: "polygon", SplitNumber: 5}),
	)...)

	for i, s := range d.Series {
		vals := make([]interface{}, len(s.Points))
		for j, p := range s.Points {
			vals[j] = p.Y
			if p.Absent {
				vals[j] = missing
			}
		}
		data := []opts.RadarData{{Name: s.Name, Value: vals}}

		if s.Live {
			radar.AddSeries(s.Name, data,
				charts.WithLineStyleOpts(opts.LineStyle{Color: liveColor, Width: 4}),
				charts.WithAreaStyleOpts(opts.AreaStyle{Color: liveColor, Opacity: opts.Float(0.1)}),
			)
			continue
		}
		radar.AddSeries(s.Name, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: color(i), Width: 0.5}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: color(i), Opacity: opts.Float(0.15)}),
		)
	}
	return radar
}
