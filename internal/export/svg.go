package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/pvtlab/internal/chart"
)

const svgBackground = "#0a0a0a"

// ToSVG draws d as a minimal standalone SVG document.
func ToSVG(d *chart.Description, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("svg: invalid size %dx%d", width, height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<text x="8" y="16" fill="#cccccc" font-family="monospace" font-size="12">%s</text>
`, width, height, width, height, svgBackground, escape(d.Title+" / "+d.XLabel)))

	switch d.Kind {
	case chart.Line, chart.Scatter, chart.Bar:
		cartesianSVG(&sb, d, float64(width), float64(height))
	case chart.Polar, chart.Radar:
		polarSVG(&sb, d, float64(width), float64(height))
	default:
		return "", fmt.Errorf("svg: unsupported chart kind %s", d.Kind)
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// WriteSVG writes ToSVG output to w.
func WriteSVG(w io.Writer, d *chart.Description, width, height int) error {
	s, err := ToSVG(d, width, height)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func dataBounds(series []chart.Series) (bounds, bool) {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	found := false
	for _, s := range series {
		for _, p := range s.Points {
			if p.Absent {
				continue
			}
			found = true
			b.minX = math.Min(b.minX, p.X)
			b.maxX = math.Max(b.maxX, p.X)
			b.minY = math.Min(b.minY, p.Y)
			b.maxY = math.Max(b.maxY, p.Y)
		}
	}
	return b, found
}

// pad widens b by 10% on each side.
func (b bounds) pad() bounds {
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return bounds{
		minX: b.minX - rangeX*0.1,
		maxX: b.maxX + rangeX*0.1,
		minY: b.minY - rangeY*0.1,
		maxY: b.maxY + rangeY*0.1,
	}
}

func cartesianSVG(sb *strings.Builder, d *chart.Description, width, height float64) {
	b, ok := dataBounds(d.Series)
	if !ok {
		return
	}
	b = b.pad()
	if d.Kind == chart.Bar {
		b.minY = math.Min(b.minY, 0)
	}
	sx := func(x float64) float64 { return (x - b.minX) / (b.maxX - b.minX) * width }
	sy := func(y float64) float64 { return height - (y-b.minY)/(b.maxY-b.minY)*height }

	for i, s := range d.Series {
		c := color(i)
		switch d.Kind {
		case chart.Line:
			if path := segmentPath(s.Points, sx, sy); path != "" {
				sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, c, path))
			}
		case chart.Scatter:
			for _, p := range s.Points {
				if p.Absent {
					continue
				}
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"/>
`, sx(p.X), sy(p.Y), c))
			}
		case chart.Bar:
			n := len(s.Points)
			if n == 0 {
				continue
			}
			slot := width / float64(n)
			bw := slot / float64(len(d.Series)+1)
			for j, p := range s.Points {
				if p.Absent {
					continue
				}
				x := float64(j)*slot + float64(i)*bw + bw/2
				y0, y1 := sy(0), sy(p.Y)
				top, h := math.Min(y0, y1), math.Abs(y1-y0)
				sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, top, bw, h, c))
			}
		}
	}
}

// segmentPath builds an SVG path that restarts after every absent point.
func segmentPath(points []chart.Pair, sx, sy func(float64) float64) string {
	var sb strings.Builder
	pen := false
	for _, p := range points {
		if p.Absent {
			pen = false
			continue
		}
		if pen {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", sx(p.X), sy(p.Y)))
		} else {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", sx(p.X), sy(p.Y)))
			pen = true
		}
	}
	return sb.String()
}

func polarSVG(sb *strings.Builder, d *chart.Description, width, height float64) {
	cx, cy := width/2, height/2
	radius := math.Min(width, height)/2 - 20
	span := d.RadialMax - d.RadialMin
	if span <= 0 {
		span = 1
	}

	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#333333"/>
`, cx, cy, radius))

	axes := len(d.Categories)
	angle := func(p chart.Pair) float64 {
		if d.Kind == chart.Radar && axes > 0 {
			return 2 * math.Pi * p.X / float64(axes)
		}
		return p.X * math.Pi / 180
	}
	// Angles run clockwise from twelve o'clock.
	sx := func(p chart.Pair) float64 {
		r := (p.Y - d.RadialMin) / span * radius
		return cx + r*math.Sin(angle(p))
	}
	sy := func(p chart.Pair) float64 {
		r := (p.Y - d.RadialMin) / span * radius
		return cy - r*math.Cos(angle(p))
	}

	for i, s := range d.Series {
		c, stroke := color(i), 1.5
		if s.Live {
			c, stroke = liveColor, 3
		}
		var path strings.Builder
		pen := false
		for _, p := range s.Points {
			if p.Absent {
				pen = false
				continue
			}
			cmd := "L"
			if !pen {
				cmd = "M"
				pen = true
			}
			path.WriteString(fmt.Sprintf("%s%.1f,%.1f ", cmd, sx(p), sy(p)))
		}
		if path.Len() == 0 {
			continue
		}
		shape := strings.TrimSpace(path.String())
		if d.Kind == chart.Radar {
			shape += " Z"
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" d="%s"/>
`, c, stroke, shape))
	}
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
