package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/metrics"
	"github.com/san-kum/pvtlab/internal/pvt"
)

// SweepTable renders res as a bordered table: the swept value, the result,
// each extra and the reason for absent points.
func SweepTable(res *analysis.Result) string {
	headers := append([]string{res.Param, analysis.ResultKey}, res.Extras...)
	headers = append(headers, "reason")

	rows := make([][]string, 0, len(res.Points))
	for _, p := range res.Points {
		row := []string{fmt.Sprintf("%.5f", p.X), p.Result.String()}
		for _, e := range res.Extras {
			row = append(row, p.Extras[e].String())
		}
		row = append(row, string(p.Reason))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Subtle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Title.Padding(0, 1)
			}
			if row >= 0 && row < len(res.Points) && !res.Points[row].Result.OK {
				return AbsentText.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	summary := fmt.Sprintf("%s: %d points, %d absent", res.Correlation, len(res.Points), res.AbsentCount())
	return t.String() + "\n" + Subtle.Render(summary) + "\n" + Metrics(res)
}

// Metrics renders the sweep summary readings on one line.
func Metrics(res *analysis.Result) string {
	var parts []string
	for _, r := range metrics.Summarize(res) {
		parts = append(parts, Label.Width(0).Render(r.Name)+" "+Value.Render(r.String()))
	}
	return strings.Join(parts, "  ")
}

// Readout renders a single evaluation: the inputs, then the result with
// its extras, or the error.
func Readout(c pvt.Correlation, inputs pvt.Snapshot, out pvt.Output, err error) string {
	var b strings.Builder
	b.WriteString(Header.Render(c.Name()) + "\n")
	for _, p := range pvt.Active(c, inputs) {
		v, ok := inputs[p.Name]
		val := AbsentText.Render("-")
		if ok {
			val = Value.Render(fmt.Sprintf("%g", v))
		}
		b.WriteString(Label.Render(p.Name) + val + Subtle.Render(" "+p.Unit) + "\n")
	}
	b.WriteString("\n")

	if err != nil {
		b.WriteString(ErrorText.Render(fmt.Sprintf("%s: %v", pvt.KindOf(err), err)))
		return b.String()
	}
	b.WriteString(Label.Render(analysis.ResultKey) + Value.Render(fmt.Sprintf("%.6g", out.Result)) + Subtle.Render(" "+out.Unit))

	for _, k := range c.Extras() {
		b.WriteString("\n" + Label.Render(k) + Value.Render(out.Extra(k).String()))
	}
	return b.String()
}
