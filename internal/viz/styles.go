package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared styles; SetTheme rebuilds them.
var (
	Panel      lipgloss.Style
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Subtle     lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	AbsentText lipgloss.Style
	ErrorText  lipgloss.Style
	KeyHint    lipgloss.Style
	LiveText   lipgloss.Style
	Header     lipgloss.Style
)

func init() {
	applyTheme(CurrentTheme)
}

func applyTheme(t Theme) {
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)

	Selected = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)

	Subtle = lipgloss.NewStyle().Foreground(t.Muted)

	Label = lipgloss.NewStyle().Foreground(t.Muted).Width(10)

	Value = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)

	AbsentText = lipgloss.NewStyle().Foreground(t.Warning)

	ErrorText = lipgloss.NewStyle().Bold(true).Foreground(t.Error)

	KeyHint = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)

	LiveText = lipgloss.NewStyle().Bold(true).Foreground(t.Live)

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
}

// Bar renders a horizontal bar of frac*width cells.
func Bar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Sparkline renders values sampled to width. NaN values render as a space.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi, ok := finiteRange(values)
	if !ok {
		return strings.Repeat(" ", min(width, len(values)))
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if v != v {
			b.WriteRune(' ')
			continue
		}
		idx := int((v - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return b.String()
}

// Box renders content under a titled rounded border.
func Box(title, content string, width int) string {
	return Panel.Width(width).Render(Title.Render(title) + "\n" + content)
}

// Separator is a muted horizontal rule.
func Separator(width int) string {
	return Subtle.Render(strings.Repeat("─", max(width, 0)))
}
