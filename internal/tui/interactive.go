package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/experiment"
	"github.com/san-kum/pvtlab/internal/metrics"
	"github.com/san-kum/pvtlab/internal/mixture"
	"github.com/san-kum/pvtlab/internal/pvt"
	"github.com/san-kum/pvtlab/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type state int

const (
	stateMenu state = iota
	stateAnalyze
)

type model struct {
	ctx      context.Context
	analyzer *experiment.Analyzer

	state  state
	cursor int
	ids    []string

	paramCursor int
	editing     bool
	editBuf     string
	message     string

	width  int
	height int
}

func newModel(ctx context.Context, a *experiment.Analyzer) model {
	return model{
		ctx:      ctx,
		analyzer: a,
		state:    stateMenu,
		ids:      a.Catalog().IDs(),
		width:    100,
		height:   30,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateAnalyze:
		if m.editing {
			return m.editKey(msg)
		}
		return m.analyzeKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ids)-1 {
			m.cursor++
		}
	case "enter", " ":
		if err := m.analyzer.Select(m.ctx, m.ids[m.cursor]); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.state = stateAnalyze
		m.paramCursor = 0
		m.refresh()
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		v, err := strconv.ParseFloat(m.editBuf, 64)
		m.editBuf = ""
		if err != nil {
			m.message = fmt.Sprintf("not a number: %v", err)
			return m, nil
		}
		m.commit(func(name string) error { return m.analyzer.Set(m.ctx, name, v) })
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-e") {
			m.editBuf += s
		}
	}
	return m, nil
}

func (m model) analyzeKey(msg tea.KeyMsg) (model, tea.Cmd) {
	params := m.analyzer.ActiveParams()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateMenu
		m.message = ""
		return m, tea.ClearScreen
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.commit(func(name string) error { return m.analyzer.Nudge(m.ctx, name, -1) })
	case "right", "l":
		m.commit(func(name string) error { return m.analyzer.Nudge(m.ctx, name, 1) })
	case "[":
		m.commit(func(name string) error { return m.analyzer.Nudge(m.ctx, name, -10) })
	case "]":
		m.commit(func(name string) error { return m.analyzer.Nudge(m.ctx, name, 10) })
	case "enter":
		if m.paramCursor < len(params) {
			m.editing = true
			m.editBuf = strconv.FormatFloat(m.analyzer.Inputs()[params[m.paramCursor].Name], 'g', -1, 64)
		}
	case "s":
		if m.paramCursor < len(params) {
			if err := m.analyzer.SelectParam(params[m.paramCursor].Name); err != nil {
				m.message = err.Error()
				return m, nil
			}
			m.refresh()
		}
	case "tab":
		m.analyzer.NextParam()
		m.refresh()
	case "c":
		if _, err := m.analyzer.NextChart(); err != nil {
			m.message = err.Error()
		}
	case "t":
		names := viz.ThemeNames()
		for i, n := range names {
			if n == viz.CurrentTheme.Name {
				viz.SetTheme(names[(i+1)%len(names)])
				break
			}
		}
	case "+", "=":
		m.resize(1)
	case "-", "_":
		m.resize(-1)
	}
	return m, nil
}

// commit applies change to the parameter under the cursor and reruns the
// pipeline.
func (m *model) commit(change func(name string) error) {
	params := m.analyzer.ActiveParams()
	if m.paramCursor >= len(params) {
		return
	}
	if err := change(params[m.paramCursor].Name); err != nil {
		m.message = err.Error()
		return
	}
	m.refresh()
	m.clampCursor()
}

func (m *model) resize(delta int) {
	comps := m.analyzer.Components()
	if comps == nil {
		return
	}
	if err := m.analyzer.SetComponents(m.ctx, len(comps)+delta); err != nil {
		m.message = err.Error()
		return
	}
	m.refresh()
	m.clampCursor()
}

func (m *model) clampCursor() {
	if n := len(m.analyzer.ActiveParams()); m.paramCursor >= n {
		m.paramCursor = max(n-1, 0)
	}
}

func (m *model) refresh() {
	m.message = ""
	if _, err := m.analyzer.Refresh(); err != nil {
		m.message = fmt.Sprintf("%s: %v", pvt.KindOf(err), err)
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateAnalyze:
		return m.viewAnalyze()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("              " + cyan.Render("p v t l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	cat := m.analyzer.Catalog()
	for i, id := range m.ids {
		c, err := cat.Get(id)
		if err != nil {
			continue
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-22s", id)) + dim.Render(c.Name()) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-22s", id)) + dimmer.Render(c.Name()) + "\n")
		}
	}

	if m.message != "" {
		b.WriteString("\n      " + red.Render(m.message) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter analyze   q quit") + "\n")
	return b.String()
}

func (m model) viewAnalyze() string {
	c := m.analyzer.Current()
	if c == nil {
		return ""
	}

	left := m.viewParams()
	chartW := max(m.width-lipgloss.Width(left)-8, 30)
	chartH := max(m.height-14, 8)

	var right string
	if v := m.analyzer.LastView(); v != nil {
		right = viz.Render(v.Chart, chartW, chartH)
	} else {
		right = dim.Render("no chart yet")
	}

	var b strings.Builder
	b.WriteString("\n  " + cyan.Render(c.Name()) + "  " + dim.Render(c.ID()) + "\n")
	b.WriteString("  " + viz.Separator(max(m.width-4, 10)) + "\n")
	if spec, ok := pvt.FindParam(c, m.analyzer.SweepParam()); ok {
		r := m.analyzer.Range()
		b.WriteString("  " + dim.Render(fmt.Sprintf("sweep %s over [%g, %g]", spec.Label(), r.Min, r.Max)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	b.WriteString("\n\n")

	if m.message != "" {
		b.WriteString("  " + red.Render(m.message) + "\n")
	}
	hint := "  ↑↓ select  ←→ step  [] ×10  enter edit  s sweep this  tab next sweep  c chart  t theme"
	if m.analyzer.Components() != nil {
		hint += "  +/- components"
	}
	b.WriteString(dim.Render(hint+"  esc back  q quit") + "\n")
	return b.String()
}

func (m model) viewParams() string {
	var b strings.Builder
	inputs := m.analyzer.Inputs()
	swept := m.analyzer.SweepParam()

	for i, p := range m.analyzer.ActiveParams() {
		val := fmt.Sprintf("%10.4g", inputs[p.Name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		mark := "  "
		if p.Name == swept {
			mark = yellow.Render("~ ")
		}
		name := fmt.Sprintf("%-8s", p.Name)
		unit := " " + p.Unit
		if i == m.paramCursor {
			b.WriteString(cyan.Render("▸ ") + mark + white.Render(name) + magenta.Render(val) + dim.Render(unit) + "\n")
		} else {
			b.WriteString("  " + mark + dim.Render(name) + dim.Render(val) + dimmer.Render(unit) + "\n")
		}
	}
	if comps := m.analyzer.Components(); comps != nil {
		b.WriteString("\n  " + dim.Render(fmt.Sprintf("%d of %d components", len(comps), mixture.MaxComponents)) + "\n")
	}

	b.WriteString("\n")
	if err := m.analyzer.LastError(); err != nil {
		b.WriteString("  " + red.Render(string(pvt.KindOf(err))))
		return b.String()
	}
	v := m.analyzer.LastView()
	if v == nil {
		return b.String()
	}
	out := v.Output
	b.WriteString("  " + white.Render("result ") + cyan.Render(fmt.Sprintf("%.6g", out.Result)) + dim.Render(" "+out.Unit) + "\n")
	for _, k := range m.analyzer.Current().Extras() {
		b.WriteString("  " + dim.Render(fmt.Sprintf("%-7s", k)) + white.Render(out.Extra(k).String()) + "\n")
	}
	var results []float64
	for _, r := range v.Result.Column(analysis.ResultKey) {
		results = append(results, r.Float())
	}
	b.WriteString("  " + cyan.Render(viz.Sparkline(results, 24)) + "\n\n")
	for _, r := range metrics.Summarize(v.Result) {
		b.WriteString("  " + dim.Render(fmt.Sprintf("%-12s", r.Name)) + white.Render(r.String()) + "\n")
	}
	return b.String()
}

// RunInteractive starts the analyzer TUI on a.
func RunInteractive(ctx context.Context, a *experiment.Analyzer) error {
	p := tea.NewProgram(newModel(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
