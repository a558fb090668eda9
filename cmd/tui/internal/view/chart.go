package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/summary"
	"github.com/MrJamesThe3rd/tally/internal/tracker"
)

const barWidth = 30

var chartPalette = []lipgloss.Color{
	lipgloss.Color("#FF6384"),
	lipgloss.Color("#36A2EB"),
	lipgloss.Color("#FFCE56"),
	lipgloss.Color("#4BC0C0"),
	lipgloss.Color("#9966FF"),
}

type ChartModel struct {
	CommonModel
	ctrl *tracker.Controller
}

func NewChartModel(ctrl *tracker.Controller) ChartModel {
	return ChartModel{ctrl: ctrl}
}

func (m ChartModel) Title() string     { return "Spending by Category" }
func (m ChartModel) ShortHelp() string { return "Esc: back | f: filter" }

func (m ChartModel) Init() tea.Cmd {
	return nil
}

func (m ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "f":
			m.ctrl.CycleFilter()
		}
	}

	return m, nil
}

func (m ChartModel) View() string {
	v := m.ctrl.View()

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(m.Title()),
		"",
		fmt.Sprintf("Filter: [f] %s | Total: %s", activeStyle(string(v.Filter)), FormatAmount(v.Total)),
		"",
		renderBreakdown(v),
		"",
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// renderBreakdown draws one bar per category, scaled to its share of the
// breakdown total.
func renderBreakdown(v summary.View) string {
	if len(v.Visible) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No data to display")
	}

	total := v.Breakdown.Total()

	labelWidth := 0
	for _, s := range v.Breakdown {
		labelWidth = max(labelWidth, lipgloss.Width(string(s.Category)))
	}

	lines := make([]string, 0, len(v.Breakdown))

	for i, s := range v.Breakdown {
		pct := s.Percent(total)
		n := barLength(pct)

		bar := lipgloss.NewStyle().
			Foreground(chartPalette[i%len(chartPalette)]).
			Render(strings.Repeat("█", n))

		lines = append(lines, fmt.Sprintf("%-*s %s%s %6s%% %s",
			labelWidth, s.Category,
			bar, strings.Repeat(" ", barWidth-n),
			pct.StringFixed(1),
			FormatAmount(s.Amount),
		))
	}

	return strings.Join(lines, "\n")
}

func barLength(pct decimal.Decimal) int {
	n := int(pct.Mul(decimal.NewFromInt(barWidth)).Div(decimal.NewFromInt(100)).Round(0).IntPart())

	return min(max(n, 0), barWidth)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
