package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/cache"
	"github.com/MrJamesThe3rd/tally/internal/client"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/summary"
	"github.com/MrJamesThe3rd/tally/internal/tracker"
)

type model struct {
	appName string
	ctrl    *tracker.Controller
	timeout time.Duration

	currentView View

	expensesView view.ExpensesModel
	chartView    view.ChartModel
}

type View int

const (
	ViewMenu     View = 0
	ViewExpenses View = 1
	ViewChart    View = 2
)

func initialModel(cfg *config.Config) (model, error) {
	engine := summary.New(cfg.ExpenseCategories())

	filter, err := engine.ParseFilter(cfg.Filter)
	if err != nil {
		return model{}, fmt.Errorf("parsing initial filter: %w", err)
	}

	repo := client.New(cfg.API.BaseURL, &http.Client{})
	ctrl := tracker.New(repo, cache.New(), engine)
	ctrl.SetFilter(filter)

	return model{
		appName:      cfg.App.Name,
		ctrl:         ctrl,
		timeout:      cfg.API.Timeout,
		currentView:  ViewMenu,
		expensesView: view.NewExpensesModel(ctrl, cfg.API.Timeout),
		chartView:    view.NewChartModel(ctrl),
	}, nil
}

// screens lists the menu entries in key order: "1" opens the first.
func (m model) screens() []view.View {
	return []view.View{m.expensesView, m.chartView}
}

func (m model) Init() tea.Cmd {
	return view.Run(m.ctrl.Load(), m.timeout)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewExpenses
				m.expensesView = m.expensesView.Sync()

				return m, m.expensesView.Init()
			case "2":
				m.currentView = ViewChart
				return m, m.chartView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.OutcomeMsg:
		// Outcomes are applied whichever screen is showing.
		applied := view.AppliedMsg{
			Op:  msg.Outcome.Op,
			ID:  msg.Outcome.ID,
			Err: m.ctrl.Apply(msg.Outcome),
		}

		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(applied)
		m.expensesView = newModel.(view.ExpensesModel)

		return m, cmd
	case tea.WindowSizeMsg:
		var newModel tea.Model
		newModel, _ = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
		newModel, _ = m.chartView.Update(msg)
		m.chartView = newModel.(view.ChartModel)

		return m, nil
	}

	switch m.currentView {
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewChart:
		var newModel tea.Model
		newModel, cmd = m.chartView.Update(msg)
		m.chartView = newModel.(view.ChartModel)
	}

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		var b strings.Builder

		b.WriteString(m.appName + "\n\n")

		for i, s := range m.screens() {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s.Title())
		}

		b.WriteString("\nq. Quit")

		return lipgloss.NewStyle().Padding(2).Render(b.String())
	}

	screens := m.screens()
	if i := int(m.currentView) - 1; i >= 0 && i < len(screens) {
		return screens[i].View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Log.File, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	m, err := initialModel(cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		fmt.Fprintf(os.Stderr, "tally: %v\n", err)
		os.Exit(1)
	}
}
