package view

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/client"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/tracker"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateAdd
	expensesStateEdit
)

type ExpensesModel struct {
	CommonModel
	ctrl    *tracker.Controller
	timeout time.Duration

	state   expensesState
	table   table.Model
	spinner spinner.Model
	form    *huh.Form
	rows    []expense.ID

	loading bool
	pending int
	saving  bool
	status  string
}

// NewExpensesModel expects the initial load to be in flight already.
func NewExpensesModel(ctrl *tracker.Controller, timeout time.Duration) ExpensesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 28},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := ExpensesModel{
		ctrl:    ctrl,
		timeout: timeout,
		table:   t,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading: true,
		pending: 1,
	}
	m.refreshTable()

	return m
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expensesStateAdd:
		return "Enter/Tab: navigate form | Esc: cancel"
	case expensesStateEdit:
		return "Enter/Tab: navigate form | Esc: cancel edit"
	}

	return "Esc: back | a: add | e: edit | x: delete | f: filter | r: reload"
}

func (m ExpensesModel) Init() tea.Cmd {
	if m.busy() {
		return m.spinner.Tick
	}

	return nil
}

// Sync rebuilds the table from the controller, picking up changes made
// while another screen was active.
func (m ExpensesModel) Sync() ExpensesModel {
	m.refreshTable()
	return m
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AppliedMsg:
		return m.applied(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	case expensesStateAdd:
		return m.updateAdd(msg)
	case expensesStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ExpensesModel) applied(msg AppliedMsg) (tea.Model, tea.Cmd) {
	m.pending = max(m.pending-1, 0)

	if msg.Op == client.OpList {
		m.loading = false
	}

	if msg.Err != nil {
		m.status = fmt.Sprintf("Error: %v", msg.Err)
	} else {
		m.status = doneStatus(msg.Op)
	}

	if m.state == expensesStateEdit {
		id, editing := m.ctrl.EditingID()

		switch {
		case !editing:
			m.closeForm()
		case m.saving && msg.Op == client.OpUpdate && msg.ID == id && msg.Err != nil:
			// The working copy survived the failure; let the user retry.
			m.saving = false
			m.form = m.editForm()
			m.refreshTable()

			return m, m.form.Init()
		}
	}

	m.refreshTable()

	return m, nil
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m.issue(m.ctrl.Load())
		case "f":
			m.ctrl.CycleFilter()
			m.refreshTable()

			return m, nil
		case "a":
			m.form = m.addForm()
			m.state = expensesStateAdd
			m.table.Blur()

			return m, m.form.Init()
		case "e", "enter":
			return m.enterEditMode()
		case "x":
			id, ok := m.selectedID()
			if !ok {
				return m, nil
			}

			return m.issue(m.ctrl.Delete(id))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	call, err := m.ctrl.SubmitAdd()
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		m.form = m.addForm()

		return m, m.form.Init()
	}

	m.closeForm()
	m.status = "Adding..."

	return m.issue(call)
}

func (m ExpensesModel) enterEditMode() (tea.Model, tea.Cmd) {
	id, ok := m.selectedID()
	if !ok {
		return m, nil
	}

	if _, err := m.ctrl.StartEdit(id); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.form = m.editForm()
	m.state = expensesStateEdit
	m.saving = false
	m.table.Blur()
	m.refreshTable()

	return m, m.form.Init()
}

func (m ExpensesModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.ctrl.CancelEdit()
		m.closeForm()

		return m, nil
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	call, err := m.ctrl.Save()
	if err != nil {
		if errors.Is(err, tracker.ErrNotEditing) {
			m.closeForm()
			return m, nil
		}

		m.status = fmt.Sprintf("Error: %v", err)
		m.form = m.editForm()

		return m, m.form.Init()
	}

	m.saving = true
	m.status = "Saving..."

	return m.issue(call)
}

func (m ExpensesModel) issue(call tracker.Call) (tea.Model, tea.Cmd) {
	m.pending++
	return m, tea.Batch(Run(call, m.timeout), m.spinner.Tick)
}

func (m *ExpensesModel) closeForm() {
	m.state = expensesStateBrowse
	m.form = nil
	m.saving = false
	m.table.Focus()
	m.refreshTable()
}

func (m ExpensesModel) busy() bool {
	return m.loading || m.pending > 0
}

func (m ExpensesModel) selectedID() (expense.ID, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return "", false
	}

	return m.rows[idx], true
}

func (m ExpensesModel) addForm() *huh.Form {
	return m.expenseForm(m.ctrl.Draft())
}

func (m ExpensesModel) editForm() *huh.Form {
	working, _ := m.ctrl.Working()
	return m.expenseForm(working)
}

// expenseForm binds the inputs directly to f, so the controller sees every
// keystroke without copying.
func (m ExpensesModel) expenseForm(f *tracker.Form) *huh.Form {
	categories := m.ctrl.Categories().Strings()
	if f.Category != "" && !slices.Contains(categories, f.Category) {
		categories = append(categories, f.Category)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&f.Description),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(func(s string) error {
					_, err := expense.ParseAmount(strings.TrimSpace(s))
					return err
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(categories...)...).
				Value(&f.Category),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.Date).
				Validate(func(s string) error {
					_, err := expense.ParseDate(strings.TrimSpace(s))
					return err
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m ExpensesModel) View() string {
	v := m.ctrl.View()

	header := fmt.Sprintf(
		"Filter: [f] %s | Total: %s",
		activeStyle(string(v.Filter)),
		activeStyle(FormatAmount(v.Total)),
	)

	if m.busy() {
		header += " " + m.spinner.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if len(v.Visible) == 0 && !m.loading {
		tableView = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Render("No expenses.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(44)

	switch {
	case m.state == expensesStateAdd && m.form != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			panel.Render("Add Expense\n\n"+m.form.View()))
	case m.state == expensesStateEdit && m.saving:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			panel.Render("Edit Expense\n\n"+m.spinner.View()+" Saving..."))
	case m.state == expensesStateEdit && m.form != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			panel.Render("Edit Expense\n\n"+m.form.View()))
	default:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			panel.Width(80).Render("By Category\n\n"+renderBreakdown(v)))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	content += "\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ExpensesModel) refreshTable() {
	v := m.ctrl.View()

	editing, isEditing := m.ctrl.EditingID()

	rows := make([]table.Row, 0, len(v.Visible))
	m.rows = make([]expense.ID, 0, len(v.Visible))

	for _, e := range v.Visible {
		desc := e.Description
		if isEditing && e.ID == editing {
			desc = "✎ " + desc
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			desc,
			string(e.Category),
			FormatAmount(e.Amount),
		})
		m.rows = append(m.rows, e.ID)
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func doneStatus(op client.Operation) string {
	switch op {
	case client.OpCreate:
		return "Added."
	case client.OpUpdate:
		return "Saved."
	case client.OpDelete:
		return "Deleted."
	}

	return ""
}
