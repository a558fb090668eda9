package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tally/internal/client"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/tracker"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OutcomeMsg carries a finished repository call back to the update loop,
// where the root model applies it to the controller.
type OutcomeMsg struct {
	Outcome tracker.Outcome
}

// AppliedMsg tells a screen that an outcome has been applied.
type AppliedMsg struct {
	Op  client.Operation
	ID  expense.ID
	Err error
}

// Run performs call off the update loop and reports its outcome.
func Run(call tracker.Call, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := RequestCtx(timeout)
		defer cancel()

		return OutcomeMsg{Outcome: call(ctx)}
	}
}
