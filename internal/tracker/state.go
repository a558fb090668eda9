package tracker

import "github.com/MrJamesThe3rd/tally/internal/expense"

// RowState is either Viewing or Editing. Only one row of the list can be
// edited at a time.
type RowState interface {
	rowState()
}

type Viewing struct{}

// Editing holds the detached working copy of the expense being edited.
type Editing struct {
	ID      expense.ID
	Working *Form
}

func (Viewing) rowState() {}
func (Editing) rowState() {}
