package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

// Form holds expense fields as the user typed them. It backs both the add
// form and the working copy of an edit.
type Form struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

// NewForm returns the add-form defaults: empty text and amount, the first
// category and today's date.
func NewForm(categories expense.Categories, today time.Time) Form {
	return Form{
		Category: string(categories.First()),
		Date:     expense.FormatDate(today),
	}
}

// FormFor copies e into a detached working copy.
func FormFor(e expense.Expense) Form {
	return Form{
		Description: e.Description,
		Amount:      e.Amount.String(),
		Category:    string(e.Category),
		Date:        expense.FormatDate(e.Date),
	}
}

// Draft converts the form into a request body. Amount and date must parse.
func (f Form) Draft() (expense.Draft, error) {
	amount, err := expense.ParseAmount(strings.TrimSpace(f.Amount))
	if err != nil {
		return expense.Draft{}, fmt.Errorf("amount %q: %w", f.Amount, err)
	}

	date, err := expense.ParseDate(strings.TrimSpace(f.Date))
	if err != nil {
		return expense.Draft{}, fmt.Errorf("date %q: %w", f.Date, err)
	}

	return expense.Draft{
		Description: f.Description,
		Amount:      amount,
		Category:    expense.Category(f.Category),
		Date:        date,
	}, nil
}
