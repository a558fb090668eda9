package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

var errMissingID = errors.New("record without id")

type expenseJSON struct {
	ID          expense.ID       `json:"id,omitempty"`
	Description string           `json:"description"`
	Amount      json.RawMessage  `json:"amount"`
	Category    expense.Category `json:"category"`
	Date        string           `json:"date"`
}

func fromDraft(d expense.Draft) expenseJSON {
	return expenseJSON{
		Description: d.Description,
		Amount:      json.RawMessage(d.Amount.String()),
		Category:    d.Category,
		Date:        expense.FormatDate(d.Date),
	}
}

// toExpense only fails on a missing id. The store does not validate what it
// keeps, so an amount it cannot give us (null, text) reads as zero and a bad
// date reads as the zero time.
func (j expenseJSON) toExpense() (expense.Expense, error) {
	if j.ID.IsZero() {
		return expense.Expense{}, errMissingID
	}

	amount, err := decodeAmount(j.Amount)
	if err != nil {
		slog.Warn("expense with unreadable amount, counting it as zero", "id", j.ID, "amount", string(j.Amount))
	}

	date, err := expense.ParseDate(j.Date)
	if err != nil {
		slog.Warn("expense with unreadable date", "id", j.ID, "date", j.Date)
	}

	return expense.Expense{
		ID:          j.ID,
		Description: j.Description,
		Amount:      amount,
		Category:    j.Category,
		Date:        date,
	}, nil
}

// decodeAmount accepts a JSON number or a numeric string.
func decodeAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, expense.ErrInvalidAmount
	}

	s := string(raw)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return decimal.Zero, expense.ErrInvalidAmount
		}

		s = unquoted
	}

	return expense.ParseAmount(s)
}
