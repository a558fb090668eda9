package expense

import (
	"encoding/json"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

type expenseResponse struct {
	ID          expense.ID       `json:"id"`
	Description string           `json:"description"`
	Amount      json.Number      `json:"amount"`
	Category    expense.Category `json:"category"`
	Date        string           `json:"date"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      json.Number(e.Amount.String()),
		Category:    e.Category,
		Date:        expense.FormatDate(e.Date),
	}
}

func toResponseList(es []*expense.Expense) []expenseResponse {
	// Encode an empty store as [] rather than null.
	resp := make([]expenseResponse, len(es))
	for i, e := range es {
		resp[i] = toResponse(e)
	}

	return resp
}
