// Package summary derives what the expense screens show from the cached
// expenses and the active category filter.
package summary

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

// Filter selects the visible expenses: All or a single category.
type Filter string

const FilterAll Filter = "All"

// Share is one category bucket of a breakdown.
type Share struct {
	Category expense.Category
	Amount   decimal.Decimal
}

// Percent returns the share of total in percent, or zero for a zero total.
func (s Share) Percent(total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}

	return s.Amount.Div(total).Mul(decimal.NewFromInt(100))
}

// Breakdown holds one Share per configured category, in configured order.
type Breakdown []Share

func (b Breakdown) Amount(cat expense.Category) (decimal.Decimal, bool) {
	for _, s := range b {
		if s.Category == cat {
			return s.Amount, true
		}
	}

	return decimal.Zero, false
}

// Total sums the buckets. Unlike View.Total it excludes unknown categories.
func (b Breakdown) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range b {
		sum = sum.Add(s.Amount)
	}

	return sum
}

// View is the derived state of one (items, filter) pair. Visible must be
// treated as read-only.
type View struct {
	Filter    Filter
	Visible   []expense.Expense
	Total     decimal.Decimal
	Breakdown Breakdown
}

type Engine struct {
	categories expense.Categories
}

func New(categories expense.Categories) *Engine {
	return &Engine{categories: categories}
}

func (e *Engine) Categories() expense.Categories {
	return e.categories
}

// Filters lists All followed by every configured category.
func (e *Engine) Filters() []Filter {
	out := make([]Filter, 0, len(e.categories)+1)
	out = append(out, FilterAll)

	for _, c := range e.categories {
		out = append(out, Filter(c))
	}

	return out
}

func (e *Engine) ParseFilter(s string) (Filter, error) {
	if Filter(s) == FilterAll || e.categories.Contains(expense.Category(s)) {
		return Filter(s), nil
	}

	return FilterAll, fmt.Errorf("unknown filter %q", s)
}

// Visible returns the items matching f, keeping their order.
func (e *Engine) Visible(items []expense.Expense, f Filter) []expense.Expense {
	if f == FilterAll {
		return items
	}

	out := make([]expense.Expense, 0, len(items))

	for _, it := range items {
		if Filter(it.Category) == f {
			out = append(out, it)
		}
	}

	return out
}

// Total sums every visible amount, whatever its category.
func (e *Engine) Total(visible []expense.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range visible {
		sum = sum.Add(it.Amount)
	}

	return sum
}

// Breakdown sums visible amounts per configured category. Every configured
// category is present; items in other categories are dropped.
func (e *Engine) Breakdown(visible []expense.Expense) Breakdown {
	out := make(Breakdown, len(e.categories))
	index := make(map[expense.Category]int, len(e.categories))

	for i, c := range e.categories {
		out[i] = Share{Category: c, Amount: decimal.Zero}
		index[c] = i
	}

	for _, it := range visible {
		i, ok := index[it.Category]
		if !ok {
			continue
		}

		out[i].Amount = out[i].Amount.Add(it.Amount)
	}

	return out
}

func (e *Engine) Compute(items []expense.Expense, f Filter) View {
	visible := e.Visible(items, f)

	return View{
		Filter:    f,
		Visible:   visible,
		Total:     e.Total(visible),
		Breakdown: e.Breakdown(visible),
	}
}
