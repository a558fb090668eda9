package summary

import "github.com/MrJamesThe3rd/tally/internal/expense"

// Memo remembers the last View computed for a (cache version, filter) pair.
type Memo struct {
	engine  *Engine
	valid   bool
	version uint64
	filter  Filter
	view    View
}

func NewMemo(engine *Engine) *Memo {
	return &Memo{engine: engine}
}

// Compute returns the cached View when version and f match the previous
// call, otherwise it recomputes from items.
func (m *Memo) Compute(version uint64, items func() []expense.Expense, f Filter) View {
	if m.valid && m.version == version && m.filter == f {
		return m.view
	}

	m.view = m.engine.Compute(items(), f)
	m.version = version
	m.filter = f
	m.valid = true

	return m.view
}
