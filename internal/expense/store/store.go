package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

// Memory keeps expenses in insertion order. It is safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	items []expense.Expense
}

func New() *Memory {
	return &Memory{}
}

func (s *Memory) CreateExpense(_ context.Context, e *expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = expense.NewID()
	s.items = append(s.items, *e)

	return nil
}

func (s *Memory) GetExpense(_ context.Context, id expense.ID) (*expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, expense.ErrNotFound
	}

	e := s.items[i]

	return &e, nil
}

func (s *Memory) ListExpenses(_ context.Context) ([]*expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*expense.Expense, len(s.items))
	for i := range s.items {
		e := s.items[i]
		out[i] = &e
	}

	return out, nil
}

func (s *Memory) UpdateExpense(_ context.Context, e *expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(e.ID)
	if i < 0 {
		return expense.ErrNotFound
	}

	s.items[i] = *e

	return nil
}

func (s *Memory) DeleteExpense(_ context.Context, id expense.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return expense.ErrNotFound
	}

	s.items = slices.Delete(s.items, i, i+1)

	return nil
}

// indexOf must be called with mu held.
func (s *Memory) indexOf(id expense.ID) int {
	return slices.IndexFunc(s.items, func(e expense.Expense) bool { return e.ID == id })
}
