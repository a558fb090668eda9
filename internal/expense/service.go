package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id ID) (*Expense, error)
	ListExpenses(ctx context.Context) ([]*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id ID) error
}

// Service holds the rules of the expense store behind the REST API.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// UpdateParams lists the fields of an update; nil fields keep the stored value.
type UpdateParams struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *Category
	Date        *time.Time
}

// Create stores a new expense. A zero date is replaced by today's date.
func (s *Service) Create(ctx context.Context, d Draft) (*Expense, error) {
	e := &Expense{
		Description: d.Description,
		Amount:      d.Amount,
		Category:    d.Category,
		Date:        d.Date,
	}

	if e.Date.IsZero() {
		e.Date = Today(s.now())
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) List(ctx context.Context) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx)
}

func (s *Service) Get(ctx context.Context, id ID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

// Update merges params into the stored expense and persists the result.
func (s *Service) Update(ctx context.Context, id ID, params UpdateParams) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		e.Description = *params.Description
	}

	if params.Amount != nil {
		e.Amount = *params.Amount
	}

	if params.Category != nil {
		e.Category = *params.Category
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("updating expense %s: %w", id, err)
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id ID) error {
	return s.repo.DeleteExpense(ctx, id)
}
