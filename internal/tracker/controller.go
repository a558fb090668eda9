package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/cache"
	"github.com/MrJamesThe3rd/tally/internal/client"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/summary"
)

var (
	ErrNotEditing = errors.New("no expense is being edited")
	ErrUnknownRow = errors.New("expense is not in the list")
)

//go:generate mockgen -source=controller.go -destination=repository_mock.go -package=tracker
type Repository interface {
	List(ctx context.Context) ([]expense.Expense, error)
	Create(ctx context.Context, d expense.Draft) (expense.Expense, error)
	Update(ctx context.Context, id expense.ID, d expense.Draft) (expense.Expense, error)
	Delete(ctx context.Context, id expense.ID) error
}

// Outcome is the result of one repository call, waiting to be applied.
type Outcome struct {
	Op      client.Operation
	ID      expense.ID
	Expense expense.Expense
	Items   []expense.Expense
	Err     error
}

// Call performs a repository request and reports its Outcome. It touches no
// controller state, so it may run on any goroutine.
type Call func(ctx context.Context) Outcome

// Controller owns the transient UI state of the expense screen and commits
// confirmed repository results into the cache. Every method except the
// returned Calls must run on one goroutine (the UI event loop).
//
// Calls are never cancelled or sequenced: outcomes are applied in the order
// they arrive, so for two in-flight requests on the same expense the last
// response applied wins.
type Controller struct {
	repo   Repository
	cache  *cache.Cache
	engine *summary.Engine
	memo   *summary.Memo
	now    func() time.Time

	draft  *Form
	state  RowState
	filter summary.Filter
}

type Option func(*Controller)

// WithClock overrides the clock used for the add-form date default.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func New(repo Repository, c *cache.Cache, engine *summary.Engine, opts ...Option) *Controller {
	ctrl := &Controller{
		repo:   repo,
		cache:  c,
		engine: engine,
		memo:   summary.NewMemo(engine),
		now:    time.Now,
		state:  Viewing{},
		filter: summary.FilterAll,
	}

	for _, opt := range opts {
		opt(ctrl)
	}

	ctrl.resetDraft()

	return ctrl
}

// Do runs call and applies its outcome.
func (c *Controller) Do(ctx context.Context, call Call) error {
	return c.Apply(call(ctx))
}

// Load fetches every expense; applying it replaces the cache.
func (c *Controller) Load() Call {
	repo := c.repo

	return func(ctx context.Context) Outcome {
		items, err := repo.List(ctx)
		return Outcome{Op: client.OpList, Items: items, Err: err}
	}
}

// Draft returns the add form, for binding to input widgets.
func (c *Controller) Draft() *Form {
	return c.draft
}

// SubmitAdd snapshots the add form into a create call. Submission is blocked
// when the amount or date does not parse.
func (c *Controller) SubmitAdd() (Call, error) {
	d, err := c.draft.Draft()
	if err != nil {
		return nil, err
	}

	repo := c.repo

	return func(ctx context.Context) Outcome {
		e, err := repo.Create(ctx, d)
		return Outcome{Op: client.OpCreate, ID: e.ID, Expense: e, Err: err}
	}, nil
}

// StartEdit puts the row with id into Editing with a fresh working copy. An
// edit already in progress is discarded without a request.
func (c *Controller) StartEdit(id expense.ID) (*Form, error) {
	e, ok := c.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("editing %s: %w", id, ErrUnknownRow)
	}

	working := FormFor(e)
	c.state = Editing{ID: id, Working: &working}

	return &working, nil
}

// Working returns the working copy of the edit in progress.
func (c *Controller) Working() (*Form, bool) {
	ed, ok := c.state.(Editing)
	if !ok {
		return nil, false
	}

	return ed.Working, true
}

// EditingID reports the id of the row being edited.
func (c *Controller) EditingID() (expense.ID, bool) {
	ed, ok := c.state.(Editing)
	if !ok {
		return "", false
	}

	return ed.ID, true
}

func (c *Controller) State() RowState {
	return c.state
}

// CancelEdit drops the working copy. The cache is not touched.
func (c *Controller) CancelEdit() {
	c.state = Viewing{}
}

// Save snapshots the working copy into an update call. The controller stays
// in Editing until the outcome is applied.
func (c *Controller) Save() (Call, error) {
	ed, ok := c.state.(Editing)
	if !ok {
		return nil, ErrNotEditing
	}

	d, err := ed.Working.Draft()
	if err != nil {
		return nil, err
	}

	repo := c.repo
	id := ed.ID

	return func(ctx context.Context) Outcome {
		e, err := repo.Update(ctx, id, d)
		return Outcome{Op: client.OpUpdate, ID: id, Expense: e, Err: err}
	}, nil
}

// Delete issues a delete for id; the row stays until the outcome is applied.
func (c *Controller) Delete(id expense.ID) Call {
	repo := c.repo

	return func(ctx context.Context) Outcome {
		return Outcome{Op: client.OpDelete, ID: id, Err: repo.Delete(ctx, id)}
	}
}

// Apply commits a confirmed outcome into the cache. A failed outcome is
// logged and returned; it changes nothing, so the add form, the working copy
// and the list keep their values.
func (c *Controller) Apply(o Outcome) error {
	if o.Err != nil {
		slog.Error("expense request failed", "op", o.Op, "id", o.ID, "error", o.Err)
		return o.Err
	}

	switch o.Op {
	case client.OpList:
		if err := c.cache.ReplaceAll(o.Items); err != nil {
			slog.Error("rejecting expense list", "error", err)
			return fmt.Errorf("loading expenses: %w", err)
		}

		if id, ok := c.EditingID(); ok {
			if _, found := c.cache.Get(id); !found {
				c.state = Viewing{}
			}
		}

	case client.OpCreate:
		if err := c.cache.Append(o.Expense); err != nil {
			slog.Error("rejecting created expense", "error", err)
			return fmt.Errorf("adding expense: %w", err)
		}

		c.resetDraft()

	case client.OpUpdate:
		if !c.cache.ReplaceOne(o.ID, o.Expense) {
			slog.Warn("updated expense no longer in list", "id", o.ID)
		}

		if id, ok := c.EditingID(); ok && id == o.ID {
			c.state = Viewing{}
		}

	case client.OpDelete:
		c.cache.RemoveOne(o.ID)

		if id, ok := c.EditingID(); ok && id == o.ID {
			c.state = Viewing{}
		}

	default:
		return fmt.Errorf("unknown operation %q", o.Op)
	}

	return nil
}

func (c *Controller) Filter() summary.Filter {
	return c.filter
}

func (c *Controller) SetFilter(f summary.Filter) {
	c.filter = f
}

// CycleFilter moves to the next filter: All, then each category in order.
func (c *Controller) CycleFilter() summary.Filter {
	filters := c.engine.Filters()
	i := slices.Index(filters, c.filter)
	c.filter = filters[(i+1)%len(filters)]

	return c.filter
}

func (c *Controller) Categories() expense.Categories {
	return c.engine.Categories()
}

// View derives the visible rows, total and category breakdown.
func (c *Controller) View() summary.View {
	return c.memo.Compute(c.cache.Version(), c.cache.Items, c.filter)
}

// Expense returns the confirmed cache entry for id.
func (c *Controller) Expense(id expense.ID) (expense.Expense, bool) {
	return c.cache.Get(id)
}

// resetDraft restores the add-form defaults in place so bound widgets keep
// pointing at the live draft.
func (c *Controller) resetDraft() {
	f := NewForm(c.engine.Categories(), expense.Today(c.now()))
	if c.draft == nil {
		c.draft = &f
		return
	}

	*c.draft = f
}
