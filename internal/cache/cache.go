// Package cache holds the client's copy of the expenses the remote store has
// confirmed. It is mutated only with confirmed results and is not safe for
// concurrent use: drive it from the UI event loop.
package cache

import (
	"errors"
	"slices"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

var ErrMissingID = errors.New("expense has no id")

type Cache struct {
	items   []expense.Expense
	version uint64
}

func New() *Cache {
	return &Cache{}
}

// ReplaceAll swaps the whole content for items. Nothing changes if any item
// lacks an id.
func (c *Cache) ReplaceAll(items []expense.Expense) error {
	for _, e := range items {
		if e.ID.IsZero() {
			return ErrMissingID
		}
	}

	c.items = slices.Clone(items)
	c.version++

	return nil
}

func (c *Cache) Append(e expense.Expense) error {
	if e.ID.IsZero() {
		return ErrMissingID
	}

	c.items = append(c.items, e)
	c.version++

	return nil
}

// ReplaceOne overwrites the entry with the given id. It reports false and
// leaves the cache untouched when no such entry exists.
func (c *Cache) ReplaceOne(id expense.ID, e expense.Expense) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}

	c.items[i] = e
	c.version++

	return true
}

func (c *Cache) RemoveOne(id expense.ID) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}

	c.items = slices.Delete(c.items, i, i+1)
	c.version++

	return true
}

// Items returns a copy of the cached expenses in order.
func (c *Cache) Items() []expense.Expense {
	return slices.Clone(c.items)
}

func (c *Cache) Get(id expense.ID) (expense.Expense, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return expense.Expense{}, false
	}

	return c.items[i], true
}

func (c *Cache) Len() int {
	return len(c.items)
}

// Version changes on every successful mutation.
func (c *Cache) Version() uint64 {
	return c.version
}

func (c *Cache) indexOf(id expense.ID) int {
	return slices.IndexFunc(c.items, func(e expense.Expense) bool { return e.ID == id })
}
