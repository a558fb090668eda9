package expense

import "slices"

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = Categories{
	CategoryFood,
	CategoryTransport,
	CategoryBills,
	CategoryEntertainment,
	CategoryOther,
}

// Categories is an ordered, closed set of categories.
type Categories []Category

// NewCategories converts configured names into a category set.
func NewCategories(names []string) Categories {
	cats := make(Categories, 0, len(names))
	for _, n := range names {
		cats = append(cats, Category(n))
	}

	return cats
}

func (c Categories) Contains(cat Category) bool {
	return slices.Contains(c, cat)
}

// First returns the default selection for a fresh form.
func (c Categories) First() Category {
	if len(c) == 0 {
		return CategoryOther
	}

	return c[0]
}

func (c Categories) Strings() []string {
	out := make([]string, len(c))
	for i, cat := range c {
		out[i] = string(cat)
	}

	return out
}
