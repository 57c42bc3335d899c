package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Category is a closed set of book categories. Each category is bound to a
// stable integer code, assigned by declaration order. The codes are a storage
// and wire contract: persisted rows and search filters use them, so they must
// never be renumbered.
type Category int

const (
	CategoryLiterature Category = iota
	CategoryFiction
	CategoryAction
	CategoryThriller
	CategoryTechnology
	CategoryDrama
	CategoryPoetry
	CategoryOthers
)

// categoryNames maps codes to symbolic names by index. Both tables below are
// written once at package init and never mutated afterwards.
var categoryNames = [...]string{
	CategoryLiterature: "LITERATURE",
	CategoryFiction:    "FICTION",
	CategoryAction:     "ACTION",
	CategoryThriller:   "THRILLER",
	CategoryTechnology: "TECHNOLOGY",
	CategoryDrama:      "DRAMA",
	CategoryPoetry:     "POETRY",
	CategoryOthers:     "OTHERS",
}

var categoriesByName = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for code, name := range categoryNames {
		m[name] = Category(code)
	}
	return m
}()

// Categories returns every category in code order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

// CategoryFromCode resolves a category from its integer code. The second
// return value is false for codes outside the closed set.
func CategoryFromCode(code int) (Category, bool) {
	if code < 0 || code >= len(categoryNames) {
		return 0, false
	}
	return Category(code), true
}

// CategoryFromName resolves a category from its symbolic name.
func CategoryFromName(name string) (Category, bool) {
	c, ok := categoriesByName[name]
	return c, ok
}

// Code returns the stable integer code for the category.
func (c Category) Code() int {
	return int(c)
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalJSON serializes the category as its symbolic name.
func (c Category) MarshalJSON() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, errors.Errorf("unknown category code %d", int(c))
	}
	return json.Marshal(categoryNames[c])
}

// UnmarshalJSON accepts the symbolic name.
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.WithStack(err)
	}
	cat, ok := CategoryFromName(name)
	if !ok {
		return errors.Errorf("unknown category %q", name)
	}
	*c = cat
	return nil
}

// Value stores the category as its integer code.
func (c Category) Value() (driver.Value, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, errors.Errorf("unknown category code %d", int(c))
	}
	return int64(c), nil
}

// Scan reads the integer code back from the database.
func (c *Category) Scan(src interface{}) error {
	code, ok := src.(int64)
	if !ok {
		return errors.Errorf("cannot scan %T into Category", src)
	}
	cat, found := CategoryFromCode(int(code))
	if !found {
		return errors.Errorf("unknown category code %d", code)
	}
	*c = cat
	return nil
}
