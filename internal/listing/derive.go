package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sorting struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle flips the direction of the active key; a new key starts ascending.
func (s Sorting) Toggle(key string) Sorting {
	if s.Key == key && s.Direction == Asc {
		return Sorting{Key: key, Direction: Desc}
	}
	return Sorting{Key: key, Direction: Asc}
}

// Criteria is everything the derivation depends on.
type Criteria[T any] struct {
	Tab         func(item T) string
	ActiveTab   string
	Filters     map[string]func(item T, value string) bool
	FilterValue map[string]string
	Search      func(item T) []string
	Term        string
	Columns     map[string]func(item T) any
	Sorting     Sorting
}

// Derive applies tab, filters and search, then stable-sorts the result.
// It never modifies items.
func Derive[T any](items []T, c Criteria[T]) []T {
	term := strings.ToLower(strings.TrimSpace(c.Term))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if c.Tab != nil && c.ActiveTab != "" && c.Tab(item) != c.ActiveTab {
			continue
		}
		if !matchFilters(item, c.Filters, c.FilterValue) {
			continue
		}
		if term != "" && c.Search != nil && !matchSearch(c.Search(item), term) {
			continue
		}
		out = append(out, item)
	}

	column, ok := c.Columns[c.Sorting.Key]
	if !ok {
		return out
	}
	desc := c.Sorting.Direction == Desc
	slices.SortStableFunc(out, func(a, b T) int {
		r := Compare(column(a), column(b))
		if desc {
			return -r
		}
		return r
	})
	return out
}

func matchFilters[T any](item T, filters map[string]func(T, string) bool, values map[string]string) bool {
	for name, value := range values {
		if value == "" {
			continue
		}
		pred, ok := filters[name]
		if !ok {
			continue
		}
		if !pred(item, value) {
			return false
		}
	}
	return true
}

func matchSearch(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Compare is a three-way comparison over the key kinds lists sort by.
// Missing or mismatched keys compare equal.
func Compare(a, b any) int {
	if a == nil || b == nil {
		return 0
	}
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			if x.IsZero() || y.IsZero() {
				return 0
			}
			return x.Compare(y)
		}
	}
	return 0
}
