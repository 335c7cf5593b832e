package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// FieldFunc returns the value of a public field for an item.
type FieldFunc[T any] func(item T, field string) any

// Slice evaluates p over an in-memory collection with the same semantics
// Query renders into SQL.
func Slice[T any](items []T, domain Domain, p Params, field FieldFunc[T]) Page[T] {
	p = p.Normalize()

	matched := make([]T, 0, len(items))
	filters := domain.filterKeys(p.Filters)
	term := strings.ToLower(strings.TrimSpace(p.Search))

	for _, item := range items {
		if !matchesFilters(item, filters, p.Filters, field) {
			continue
		}
		if term != "" && !matchesSearch(item, domain.SearchFields, term, field) {
			continue
		}
		matched = append(matched, item)
	}

	keys := domain.sortKeys(p.Sort)
	slices.SortStableFunc(matched, func(a, b T) int {
		for _, k := range keys {
			c := compareValues(field(a, k.field), field(b, k.field))
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})

	total := len(matched)
	start := min(p.Skip(), total)
	end := min(start+p.Limit, total)
	return NewPage(slices.Clone(matched[start:end]), total, p)
}

func matchesFilters[T any](item T, keys []string, filters map[string]string, field FieldFunc[T]) bool {
	for _, key := range keys {
		if textOf(field(item, key)) != filters[key] {
			return false
		}
	}
	return true
}

func matchesSearch[T any](item T, fields []string, term string, field FieldFunc[T]) bool {
	for _, name := range fields {
		if strings.Contains(strings.ToLower(textOf(field(item, name))), term) {
			return true
		}
	}
	return false
}

func textOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}

func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y))
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(textOf(a), textOf(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
