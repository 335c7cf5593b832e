// Package query shapes list requests: equality filters, multi-field sort,
// case-insensitive search and page-number pagination. The same Params
// drive SQL generation (Query) and in-memory evaluation (Slice).
package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const (
	keySearch = "search"
	keySort   = "sort"
	keyPage   = "page"
	keyLimit  = "limit"
)

type Params struct {
	Page    int
	Limit   int
	Sort    string
	Search  string
	Filters map[string]string
}

// ParseParams reads list parameters from a query string. Reserved keys
// (search, sort, page, limit) never become filters.
func ParseParams(values url.Values) Params {
	p := Params{
		Sort:    strings.TrimSpace(values.Get(keySort)),
		Search:  strings.TrimSpace(values.Get(keySearch)),
		Page:    atoi(values.Get(keyPage)),
		Limit:   atoi(values.Get(keyLimit)),
		Filters: make(map[string]string),
	}

	for key, vals := range values {
		switch key {
		case keySearch, keySort, keyPage, keyLimit:
			continue
		}
		if len(vals) == 0 {
			continue
		}
		p.Filters[key] = vals[0]
	}

	return p.Normalize()
}

// Normalize applies defaults: page 1, limit 10, limit capped at MaxLimit.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Skip() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Domain describes which fields of a collection may be filtered, sorted and
// searched. Fields maps public field names to SQL column expressions.
type Domain struct {
	Fields       map[string]string
	SearchFields []string
	DefaultSort  string
	TieBreaker   string
}

type sortKey struct {
	field string
	desc  bool
}

// sortKeys parses a comma-joined sort list. A leading "-" sorts descending.
// Unknown fields are skipped; an empty result falls back to the default.
func (d Domain) sortKeys(spec string) []sortKey {
	keys := d.parseSort(spec)
	if len(keys) == 0 {
		keys = d.parseSort(d.DefaultSort)
	}
	if d.TieBreaker != "" {
		for _, k := range keys {
			if k.field == d.TieBreaker {
				return keys
			}
		}
		keys = append(keys, sortKey{field: d.TieBreaker})
	}
	return keys
}

func (d Domain) parseSort(spec string) []sortKey {
	var keys []sortKey
	seen := make(map[string]struct{})
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")
		if _, ok := d.Fields[part]; !ok {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		keys = append(keys, sortKey{field: part, desc: desc})
	}
	return keys
}

// filterKeys returns the filters that name a known field, in stable order.
func (d Domain) filterKeys(filters map[string]string) []string {
	var keys []string
	for key := range filters {
		if _, ok := d.Fields[key]; ok {
			keys = append(keys, key)
		}
	}
	sortStrings(keys)
	return keys
}
