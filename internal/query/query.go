package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Query accumulates WHERE conditions, ordering and paging for a SQL list
// statement. Stages may be applied in any order; rendering always emits
// WHERE, ORDER BY, LIMIT and OFFSET in that sequence.
type Query struct {
	domain Domain
	conds  []string
	args   []any
	sort   []sortKey
	limit  int
	offset int
	paged  bool
}

func New(domain Domain) *Query {
	return &Query{domain: domain}
}

// Where adds a condition using "?" placeholders.
func (q *Query) Where(cond string, args ...any) *Query {
	q.conds = append(q.conds, cond)
	q.args = append(q.args, args...)
	return q
}

// Filter adds an equality condition per known filter key. Values compare
// against the column's text form so "true" matches a boolean column.
func (q *Query) Filter(p Params) *Query {
	for _, key := range q.domain.filterKeys(p.Filters) {
		q.Where(fmt.Sprintf("%s::text = ?", q.domain.Fields[key]), p.Filters[key])
	}
	return q
}

// Search adds a case-insensitive substring match over the domain's search
// fields. An empty term adds nothing.
func (q *Query) Search(p Params) *Query {
	term := strings.TrimSpace(p.Search)
	if term == "" || len(q.domain.SearchFields) == 0 {
		return q
	}

	pattern := "%" + escapeLike(term) + "%"
	parts := make([]string, 0, len(q.domain.SearchFields))
	args := make([]any, 0, len(q.domain.SearchFields))
	for _, field := range q.domain.SearchFields {
		column, ok := q.domain.Fields[field]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s ILIKE ?", column))
		args = append(args, pattern)
	}
	if len(parts) == 0 {
		return q
	}
	return q.Where("("+strings.Join(parts, " OR ")+")", args...)
}

func (q *Query) Sort(p Params) *Query {
	q.sort = q.domain.sortKeys(p.Sort)
	return q
}

func (q *Query) Paginate(p Params) *Query {
	p = p.Normalize()
	q.limit = p.Limit
	q.offset = p.Skip()
	q.paged = true
	return q
}

// Apply runs every stage with p.
func (q *Query) Apply(p Params) *Query {
	return q.Filter(p).Search(p).Sort(p).Paginate(p)
}

// Count renders "SELECT COUNT(*) <from> WHERE ...".
func (q *Query) Count(from string) (string, []any) {
	where, args := q.where(1)
	return "SELECT COUNT(*) " + from + where, args
}

// Select renders selectFrom followed by WHERE, ORDER BY and paging.
func (q *Query) Select(selectFrom string) (string, []any) {
	where, args := q.where(1)

	var b strings.Builder
	b.WriteString(selectFrom)
	b.WriteString(where)
	b.WriteString(q.orderBy())

	if q.paged {
		b.WriteString(" LIMIT $")
		b.WriteString(strconv.Itoa(len(args) + 1))
		b.WriteString(" OFFSET $")
		b.WriteString(strconv.Itoa(len(args) + 2))
		args = append(args, q.limit, q.offset)
	}
	return b.String(), args
}

func (q *Query) where(start int) (string, []any) {
	if len(q.conds) == 0 {
		return "", nil
	}

	n := start
	rendered := make([]string, 0, len(q.conds))
	for _, cond := range q.conds {
		var b strings.Builder
		for _, r := range cond {
			if r == '?' {
				b.WriteString("$")
				b.WriteString(strconv.Itoa(n))
				n++
				continue
			}
			b.WriteRune(r)
		}
		rendered = append(rendered, b.String())
	}

	args := make([]any, len(q.args))
	copy(args, q.args)
	return " WHERE " + strings.Join(rendered, " AND "), args
}

func (q *Query) orderBy() string {
	keys := q.sort
	if keys == nil {
		keys = q.domain.sortKeys("")
	}
	if len(keys) == 0 {
		return ""
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		dir := "ASC"
		if k.desc {
			dir = "DESC"
		}
		parts = append(parts, q.domain.Fields[k.field]+" "+dir)
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func sortStrings(s []string) {
	sort.Strings(s)
}
