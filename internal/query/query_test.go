package query

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accounts = Domain{
	Fields: map[string]string{
		"id":        "u.id",
		"name":      "u.name",
		"bio":       "u.bio",
		"role":      "u.role",
		"isActive":  "u.is_active",
		"createdAt": "u.created_at",
	},
	SearchFields: []string{"name", "bio"},
	DefaultSort:  "-createdAt",
	TieBreaker:   "id",
}

func TestParseParamsSeparatesReservedKeys(t *testing.T) {
	values := url.Values{
		"search": {"ali"},
		"sort":   {"-name"},
		"page":   {"2"},
		"limit":  {"5"},
		"role":   {"admin"},
		"bogus":  {"x"},
	}
	p := ParseParams(values)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, "-name", p.Sort)
	assert.Equal(t, "ali", p.Search)
	assert.Equal(t, map[string]string{"role": "admin", "bogus": "x"}, p.Filters)
}

func TestParamsDefaultsAndCaps(t *testing.T) {
	p := ParseParams(url.Values{"page": {"-3"}, "limit": {"abc"}})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Skip())

	p = ParseParams(url.Values{"page": {"3"}, "limit": {"5000"}})
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Skip())
}

func TestPaginationOverTwentyThreeRecords(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}
	field := func(item int, name string) any {
		if name == "id" {
			return fmt.Sprintf("%03d", item)
		}
		return nil
	}
	domain := Domain{Fields: map[string]string{"id": "id"}, TieBreaker: "id"}

	cases := []struct {
		page      int
		wantItems int
		wantPrev  *int
		wantNext  *int
	}{
		{page: 1, wantItems: 10, wantNext: ptr(2)},
		{page: 2, wantItems: 10, wantPrev: ptr(1), wantNext: ptr(3)},
		{page: 3, wantItems: 3, wantPrev: ptr(2)},
		{page: 4, wantItems: 0, wantPrev: ptr(3)},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("page %d", tc.page), func(t *testing.T) {
			page := Slice(items, domain, Params{Page: tc.page, Limit: 10}, field)

			assert.Len(t, page.Items, tc.wantItems)
			assert.Equal(t, 23, page.Total)
			assert.Equal(t, 3, page.Pagination.TotalPages)
			assert.Equal(t, 1, page.Pagination.FirstPage)
			assert.Equal(t, 3, page.Pagination.LastPage)
			assert.Equal(t, 10, page.Pagination.PerPage)
			assert.Equal(t, tc.wantPrev, page.Pagination.Prev)
			assert.Equal(t, tc.wantNext, page.Pagination.Next)
		})
	}
}

func TestPaginationEmptyCollection(t *testing.T) {
	pg := NewPagination(0, Params{})
	assert.Equal(t, 0, pg.TotalPages)
	assert.Equal(t, 0, pg.LastPage)
	assert.Nil(t, pg.Prev)
	assert.Nil(t, pg.Next)
}

func TestSelectRendersAllStages(t *testing.T) {
	p := Params{
		Page:    2,
		Limit:   5,
		Sort:    "name,-createdAt",
		Search:  "50%_off",
		Filters: map[string]string{"role": "user", "isActive": "true", "password": "x"},
	}
	q := New(accounts).Where("u.id <> ?", "me").Apply(p)

	sql, args := q.Select("SELECT u.id FROM users u")
	assert.Equal(t,
		"SELECT u.id FROM users u WHERE u.id <> $1 AND u.is_active::text = $2 AND u.role::text = $3"+
			" AND (u.name ILIKE $4 OR u.bio ILIKE $5)"+
			" ORDER BY u.name ASC, u.created_at DESC, u.id ASC LIMIT $6 OFFSET $7",
		sql)
	assert.Equal(t, []any{"me", "true", "user", `%50\%\_off%`, `%50\%\_off%`, 5, 5}, args)

	count, countArgs := q.Count("FROM users u")
	assert.Equal(t,
		"SELECT COUNT(*) FROM users u WHERE u.id <> $1 AND u.is_active::text = $2 AND u.role::text = $3"+
			" AND (u.name ILIKE $4 OR u.bio ILIKE $5)",
		count)
	assert.Len(t, countArgs, 5)
}

func TestStageOrderDoesNotMatter(t *testing.T) {
	p := Params{Page: 3, Limit: 4, Sort: "-name", Filters: map[string]string{"role": "user"}}

	a, aArgs := New(accounts).Filter(p).Sort(p).Paginate(p).Select("SELECT 1 FROM users u")
	b, bArgs := New(accounts).Paginate(p).Sort(p).Filter(p).Select("SELECT 1 FROM users u")

	assert.Equal(t, a, b)
	assert.Equal(t, aArgs, bArgs)
}

func TestDefaultSortIsMostRecentFirst(t *testing.T) {
	sql, args := New(accounts).Select("SELECT 1 FROM users u")
	assert.Equal(t, "SELECT 1 FROM users u ORDER BY u.created_at DESC, u.id ASC", sql)
	assert.Empty(t, args)

	sql, _ = New(accounts).Sort(Params{Sort: "password,-nope"}).Select("SELECT 1 FROM users u")
	assert.Contains(t, sql, "ORDER BY u.created_at DESC, u.id ASC")
}

type account struct {
	id        string
	name      string
	bio       string
	role      string
	active    bool
	createdAt time.Time
}

func accountField(a account, field string) any {
	switch field {
	case "id":
		return a.id
	case "name":
		return a.name
	case "bio":
		return a.bio
	case "role":
		return a.role
	case "isActive":
		return a.active
	case "createdAt":
		return a.createdAt
	}
	return nil
}

func TestSliceFilterSearchSort(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []account{
		{id: "1", name: "Alice", bio: "gopher", role: "user", active: true, createdAt: base},
		{id: "2", name: "Bob", bio: "ALICE fan", role: "user", active: true, createdAt: base.Add(time.Hour)},
		{id: "3", name: "Carol", bio: "", role: "admin", active: true, createdAt: base.Add(2 * time.Hour)},
		{id: "4", name: "alicia", bio: "", role: "user", active: false, createdAt: base.Add(3 * time.Hour)},
	}

	page := Slice(items, accounts, Params{Search: "ali"}, accountField)
	require.Len(t, page.Items, 3)
	assert.Equal(t, []string{"4", "2", "1"}, ids(page.Items))

	page = Slice(items, accounts, Params{Search: "ali", Filters: map[string]string{"isActive": "true"}, Sort: "name"}, accountField)
	assert.Equal(t, []string{"1", "2"}, ids(page.Items))

	page = Slice(items, accounts, Params{Filters: map[string]string{"role": "admin", "unknown": "zzz"}}, accountField)
	assert.Equal(t, []string{"3"}, ids(page.Items))
}

func TestMapPageKeepsMetadata(t *testing.T) {
	page := NewPage([]int{1, 2}, 12, Params{Page: 1, Limit: 2})
	mapped := MapPage(page, func(i int) string { return fmt.Sprint(i * 10) })

	assert.Equal(t, []string{"10", "20"}, mapped.Items)
	assert.Equal(t, page.Pagination, mapped.Pagination)
	assert.Equal(t, 12, mapped.Total)
	assert.NotNil(t, NewPage[int](nil, 0, Params{}).Items)
}

func ids(items []account) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.id)
	}
	return out
}

func ptr(n int) *int { return &n }
