package query

type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	FirstPage  int  `json:"first_page"`
	LastPage   int  `json:"last_page"`
	Prev       *int `json:"prev,omitempty"`
	Next       *int `json:"next,omitempty"`
}

// NewPagination describes page p.Page of total matching records.
func NewPagination(total int, p Params) Pagination {
	p = p.Normalize()

	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}

	pg := Pagination{
		Page:       p.Page,
		PerPage:    p.Limit,
		TotalPages: totalPages,
		FirstPage:  1,
		LastPage:   totalPages,
	}
	if p.Skip() > 0 {
		prev := p.Page - 1
		pg.Prev = &prev
	}
	if p.Skip()+p.Limit < total {
		next := p.Page + 1
		pg.Next = &next
	}
	return pg
}

// Page is one page of a list result.
type Page[T any] struct {
	Total      int
	Pagination Pagination
	Items      []T
}

func NewPage[T any](items []T, total int, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Total:      total,
		Pagination: NewPagination(total, p),
		Items:      items,
	}
}

// MapPage converts the items of a page, keeping its metadata.
func MapPage[T, U any](page Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, fn(item))
	}
	return Page[U]{
		Total:      page.Total,
		Pagination: page.Pagination,
		Items:      items,
	}
}
