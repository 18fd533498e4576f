package common

// Page points at an adjacent page in a paginated listing.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries optional links to the adjacent pages. Next is present
// only when more rows exist past the current page; Prev only when the
// current page starts past the first row.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Normalize applies the listing defaults to page and limit.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// Offset returns the row offset for a 1-based page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// Paginate computes the pagination links for a page of a listing with
// total rows overall.
func Paginate(page, limit, total int) Pagination {
	startIndex := Offset(page, limit)

	var p Pagination
	if startIndex+limit < total {
		p.Next = &Page{Page: page + 1, Limit: limit}
	}
	if startIndex > 0 {
		p.Prev = &Page{Page: page - 1, Limit: limit}
	}
	return p
}
