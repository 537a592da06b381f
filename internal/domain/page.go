package domain

// PaginationParams carries page/limit values from the HTTP layer.
// Page is 1-indexed. Limit is capped at MaxPageLimit by NewPaginationParams.
type PaginationParams struct {
	Page  int
	Limit int
}

// Page size bounds for paginated listings.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil or non-positive values fall back to page=1, limit=DefaultPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based index of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Bounds returns the half-open [start, end) range of the page within a
// listing of total items. A page past the end yields an empty range.
func (p PaginationParams) Bounds(total int) (start, end int) {
	start = min(p.Offset(), total)
	end = min(start+p.Limit, total)
	return start, end
}
