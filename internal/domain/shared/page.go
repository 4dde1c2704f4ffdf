package shared

import "github.com/shopspring/decimal"

func init() {
	// The backend sends and expects amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// PageQuery carries the optional paging parameters of list endpoints.
// Nil fields are left to the backend's defaults.
type PageQuery struct {
	PageNum  *int
	PageSize *int
}

// Page returns a PageQuery for num and size.
func Page(num, size int) PageQuery {
	return PageQuery{PageNum: &num, PageSize: &size}
}

// PageResult is the paged list shape the backend returns.
type PageResult[T any] struct {
	List        []T   `json:"list"`
	Total       int64 `json:"total"`
	PageNum     int   `json:"pageNum"`
	PageSize    int   `json:"pageSize"`
	Pages       int   `json:"pages,omitempty"`
	HasNext     bool  `json:"hasNext,omitempty"`
	HasPrevious bool  `json:"hasPrevious,omitempty"`
}

// HasMore reports whether pages remain after this one. Not every endpoint
// fills hasNext, so it is derived from the totals as well.
func (p PageResult[T]) HasMore() bool {
	return p.HasNext || int64(p.PageNum)*int64(p.PageSize) < p.Total
}
