package rabbitmq

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is used when a pagination descriptor does not
	// specify a page size.
	DefaultPageSize = 100
	// MaxPageSize is the largest page size the HTTP API accepts.
	MaxPageSize = 500
)

// PaginationParams selects a page of a paginated list endpoint. Pages are
// 1-indexed. The zero value requests the first page of DefaultPageSize
// items.
type PaginationParams struct {
	Page     int
	PageSize int
}

// NewPaginationParams returns a descriptor for the given page and page
// size.
func NewPaginationParams(page, pageSize int) PaginationParams {
	return PaginationParams{Page: page, PageSize: pageSize}
}

// EffectivePage returns the 1-indexed page number, treating zero and
// negative values as the first page.
func (p PaginationParams) EffectivePage() int {
	if p.Page < 1 {
		return 1
	}

	return p.Page
}

// EffectivePageSize returns the page size with the default applied and
// the maximum enforced.
func (p PaginationParams) EffectivePageSize() int {
	switch {
	case p.PageSize < 1:
		return DefaultPageSize
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	default:
		return p.PageSize
	}
}

// NextPage returns a descriptor for the page after this one.
func (p PaginationParams) NextPage() PaginationParams {
	return PaginationParams{
		Page:     p.EffectivePage() + 1,
		PageSize: p.PageSize,
	}
}

// ToQuery serializes the descriptor as "page=N&page_size=M" query values.
func (p PaginationParams) ToQuery() url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(p.EffectivePage()))
	query.Set("page_size", strconv.Itoa(p.EffectivePageSize()))

	return query
}

// PaginatedResponse is the envelope paginated list endpoints respond
// with when pagination query parameters are present.
type PaginatedResponse[T any] struct {
	FilteredCount int `json:"filtered_count" yaml:"filtered_count"`
	ItemCount     int `json:"item_count"     yaml:"item_count"`
	Items         []T `json:"items"          yaml:"items"`
	Page          int `json:"page"           yaml:"page"`
	PageCount     int `json:"page_count"     yaml:"page_count"`
	PageSize      int `json:"page_size"      yaml:"page_size"`
	TotalCount    int `json:"total_count"    yaml:"total_count"`
}

// IsLastPage reports whether fetching the next page cannot return more
// items.
func (r *PaginatedResponse[T]) IsLastPage() bool {
	return r.ItemCount == 0 || r.ItemCount < r.PageSize || r.Page >= r.PageCount
}
