package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is the page size when the client does not ask for one.
	DefaultPageSize = 20
	// AdminPageSize is the default page size of administrative listings.
	AdminPageSize = 25
	// MaxPageSize caps how many rows any page can hold.
	MaxPageSize = 100

	PageParam     = "page"
	PageSizeParam = "page_size"
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Normalize fills defaults and clamps the page size to MaxPageSize.
func (p Params) Normalize(defaultSize int) Params {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the number of rows preceding the page.
func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns how many pages count rows fill, at least one.
func TotalPages(count int64, pageSize int) int {
	if pageSize < 1 || count <= 0 {
		return 1
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

// Page is one page of results plus navigation links.
type Page[T any] struct {
	Count      int64   `json:"count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
	Next       *string `json:"next"`
	Previous   *string `json:"previous"`
	Results    []T     `json:"results"`
}

// NewPage assembles a page. Links are built from base, which keeps the caller's
// filters, and are omitted when base is nil.
func NewPage[T any](results []T, count int64, params Params, base *url.URL) Page[T] {
	if results == nil {
		results = []T{}
	}
	total := TotalPages(count, params.PageSize)
	page := Page[T]{
		Count:      count,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: total,
		Results:    results,
	}
	if base == nil {
		return page
	}
	if params.Page < total {
		page.Next = link(base, params.Page+1, params.PageSize)
	}
	if params.Page > 1 {
		prev := params.Page - 1
		if prev > total {
			prev = total
		}
		page.Previous = link(base, prev, params.PageSize)
	}
	return page
}

func link(base *url.URL, page, pageSize int) *string {
	u := *base
	q := u.Query()
	q.Set(PageParam, strconv.Itoa(page))
	q.Set(PageSizeParam, strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
