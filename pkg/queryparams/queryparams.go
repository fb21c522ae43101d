// Package queryparams parses list/pagination query strings.
package queryparams

import "strings"

const (
	DefaultPage    = 1
	DefaultPerPage = 25
	MaxPerPage     = 200
	OrderAsc       = "asc"
	OrderDesc      = "desc"
	DefaultOrderBy = OrderDesc
)

type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Search  string `query:"search"`
	Unread  bool   `query:"unread"`
	OrderBy string `query:"order"`
}

// DefaultListParams is the first page, newest first.
func DefaultListParams() ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		OrderBy: DefaultOrderBy,
	}
}

// Validate clamps paging values and normalizes the rest.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	p.Search = strings.TrimSpace(p.Search)
	p.OrderBy = strings.ToLower(p.OrderBy)
	if p.OrderBy != OrderAsc && p.OrderBy != OrderDesc {
		p.OrderBy = DefaultOrderBy
	}
}

func (p ListParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

func (m PaginationMeta) HasPrev() bool { return m.CurrentPage > 1 }
func (m PaginationMeta) HasNext() bool { return m.CurrentPage < m.TotalPages }
func (m PaginationMeta) PrevPage() int { return m.CurrentPage - 1 }
func (m PaginationMeta) NextPage() int { return m.CurrentPage + 1 }

type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

func NewPaginatedResult(data interface{}, total int64, params ListParams) *PaginatedResult {
	totalPages := 0
	if params.PerPage > 0 {
		totalPages = int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	}
	return &PaginatedResult{
		Data: data,
		Meta: PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  totalPages,
		},
	}
}
