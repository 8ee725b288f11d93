package shared

import "math"

// PageRequest carries offset pagination plus the requested sort order.
type PageRequest struct {
	Page    int
	PerPage int
	SortBy  string
	SortDir string
}

// Normalize applies listing defaults: page 1, 20 rows, newest first.
func (p PageRequest) Normalize() PageRequest {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 || p.PerPage > 100 {
		p.PerPage = 20
	}
	if p.SortBy == "" {
		p.SortBy = "created_at"
	}
	if p.SortDir != "ASC" {
		p.SortDir = "DESC"
	}
	return p
}

// Offset returns the row offset for the normalized request.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}
