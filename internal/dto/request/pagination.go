package request

import (
	"math"
	"net/http"

	"restaurant-review/pkg/utils"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// NewPaginatedRequest reads page and per_page from the query string,
// falling back to the first page of ten.
func NewPaginatedRequest(r *http.Request) *PaginatedRequest {
	q := r.URL.Query()
	return &PaginatedRequest{
		Page:    utils.ParseInt(q.Get("page"), 1),
		PerPage: utils.ParseInt(q.Get("per_page"), defaultPerPage),
	}
}

// Offset saturates at math.MaxInt for pages too far out to address.
func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	limit := p.Limit()
	if p.Page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (p.Page - 1) * limit
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return defaultPerPage
	}
	if p.PerPage > maxPerPage {
		return maxPerPage
	}
	return p.PerPage
}
