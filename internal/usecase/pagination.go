package usecase

import (
	"restaurant-review/internal/dto/request"
	"restaurant-review/internal/dto/response"
)

// paginate slices an already ordered result set.
func paginate[T any](items []T, req *request.PaginatedRequest) *response.PaginatedResponse[T] {
	if req == nil {
		req = &request.PaginatedRequest{Page: 1}
	}

	total := len(items)
	start := req.Offset()
	end := total
	if start >= total {
		start = total
	} else if req.Limit() < total-start {
		end = start + req.Limit()
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	return response.NewPaginatedResponse(data, page, req.Limit(), total)
}
