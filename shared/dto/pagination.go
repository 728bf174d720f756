package dto

import "math"

// Pagination is the page metadata every list endpoint returns next to its items.
type Pagination struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"total_page"`
}

func NewPagination(params QueryParams, total int) Pagination {
	return Pagination{
		Page:      max(params.Page, 1),
		Limit:     params.Limit,
		Total:     total,
		TotalPage: TotalPage(total, params.Limit),
	}
}

// Paginate returns the page of items selected by params. The result is never nil.
func Paginate[T any](items []T, params QueryParams) ([]T, Pagination) {
	start, end := params.Window(len(items))

	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)

	return page, NewPagination(params, len(items))
}

// TotalPage is never below one, so an empty result still reports a single page.
func TotalPage(total, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}

	return int(math.Ceil(float64(total) / float64(limit)))
}
