package dto

import (
	"net/http"
	"strconv"
	"strings"

	"taghazout/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// With defaultRequest set, missing Page and Limit fall back to the package defaults.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// ClampLimit caps Limit so a single request cannot page the whole catalog at once.
func (q *QueryParams) ClampLimit(maxLimit int) {
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
}

// Window returns the [start, end) slice bounds of the requested page over total items.
func (q *QueryParams) Window(total int) (start, end int) {
	if q.Limit <= 0 {
		return 0, total
	}

	page := max(q.Page, 1)
	if page-1 > total/q.Limit {
		return total, total
	}

	start = min((page-1)*q.Limit, total)
	end = min(start+q.Limit, total)

	return start, end
}
