package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taghazout/shared/constant"
	"taghazout/shared/dto"
	"taghazout/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, ModifiedAt: modifiedAt})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.ModifiedAt)
	assert.NotEqual(t, metadata.CreatedAt, metadata.ModifiedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=price&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "price", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid numbers ignored",
			query:          "page=abc&limit=-3&sort_dir=sideways",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults keeps zero values",
			query:    "",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/listings?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_ClampLimit(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 500}
	params.ClampLimit(100)
	assert.Equal(t, 100, params.Limit)

	params = dto.QueryParams{Page: 1, Limit: 20}
	params.ClampLimit(100)
	assert.Equal(t, 20, params.Limit)

	params.ClampLimit(0)
	assert.Equal(t, 20, params.Limit)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		params   dto.QueryParams
		expected []int
		meta     dto.Pagination
	}{
		{
			name:     "first page",
			params:   dto.QueryParams{Page: 1, Limit: 3},
			expected: []int{1, 2, 3},
			meta:     dto.Pagination{Page: 1, Limit: 3, Total: 7, TotalPage: 3},
		},
		{
			name:     "last partial page",
			params:   dto.QueryParams{Page: 3, Limit: 3},
			expected: []int{7},
			meta:     dto.Pagination{Page: 3, Limit: 3, Total: 7, TotalPage: 3},
		},
		{
			name:     "page beyond range is empty",
			params:   dto.QueryParams{Page: 9, Limit: 3},
			expected: []int{},
			meta:     dto.Pagination{Page: 9, Limit: 3, Total: 7, TotalPage: 3},
		},
		{
			name:     "no limit returns everything",
			params:   dto.QueryParams{},
			expected: items,
			meta:     dto.Pagination{Page: 1, Limit: 0, Total: 7, TotalPage: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, meta := dto.Paginate(items, tt.params)

			assert.NotNil(t, page)
			assert.Equal(t, tt.expected, page)
			assert.Equal(t, tt.meta, meta)
		})
	}
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	params := dto.QueryParams{Page: 184467440737095517, Limit: 100}

	start, end := params.Window(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)

	page, meta := dto.Paginate([]int{1, 2, 3}, params)
	assert.NotNil(t, page)
	assert.Empty(t, page)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 1, meta.TotalPage)
}

func TestPaginate_EmptyInput(t *testing.T) {
	page, meta := dto.Paginate([]string(nil), dto.QueryParams{Page: 1, Limit: 10})

	assert.NotNil(t, page)
	assert.Empty(t, page)
	assert.Equal(t, 1, meta.TotalPage)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality with table",
			filter:    dto.Filter{Field: "slug", Value: "surf-week", Operator: dto.FilterOperatorEq, Table: "listings"},
			wantWhere: "listings.slug = :slug",
			wantArgs:  map[string]any{"slug": "surf-week"},
		},
		{
			name:      "like is case insensitive",
			filter:    dto.Filter{Field: "category", Value: "Surf", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(category) LIKE LOWER(:category)",
			wantArgs:  map[string]any{"category": "%Surf%"},
		},
		{
			name:      "in expands arguments",
			filter:    dto.Filter{Field: "status", Value: []string{"active", "draft"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "active", "status_1": "draft"},
		},
		{
			name:      "in with scalar is ignored",
			filter:    dto.Filter{Field: "status", Value: "active", Operator: dto.FilterOperatorIn},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "deleted_at", Operator: dto.FilterIsNull},
			wantWhere: "deleted_at IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "custom arg name",
			filter:    dto.Filter{ArgName: "min_price", Field: "price", Value: 100, Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "price >= :min_price",
			wantArgs:  map[string]any{"min_price": 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "active", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "c1", Field: "category", Value: "surf", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "c2", Field: "category", Value: "yoga", Operator: dto.FilterOperatorEq},
				},
			},
			"ignored",
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND (category = :c1 OR category = :c2))", where)
	assert.Equal(t, map[string]any{"status": "active", "c1": "surf", "c2": "yoga"}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()
	assert.Empty(t, where)
	assert.Empty(t, args)
}
