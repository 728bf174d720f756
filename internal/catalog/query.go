package catalog

import (
	"net/http"
	"net/url"
	"strconv"

	"taghazout/shared/constant"
	gDto "taghazout/shared/dto"
)

// Query is a catalog list request: the filter criteria plus paging.
type Query struct {
	Criteria
	Status string
	Params gDto.QueryParams
}

// ParseQuery reads q, category, location, sort, status, page and limit from r.
// The language comes from the resolved request locale rather than the URL.
func ParseQuery(r *http.Request, lang string) Query {
	values := r.URL.Query()

	query := Query{
		Criteria: Criteria{
			Query:    values.Get(constant.RequestParamQuery),
			Category: values.Get(constant.RequestParamCategory),
			Location: values.Get(constant.RequestParamLocation),
			Sort:     values.Get(constant.RequestParamSort),
			Lang:     lang,
		}.Normalize(),
		Status: values.Get(constant.RequestParamStatus),
	}

	query.Params.FromRequest(r, true)

	return query
}

// Values is the canonical form of the query, used as a cache key.
func (q Query) Values() url.Values {
	values := url.Values{}

	values.Set(constant.RequestParamQuery, q.Query)
	values.Set(constant.RequestParamCategory, q.Category)
	values.Set(constant.RequestParamLocation, q.Location)
	values.Set(constant.RequestParamSort, q.Sort)
	values.Set(constant.RequestParamLang, q.Lang)
	values.Set(constant.RequestParamStatus, q.Status)
	values.Set(constant.RequestParamPage, strconv.Itoa(q.Params.Page))
	values.Set(constant.RequestParamLimit, strconv.Itoa(q.Params.Limit))

	return values
}
