package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taghazout/internal/catalog"
	"taghazout/shared/i18n"
)

type entry struct {
	id          string
	title       i18n.Text
	description i18n.Text
	category    string
	location    string
	price       int64
	rating      float64
	featured    bool
	created     time.Time
}

func (e entry) Title() i18n.Text       { return e.title }
func (e entry) Description() i18n.Text { return e.description }
func (e entry) CategoryName() string   { return e.category }
func (e entry) LocationName() string   { return e.location }
func (e entry) PriceMinor() int64      { return e.price }
func (e entry) Score() float64         { return e.rating }
func (e entry) IsFeatured() bool       { return e.featured }
func (e entry) Created() time.Time     { return e.created }

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func fixtures() []entry {
	return []entry{
		{id: "a", title: i18n.Text{"en": "Riad in the Medina", "fr": "Riad dans la médina"}, category: "accommodation", location: "Marrakech, Morocco", price: 9000, rating: 4.6, created: day(1)},
		{id: "b", title: i18n.Text{"en": "Beginner Surf Lesson", "fr": "Cours de surf débutant"}, category: "surf-lesson", location: "Taghazout", price: 3500, rating: 4.9, featured: true, created: day(5)},
		{id: "c", title: i18n.Text{"en": "Atlas Mountains Day Tour"}, description: i18n.Text{"en": "Berber villages and waterfalls"}, category: "tour", location: "Marrakech", price: 6000, rating: 4.6, created: day(3)},
		{id: "d", title: i18n.Text{"en": "Quad Rental"}, category: "rental", location: "Agadir", price: 6000, rating: 4.1, featured: true, created: day(2)},
		{id: "e", title: i18n.Text{"en": "Sunset Camel Ride", "ar": "ركوب الجمال"}, category: "activity", location: "marrakech outskirts", price: 2500, rating: 3.8, created: day(4)},
	}
}

func ids(items []entry) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}

	return out
}

func TestApply_DefaultSpecIsFeaturedPartition(t *testing.T) {
	items := fixtures()

	got := catalog.Apply(items, catalog.Criteria{Category: "all", Location: "all", Lang: "en"})

	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(got))
}

func TestApply_UnknownSortFallsBackToFeatured(t *testing.T) {
	got := catalog.Apply(fixtures(), catalog.Criteria{Sort: "popularity"})

	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(got))
}

func TestApply_Sorts(t *testing.T) {
	tests := []struct {
		sort string
		want []string
	}{
		{sort: catalog.SortPrice, want: []string{"e", "b", "c", "d", "a"}},
		{sort: catalog.SortRating, want: []string{"b", "a", "c", "d", "e"}},
		{sort: catalog.SortNewest, want: []string{"b", "e", "c", "d", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			got := catalog.Apply(fixtures(), catalog.Criteria{Sort: tt.sort})

			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_PriceAscendingAndRatingDescendingInvariants(t *testing.T) {
	byPrice := catalog.Apply(fixtures(), catalog.Criteria{Sort: catalog.SortPrice})
	for i := 1; i < len(byPrice); i++ {
		assert.LessOrEqual(t, byPrice[i-1].price, byPrice[i].price)
	}

	byRating := catalog.Apply(fixtures(), catalog.Criteria{Sort: catalog.SortRating})
	for i := 1; i < len(byRating); i++ {
		assert.GreaterOrEqual(t, byRating[i-1].rating, byRating[i].rating)
	}
}

func TestApply_TextQuery(t *testing.T) {
	tests := []struct {
		name     string
		criteria catalog.Criteria
		want     []string
	}{
		{name: "case insensitive title", criteria: catalog.Criteria{Query: "surf", Lang: "en"}, want: []string{"b"}},
		{name: "surrounding whitespace ignored", criteria: catalog.Criteria{Query: " surf ", Lang: "en"}, want: []string{"b"}},
		{name: "matches description", criteria: catalog.Criteria{Query: "WATERFALLS", Lang: "en"}, want: []string{"c"}},
		{name: "localized title", criteria: catalog.Criteria{Query: "médina", Lang: "fr"}, want: []string{"a"}},
		{name: "missing translation falls back to en", criteria: catalog.Criteria{Query: "quad", Lang: "ar"}, want: []string{"d"}},
		{name: "no match", criteria: catalog.Criteria{Query: "ski", Lang: "en"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(catalog.Apply(fixtures(), tt.criteria)))
		})
	}
}

func TestApply_CategoryIsExact(t *testing.T) {
	got := catalog.Apply(fixtures(), catalog.Criteria{Category: "tour"})

	assert.Equal(t, []string{"c"}, ids(got))
	for _, item := range got {
		assert.Equal(t, "tour", item.category)
	}

	assert.Empty(t, catalog.Apply(fixtures(), catalog.Criteria{Category: "Tour"}))
}

func TestApply_LocationSubstring(t *testing.T) {
	got := catalog.Apply(fixtures(), catalog.Criteria{Location: "Marrakech", Sort: catalog.SortNewest})

	assert.Equal(t, []string{"c", "a"}, ids(got))
	for _, item := range got {
		assert.Contains(t, item.location, "Marrakech")
	}
}

func TestApply_FiltersCombineWithAnd(t *testing.T) {
	got := catalog.Apply(fixtures(), catalog.Criteria{Query: "tour", Category: "tour", Location: "Marrakech"})
	assert.Equal(t, []string{"c"}, ids(got))

	got = catalog.Apply(fixtures(), catalog.Criteria{Query: "tour", Category: "rental"})
	assert.Empty(t, got)
}

func TestApply_PureAndIdempotent(t *testing.T) {
	items := fixtures()
	before := ids(items)
	criteria := catalog.Criteria{Sort: catalog.SortPrice, Location: "all"}

	first := catalog.Apply(items, criteria)
	second := catalog.Apply(items, criteria)

	assert.Equal(t, before, ids(items))
	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, ids(first), ids(catalog.Apply(first, criteria)))
}

func TestApply_EmptyInputReturnsEmptySlice(t *testing.T) {
	got := catalog.Apply([]entry(nil), catalog.Criteria{})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCriteria_Normalize(t *testing.T) {
	criteria := catalog.Criteria{Query: "  surf ", Sort: "cheapest"}.Normalize()

	assert.Equal(t, "surf", criteria.Query)
	assert.Equal(t, catalog.SortFeatured, criteria.Sort)
	assert.Equal(t, i18n.Fallback, criteria.Lang)
}

func TestParseQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/listings?q=%20surf%20&category=tour&location=Tamraght&sort=bogus&page=2&limit=5", nil)

	query := catalog.ParseQuery(req, "fr")

	assert.Equal(t, "surf", query.Query)
	assert.Equal(t, "tour", query.Category)
	assert.Equal(t, "Tamraght", query.Location)
	assert.Equal(t, catalog.SortFeatured, query.Sort)
	assert.Equal(t, "fr", query.Lang)
	assert.Equal(t, 2, query.Params.Page)
	assert.Equal(t, 5, query.Params.Limit)

	values := query.Values()
	assert.Equal(t, "fr", values.Get("lang"))
	assert.Equal(t, "2", values.Get("page"))
}
