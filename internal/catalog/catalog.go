// Package catalog filters and orders listings and packages.
//
// Apply is pure: it never mutates its input, always returns a non-nil slice and
// yields the same order for the same input and Criteria.
package catalog

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"taghazout/shared/constant"
	"taghazout/shared/i18n"
)

const (
	SortFeatured = "featured"
	SortRating   = "rating"
	SortPrice    = "price"
	SortNewest   = "newest"
)

// Sorts lists the accepted sort keys. Unknown keys behave as SortFeatured.
var Sorts = []string{SortFeatured, SortRating, SortPrice, SortNewest}

// Item is what the engine needs to know about a catalog entry.
type Item interface {
	Title() i18n.Text
	Description() i18n.Text
	CategoryName() string
	LocationName() string
	PriceMinor() int64
	Score() float64
	IsFeatured() bool
	Created() time.Time
}

// Criteria holds the predicates and sort key of a catalog query.
type Criteria struct {
	Query    string
	Category string
	Location string
	Sort     string
	Lang     string
}

// Normalize trims surrounding whitespace from the text, category and location
// inputs and replaces an unknown sort key with SortFeatured.
func (c Criteria) Normalize() Criteria {
	c.Query = strings.TrimSpace(c.Query)
	c.Category = strings.TrimSpace(c.Category)
	c.Location = strings.TrimSpace(c.Location)

	if !slices.Contains(Sorts, c.Sort) {
		c.Sort = SortFeatured
	}

	if c.Lang == "" {
		c.Lang = i18n.Fallback
	}

	return c
}

// Apply returns the items matching every predicate of criteria, stably ordered by
// criteria.Sort.
func Apply[T Item](items []T, criteria Criteria) []T {
	criteria = criteria.Normalize()

	out := make([]T, 0, len(items))

	for _, item := range items {
		if Matches(item, criteria) {
			out = append(out, item)
		}
	}

	slices.SortStableFunc(out, comparator[T](criteria.Sort))

	return out
}

// Matches reports whether item passes the text, category and location predicates.
func Matches(item Item, criteria Criteria) bool {
	return matchText(item, criteria.Query, criteria.Lang) &&
		matchCategory(item, criteria.Category) &&
		matchLocation(item, criteria.Location)
}

func matchText(item Item, query, lang string) bool {
	if query == "" {
		return true
	}

	needle := strings.ToLower(query)

	return strings.Contains(strings.ToLower(item.Title().Get(lang)), needle) ||
		strings.Contains(strings.ToLower(item.Description().Get(lang)), needle)
}

func matchCategory(item Item, category string) bool {
	if isAll(category) {
		return true
	}

	return item.CategoryName() == category
}

func matchLocation(item Item, location string) bool {
	if isAll(location) {
		return true
	}

	return strings.Contains(item.LocationName(), location)
}

func isAll(value string) bool {
	return value == "" || value == constant.FilterAll
}

func comparator[T Item](sortKey string) func(a, b T) int {
	switch sortKey {
	case SortPrice:
		return func(a, b T) int {
			return cmp.Compare(a.PriceMinor(), b.PriceMinor())
		}
	case SortRating:
		return func(a, b T) int {
			return cmp.Compare(b.Score(), a.Score())
		}
	case SortNewest:
		return func(a, b T) int {
			return b.Created().Compare(a.Created())
		}
	default:
		// featured first, original order kept inside each group
		return func(a, b T) int {
			return cmp.Compare(rank(b.IsFeatured()), rank(a.IsFeatured()))
		}
	}
}

func rank(featured bool) int {
	if featured {
		return 1
	}

	return 0
}
