package model

import (
	"time"

	"github.com/lib/pq"

	"taghazout/shared/i18n"
	"taghazout/shared/model"
)

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID       = "id"
	FieldSlug     = "slug"
	FieldCategory = "category"
	FieldLocation = "location"
	FieldStatus   = "status"
	FieldImages   = "images"
	FieldClientID = "client_id"
)

const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

const (
	CategoryAccommodation = "accommodation"
	CategoryActivity      = "activity"
	CategorySurfLesson    = "surf-lesson"
	CategoryTour          = "tour"
	CategoryRental        = "rental"
)

type Listing struct {
	ID           string         `db:"id"           json:"id"`
	Slug         string         `db:"slug"         json:"slug"`
	Titles       i18n.Text      `db:"title"        json:"title"`
	Descriptions i18n.Text      `db:"description"  json:"description"`
	Category     string         `db:"category"     json:"category"`
	Location     string         `db:"location"     json:"location"`
	Price        int64          `db:"price"        json:"price"`
	Currency     string         `db:"currency"     json:"currency"`
	Rating       float64        `db:"rating"       json:"rating"`
	ReviewCount  int            `db:"review_count" json:"review_count"`
	Images       pq.StringArray `db:"images"       json:"images"`
	Amenities    pq.StringArray `db:"amenities"    json:"amenities"`
	Capacity     *int           `db:"capacity"     json:"capacity"`
	Duration     *string        `db:"duration"     json:"duration"`
	Featured     bool           `db:"featured"     json:"featured"`
	Status       string         `db:"status"       json:"status"`
	ClientID     string         `db:"client_id"    json:"client_id"`
	model.Metadata
}

func (l Listing) Title() i18n.Text       { return l.Titles }
func (l Listing) Description() i18n.Text { return l.Descriptions }
func (l Listing) CategoryName() string   { return l.Category }
func (l Listing) LocationName() string   { return l.Location }
func (l Listing) PriceMinor() int64      { return l.Price }
func (l Listing) Score() float64         { return l.Rating }
func (l Listing) IsFeatured() bool       { return l.Featured }
func (l Listing) Created() time.Time     { return l.CreatedAt }
