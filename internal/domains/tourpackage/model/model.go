package model

import (
	"time"

	"taghazout/shared/i18n"
	"taghazout/shared/model"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID   = "id"
	FieldSlug = "slug"
)

// Package is a curated multi-day offer priced per person.
type Package struct {
	ID           string    `db:"id"           json:"id"`
	Slug         string    `db:"slug"         json:"slug"`
	Titles       i18n.Text `db:"title"        json:"title"`
	Descriptions i18n.Text `db:"description"  json:"description"`
	Duration     string    `db:"duration"     json:"duration"`
	GroupSize    string    `db:"group_size"   json:"group_size"`
	Highlights   i18n.List `db:"highlights"   json:"highlights"`
	Inclusions   i18n.List `db:"inclusions"   json:"inclusions"`
	Category     string    `db:"category"     json:"category"`
	Location     string    `db:"location"     json:"location"`
	Price        int64     `db:"price"        json:"price"`
	Currency     string    `db:"currency"     json:"currency"`
	Rating       float64   `db:"rating"       json:"rating"`
	ReviewCount  int       `db:"review_count" json:"review_count"`
	Image        string    `db:"image"        json:"image"`
	Featured     bool      `db:"featured"     json:"featured"`
	model.Metadata
}

func (p Package) Title() i18n.Text       { return p.Titles }
func (p Package) Description() i18n.Text { return p.Descriptions }
func (p Package) CategoryName() string   { return p.Category }
func (p Package) LocationName() string   { return p.Location }
func (p Package) PriceMinor() int64      { return p.Price }
func (p Package) Score() float64         { return p.Rating }
func (p Package) IsFeatured() bool       { return p.Featured }
func (p Package) Created() time.Time     { return p.CreatedAt }
