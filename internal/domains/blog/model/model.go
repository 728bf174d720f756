package model

import (
	"time"

	"github.com/lib/pq"

	"taghazout/shared/i18n"
	"taghazout/shared/model"
)

const (
	TableName  = "posts"
	EntityName = "post"

	FieldID          = "id"
	FieldSlug        = "slug"
	FieldPublishedAt = "published_at"
)

type Post struct {
	ID          string         `db:"id"           json:"id"`
	Slug        string         `db:"slug"         json:"slug"`
	Title       i18n.Text      `db:"title"        json:"title"`
	Excerpt     i18n.Text      `db:"excerpt"      json:"excerpt"`
	Content     i18n.Text      `db:"content"      json:"content"`
	Author      string         `db:"author"       json:"author"`
	Category    string         `db:"category"     json:"category"`
	Tags        pq.StringArray `db:"tags"         json:"tags"`
	Image       string         `db:"image"        json:"image"`
	ReadTime    int            `db:"read_time"    json:"read_time"`
	PublishedAt time.Time      `db:"published_at" json:"published_at"`
	model.Metadata
}
