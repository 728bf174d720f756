package dto

import (
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"taghazout/internal/domains/listing/model"
	gDto "taghazout/shared/dto"
	"taghazout/shared/i18n"
	gModel "taghazout/shared/model"
	"taghazout/shared/timezone"
)

type CreateListingRequest struct {
	Slug        string         `json:"slug"         validate:"required,max=120"`
	Title       i18n.Text      `json:"title"        validate:"required,dive,keys,oneof=en fr ar,endkeys,required,max=200"`
	Description i18n.Text      `json:"description"  validate:"omitempty,dive,keys,oneof=en fr ar,endkeys,max=5000"`
	Category    string         `json:"category"     validate:"required,oneof=accommodation activity surf-lesson tour rental"`
	Location    string         `json:"location"     validate:"required,max=100"`
	Price       int64          `json:"price"        validate:"required,gt=0"`
	Currency    string         `json:"currency"     validate:"omitempty,len=3"`
	Rating      float64        `json:"rating"       validate:"omitempty,min=0,max=5"`
	ReviewCount int            `json:"review_count" validate:"omitempty,min=0"`
	Images      pq.StringArray `json:"images"       validate:"omitempty,dive,url"`
	Amenities   pq.StringArray `json:"amenities"    validate:"omitempty,dive,max=50"`
	Capacity    *int           `json:"capacity"     validate:"omitempty,min=1"`
	Duration    *string        `json:"duration"     validate:"omitempty,max=50"`
	Featured    bool           `json:"featured"`
	Status      string         `json:"status"       validate:"omitempty,oneof=active draft archived"`
	ClientID    string         `json:"client_id"    validate:"omitempty,max=100"`
}

func (c *CreateListingRequest) ToModel(actor, defaultCurrency string) model.Listing {
	status := model.StatusActive
	if c.Status != "" {
		status = c.Status
	}

	currency := defaultCurrency
	if c.Currency != "" {
		currency = c.Currency
	}

	images := c.Images
	if images == nil {
		images = pq.StringArray{}
	}

	amenities := c.Amenities
	if amenities == nil {
		amenities = pq.StringArray{}
	}

	now := timezone.Now()

	return model.Listing{
		ID:           uuid.NewString(),
		Slug:         c.Slug,
		Titles:       c.Title,
		Descriptions: c.Description,
		Category:     c.Category,
		Location:     c.Location,
		Price:        c.Price,
		Currency:     currency,
		Rating:       c.Rating,
		ReviewCount:  c.ReviewCount,
		Images:       images,
		Amenities:    amenities,
		Capacity:     c.Capacity,
		Duration:     c.Duration,
		Featured:     c.Featured,
		Status:       status,
		ClientID:     c.ClientID,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateListingRequest struct {
	Title       i18n.Text      `db:"title"        json:"title"        validate:"omitempty,dive,keys,oneof=en fr ar,endkeys,required,max=200"`
	Description i18n.Text      `db:"description"  json:"description"  validate:"omitempty,dive,keys,oneof=en fr ar,endkeys,max=5000"`
	Category    string         `db:"category"     json:"category"     validate:"omitempty,oneof=accommodation activity surf-lesson tour rental"`
	Location    string         `db:"location"     json:"location"     validate:"omitempty,max=100"`
	Price       *int64         `db:"price"        json:"price"        validate:"omitempty,gt=0"`
	Currency    string         `db:"currency"     json:"currency"     validate:"omitempty,len=3"`
	Rating      *float64       `db:"rating"       json:"rating"       validate:"omitempty,min=0,max=5"`
	ReviewCount *int           `db:"review_count" json:"review_count" validate:"omitempty,min=0"`
	Images      pq.StringArray `db:"images"       json:"images"       validate:"omitempty,dive,url"`
	Amenities   pq.StringArray `db:"amenities"    json:"amenities"    validate:"omitempty,dive,max=50"`
	Capacity    *int           `db:"capacity"     json:"capacity"     validate:"omitempty,min=1"`
	Duration    *string        `db:"duration"     json:"duration"     validate:"omitempty,max=50"`
	Featured    *bool          `db:"featured"     json:"featured"`
	Status      string         `db:"status"       json:"status"       validate:"omitempty,oneof=active draft archived"`
}

// IsEmpty reports whether the patch changes nothing.
func (u *UpdateListingRequest) IsEmpty() bool {
	return len(u.Title) == 0 && len(u.Description) == 0 && u.Category == "" && u.Location == "" &&
		u.Price == nil && u.Currency == "" && u.Rating == nil && u.ReviewCount == nil &&
		u.Images == nil && u.Amenities == nil && u.Capacity == nil && u.Duration == nil &&
		u.Featured == nil && u.Status == ""
}

// UploadImageRequest carries either a base64 data URI or a multipart file.
type UploadImageRequest struct {
	Data      string                `json:"data"  validate:"required_without=Image,omitempty,mimetypes=image/png image/jpeg image/webp"`
	Image     *multipart.FileHeader `json:"-"     validate:"required_without=Data,omitempty,mimetypes=image/png image/jpeg image/webp"`
	ImageFile multipart.File        `json:"-"`
}

type ListingResponse struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Lang        string   `json:"lang"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Price       int64    `json:"price"`
	Currency    string   `json:"currency"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	Capacity    *int     `json:"capacity,omitempty"`
	Duration    *string  `json:"duration,omitempty"`
	Featured    bool     `json:"featured"`
	Status      string   `json:"status"`
	ClientID    string   `json:"client_id,omitempty"`
	gDto.Metadata
}

func (r *ListingResponse) FromModel(model model.Listing, lang string) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.Lang = lang
	r.Title = model.Titles.Get(lang)
	r.Description = model.Descriptions.Get(lang)
	r.Category = model.Category
	r.Location = model.Location
	r.Price = model.Price
	r.Currency = model.Currency
	r.Rating = model.Rating
	r.ReviewCount = model.ReviewCount
	r.Images = nonNil(model.Images)
	r.Amenities = nonNil(model.Amenities)
	r.Capacity = model.Capacity
	r.Duration = model.Duration
	r.Featured = model.Featured
	r.Status = model.Status
	r.ClientID = model.ClientID
	r.Metadata.FromModel(model.Metadata)
}

type GetListingsResponse struct {
	Listings []ListingResponse `json:"listings"`
	gDto.Pagination
}

func (r *GetListingsResponse) FromModels(models []model.Listing, pagination gDto.Pagination, lang string) {
	r.Pagination = pagination

	r.Listings = make([]ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod, lang)
	}
}

type ImageResponse struct {
	URL    string   `json:"url"`
	Images []string `json:"images"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
