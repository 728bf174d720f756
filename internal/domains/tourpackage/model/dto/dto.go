package dto

import (
	"taghazout/internal/domains/tourpackage/model"
	gDto "taghazout/shared/dto"
)

type PackageResponse struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Lang        string   `json:"lang"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	GroupSize   string   `json:"group_size"`
	Highlights  []string `json:"highlights"`
	Inclusions  []string `json:"inclusions"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Price       int64    `json:"price"`
	Currency    string   `json:"currency"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Image       string   `json:"image"`
	Featured    bool     `json:"featured"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package, lang string) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.Lang = lang
	r.Title = model.Titles.Get(lang)
	r.Description = model.Descriptions.Get(lang)
	r.Duration = model.Duration
	r.GroupSize = model.GroupSize
	r.Highlights = model.Highlights.Get(lang)
	r.Inclusions = model.Inclusions.Get(lang)
	r.Category = model.Category
	r.Location = model.Location
	r.Price = model.Price
	r.Currency = model.Currency
	r.Rating = model.Rating
	r.ReviewCount = model.ReviewCount
	r.Image = model.Image
	r.Featured = model.Featured
	r.Metadata.FromModel(model.Metadata)
}

type GetPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
	gDto.Pagination
}

func (r *GetPackagesResponse) FromModels(models []model.Package, pagination gDto.Pagination, lang string) {
	r.Pagination = pagination

	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod, lang)
	}
}
