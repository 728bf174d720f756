package dto

import (
	"taghazout/internal/domains/blog/model"
	"taghazout/shared/constant"
	gDto "taghazout/shared/dto"
	"taghazout/shared/timezone"
)

// PostSummary is the list form of a post, without its body.
type PostSummary struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Lang        string   `json:"lang"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	ReadTime    int      `json:"read_time"`
	PublishedAt string   `json:"published_at"`
}

func (r *PostSummary) FromModel(model model.Post, lang string) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.Lang = lang
	r.Title = model.Title.Get(lang)
	r.Excerpt = model.Excerpt.Get(lang)
	r.Author = model.Author
	r.Category = model.Category
	r.Tags = []string(model.Tags)
	r.Image = model.Image
	r.ReadTime = model.ReadTime
	r.PublishedAt = timezone.Format(model.PublishedAt, constant.DateFormat)

	if r.Tags == nil {
		r.Tags = []string{}
	}
}

type PostResponse struct {
	PostSummary
	Content string `json:"content"`
	gDto.Metadata
}

func (r *PostResponse) FromModel(model model.Post, lang string) {
	r.PostSummary.FromModel(model, lang)
	r.Content = model.Content.Get(lang)
	r.Metadata.FromModel(model.Metadata)
}

type GetPostsResponse struct {
	Posts []PostSummary `json:"posts"`
	gDto.Pagination
}

func (r *GetPostsResponse) FromModels(models []model.Post, pagination gDto.Pagination, lang string) {
	r.Pagination = pagination

	r.Posts = make([]PostSummary, len(models))
	for i, mod := range models {
		r.Posts[i].FromModel(mod, lang)
	}
}
