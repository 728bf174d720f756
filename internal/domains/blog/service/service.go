package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/infras/metrics"
	"taghazout/infras/otel"
	"taghazout/internal/catalog"
	"taghazout/internal/domains/blog/model"
	"taghazout/internal/domains/blog/model/dto"
	"taghazout/internal/domains/blog/repository"
	"taghazout/shared"
	"taghazout/shared/cache"
	"taghazout/shared/constant"
	gDto "taghazout/shared/dto"
	"taghazout/shared/failure"
	"taghazout/shared/i18n"
)

const (
	cachePrefix = "post"
	cacheGet    = "get"
	cacheGets   = "gets"
)

type Blog interface {
	GetAll(ctx context.Context, query catalog.Query) (dto.GetPostsResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.PostResponse, error)
}

type serviceImpl struct {
	repo    repository.Post
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	metrics *metrics.Metrics
}

func New(repo repository.Post, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, metrics *metrics.Metrics) Blog {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		metrics: metrics,
	}
}

// GetAll lists posts newest first, filtered by category and free text.
func (s *serviceImpl) GetAll(ctx context.Context, query catalog.Query) (res dto.GetPostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query.Criteria = query.Criteria.Normalize()
	query.Params.ClampLimit(s.cfg.Catalog.MaxPageLimit)

	cacheKey := shared.BuildCacheKeyWithQuery(cachePrefix, cacheGets, query.Values())

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for posts")
		s.metrics.ObserveCache(cachePrefix, metrics.CacheHit)

		return res, nil
	}

	s.metrics.ObserveCache(cachePrefix, metrics.CacheMiss)

	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get posts")

		return res, fmt.Errorf("failed to get posts: %w", err)
	}

	posts = slices.DeleteFunc(posts, func(p model.Post) bool {
		return !matches(p, query.Criteria)
	})

	slices.SortStableFunc(posts, func(a, b model.Post) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	page, pagination := gDto.Paginate(posts, query.Params)
	res.FromModels(page, pagination, query.Lang)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save posts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.GetBySlug")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lang := i18n.FromContext(ctx).Lang
	cacheKey := shared.BuildCacheKey(cachePrefix, cacheGet, slug, lang)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	post, found, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		log.Error().Err(err).Msg("failed to get post")

		return res, fmt.Errorf("failed to get post: %w", err)
	}

	if !found {
		return res, failure.NotFound("post not found") // nolint:wrapcheck
	}

	res.FromModel(post, lang)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save post to cache")
		}
	}()

	return res, nil
}

func matches(post model.Post, criteria catalog.Criteria) bool {
	if criteria.Category != constant.Empty && criteria.Category != constant.FilterAll && post.Category != criteria.Category {
		return false
	}

	if criteria.Query == constant.Empty {
		return true
	}

	needle := strings.ToLower(criteria.Query)

	return strings.Contains(strings.ToLower(post.Title.Get(criteria.Lang)), needle) ||
		strings.Contains(strings.ToLower(post.Excerpt.Get(criteria.Lang)), needle)
}
