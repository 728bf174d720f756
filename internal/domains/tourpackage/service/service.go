package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/infras/metrics"
	"taghazout/infras/otel"
	"taghazout/internal/catalog"
	"taghazout/internal/domains/tourpackage/model/dto"
	"taghazout/internal/domains/tourpackage/repository"
	"taghazout/shared"
	"taghazout/shared/cache"
	"taghazout/shared/constant"
	gDto "taghazout/shared/dto"
	"taghazout/shared/failure"
	"taghazout/shared/i18n"
)

const (
	cachePrefix = "package"
	cacheGet    = "get"
	cacheGets   = "gets"
)

type Package interface {
	GetAll(ctx context.Context, query catalog.Query) (dto.GetPackagesResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.PackageResponse, error)
}

type serviceImpl struct {
	repo    repository.Package
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	metrics *metrics.Metrics
}

func New(repo repository.Package, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, metrics *metrics.Metrics) Package {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		metrics: metrics,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, query catalog.Query) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".package.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query.Criteria = query.Criteria.Normalize()
	query.Params.ClampLimit(s.cfg.Catalog.MaxPageLimit)

	cacheKey := shared.BuildCacheKeyWithQuery(cachePrefix, cacheGets, query.Values())

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for packages")
		s.metrics.ObserveCache(cachePrefix, metrics.CacheHit)

		return res, nil
	}

	s.metrics.ObserveCache(cachePrefix, metrics.CacheMiss)

	packages, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get packages")

		return res, fmt.Errorf("failed to get packages: %w", err)
	}

	page, pagination := gDto.Paginate(catalog.Apply(packages, query.Criteria), query.Params)
	res.FromModels(page, pagination, query.Lang)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")

			return
		}

		s.metrics.ObserveCache(cachePrefix, metrics.CacheSet)
	}()

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".package.GetBySlug")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lang := i18n.FromContext(ctx).Lang
	cacheKey := shared.BuildCacheKey(cachePrefix, cacheGet, slug, lang)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package")

		return res, nil
	}

	pkg, found, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if !found {
		return res, failure.NotFound("package not found") // nolint:wrapcheck
	}

	res.FromModel(pkg, lang)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}
