package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/infras/metrics"
	"taghazout/infras/otel"
	"taghazout/infras/s3"
	"taghazout/internal/catalog"
	"taghazout/internal/domains/listing/model"
	"taghazout/internal/domains/listing/model/dto"
	"taghazout/internal/domains/listing/repository"
	"taghazout/shared"
	"taghazout/shared/base64"
	"taghazout/shared/cache"
	"taghazout/shared/constant"
	gDto "taghazout/shared/dto"
	"taghazout/shared/failure"
	"taghazout/shared/i18n"
	gRepo "taghazout/shared/repository"
)

const (
	cachePrefix = "listing"
	cacheGet    = "get"
	cacheGets   = "gets"
)

type Listing interface {
	GetAll(ctx context.Context, query catalog.Query) (dto.GetListingsResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.ListingResponse, error)
	Create(ctx context.Context, req dto.CreateListingRequest) (dto.ListingResponse, error)
	Update(ctx context.Context, req dto.UpdateListingRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (dto.ImageResponse, error)
}

type serviceImpl struct {
	repo    repository.Listing
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	s3      s3.S3
	metrics *metrics.Metrics
}

func New(repo repository.Listing, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3, metrics *metrics.Metrics) Listing {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		s3:      s3,
		metrics: metrics,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, query catalog.Query) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query.Criteria = query.Criteria.Normalize()
	query.Params.ClampLimit(s.cfg.Catalog.MaxPageLimit)

	cacheKey := shared.BuildCacheKeyWithQuery(cachePrefix, cacheGets, query.Values())

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listings")
		s.metrics.ObserveCache(cachePrefix, metrics.CacheHit)

		return res, nil
	}

	s.metrics.ObserveCache(cachePrefix, metrics.CacheMiss)

	listings, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listings")

		return res, fmt.Errorf("failed to get listings: %w", err)
	}

	visible := slices.DeleteFunc(listings, func(l model.Listing) bool {
		return !matchStatus(l.Status, query.Status)
	})

	ordered := catalog.Apply(visible, query.Criteria)
	page, pagination := gDto.Paginate(ordered, query.Params)

	res.FromModels(page, pagination, query.Lang)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save listings to cache")

			return
		}

		s.metrics.ObserveCache(cachePrefix, metrics.CacheSet)
	}()

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.GetBySlug")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lang := i18n.FromContext(ctx).Lang
	cacheKey := shared.BuildCacheKey(cachePrefix, cacheGet, slug, lang)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listing")
		s.metrics.ObserveCache(cachePrefix, metrics.CacheHit)

		return res, nil
	}

	s.metrics.ObserveCache(cachePrefix, metrics.CacheMiss)

	listing, found, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if !found || listing.Status == model.StatusArchived {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	res.FromModel(listing, lang)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save listing to cache")

			return
		}

		s.metrics.ObserveCache(cachePrefix, metrics.CacheSet)
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateListingRequest) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, exist, err := s.repo.GetBySlug(ctx, req.Slug)
	if err != nil {
		log.Error().Err(err).Msg("failed to check listing slug")

		return res, fmt.Errorf("failed to check listing slug: %w", err)
	}

	if exist {
		return res, failure.Conflict(fmt.Sprintf("listing with slug %q already exists", req.Slug)) // nolint:wrapcheck
	}

	listing := req.ToModel(actor(ctx), s.cfg.Payment.DefaultCurrency)

	if err = s.repo.Insert(ctx, listing); err != nil {
		log.Error().Err(err).Msg("failed to create listing")

		return res, fmt.Errorf("failed to create listing: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(listing, i18n.FromContext(ctx).Lang)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateListingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	err = s.repo.Update(ctx, id, shared.TransformFields(req, actor(ctx)))
	if errors.Is(err, gRepo.ErrNotFound) {
		return failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update listing")

		return fmt.Errorf("failed to update listing: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	listing, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return fmt.Errorf("failed to get listing: %w", err)
	}

	if !found {
		return failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete listing")

		return fmt.Errorf("failed to delete listing: %w", err)
	}

	s.invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		for _, image := range listing.Images {
			if s3.ObjectKey(s.cfg.External.S3.PublicDomain, image) == constant.Empty {
				continue
			}

			if err := s.s3.DeleteByURL(c, image); err != nil {
				log.Error().Err(err).Str("url", image).Msg("failed to delete listing image")
			}
		}
	}()

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !s.cfg.Catalog.ImageUploadEnabled {
		return res, failure.ServiceUnavailable("image upload is disabled") // nolint:wrapcheck
	}

	listing, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if !found {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	contentType, data, err := s.readImage(req)
	if err != nil {
		return res, err
	}

	if maxBytes := s.cfg.Catalog.ImageMaxSizeMB << 20; len(data) > maxBytes {
		return res, failure.BadRequestFromString(fmt.Sprintf("image must not exceed %d MB", s.cfg.Catalog.ImageMaxSizeMB)) // nolint:wrapcheck
	}

	fileName := fmt.Sprintf("%s.%s", uuid.NewString(), base64.Extension(contentType))

	url, err := s.s3.UploadFileBytes(ctx, model.EntityName+"/"+listing.ID, fileName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	images := append(pq.StringArray{}, listing.Images...)
	images = append(images, url)

	if err = s.repo.Update(ctx, id, map[string]any{model.FieldImages: images}); err != nil {
		log.Error().Err(err).Msg("failed to attach image to listing")

		if errDelete := s.s3.DeleteByURL(context.WithoutCancel(ctx), url); errDelete != nil {
			log.Error().Err(errDelete).Msg("failed to delete image from S3 after failed update")
		}

		return res, fmt.Errorf("failed to attach image to listing: %w", err)
	}

	s.invalidate(ctx)

	res.URL = url
	res.Images = []string(images)

	return res, nil
}

func (s *serviceImpl) readImage(req dto.UploadImageRequest) (string, []byte, error) {
	if req.Data != constant.Empty {
		contentType, data, err := base64.Decode(req.Data)
		if err != nil {
			return "", nil, failure.BadRequest(err) // nolint:wrapcheck
		}

		return contentType, data, nil
	}

	if req.Image == nil || req.ImageFile == nil {
		return "", nil, failure.BadRequestFromString("image is required") // nolint:wrapcheck
	}

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, req.ImageFile); err != nil {
		return "", nil, fmt.Errorf("failed to read image: %w", err)
	}

	return req.Image.Header.Get(constant.RequestHeaderContentType), buf.Bytes(), nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cachePrefix)
		s.metrics.ObserveCache(cachePrefix, metrics.CacheDel)
	}()
}

// matchStatus keeps active listings unless another status, or "all", is requested.
func matchStatus(status, requested string) bool {
	switch requested {
	case constant.Empty:
		return status == model.StatusActive
	case constant.FilterAll:
		return true
	default:
		return status == requested
	}
}

func actor(ctx context.Context) string {
	if clientID, ok := ctx.Value(constant.ContextKeyClientID).(string); ok && clientID != constant.Empty {
		return clientID
	}

	return constant.ContextSystem
}
