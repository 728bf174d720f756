package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/infras/kafka"
	"taghazout/infras/metrics"
	"taghazout/infras/otel"
	"taghazout/infras/payment"
	"taghazout/internal/domains/booking/flow"
	"taghazout/internal/domains/booking/model"
	"taghazout/internal/domains/booking/model/dto"
	"taghazout/internal/domains/booking/repository"
	listingModel "taghazout/internal/domains/listing/model"
	listingRepo "taghazout/internal/domains/listing/repository"
	packageRepo "taghazout/internal/domains/tourpackage/repository"
	"taghazout/shared"
	"taghazout/shared/cache"
	"taghazout/shared/constant"
	"taghazout/shared/failure"
	"taghazout/shared/i18n"
	gModel "taghazout/shared/model"
	"taghazout/shared/timezone"
)

const (
	cachePrefix = "booking"
	cacheGet    = "get"
)

type Booking interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	listingRepo listingRepo.Listing
	packageRepo packageRepo.Package
	gateway     payment.Gateway
	kafka       kafka.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	metrics     *metrics.Metrics
}

func New(
	repo repository.Booking,
	listingRepo listingRepo.Listing,
	packageRepo packageRepo.Package,
	gateway payment.Gateway,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Booking {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		packageRepo: packageRepo,
		gateway:     gateway,
		kafka:       kafka,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		metrics:     metrics,
	}
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, err
	}

	offer, err := s.offer(ctx, req.ItemType, req.ItemID)
	if err != nil {
		return res, err
	}

	quote, err := flow.Price(offer, checkIn, checkOut, req.Guests)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromQuote(offer, quote)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	details, err := req.Details()
	if err != nil {
		s.metrics.ObserveBooking(req.ItemType, metrics.BookingInvalid)

		return res, err
	}

	offer, err := s.offer(ctx, req.ItemType, req.ItemID)
	if err != nil {
		s.metrics.ObserveBooking(req.ItemType, metrics.BookingInvalid)

		return res, err
	}

	draft := flow.New(offer)

	if err = draft.SubmitDetails(details); err != nil {
		s.metrics.ObserveBooking(req.ItemType, metrics.BookingInvalid)

		return res, err //nolint:wrapcheck
	}

	if err = draft.SubmitPayment(ctx, s.gateway, req.Payment); err != nil {
		return res, s.paymentFailure(req.ItemType, draft.Reference(), err)
	}

	booking := newBooking(draft, i18n.FromContext(ctx).Lang, actor(ctx))

	// TODO: refund the receipt once the gateway exposes refunds; the guest is charged even if this insert fails.
	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Str("reference", booking.ID).Msg("failed to save confirmed booking")
		s.metrics.ObserveBooking(req.ItemType, metrics.BookingError)

		return res, fmt.Errorf("failed to save booking: %w", err)
	}

	s.metrics.ObserveBooking(req.ItemType, metrics.BookingConfirmed)
	s.publish(ctx, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cachePrefix, cacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")
		s.metrics.ObserveCache(cachePrefix, metrics.CacheHit)

		return res, nil
	}

	s.metrics.ObserveCache(cachePrefix, metrics.CacheMiss)

	booking, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")

			return
		}

		s.metrics.ObserveCache(cachePrefix, metrics.CacheSet)
	}()

	return res, nil
}

// offer resolves the bookable item. Listings that are not active cannot be booked.
func (s *serviceImpl) offer(ctx context.Context, itemType, itemID string) (flow.Offer, error) {
	lang := i18n.FromContext(ctx).Lang

	switch itemType {
	case model.ItemTypeListing:
		listing, found, err := s.listingRepo.GetByID(ctx, itemID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get listing for booking")

			return flow.Offer{}, fmt.Errorf("failed to get listing: %w", err)
		}

		if !found || listing.Status != listingModel.StatusActive {
			return flow.Offer{}, failure.NotFound("listing not found") // nolint:wrapcheck
		}

		return flow.Offer{
			ItemType:  itemType,
			ItemID:    listing.ID,
			Title:     listing.Titles.Get(lang),
			UnitPrice: listing.Price,
			Currency:  listing.Currency,
			Capacity:  listing.Capacity,
		}, nil
	case model.ItemTypePackage:
		pkg, found, err := s.packageRepo.GetByID(ctx, itemID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get package for booking")

			return flow.Offer{}, fmt.Errorf("failed to get package: %w", err)
		}

		if !found {
			return flow.Offer{}, failure.NotFound("package not found") // nolint:wrapcheck
		}

		return flow.Offer{
			ItemType:  itemType,
			ItemID:    pkg.ID,
			Title:     pkg.Titles.Get(lang),
			UnitPrice: pkg.Price,
			Currency:  pkg.Currency,
		}, nil
	default:
		msg := "item_type must be one of [listing package]"

		return flow.Offer{}, failure.Validation(msg, map[string]string{"item_type": msg}) // nolint:wrapcheck
	}
}

func (s *serviceImpl) paymentFailure(itemType, reference string, err error) error {
	switch {
	case errors.Is(err, payment.ErrDeclined):
		s.metrics.ObserveBooking(itemType, metrics.BookingDeclined)

		return failure.PaymentRequired("payment declined, please use another card") // nolint:wrapcheck
	case payment.IsTransient(err):
		log.Warn().Err(err).Str("reference", reference).Msg("payment gateway unavailable")
		s.metrics.ObserveBooking(itemType, metrics.BookingUnavailable)

		return failure.ServiceUnavailable("payment gateway unavailable, please try again") // nolint:wrapcheck
	case len(failure.GetFields(err)) > 0:
		s.metrics.ObserveBooking(itemType, metrics.BookingInvalid)

		return err
	default:
		log.Error().Err(err).Str("reference", reference).Msg("failed to charge booking")
		s.metrics.ObserveBooking(itemType, metrics.BookingError)

		return fmt.Errorf("failed to charge booking: %w", err)
	}
}

func (s *serviceImpl) publish(ctx context.Context, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: booking.ID, Value: booking.CreatedEvent()}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingCreated, message); err != nil {
			if errors.Is(err, kafka.ErrDisabled) {
				return
			}

			log.Error().Err(err).Str("reference", booking.ID).Msg("failed to publish booking created event")
		}
	}()
}

func newBooking(draft *flow.Flow, lang, user string) model.Booking {
	offer, details, quote, receipt := draft.Offer(), draft.Details(), draft.Quote(), draft.Receipt()
	now := timezone.Now()

	return model.Booking{
		ID:              draft.Reference(),
		ItemType:        offer.ItemType,
		ItemID:          offer.ItemID,
		ItemTitle:       offer.Title,
		GuestName:       details.GuestName,
		GuestEmail:      details.GuestEmail,
		GuestPhone:      details.GuestPhone,
		CheckIn:         details.CheckIn,
		CheckOut:        details.CheckOut,
		Guests:          quote.Guests,
		Nights:          quote.Nights,
		SpecialRequests: details.SpecialRequests,
		UnitPrice:       quote.UnitPrice,
		Total:           quote.Total,
		Currency:        offer.Currency,
		Status:          model.StatusConfirmed,
		TransactionID:   receipt.TransactionID,
		CardLast4:       receipt.Last4,
		PaymentAttempts: receipt.Attempts,
		Lang:            lang,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func actor(ctx context.Context) string {
	if id, ok := ctx.Value(constant.ContextKeyClientID).(string); ok && id != "" {
		return id
	}

	return constant.ContextSystem
}
