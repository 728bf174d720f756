//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"taghazout/config"
	"taghazout/infras/kafka"
	"taghazout/infras/metrics"
	"taghazout/infras/otel"
	"taghazout/infras/payment"
	"taghazout/infras/postgres"
	"taghazout/infras/redis"
	"taghazout/infras/s3"
	blogHandler "taghazout/internal/handlers/blog"
	bookingHandler "taghazout/internal/handlers/booking"
	i18nHandler "taghazout/internal/handlers/i18n"
	listingHandler "taghazout/internal/handlers/listing"
	packageHandler "taghazout/internal/handlers/tourpackage"
	"taghazout/shared/cache"
	"taghazout/shared/i18n"
	"taghazout/transport/http"
	"taghazout/transport/http/middleware"
	"taghazout/transport/http/router"

	blogRepository "taghazout/internal/domains/blog/repository"
	blogService "taghazout/internal/domains/blog/service"
	bookingRepository "taghazout/internal/domains/booking/repository"
	bookingService "taghazout/internal/domains/booking/service"
	listingRepository "taghazout/internal/domains/listing/repository"
	listingService "taghazout/internal/domains/listing/service"
	packageRepository "taghazout/internal/domains/tourpackage/repository"
	packageService "taghazout/internal/domains/tourpackage/service"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	metrics.New,
	s3.New,
	kafka.New,
	payment.New,
	wire.Bind(new(payment.Observer), new(*metrics.Metrics)),
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuth,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	i18n.MustTranslator,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
	listingService.New,
)

var packageDomain = wire.NewSet(
	packageRepository.New,
	packageService.New,
)

var blogDomain = wire.NewSet(
	blogRepository.New,
	blogService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	listingDomain,
	packageDomain,
	blogDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	listingHandler.New,
	packageHandler.New,
	blogHandler.New,
	bookingHandler.New,
	i18nHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
