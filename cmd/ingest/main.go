package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"taghazout/config"
	"taghazout/infras/catalogapi"
	"taghazout/infras/otel"
	"taghazout/infras/postgres"
	"taghazout/shared/constant"
	"taghazout/shared/logger"

	blogModel "taghazout/internal/domains/blog/model"
	blogRepository "taghazout/internal/domains/blog/repository"
	listingModel "taghazout/internal/domains/listing/model"
	listingRepository "taghazout/internal/domains/listing/repository"
	packageModel "taghazout/internal/domains/tourpackage/model"
	packageRepository "taghazout/internal/domains/tourpackage/repository"
)

// ingest copies the remote catalog (listings, packages, posts) into Postgres.
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Catalog.Source = constant.CatalogSourcePostgres

	db := postgres.New(cfg)
	if !db.Enabled() {
		log.Fatal().Msg("Ingest requires a Postgres connection")
	}
	defer db.Close()

	ot := otel.New(cfg)
	defer otel.Shutdown(context.Background(), ot)

	client, err := catalogapi.New(cfg, ot)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize catalog api client")
	}

	listings, err := listingRepository.New(cfg, db, ot)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize listing repository")
	}

	packages, err := packageRepository.New(cfg, db, ot)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize package repository")
	}

	posts, err := blogRepository.New(cfg, db, ot)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize post repository")
	}

	log.Info().
		Str("base", cfg.Catalog.APIBaseURL).
		Int("workers", cfg.Catalog.IngestWorkers).
		Int("page_size", cfg.Catalog.IngestPageSize).
		Msg("ingest starting")

	c := newCopier(client, cfg.Catalog.IngestWorkers, cfg.Catalog.IngestPageSize)
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return run[listingModel.Listing](groupCtx, c, catalogapi.ResourceListings, listings.InsertBulk)
	})
	group.Go(func() error {
		return run[packageModel.Package](groupCtx, c, catalogapi.ResourcePackages, packages.InsertBulk)
	})
	group.Go(func() error {
		return run[blogModel.Post](groupCtx, c, catalogapi.ResourcePosts, posts.InsertBulk)
	})

	if err := group.Wait(); err != nil {
		log.Fatal().Err(err).Msg("ingest failed")
	}

	log.Info().Msg("ingest completed")
}
