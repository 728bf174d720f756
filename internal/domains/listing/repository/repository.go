package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"taghazout/config"
	"taghazout/infras/otel"
	"taghazout/infras/postgres"
	"taghazout/internal/domains/listing/model"
	"taghazout/internal/seed"
	"taghazout/shared/constant"
	gRepo "taghazout/shared/repository"
)

type Listing interface {
	Insert(ctx context.Context, model model.Listing) error
	InsertBulk(ctx context.Context, models []model.Listing) error
	FindAll(ctx context.Context) ([]model.Listing, error)
	GetByID(ctx context.Context, id string) (model.Listing, bool, error)
	GetBySlug(ctx context.Context, slug string) (model.Listing, bool, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Store[model.Listing]
}

// New serves listings from Postgres when the catalog source is postgres and a
// connection is available, otherwise from the embedded seed catalog.
func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) (Listing, error) {
	if cfg.Catalog.Source == constant.CatalogSourcePostgres && db.Enabled() {
		return &repositoryImpl{
			Store: gRepo.NewSQLStore[model.Listing](model.EntityName, model.TableName, model.FieldID, db, otel),
		}, nil
	}

	listings, err := seed.Load[model.Listing](seed.Listings)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing seed: %w", err)
	}

	delay := time.Duration(cfg.Catalog.SimulatedDelayMS) * time.Millisecond

	return &repositoryImpl{
		Store: gRepo.NewMemoryStore(model.EntityName, model.FieldID, listings, delay, otel),
	}, nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Listing, bool, error) {
	return r.FindBy(ctx, model.FieldID, id) //nolint:wrapcheck
}

func (r *repositoryImpl) GetBySlug(ctx context.Context, slug string) (model.Listing, bool, error) {
	return r.FindBy(ctx, model.FieldSlug, slug) //nolint:wrapcheck
}
