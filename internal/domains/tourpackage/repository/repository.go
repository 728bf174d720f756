package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"taghazout/config"
	"taghazout/infras/otel"
	"taghazout/infras/postgres"
	"taghazout/internal/domains/tourpackage/model"
	"taghazout/internal/seed"
	"taghazout/shared/constant"
	gRepo "taghazout/shared/repository"
)

type Package interface {
	InsertBulk(ctx context.Context, models []model.Package) error
	FindAll(ctx context.Context) ([]model.Package, error)
	GetByID(ctx context.Context, id string) (model.Package, bool, error)
	GetBySlug(ctx context.Context, slug string) (model.Package, bool, error)
}

type repositoryImpl struct {
	gRepo.Store[model.Package]
}

func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) (Package, error) {
	if cfg.Catalog.Source == constant.CatalogSourcePostgres && db.Enabled() {
		return &repositoryImpl{
			Store: gRepo.NewSQLStore[model.Package](model.EntityName, model.TableName, model.FieldID, db, otel),
		}, nil
	}

	packages, err := seed.Load[model.Package](seed.Packages)
	if err != nil {
		return nil, fmt.Errorf("failed to load package seed: %w", err)
	}

	delay := time.Duration(cfg.Catalog.SimulatedDelayMS) * time.Millisecond

	return &repositoryImpl{
		Store: gRepo.NewMemoryStore(model.EntityName, model.FieldID, packages, delay, otel),
	}, nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Package, bool, error) {
	return r.FindBy(ctx, model.FieldID, id) //nolint:wrapcheck
}

func (r *repositoryImpl) GetBySlug(ctx context.Context, slug string) (model.Package, bool, error) {
	return r.FindBy(ctx, model.FieldSlug, slug) //nolint:wrapcheck
}
