package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"taghazout/config"
	"taghazout/infras/otel"
	"taghazout/infras/postgres"
	"taghazout/internal/domains/blog/model"
	"taghazout/internal/seed"
	"taghazout/shared/constant"
	gRepo "taghazout/shared/repository"
)

type Post interface {
	InsertBulk(ctx context.Context, models []model.Post) error
	FindAll(ctx context.Context) ([]model.Post, error)
	GetBySlug(ctx context.Context, slug string) (model.Post, bool, error)
}

type repositoryImpl struct {
	gRepo.Store[model.Post]
}

func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) (Post, error) {
	if cfg.Catalog.Source == constant.CatalogSourcePostgres && db.Enabled() {
		return &repositoryImpl{
			Store: gRepo.NewSQLStore[model.Post](model.EntityName, model.TableName, model.FieldID, db, otel),
		}, nil
	}

	posts, err := seed.Load[model.Post](seed.Posts)
	if err != nil {
		return nil, fmt.Errorf("failed to load post seed: %w", err)
	}

	delay := time.Duration(cfg.Catalog.SimulatedDelayMS) * time.Millisecond

	return &repositoryImpl{
		Store: gRepo.NewMemoryStore(model.EntityName, model.FieldID, posts, delay, otel),
	}, nil
}

func (r *repositoryImpl) GetBySlug(ctx context.Context, slug string) (model.Post, bool, error) {
	return r.FindBy(ctx, model.FieldSlug, slug) //nolint:wrapcheck
}
