package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"taghazout/config"
	"taghazout/infras/otel"
	"taghazout/infras/postgres"
	"taghazout/internal/domains/booking/model"
	"taghazout/shared/constant"
	gRepo "taghazout/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	GetByID(ctx context.Context, id string) (model.Booking, bool, error)
}

type repositoryImpl struct {
	gRepo.Store[model.Booking]
}

// New stores bookings next to the catalog: in Postgres when the catalog is
// served from there, otherwise in process memory.
func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Booking {
	if cfg.Catalog.Source == constant.CatalogSourcePostgres && db.Enabled() {
		return &repositoryImpl{
			Store: gRepo.NewSQLStore[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		}
	}

	return &repositoryImpl{
		Store: gRepo.NewMemoryStore[model.Booking](model.EntityName, model.FieldID, nil, 0, otel),
	}
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Booking, bool, error) {
	return r.FindBy(ctx, model.FieldID, id) //nolint:wrapcheck
}
