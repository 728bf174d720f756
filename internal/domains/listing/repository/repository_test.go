package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taghazout/config"
	"taghazout/infras/otel/mocks"
	"taghazout/infras/postgres"
	"taghazout/internal/domains/listing/model"
	"taghazout/internal/domains/listing/repository"
)

func newRepo(t *testing.T) repository.Listing {
	t.Helper()

	cfg := &config.Config{}
	cfg.Catalog.Source = "memory"

	repo, err := repository.New(cfg, &postgres.Connection{}, mocks.NewOtel())
	require.NoError(t, err)

	return repo
}

func TestNew_MemorySourceServesSeed(t *testing.T) {
	repo := newRepo(t)

	listings, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, listings)

	first := listings[0]

	found, ok, err := repo.GetBySlug(context.Background(), first.Slug)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first.ID, found.ID)

	_, ok, err = repo.GetByID(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_PostgresSourceWithoutConnectionFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Catalog.Source = "postgres"

	repo, err := repository.New(cfg, &postgres.Connection{}, mocks.NewOtel())
	require.NoError(t, err)

	listings, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, listings)
}

func TestUpdate_PatchesSeededListing(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	listings, err := repo.FindAll(ctx)
	require.NoError(t, err)

	id := listings[0].ID
	require.NoError(t, repo.Update(ctx, id, map[string]any{"status": model.StatusArchived, "capacity": 9}))

	updated, ok, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.StatusArchived, updated.Status)
	require.NotNil(t, updated.Capacity)
	assert.Equal(t, 9, *updated.Capacity)
}
