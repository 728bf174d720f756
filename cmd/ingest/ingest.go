package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"taghazout/infras/catalogapi"
)

// copier pages through remote resources. All resources share one semaphore, so
// workers bounds the number of in-flight page copies across the whole run.
type copier struct {
	client   *catalogapi.Client
	sem      *semaphore.Weighted
	pageSize int
}

func newCopier(client *catalogapi.Client, workers, pageSize int) *copier {
	return &copier{
		client:   client,
		sem:      semaphore.NewWeighted(int64(max(workers, 1))),
		pageSize: pageSize,
	}
}

// copyResource copies every page of resource into store and returns the number of stored items.
func copyResource[T any](ctx context.Context, c *copier, resource string, store func(context.Context, []T) error) (int64, error) {
	var copied atomic.Int64

	first, err := copyPage(ctx, c, resource, 1, store, &copied)
	if err != nil {
		return 0, err
	}

	if first.Last() {
		return copied.Load(), nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for page := 2; page <= first.Meta.TotalPage; page++ {
		if err := c.sem.Acquire(groupCtx, 1); err != nil {
			break
		}

		group.Go(func() error {
			defer c.sem.Release(1)

			_, err := copyPage(groupCtx, c, resource, page, store, &copied)

			return err
		})
	}

	if err := group.Wait(); err != nil {
		return copied.Load(), err
	}

	if err := ctx.Err(); err != nil {
		return copied.Load(), err
	}

	return copied.Load(), nil
}

func copyPage[T any](ctx context.Context, c *copier, resource string, page int, store func(context.Context, []T) error, copied *atomic.Int64) (catalogapi.Page[T], error) {
	result, err := catalogapi.List[T](ctx, c.client, resource, page, c.pageSize)
	if err != nil {
		return catalogapi.Page[T]{}, fmt.Errorf("failed to fetch %s page %d: %w", resource, page, err)
	}

	if err := store(ctx, result.Data); err != nil {
		return catalogapi.Page[T]{}, fmt.Errorf("failed to store %s page %d: %w", resource, page, err)
	}

	copied.Add(int64(len(result.Data)))

	log.Debug().Str("resource", resource).Int("page", page).Int("items", len(result.Data)).Msg("page copied")

	return result, nil
}

// run copies resource and logs how many items landed.
func run[T any](ctx context.Context, c *copier, resource string, store func(context.Context, []T) error) error {
	copied, err := copyResource(ctx, c, resource, store)
	if err != nil {
		log.Error().Err(err).Str("resource", resource).Int64("copied", copied).Msg("resource copy failed")

		return err
	}

	log.Info().Str("resource", resource).Int64("copied", copied).Msg("resource copied")

	return nil
}
