package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Update and Delete when no row carries the id.
	ErrNotFound       = errors.New("record not found")
	errRequiredFilter = errors.New("required filter")
)

// Store is the persistence contract every catalog and booking repository builds
// on. FindAll returns records in insertion order, which is the "original order"
// the catalog engine's stable sorts preserve.
type Store[T any] interface {
	Insert(ctx context.Context, model T) error
	InsertBulk(ctx context.Context, models []T) error
	FindAll(ctx context.Context) ([]T, error)
	FindBy(ctx context.Context, column string, value any) (T, bool, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}
