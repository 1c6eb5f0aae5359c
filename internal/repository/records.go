package repository

import (
	"context"

	"crudkit/internal/model"
)

// Repository is the ordered collection of one entity type. Get, Update and
// Delete fail with a domain.NotFoundError when the id is unknown.
type Repository[T model.Entity[T]] interface {
	List(ctx context.Context, offset, limit int) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id string, patch model.Patch[T]) (T, error)
	Delete(ctx context.Context, id string) error
}
