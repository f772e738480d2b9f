package interfaces

import (
	"context"
	"resultsd/internal/models"
)

type CategoryStoreInterface interface {
	// Insert fails with models.ErrAlreadyExists when the key or the category
	// name is already registered.
	Insert(ctx context.Context, doc *models.CategoryKey) error
	FindAll(ctx context.Context) ([]*models.CategoryKey, error)
	EnsureIndexes(ctx context.Context) error
}
