package interfaces

import (
	"context"
	"resultsd/internal/models"
)

// FlatRoot holds the root fields every flat write refreshes.
type FlatRoot struct {
	Number     models.NumberString
	NextResult string
	Mode       string
	Date       string
}

// FlatResultStoreInterface is the per-entry backend filled by the external
// ingester. Mutations follow the same conditional-update contract as
// ResultStoreInterface.
type FlatResultStoreInterface interface {
	// SetEntryNumber overwrites the number of the existing (date, time) entry.
	SetEntryNumber(ctx context.Context, category string, entry models.FlatEntry, root FlatRoot) (*models.ResultFlat, error)
	// PushEntry appends the entry, provided the document has no entry at the same date and time.
	PushEntry(ctx context.Context, category string, entry models.FlatEntry, root FlatRoot) (*models.ResultFlat, error)
	Insert(ctx context.Context, doc *models.ResultFlat) error
	FindAll(ctx context.Context) ([]*models.ResultFlat, error)
	FindAllByCategory(ctx context.Context, category string) ([]*models.ResultFlat, error)
	FindByCategoryAndDate(ctx context.Context, category, date string) ([]*models.ResultFlat, error)
	EnsureIndexes(ctx context.Context) error
}
