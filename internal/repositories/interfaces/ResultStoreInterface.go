package interfaces

import (
	"context"
	"resultsd/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultStoreInterface is the grouped-by-date backend. Every mutation is a
// single conditional update; a filter that no longer holds yields
// models.ErrNotMatched and leaves the document untouched.
type ResultStoreInterface interface {
	// Insert creates the first document of a category. models.ErrAlreadyExists
	// if another writer created it first.
	Insert(ctx context.Context, doc *models.Result) error
	// PushTimes appends entries to the existing group for date, provided none
	// of their times is already present in that group.
	PushTimes(ctx context.Context, category, date string, entries []models.Reading, nextResult string) (*models.Result, error)
	// PushDateGroup appends a new group, provided the document has none for its date.
	PushDateGroup(ctx context.Context, category string, group models.DateGroup, nextResult string) (*models.Result, error)
	FindByCategory(ctx context.Context, category string) (*models.Result, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Result, error)
	// FindAll returns every document, newest first.
	FindAll(ctx context.Context) ([]*models.Result, error)
	FindAllByCategory(ctx context.Context, category string) ([]*models.Result, error)
	// FindByCategoryAndDate matches the legacy top-level date field.
	FindByCategoryAndDate(ctx context.Context, category, date string) ([]*models.Result, error)
	// FindWithGroup returns the documents holding a group for date, each
	// projected down to that single group.
	FindWithGroup(ctx context.Context, date string) ([]*models.Result, error)
	SetTimeNumber(ctx context.Context, id primitive.ObjectID, date, time string, number models.NumberString, nextResult string) (*models.Result, error)
	PullTime(ctx context.Context, id primitive.ObjectID, date, time string) (*models.Result, error)
	EnsureIndexes(ctx context.Context) error
}
