package repositories

import (
	"context"
	"errors"
	"regexp"
	"resultsd/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CategoryKeysCollection = "categorykeys"
	ResultsCollection      = "results"
	FlatResultsCollection  = "resultscrappers"
	UsersCollection        = "batting-users"
)

// categoryMatch builds the categoryname condition. Insensitive matching is
// anchored so "abc" never matches "abcd".
func categoryMatch(name string, insensitive bool) any {
	if insensitive {
		return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}
	}
	return name
}

// uniqueCategoryIndex enforces one document per category name. The
// case-insensitive variant uses a strength-2 collation and its own name,
// so switching modes never collides with the other index definition.
func uniqueCategoryIndex(insensitive bool) mongo.IndexModel {
	opts := options.Index().SetUnique(true).SetName("categoryname_unique")
	if insensitive {
		opts.SetName("categoryname_unique_ci").SetCollation(&options.Collation{Locale: "en", Strength: 2})
	}
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "categoryname", Value: 1}},
		Options: opts,
	}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	return err
}

func notMatched(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotMatched
	}
	return err
}

func alreadyExists(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAlreadyExists
	}
	return err
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
