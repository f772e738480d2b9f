package repositories

import (
	"context"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/repositories/interfaces"
	"resultsd/internal/structures"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FlatResultRepository struct {
	coll            *mongo.Collection
	guard           providers.StoreGuardInterface
	clock           clockwork.Clock
	caseInsensitive bool
}

func NewFlatResultRepository(db *mongo.Database, guard providers.StoreGuardInterface, clock clockwork.Clock, conf *structures.Config) interfaces.FlatResultStoreInterface {
	return &FlatResultRepository{
		coll:            db.Collection(FlatResultsCollection),
		guard:           guard,
		clock:           clock,
		caseInsensitive: conf.Results.FlatCaseInsensitive,
	}
}

func (r *FlatResultRepository) category(name string) any {
	return categoryMatch(name, r.caseInsensitive)
}

func (r *FlatResultRepository) rootSet(root interfaces.FlatRoot) bson.M {
	return bson.M{
		"number":      root.Number,
		"next_result": root.NextResult,
		"mode":        root.Mode,
		"date":        root.Date,
		"updatedAt":   r.clock.Now(),
	}
}

func (r *FlatResultRepository) SetEntryNumber(ctx context.Context, category string, entry models.FlatEntry, root interfaces.FlatRoot) (*models.ResultFlat, error) {
	filter := bson.M{
		"categoryname": r.category(category),
		"result":       bson.M{"$elemMatch": bson.M{"date": entry.Date, "time": entry.Time}},
	}
	set := r.rootSet(root)
	set["result.$.number"] = entry.Number

	var doc models.ResultFlat
	err := r.guard.Do(ctx, "flat.set_number", func(ctx context.Context) error {
		return notMatched(r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, returnAfter()).Decode(&doc))
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *FlatResultRepository) PushEntry(ctx context.Context, category string, entry models.FlatEntry, root interfaces.FlatRoot) (*models.ResultFlat, error) {
	filter := bson.M{
		"categoryname": r.category(category),
		"result": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"date": entry.Date,
			"time": entry.Time,
		}}},
	}
	update := bson.M{
		"$push": bson.M{"result": entry},
		"$set":  r.rootSet(root),
	}

	var doc models.ResultFlat
	err := r.guard.Do(ctx, "flat.push_entry", func(ctx context.Context) error {
		return notMatched(r.coll.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&doc))
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *FlatResultRepository) Insert(ctx context.Context, doc *models.ResultFlat) error {
	return r.guard.Do(ctx, "flat.insert", func(ctx context.Context) error {
		now := r.clock.Now()
		doc.CreatedAt, doc.UpdatedAt = now, now
		res, err := r.coll.InsertOne(ctx, doc)
		if err != nil {
			return alreadyExists(err)
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			doc.ID = id
		}
		return nil
	})
}

func (r *FlatResultRepository) FindAll(ctx context.Context) ([]*models.ResultFlat, error) {
	return r.find(ctx, "flat.find_all", bson.M{})
}

func (r *FlatResultRepository) FindAllByCategory(ctx context.Context, category string) ([]*models.ResultFlat, error) {
	return r.find(ctx, "flat.find_all_category", bson.M{"categoryname": r.category(category)})
}

func (r *FlatResultRepository) FindByCategoryAndDate(ctx context.Context, category, date string) ([]*models.ResultFlat, error) {
	return r.find(ctx, "flat.find_category_date", bson.M{"categoryname": r.category(category), "date": date})
}

func (r *FlatResultRepository) find(ctx context.Context, operation string, filter any) ([]*models.ResultFlat, error) {
	var docs []*models.ResultFlat
	err := r.guard.Do(ctx, operation, func(ctx context.Context) error {
		var err error
		docs, err = findAll[models.ResultFlat](ctx, r.coll, filter, newestFirst())
		return err
	})
	return docs, err
}

func (r *FlatResultRepository) EnsureIndexes(ctx context.Context) error {
	return r.guard.Do(ctx, "flat.indexes", func(ctx context.Context) error {
		_, err := r.coll.Indexes().CreateOne(ctx, uniqueCategoryIndex(r.caseInsensitive))
		return err
	})
}
