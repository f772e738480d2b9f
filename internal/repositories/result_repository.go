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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResultRepository struct {
	coll            *mongo.Collection
	guard           providers.StoreGuardInterface
	clock           clockwork.Clock
	caseInsensitive bool
}

func NewResultRepository(db *mongo.Database, guard providers.StoreGuardInterface, clock clockwork.Clock, conf *structures.Config) interfaces.ResultStoreInterface {
	return &ResultRepository{
		coll:            db.Collection(ResultsCollection),
		guard:           guard,
		clock:           clock,
		caseInsensitive: conf.Results.GroupedCaseInsensitive,
	}
}

func (r *ResultRepository) category(name string) any {
	return categoryMatch(name, r.caseInsensitive)
}

func (r *ResultRepository) Insert(ctx context.Context, doc *models.Result) error {
	return r.guard.Do(ctx, "results.insert", func(ctx context.Context) error {
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

func (r *ResultRepository) PushTimes(ctx context.Context, category, date string, entries []models.Reading, nextResult string) (*models.Result, error) {
	times := make([]string, len(entries))
	for i, e := range entries {
		times[i] = e.Time
	}

	// The group must exist and hold none of the candidate times; the
	// positional operator then targets exactly that group.
	filter := bson.M{
		"categoryname": r.category(category),
		"result": bson.M{"$elemMatch": bson.M{
			"date":       date,
			"times.time": bson.M{"$nin": times},
		}},
	}
	update := bson.M{
		"$push": bson.M{"result.$.times": bson.M{"$each": entries}},
		"$set":  bson.M{"next_result": nextResult, "updatedAt": r.clock.Now()},
	}

	var doc models.Result
	err := r.guard.Do(ctx, "results.push_times", func(ctx context.Context) error {
		return notMatched(r.coll.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&doc))
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ResultRepository) PushDateGroup(ctx context.Context, category string, group models.DateGroup, nextResult string) (*models.Result, error) {
	filter := bson.M{
		"categoryname": r.category(category),
		"result.date":  bson.M{"$ne": group.Date},
	}
	update := bson.M{
		"$push": bson.M{"result": group},
		"$set":  bson.M{"next_result": nextResult, "updatedAt": r.clock.Now()},
	}

	var doc models.Result
	err := r.guard.Do(ctx, "results.push_group", func(ctx context.Context) error {
		return notMatched(r.coll.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&doc))
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ResultRepository) FindByCategory(ctx context.Context, category string) (*models.Result, error) {
	var doc models.Result
	err := r.guard.Do(ctx, "results.find_category", func(ctx context.Context) error {
		return notFound(r.coll.FindOne(ctx, bson.M{"categoryname": r.category(category)}).Decode(&doc))
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ResultRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Result, error) {
	var doc models.Result
	err := r.guard.Do(ctx, "results.find_id", func(ctx context.Context) error {
		return notFound(r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc))
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ResultRepository) FindAll(ctx context.Context) ([]*models.Result, error) {
	return r.find(ctx, "results.find_all", bson.M{}, newestFirst())
}

func (r *ResultRepository) FindAllByCategory(ctx context.Context, category string) ([]*models.Result, error) {
	return r.find(ctx, "results.find_all_category", bson.M{"categoryname": r.category(category)}, newestFirst())
}

func (r *ResultRepository) FindByCategoryAndDate(ctx context.Context, category, date string) ([]*models.Result, error) {
	return r.find(ctx, "results.find_category_date", bson.M{"categoryname": r.category(category), "date": date}, newestFirst())
}

// groupProjection keeps every root field and narrows result to the matched group.
func groupProjection() bson.M {
	return bson.M{
		"result.$":     1,
		"categoryname": 1,
		"date":         1,
		"number":       1,
		"next_result":  1,
		"mode":         1,
		"key":          1,
		"createdAt":    1,
		"updatedAt":    1,
	}
}

func (r *ResultRepository) FindWithGroup(ctx context.Context, date string) ([]*models.Result, error) {
	opts := newestFirst().SetProjection(groupProjection())
	return r.find(ctx, "results.find_group", bson.M{"result.date": date}, opts)
}

func (r *ResultRepository) find(ctx context.Context, operation string, filter any, opts *options.FindOptions) ([]*models.Result, error) {
	var docs []*models.Result
	err := r.guard.Do(ctx, operation, func(ctx context.Context) error {
		var err error
		docs, err = findAll[models.Result](ctx, r.coll, filter, opts)
		return err
	})
	return docs, err
}

// entryFilter matches document id only when it holds time inside the group for date.
func entryFilter(id primitive.ObjectID, date, time string) bson.M {
	return bson.M{
		"_id":    id,
		"result": bson.M{"$elemMatch": bson.M{"date": date, "times.time": time}},
	}
}

func (r *ResultRepository) SetTimeNumber(ctx context.Context, id primitive.ObjectID, date, time string, number models.NumberString, nextResult string) (*models.Result, error) {
	set := bson.M{
		"result.$[d].times.$[t].number": number,
		"updatedAt":                     r.clock.Now(),
	}
	if nextResult != "" {
		set["next_result"] = nextResult
	}
	opts := returnAfter().SetArrayFilters(options.ArrayFilters{Filters: []interface{}{
		bson.M{"d.date": date},
		bson.M{"t.time": time},
	}})

	var doc models.Result
	err := r.guard.Do(ctx, "results.set_number", func(ctx context.Context) error {
		return notFound(r.coll.FindOneAndUpdate(ctx, entryFilter(id, date, time), bson.M{"$set": set}, opts).Decode(&doc))
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ResultRepository) PullTime(ctx context.Context, id primitive.ObjectID, date, time string) (*models.Result, error) {
	update := bson.M{
		"$pull": bson.M{"result.$[d].times": bson.M{"time": time}},
		"$set":  bson.M{"updatedAt": r.clock.Now()},
	}
	opts := returnAfter().SetArrayFilters(options.ArrayFilters{Filters: []interface{}{
		bson.M{"d.date": date},
	}})

	var doc models.Result
	err := r.guard.Do(ctx, "results.pull_time", func(ctx context.Context) error {
		return notFound(r.coll.FindOneAndUpdate(ctx, entryFilter(id, date, time), update, opts).Decode(&doc))
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ResultRepository) EnsureIndexes(ctx context.Context) error {
	return r.guard.Do(ctx, "results.indexes", func(ctx context.Context) error {
		_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
			uniqueCategoryIndex(r.caseInsensitive),
			{Keys: bson.D{{Key: "result.date", Value: 1}}},
		})
		return err
	})
}
