package repositories

import (
	"context"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/repositories/interfaces"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository struct {
	coll  *mongo.Collection
	guard providers.StoreGuardInterface
	clock clockwork.Clock
}

func NewCategoryRepository(db *mongo.Database, guard providers.StoreGuardInterface, clock clockwork.Clock) interfaces.CategoryStoreInterface {
	return &CategoryRepository{
		coll:  db.Collection(CategoryKeysCollection),
		guard: guard,
		clock: clock,
	}
}

func (r *CategoryRepository) Insert(ctx context.Context, doc *models.CategoryKey) error {
	return r.guard.Do(ctx, "categories.insert", func(ctx context.Context) error {
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

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*models.CategoryKey, error) {
	var docs []*models.CategoryKey
	err := r.guard.Do(ctx, "categories.find_all", func(ctx context.Context) error {
		var err error
		docs, err = findAll[models.CategoryKey](ctx, r.coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
		return err
	})
	return docs, err
}

func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	return r.guard.Do(ctx, "categories.indexes", func(ctx context.Context) error {
		_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true).SetName("key_unique")},
			uniqueCategoryIndex(false),
		})
		return err
	})
}
