package repositories

import (
	"context"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/repositories/interfaces"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	coll  *mongo.Collection
	guard providers.StoreGuardInterface
}

func NewUserRepository(db *mongo.Database, guard providers.StoreGuardInterface) interfaces.UserStoreInterface {
	return &UserRepository{
		coll:  db.Collection(UsersCollection),
		guard: guard,
	}
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	return r.guard.Do(ctx, "users.insert", func(ctx context.Context) error {
		res, err := r.coll.InsertOne(ctx, user)
		if err != nil {
			return alreadyExists(err)
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			user.ID = id
		}
		return nil
	})
}

func (r *UserRepository) findOne(ctx context.Context, operation string, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.guard.Do(ctx, operation, func(ctx context.Context) error {
		return notFound(r.coll.FindOne(ctx, filter).Decode(&user))
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "users.find_email", bson.M{"email": email})
}

func (r *UserRepository) FindByEmailAndOTP(ctx context.Context, email, otp string) (*models.User, error) {
	return r.findOne(ctx, "users.find_otp", bson.M{"email": email, "otp": otp})
}

func (r *UserRepository) update(ctx context.Context, operation string, id primitive.ObjectID, update bson.M) error {
	return r.guard.Do(ctx, operation, func(ctx context.Context) error {
		res, err := r.coll.UpdateByID(ctx, id, update)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

func (r *UserRepository) SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expiry time.Time) error {
	return r.update(ctx, "users.set_otp", id, bson.M{"$set": bson.M{
		"otp":           otp,
		"otpExpiry":     expiry,
		"authenticated": false,
	}})
}

func (r *UserRepository) Activate(ctx context.Context, id primitive.ObjectID) error {
	return r.update(ctx, "users.activate", id, bson.M{
		"$set":   bson.M{"authenticated": true},
		"$unset": bson.M{"otp": "", "otpExpiry": ""},
	})
}

func (r *UserRepository) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return r.update(ctx, "users.set_password", id, bson.M{"$set": bson.M{"password": hash}})
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return r.guard.Do(ctx, "users.indexes", func(ctx context.Context) error {
		_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		})
		return err
	})
}
