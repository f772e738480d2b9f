package interfaces

import (
	"context"
	"resultsd/internal/models"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStoreInterface interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailAndOTP(ctx context.Context, email, otp string) (*models.User, error)
	SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expiry time.Time) error
	Activate(ctx context.Context, id primitive.ObjectID) error
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	EnsureIndexes(ctx context.Context) error
}
