package providers

import (
	"context"
	"fmt"
	"resultsd/internal/structures"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func NewMongoProvider(conf *structures.Config, logger Logger) (*mongo.Database, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.Timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(conf.Mongo.URI).
		SetServerSelectionTimeout(conf.Mongo.Timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Infof(TypeApp, "Connected to mongo database %s", conf.Mongo.Database)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.Timeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Errorf(TypeApp, "Mongo disconnect error: %s", err)
		}
	}
	return client.Database(conf.Mongo.Database), cleanup, nil
}

type StorePingerInterface interface {
	Ping(ctx context.Context) error
}

type MongoPinger struct {
	db *mongo.Database
}

func (p *MongoPinger) Ping(ctx context.Context) error {
	return p.db.Client().Ping(ctx, readpref.Primary())
}

func NewStorePinger(db *mongo.Database) StorePingerInterface {
	return &MongoPinger{db: db}
}
