package database

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/eventos/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoCollection connects to MongoDB and returns the events collection
// together with its client so the caller can disconnect on shutdown.
func NewMongoCollection(ctx context.Context, cfg config.MongoConfig, logger zerolog.Logger) (*mongo.Client, *mongo.Collection, error) {
	var client *mongo.Client
	err := retry(ctx, logger, "mongo", func() error {
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			return err
		}
		if err := c.Ping(ctx, nil); err != nil {
			_ = c.Disconnect(ctx)
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)

	// Listing sorts by titulo; keep that off a collection scan.
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "titulo", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("create titulo index: %w", err)
	}

	return client, coll, nil
}
