package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. One document per entity, one log entry per request.
const (
	ColCategories      = "categories"
	ColSeries          = "series"
	ColDeviceModels    = "device_models"
	ColRepairOptions   = "repair_options"
	ColServiceRequests = "service_requests"
)

// Connect opens the MongoDB connection and verifies it with a ping.
func Connect(uri, dbName string) (*mongo.Database, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logrus.WithField("database", dbName).Info("Connected to MongoDB")
	return client.Database(dbName), nil
}

// EnsureIndexes creates the lookup indexes the resolver leans on. Safe to run
// on every startup; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := []struct {
		col  string
		keys bson.D
		opts *options.IndexOptions
	}{
		{ColCategories, bson.D{{Key: "slug", Value: 1}}, nil},
		{ColSeries, bson.D{{Key: "slug", Value: 1}}, nil},
		{ColSeries, bson.D{{Key: "category", Value: 1}}, nil},
		{ColDeviceModels, bson.D{{Key: "slug", Value: 1}}, unique},
		{ColDeviceModels, bson.D{{Key: "series", Value: 1}}, nil},
		{ColRepairOptions, bson.D{{Key: "code", Value: 1}}, unique},
		{ColServiceRequests, bson.D{{Key: "createdAt", Value: -1}}, nil},
	}

	for _, s := range specs {
		model := mongo.IndexModel{Keys: s.keys}
		if s.opts != nil {
			model.Options = s.opts
		}
		if _, err := db.Collection(s.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", s.col, err)
		}
	}

	logrus.Info("Ensured catalog indexes")
	return nil
}
