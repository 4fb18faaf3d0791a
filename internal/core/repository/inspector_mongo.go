package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoInspector implements domain.StoreInspector for a Mongo database.
type MongoInspector struct {
	db *mongo.Database
}

func NewMongoInspector(db *mongo.Database) *MongoInspector {
	return &MongoInspector{db: db}
}

func (i *MongoInspector) Name() string { return i.db.Name() }

func (i *MongoInspector) ListCollectionNames(ctx context.Context) ([]string, error) {
	return i.db.ListCollectionNames(ctx, bson.D{})
}
