package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/duynhne/marketplace-service/internal/core/domain"
)

// MongoUserRepository implements domain.UserRepository on the "user" collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(domain.UserCollection)}
}

// GetByEmail returns the user matching the given email.
// Returns (nil, nil) when no user is found.
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserDocument, error) {
	return decodeOne[domain.UserDocument](r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}))
}

// Create inserts a new user and returns the generated identifier.
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.UserDocument) (bson.ObjectID, error) {
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return bson.NilObjectID, mongoWriteError(err)
	}
	id, err := insertedID(res)
	if err != nil {
		return bson.NilObjectID, err
	}

	user.ID = id
	return id, nil
}

// decodeOne decodes a FindOne result. Returns (nil, nil) when nothing matched.
func decodeOne[T any](res *mongo.SingleResult) (*T, error) {
	var doc T
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// mongoWriteError reports unique index violations as domain.ErrDuplicateKey.
func mongoWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	return err
}

func insertedID(res *mongo.InsertOneResult) (bson.ObjectID, error) {
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}
