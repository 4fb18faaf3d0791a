package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/duynhne/marketplace-service/internal/core/domain"
)

// MongoListingRepository implements domain.ListingRepository on the "listing" collection.
type MongoListingRepository struct {
	coll *mongo.Collection
}

// NewMongoListingRepository creates a new MongoListingRepository.
func NewMongoListingRepository(db *mongo.Database) *MongoListingRepository {
	return &MongoListingRepository{coll: db.Collection(domain.ListingCollection)}
}

// Create inserts a new listing and returns the generated identifier.
func (r *MongoListingRepository) Create(ctx context.Context, listing *domain.ListingDocument) (bson.ObjectID, error) {
	now := time.Now().UTC()
	listing.CreatedAt, listing.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, listing)
	if err != nil {
		return bson.NilObjectID, mongoWriteError(err)
	}
	id, err := insertedID(res)
	if err != nil {
		return bson.NilObjectID, err
	}

	listing.ID = id
	return id, nil
}

// Find returns the listings matching filter in natural order.
func (r *MongoListingRepository) Find(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingDocument, error) {
	cur, err := r.coll.Find(ctx, ListingFilterToBSON(filter))
	if err != nil {
		return nil, err
	}

	docs := []domain.ListingDocument{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetByID returns the listing with the given identifier.
// Returns (nil, nil) when no listing is found.
func (r *MongoListingRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.ListingDocument, error) {
	return decodeOne[domain.ListingDocument](r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}))
}

// ListingFilterToBSON translates a ListingFilter into a Mongo query.
// Search terms are quoted so they match literally, case-insensitively,
// anywhere in the field.
func ListingFilterToBSON(f domain.ListingFilter) bson.D {
	q := bson.D{}
	for _, c := range []struct{ field, term string }{
		{"title", f.Title},
		{"author", f.Author},
		{"isbn", f.ISBN},
	} {
		if c.term == "" {
			continue
		}
		q = append(q, bson.E{Key: c.field, Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(c.term)},
			{Key: "$options", Value: "i"},
		}})
	}
	return q
}
