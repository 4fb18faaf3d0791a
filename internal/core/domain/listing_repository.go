package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ListingFilter holds the optional search constraints for listings.
// An empty field imposes no constraint; set fields are ANDed and each one is a
// case-insensitive substring match on the stored field.
type ListingFilter struct {
	Title  string `form:"title"`
	Author string `form:"author"`
	ISBN   string `form:"isbn"`
}

// ListingRepository defines the data-access contract for the listing collection.
type ListingRepository interface {
	// Create inserts a new listing and returns the store-generated identifier.
	Create(ctx context.Context, listing *ListingDocument) (bson.ObjectID, error)

	// Find returns the listings matching the filter, in store order.
	Find(ctx context.Context, filter ListingFilter) ([]ListingDocument, error)

	// GetByID returns the listing with the given identifier.
	// Returns (nil, nil) when no listing is found.
	GetByID(ctx context.Context, id bson.ObjectID) (*ListingDocument, error)
}
