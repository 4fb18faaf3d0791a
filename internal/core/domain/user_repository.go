package domain

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrDuplicateKey is returned by repositories when an insert violates a
// unique constraint (user email).
var ErrDuplicateKey = errors.New("duplicate key")

// UserRepository defines the data-access contract for the user collection.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only, never on a store driver directly.
type UserRepository interface {
	// GetByEmail returns the user with the given email.
	// Returns (nil, nil) when no user is found.
	GetByEmail(ctx context.Context, email string) (*UserDocument, error)

	// Create inserts a new user and returns the store-generated identifier.
	// Returns ErrDuplicateKey when the email is already taken.
	Create(ctx context.Context, user *UserDocument) (bson.ObjectID, error)
}
