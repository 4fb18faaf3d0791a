package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Collection names in the document store.
const (
	UserCollection    = "user"
	ListingCollection = "listing"
)

// ListingStatusActive is the status every new listing is created with.
const ListingStatusActive = "active"

// UserDocument is a user as persisted in the "user" collection.
// PasswordHash is never exposed outside the logic layer.
type UserDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

// ListingDocument is a book listing as persisted in the "listing" collection.
type ListingDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Author      string        `bson:"author"`
	ISBN        *string       `bson:"isbn"`
	Price       float64       `bson:"price"`
	Condition   string        `bson:"condition"`
	Cover       *string       `bson:"cover"`
	Description *string       `bson:"description"`
	SellerEmail string        `bson:"seller_email"`
	Status      string        `bson:"status"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

// PublicUser is the externally visible shape of a user.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublicListing is the externally visible shape of a listing.
type PublicListing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        *string   `json:"isbn"`
	Price       float64   `json:"price"`
	Condition   string    `json:"condition"`
	Cover       *string   `json:"cover"`
	Description *string   `json:"description"`
	SellerEmail string    `json:"seller_email"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatedListing is the response to a successful listing creation.
type CreatedListing struct {
	ID string `json:"id"`
}
