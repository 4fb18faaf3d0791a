package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestToPublicUser(t *testing.T) {
	assert.Nil(t, ToPublicUser(nil))

	id := bson.NewObjectID()
	u := ToPublicUser(&UserDocument{ID: id, Name: "Alice", Email: "alice@example.com", PasswordHash: "secret"})
	require.NotNil(t, u)
	assert.Equal(t, id.Hex(), u.ID)
	assert.Equal(t, "Alice", u.Name)

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password_hash")
	assert.NotContains(t, string(raw), "secret")
}

func TestToPublicListing(t *testing.T) {
	assert.Nil(t, ToPublicListing(nil))

	id := bson.NewObjectID()
	isbn := "9780441013593"
	now := time.Now().UTC()
	doc := &ListingDocument{
		ID:          id,
		Title:       "Dune",
		Author:      "Frank Herbert",
		ISBN:        &isbn,
		Price:       12.5,
		Condition:   "Good",
		SellerEmail: "alice@example.com",
		Status:      ListingStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	pub := ToPublicListing(doc)
	require.NotNil(t, pub)
	assert.Equal(t, id.Hex(), pub.ID)
	assert.Equal(t, "Dune", pub.Title)
	assert.Equal(t, &isbn, pub.ISBN)
	assert.Nil(t, pub.Cover)
	assert.Equal(t, 12.5, pub.Price)

	raw, err := json.Marshal(pub)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, id.Hex(), fields["id"])
	assert.NotContains(t, fields, "_id")
	assert.Contains(t, fields, "description")
}

func TestToPublicListings_Empty(t *testing.T) {
	out := ToPublicListings(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}
