package v1

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/duynhne/marketplace-service/internal/core/domain"
	"github.com/duynhne/marketplace-service/internal/core/repository"
)

// ---- fakes ----

type countingUsers struct {
	domain.UserRepository
	calls int
}

func (c *countingUsers) GetByEmail(ctx context.Context, email string) (*domain.UserDocument, error) {
	c.calls++
	return c.UserRepository.GetByEmail(ctx, email)
}

func (c *countingUsers) Create(ctx context.Context, u *domain.UserDocument) (bson.ObjectID, error) {
	c.calls++
	return c.UserRepository.Create(ctx, u)
}

type countingListings struct {
	domain.ListingRepository
	calls int
}

func (c *countingListings) Create(ctx context.Context, l *domain.ListingDocument) (bson.ObjectID, error) {
	c.calls++
	return c.ListingRepository.Create(ctx, l)
}

// racingUsers reports no existing user but rejects the insert, as a store
// with a unique index does when a concurrent registration won.
type racingUsers struct{}

func (racingUsers) GetByEmail(context.Context, string) (*domain.UserDocument, error) { return nil, nil }
func (racingUsers) Create(context.Context, *domain.UserDocument) (bson.ObjectID, error) {
	return bson.NilObjectID, domain.ErrDuplicateKey
}

type failingUsers struct{ err error }

func (f failingUsers) GetByEmail(context.Context, string) (*domain.UserDocument, error) {
	return nil, f.err
}
func (f failingUsers) Create(context.Context, *domain.UserDocument) (bson.ObjectID, error) {
	return bson.NilObjectID, f.err
}

func newServices() (*AuthService, *ListingService, *countingUsers, *countingListings) {
	mem := repository.NewMemoryStore()
	users := &countingUsers{UserRepository: mem.Users()}
	listings := &countingListings{ListingRepository: mem.Listings()}
	return NewAuthService(users, VerbatimPasswords{}), NewListingService(users, listings), users, listings
}

func ptr[T any](v T) *T { return &v }

// ---- auth ----

func TestAuthService_Register(t *testing.T) {
	auth, _, _, _ := newServices()
	ctx := context.Background()
	req := domain.RegisterRequest{Name: "Alice", Email: "alice@example.com", PasswordHash: "h1"}

	user, err := auth.Register(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = auth.Register(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_DomainCaseInsensitive(t *testing.T) {
	auth, listings, _, _ := newServices()
	ctx := context.Background()

	user, err := auth.Register(ctx, domain.RegisterRequest{Name: "Alice", Email: "alice@EXAMPLE.com", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = auth.Register(ctx, domain.RegisterRequest{Name: "Alice", Email: "alice@example.com", PasswordHash: "h1"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = auth.Login(ctx, domain.LoginRequest{Email: " alice@Example.com", PasswordHash: "h1"})
	assert.NoError(t, err)

	req := validListing()
	req.SellerEmail = "alice@example.COM"
	_, err = listings.Create(ctx, req)
	assert.NoError(t, err)
}

func TestAuthService_Register_InsertRace(t *testing.T) {
	auth := NewAuthService(racingUsers{}, nil)

	_, err := auth.Register(context.Background(), domain.RegisterRequest{Name: "A", Email: "a@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_Validation(t *testing.T) {
	auth, _, users, _ := newServices()

	_, err := auth.Register(context.Background(), domain.RegisterRequest{Name: "Alice", Email: "nope"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password_hash")
	assert.Zero(t, users.calls)
}

func TestAuthService_Login(t *testing.T) {
	auth, _, _, _ := newServices()
	ctx := context.Background()

	_, err := auth.Register(ctx, domain.RegisterRequest{Name: "Alice", Email: "alice@example.com", PasswordHash: "h1"})
	require.NoError(t, err)

	user, err := auth.Login(ctx, domain.LoginRequest{Email: "alice@example.com", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)

	_, wrongHash := auth.Login(ctx, domain.LoginRequest{Email: "alice@example.com", PasswordHash: "h2"})
	_, unknown := auth.Login(ctx, domain.LoginRequest{Email: "bob@example.com", PasswordHash: "h1"})

	assert.ErrorIs(t, wrongHash, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
}

func TestAuthService_Login_Bcrypt(t *testing.T) {
	mem := repository.NewMemoryStore()
	auth := NewAuthService(mem.Users(), BcryptPasswords{Cost: 4})
	ctx := context.Background()

	_, err := auth.Register(ctx, domain.RegisterRequest{Name: "Alice", Email: "alice@example.com", PasswordHash: "h1"})
	require.NoError(t, err)

	stored, err := mem.Users().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "h1", stored.PasswordHash)

	_, err = auth.Login(ctx, domain.LoginRequest{Email: "alice@example.com", PasswordHash: "h1"})
	assert.NoError(t, err)

	_, err = auth.Login(ctx, domain.LoginRequest{Email: "alice@example.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_StoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	auth := NewAuthService(failingUsers{err: boom}, nil)

	_, err := auth.Login(context.Background(), domain.LoginRequest{Email: "a@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ---- listings ----

func validListing() domain.CreateListingRequest {
	return domain.CreateListingRequest{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Price:       ptr(12.5),
		Condition:   "Good",
		SellerEmail: "alice@example.com",
	}
}

func TestListingService_Create_SellerNotFound(t *testing.T) {
	_, listings, _, store := newServices()

	_, err := listings.Create(context.Background(), validListing())
	assert.ErrorIs(t, err, ErrSellerNotFound)
	assert.Zero(t, store.calls)
}

func TestListingService_CreateAndGet(t *testing.T) {
	auth, listings, _, _ := newServices()
	ctx := context.Background()

	_, err := auth.Register(ctx, domain.RegisterRequest{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	created, err := listings.Create(ctx, validListing())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := listings.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.Equal(t, 12.5, got.Price)
	assert.Equal(t, domain.ListingStatusActive, got.Status)
}

func TestListingService_Create_NegativePriceRejectedBeforeStore(t *testing.T) {
	_, listings, users, store := newServices()

	req := validListing()
	req.Price = ptr(-1.0)

	_, err := listings.Create(context.Background(), req)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "price")
	assert.Zero(t, users.calls)
	assert.Zero(t, store.calls)
}

func TestListingService_List(t *testing.T) {
	auth, listings, _, _ := newServices()
	ctx := context.Background()

	_, err := auth.Register(ctx, domain.RegisterRequest{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	for _, title := range []string{"Dune", "DUNE Messiah", "Neuromancer"} {
		req := validListing()
		req.Title = title
		_, err := listings.Create(ctx, req)
		require.NoError(t, err)
	}

	empty, err := NewListingService(nil, repository.NewMemoryStore().Listings()).List(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	all, err := listings.List(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	dune, err := listings.List(ctx, domain.ListingFilter{Title: "Dune"})
	require.NoError(t, err)
	require.Len(t, dune, 2)
	for _, l := range dune {
		assert.Contains(t, []string{"Dune", "DUNE Messiah"}, l.Title)
	}

	none, err := listings.List(ctx, domain.ListingFilter{Title: "Dune", Author: "Gibson"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListingService_Get_Errors(t *testing.T) {
	_, listings, _, _ := newServices()
	ctx := context.Background()

	_, err := listings.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrMalformedID)

	_, err = listings.Get(ctx, bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}
