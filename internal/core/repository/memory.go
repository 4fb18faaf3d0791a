package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/duynhne/marketplace-service/internal/core/domain"
)

// MemoryStore keeps users and listings in process memory. It backs the
// "memory" driver for local runs and the service tests.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]domain.UserDocument
	listings []domain.ListingDocument
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]domain.UserDocument)}
}

// Users returns a domain.UserRepository view of the store.
func (s *MemoryStore) Users() *MemoryUserRepository { return &MemoryUserRepository{s: s} }

// Listings returns a domain.ListingRepository view of the store.
func (s *MemoryStore) Listings() *MemoryListingRepository { return &MemoryListingRepository{s: s} }

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) ListCollectionNames(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	if len(s.users) > 0 {
		names = append(names, domain.UserCollection)
	}
	if len(s.listings) > 0 {
		names = append(names, domain.ListingCollection)
	}
	sort.Strings(names)
	return names, nil
}

type MemoryUserRepository struct {
	s *MemoryStore
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.UserDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.UserDocument) (bson.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.Email]; ok {
		return bson.NilObjectID, domain.ErrDuplicateKey
	}

	now := time.Now().UTC()
	user.ID = bson.NewObjectID()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.Email] = *user
	return user.ID, nil
}

type MemoryListingRepository struct {
	s *MemoryStore
}

func (r *MemoryListingRepository) Create(_ context.Context, listing *domain.ListingDocument) (bson.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	listing.ID = bson.NewObjectID()
	listing.CreatedAt, listing.UpdatedAt = now, now
	r.s.listings = append(r.s.listings, cloneListing(*listing))
	return listing.ID, nil
}

func (r *MemoryListingRepository) Find(_ context.Context, filter domain.ListingFilter) ([]domain.ListingDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.ListingDocument{}
	for _, l := range r.s.listings {
		if matchesFilter(l, filter) {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (r *MemoryListingRepository) GetByID(_ context.Context, id bson.ObjectID) (*domain.ListingDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, l := range r.s.listings {
		if l.ID == id {
			c := cloneListing(l)
			return &c, nil
		}
	}
	return nil, nil
}

// cloneListing copies the optional fields so stored listings never share
// memory with the caller.
func cloneListing(l domain.ListingDocument) domain.ListingDocument {
	l.ISBN = cloneString(l.ISBN)
	l.Cover = cloneString(l.Cover)
	l.Description = cloneString(l.Description)
	return l
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func matchesFilter(l domain.ListingDocument, f domain.ListingFilter) bool {
	var isbn string
	if l.ISBN != nil {
		isbn = *l.ISBN
	}
	return containsFold(l.Title, f.Title) &&
		containsFold(l.Author, f.Author) &&
		(f.ISBN == "" || (l.ISBN != nil && containsFold(isbn, f.ISBN)))
}

func containsFold(s, term string) bool {
	return term == "" || strings.Contains(strings.ToLower(s), strings.ToLower(term))
}
