package v1

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/marketplace-service/internal/core/domain"
	"github.com/duynhne/marketplace-service/middleware"
)

// ListingService implements listing creation, search and lookup.
type ListingService struct {
	users    domain.UserRepository
	listings domain.ListingRepository
}

// NewListingService creates a new ListingService.
func NewListingService(users domain.UserRepository, listings domain.ListingRepository) *ListingService {
	return &ListingService{
		users:    users,
		listings: listings,
	}
}

// Create persists a new active listing for an existing seller.
func (s *ListingService) Create(ctx context.Context, req domain.CreateListingRequest) (*domain.CreatedListing, error) {
	req.SellerEmail = domain.NormalizeEmail(req.SellerEmail)

	ctx, span := middleware.StartSpan(ctx, "listing.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("seller_email", req.SellerEmail),
	))
	defer span.End()

	if err := domain.NewValidationError(req.Validate()); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return nil, fmt.Errorf("validate listing request: %w", err)
	}

	seller, err := s.users.GetByEmail(ctx, req.SellerEmail)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query seller %q: %w", req.SellerEmail, err)
	}
	if seller == nil {
		span.SetAttributes(attribute.Bool("seller.exists", false))
		return nil, fmt.Errorf("create listing for %q: %w", req.SellerEmail, ErrSellerNotFound)
	}

	id, err := s.listings.Create(ctx, req.Document())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert listing: %w", err)
	}

	span.SetAttributes(attribute.String("listing.id", id.Hex()))
	span.AddEvent("listing.created")

	return &domain.CreatedListing{ID: id.Hex()}, nil
}

// List returns the public listings matching filter. The result is never nil.
func (s *ListingService) List(ctx context.Context, filter domain.ListingFilter) ([]domain.PublicListing, error) {
	ctx, span := middleware.StartSpan(ctx, "listing.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("filter.title", filter.Title),
		attribute.String("filter.author", filter.Author),
		attribute.String("filter.isbn", filter.ISBN),
	))
	defer span.End()

	docs, err := s.listings.Find(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("find listings: %w", err)
	}

	span.SetAttributes(attribute.Int("listing.count", len(docs)))
	return domain.ToPublicListings(docs), nil
}

// Get returns the public listing with the given hex identifier.
func (s *ListingService) Get(ctx context.Context, rawID string) (*domain.PublicListing, error) {
	ctx, span := middleware.StartSpan(ctx, "listing.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("listing.id", rawID),
	))
	defer span.End()

	id, err := bson.ObjectIDFromHex(rawID)
	if err != nil {
		span.SetAttributes(attribute.Bool("id.valid", false))
		return nil, fmt.Errorf("parse listing id %q: %w", rawID, ErrMalformedID)
	}

	doc, err := s.listings.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query listing %q: %w", rawID, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("get listing %q: %w", rawID, ErrNotFound)
	}

	return domain.ToPublicListing(doc), nil
}
