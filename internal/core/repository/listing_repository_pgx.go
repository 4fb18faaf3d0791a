package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/duynhne/marketplace-service/internal/core/domain"
)

const listingColumns = `id, title, author, isbn, price, condition, cover, description, seller_email, status, created_at, updated_at`

// PgxListingRepository implements domain.ListingRepository using pgxpool.
type PgxListingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxListingRepository creates a new PgxListingRepository.
func NewPgxListingRepository(pool *pgxpool.Pool) *PgxListingRepository {
	return &PgxListingRepository{pool: pool}
}

// Create inserts a new listing and returns the generated identifier.
func (r *PgxListingRepository) Create(ctx context.Context, l *domain.ListingDocument) (bson.ObjectID, error) {
	query := `INSERT INTO listings (` + listingColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	id := bson.NewObjectID()
	now := time.Now().UTC()
	l.CreatedAt, l.UpdatedAt = now, now

	_, err := r.pool.Exec(ctx, query,
		id.Hex(), l.Title, l.Author, l.ISBN, l.Price, l.Condition,
		l.Cover, l.Description, l.SellerEmail, l.Status, now, now,
	)
	if err != nil {
		return bson.NilObjectID, pgWriteError(err)
	}

	l.ID = id
	return id, nil
}

// Find returns the listings matching filter in insertion order.
func (r *PgxListingRepository) Find(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingDocument, error) {
	query, args := ListingFilterToSQL(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []domain.ListingDocument{}
	for rows.Next() {
		doc, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetByID returns the listing with the given identifier.
// Returns (nil, nil) when no listing is found.
func (r *PgxListingRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.ListingDocument, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	doc, err := scanListing(r.pool.QueryRow(ctx, query, id.Hex()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return doc, err
}

// ListingFilterToSQL translates a ListingFilter into a SELECT over listings.
// Each set field becomes a case-insensitive literal substring condition.
func ListingFilterToSQL(f domain.ListingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	for _, c := range []struct{ column, term string }{
		{"title", f.Title},
		{"author", f.Author},
		{"isbn", f.ISBN},
	} {
		if c.term == "" {
			continue
		}
		args = append(args, c.term)
		conds = append(conds, fmt.Sprintf("strpos(lower(%s), lower($%d)) > 0", c.column, len(args)))
	}

	query := `SELECT ` + listingColumns + ` FROM listings`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY created_at, id`
	return query, args
}

func scanListing(row pgx.Row) (*domain.ListingDocument, error) {
	var (
		doc domain.ListingDocument
		id  string
	)
	err := row.Scan(
		&id, &doc.Title, &doc.Author, &doc.ISBN, &doc.Price, &doc.Condition,
		&doc.Cover, &doc.Description, &doc.SellerEmail, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if doc.ID, err = bson.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("decode listing id %q: %w", id, err)
	}
	return &doc, nil
}
