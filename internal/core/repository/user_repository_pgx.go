package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/duynhne/marketplace-service/internal/core/domain"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// PgxUserRepository implements domain.UserRepository using pgxpool.
// Identifiers are generated as ObjectIDs and stored as hex text so both
// stores expose the same id format.
type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxUserRepository creates a new PgxUserRepository.
func NewPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{pool: pool}
}

// GetByEmail returns the user matching the given email.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserDocument, error) {
	query := `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = $1`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// Create inserts a new user and returns the generated identifier.
func (r *PgxUserRepository) Create(ctx context.Context, user *domain.UserDocument) (bson.ObjectID, error) {
	query := `INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`

	id := bson.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	_, err := r.pool.Exec(ctx, query, id.Hex(), user.Name, user.Email, user.PasswordHash, now, now)
	if err != nil {
		return bson.NilObjectID, pgWriteError(err)
	}

	user.ID = id
	return id, nil
}

// scanUser reads one users row. Returns (nil, nil) when there is no row.
func scanUser(row pgx.Row) (*domain.UserDocument, error) {
	var (
		doc domain.UserDocument
		id  string
	)
	err := row.Scan(&id, &doc.Name, &doc.Email, &doc.PasswordHash, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if doc.ID, err = bson.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("decode user id %q: %w", id, err)
	}
	return &doc, nil
}

// pgWriteError reports unique constraint violations as domain.ErrDuplicateKey.
func pgWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateKey
	}
	return err
}
