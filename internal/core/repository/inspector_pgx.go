package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/marketplace-service/internal/core/domain"
)

// tableCollections maps the PostgreSQL tables backing the repositories to the
// collection names the Mongo store uses, so /test reads the same on both.
var tableCollections = map[string]string{
	"users":    domain.UserCollection,
	"listings": domain.ListingCollection,
}

// PgxInspector implements domain.StoreInspector for a PostgreSQL database,
// reporting tables as collections.
type PgxInspector struct {
	pool *pgxpool.Pool
}

func NewPgxInspector(pool *pgxpool.Pool) *PgxInspector {
	return &PgxInspector{pool: pool}
}

func (i *PgxInspector) Name() string { return i.pool.Config().ConnConfig.Database }

func (i *PgxInspector) ListCollectionNames(ctx context.Context) ([]string, error) {
	query := `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name`

	rows, err := i.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return collectionNames(tables), nil
}

// collectionNames renames known tables to their collection names and keeps
// any other table as is.
func collectionNames(tables []string) []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		if c, ok := tableCollections[t]; ok {
			t = c
		}
		names = append(names, t)
	}
	return names
}
