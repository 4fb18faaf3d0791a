package domain

import "context"

// StoreInspector exposes what the diagnostics endpoint reports about the
// backing store.
type StoreInspector interface {
	// Name returns the database name in use.
	Name() string

	// ListCollectionNames returns the collections (or tables) present in the store.
	ListCollectionNames(ctx context.Context) ([]string, error)
}
