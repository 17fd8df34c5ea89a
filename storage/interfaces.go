package storage

import (
	"context"

	"github.com/yunseol/bookrec/catalog"
	"github.com/yunseol/bookrec/core"
)

// KeywordRepository persists the ranked keyword lists produced by the
// extraction pipeline and serves them back to the recommender.
// Implementations must be thread-safe.
type KeywordRepository interface {
	// PutKeywordResults stores keyword results, replacing any existing
	// result for the same ISBN. All results of one call are written in
	// a single transaction.
	PutKeywordResults(ctx context.Context, results ...*core.KeywordResult) error

	// GetKeywordResult retrieves the keyword result for one ISBN.
	// Returns ErrNotFound if the ISBN has no stored result.
	GetKeywordResult(ctx context.Context, isbn string) (*core.KeywordResult, error)

	// AllKeywordResults returns every stored keyword result, ordered by
	// ISBN ascending.
	AllKeywordResults(ctx context.Context) ([]*core.KeywordResult, error)

	// Close releases repository resources.
	Close() error
}

// CatalogRepository is a catalog.Store that can also be populated,
// used when the catalog rides the local KV store instead of an
// external database.
type CatalogRepository interface {
	catalog.Store

	// PutBooks stores catalog metadata rows, keyed by ISBN.
	PutBooks(ctx context.Context, books ...*catalog.Book) error

	// PutAvailability stores per-(isbn, library) availability rows.
	PutAvailability(ctx context.Context, rows ...*catalog.Availability) error

	// Close releases repository resources.
	Close() error
}
