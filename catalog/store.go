// Package catalog defines the catalog-store boundary: book metadata
// and per-library availability for the records the recommender ranks.
// The persistence behind the Store interface is an external
// collaborator; storage/badger ships a local implementation.
package catalog

import "context"

// Book is the full catalog metadata row for one ISBN.
type Book struct {
	ISBN           string
	Title          string
	Authors        string
	Publisher      string
	Classification string
	RegisteredAt   string
	CoverURL       string
}

// Availability is one (isbn, library) holding row.
type Availability struct {
	ISBN    string
	Library string
}

// Store provides catalog lookups for result assembly.
// Implementations must be safe for concurrent use.
type Store interface {
	// BookInfo returns full catalog metadata rows for the given ISBNs.
	// Missing ISBNs are omitted without error.
	BookInfo(ctx context.Context, isbns []string) ([]*Book, error)

	// LibraryAvailability returns per-(isbn, library) availability rows
	// for the given ISBNs. An empty library selects all libraries;
	// otherwise only rows of the named library are returned.
	LibraryAvailability(ctx context.Context, isbns []string, library string) ([]*Availability, error)
}
