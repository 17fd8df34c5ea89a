package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/yunseol/bookrec/catalog"
	"github.com/yunseol/bookrec/core"
)

// Recommendation is one assembled result row: catalog metadata plus
// the names of the libraries holding the item, ordered by score.
type Recommendation struct {
	ISBN           string
	Title          string
	Authors        string
	Publisher      string
	Classification string
	RegisteredAt   string
	CoverURL       string

	// LibraryNames is the space-joined names of the libraries that
	// hold this item, restricted to the selected library when one
	// was given.
	LibraryNames string

	Score int
}

// Assembler joins scored ISBNs with catalog metadata and library
// availability.
type Assembler struct {
	store catalog.Store
}

// NewAssembler creates an assembler over the given catalog store.
func NewAssembler(store catalog.Store) (*Assembler, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Assembler{store: store}, nil
}

// Assemble builds the final recommendation rows for the scored items,
// preserving their order. Availability is filtered by selectedLibrary
// when non-empty; items with no availability in the selection are
// dropped, as are items missing from the catalog.
func (a *Assembler) Assemble(ctx context.Context, scored []core.ScoredBook, selectedLibrary string) ([]*Recommendation, error) {
	if len(scored) == 0 {
		return nil, nil
	}

	isbns := make([]string, len(scored))
	for i, s := range scored {
		isbns[i] = s.ISBN
	}

	availability, err := a.store.LibraryAvailability(ctx, isbns, selectedLibrary)
	if err != nil {
		return nil, fmt.Errorf("loading availability: %w", err)
	}
	libraries := make(map[string][]string, len(availability))
	for _, row := range availability {
		libraries[row.ISBN] = append(libraries[row.ISBN], row.Library)
	}

	books, err := a.store.BookInfo(ctx, isbns)
	if err != nil {
		return nil, fmt.Errorf("loading book info: %w", err)
	}
	byISBN := make(map[string]*catalog.Book, len(books))
	for _, book := range books {
		byISBN[book.ISBN] = book
	}

	rows := make([]*Recommendation, 0, len(scored))
	for _, s := range scored {
		book, ok := byISBN[s.ISBN]
		if !ok {
			continue
		}
		names, ok := libraries[s.ISBN]
		if !ok {
			continue
		}
		rows = append(rows, &Recommendation{
			ISBN:           book.ISBN,
			Title:          book.Title,
			Authors:        book.Authors,
			Publisher:      book.Publisher,
			Classification: book.Classification,
			RegisteredAt:   book.RegisteredAt,
			CoverURL:       book.CoverURL,
			LibraryNames:   strings.Join(names, " "),
			Score:          s.Score,
		})
	}
	return rows, nil
}
