package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/yunseol/bookrec/catalog"
	"github.com/yunseol/bookrec/core"
	"github.com/yunseol/bookrec/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
// It doubles as the catalog.Store used by result assembly when no
// external catalog database is wired in.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	if backend == nil {
		return nil, storage.ErrBackendRequired
	}
	return &CatalogRepository{backend: backend}, nil
}

// Close is a no-op; the repository holds no resources of its own.
func (r *CatalogRepository) Close() error {
	return nil
}

// PutBooks stores catalog metadata rows, keyed by ISBN.
func (r *CatalogRepository) PutBooks(ctx context.Context, books ...*catalog.Book) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, book := range books {
			if book.ISBN == "" {
				return core.ErrMissingISBN
			}
			if err := tx.Set(makeBookKey(book.ISBN), storage.MarshalBook(book)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// PutAvailability stores per-(isbn, library) availability rows.
func (r *CatalogRepository) PutAvailability(ctx context.Context, rows ...*catalog.Availability) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, row := range rows {
			if row.ISBN == "" {
				return core.ErrMissingISBN
			}
			key := makeAvailabilityKey(row.Library, row.ISBN)
			if err := tx.Set(key, storage.MarshalAvailability(row)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// BookInfo returns catalog metadata rows for the given ISBNs, in the
// order requested. Missing ISBNs are omitted without error.
func (r *CatalogRepository) BookInfo(ctx context.Context, isbns []string) ([]*catalog.Book, error) {
	var books []*catalog.Book
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, isbn := range isbns {
			item, err := tx.Get(makeBookKey(isbn))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				book, err := storage.UnmarshalBook(val)
				if err != nil {
					return err
				}
				books = append(books, book)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// LibraryAvailability returns availability rows for the given ISBNs,
// scanning one library's key range, or all libraries when library is
// empty.
func (r *CatalogRepository) LibraryAvailability(ctx context.Context, isbns []string, library string) ([]*catalog.Availability, error) {
	wanted := make(map[string]bool, len(isbns))
	for _, isbn := range isbns {
		wanted[isbn] = true
	}

	var rows []*catalog.Availability
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeLibraryScanPrefix(library)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				row, err := storage.UnmarshalAvailability(val)
				if err != nil {
					return err
				}
				if wanted[row.ISBN] {
					rows = append(rows, row)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
