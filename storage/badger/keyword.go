// Copyright 2026 The bookrec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/yunseol/bookrec/core"
	"github.com/yunseol/bookrec/storage"
)

// KeywordRepository implements storage.KeywordRepository for BadgerDB.
type KeywordRepository struct {
	backend *Backend
}

var _ storage.KeywordRepository = (*KeywordRepository)(nil)

// NewKeywordRepository creates a new KeywordRepository.
func NewKeywordRepository(backend *Backend) (*KeywordRepository, error) {
	if backend == nil {
		return nil, storage.ErrBackendRequired
	}
	return &KeywordRepository{backend: backend}, nil
}

// Close is a no-op; the repository holds no resources of its own.
func (r *KeywordRepository) Close() error {
	return nil
}

// PutKeywordResults stores keyword results in a single transaction,
// replacing any existing result for the same ISBN.
func (r *KeywordRepository) PutKeywordResults(ctx context.Context, results ...*core.KeywordResult) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, result := range results {
			if result.ISBN == "" {
				return core.ErrMissingISBN
			}
			key := makeKeywordResultKey(result.ISBN)
			if err := tx.Set(key, storage.MarshalKeywordResult(result)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetKeywordResult retrieves the keyword result for one ISBN.
func (r *KeywordRepository) GetKeywordResult(ctx context.Context, isbn string) (*core.KeywordResult, error) {
	var result *core.KeywordResult
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKeywordResultKey(isbn))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalKeywordResult(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AllKeywordResults returns every stored keyword result. Badger
// iterates keys in lexicographic order, so results come back ordered
// by ISBN ascending.
func (r *KeywordRepository) AllKeywordResults(ctx context.Context) ([]*core.KeywordResult, error) {
	var results []*core.KeywordResult
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keywordResultPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				result, err := storage.UnmarshalKeywordResult(val)
				if err != nil {
					return err
				}
				results = append(results, result)
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
	return results, nil
}
