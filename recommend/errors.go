package recommend

import "errors"

var (
	// ErrModelRequired is returned when query expansion is requested
	// on a Recommender that has no word-vector model.
	ErrModelRequired = errors.New("word-vector model is required")

	// ErrRepositoryRequired is returned when a Recommender is
	// constructed without a keyword repository.
	ErrRepositoryRequired = errors.New("keyword repository is required")

	// ErrStoreRequired is returned when an Assembler is constructed
	// without a catalog store.
	ErrStoreRequired = errors.New("catalog store is required")

	// ErrEmptyQuery is returned when scoring is requested with no
	// user terms.
	ErrEmptyQuery = errors.New("query has no terms")
)
