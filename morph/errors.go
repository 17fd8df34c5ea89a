package morph

import "errors"

var (
	// ErrDictionaryRequired is returned when a dictionary is not provided.
	ErrDictionaryRequired = errors.New("dictionary required")

	// ErrDictionaryEmpty indicates that the dictionary file contained no
	// usable rows at all.
	ErrDictionaryEmpty = errors.New("dictionary has no valid rows")
)
