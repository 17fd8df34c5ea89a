package wordvec

import "errors"

var (
	// ErrUnknownVocabulary is returned when none of the query terms
	// exist in the word-embedding vocabulary, so no neighbors can be
	// found. Callers degrade to zero-expansion scoring or surface a
	// "no matches" result; this is never a crash.
	ErrUnknownVocabulary = errors.New("no query term found in vocabulary")

	// ErrEmptyModel indicates a word-embedding file with no vectors.
	ErrEmptyModel = errors.New("word embedding model is empty")

	// ErrMalformedModel indicates an unreadable word-embedding file.
	ErrMalformedModel = errors.New("malformed word embedding file")
)
