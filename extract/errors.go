package extract

import "errors"

var (
	// ErrAnalyzerRequired is returned when an analyzer is not provided.
	ErrAnalyzerRequired = errors.New("analyzer required")

	// ErrNormalizerRequired is returned when a normalizer is not provided.
	ErrNormalizerRequired = errors.New("normalizer required")

	// ErrEngineRequired is returned when an embedding engine is not provided.
	ErrEngineRequired = errors.New("embedding engine required")
)
