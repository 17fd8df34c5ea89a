package encoder

import "context"

// FallbackToken is embedded in place of an empty input so that the
// pipeline always produces an embedding instead of failing.
const FallbackToken = "에러"

// Engine produces contextual embeddings for the extraction pipeline.
// Implementations must be safe for concurrent use, or document that
// callers have to serialize access.
type Engine interface {
	// EmbedKeywords returns one vector per input word, in input order.
	// An empty word list is substituted with the fallback token, so the
	// result is never empty.
	EmbedKeywords(ctx context.Context, words []string) ([][]float32, error)

	// EmbedDocument embeds the concatenated record text. Long documents
	// are split into overlapping chunks, so more than one vector may be
	// returned; the similarity ranker max-pools over them.
	EmbedDocument(ctx context.Context, text string) ([][]float32, error)

	// Close releases model resources.
	Close() error
}

// KeywordInputs applies the empty-input fallback to a keyword list.
func KeywordInputs(words []string) []string {
	if len(words) == 0 {
		return []string{FallbackToken}
	}
	return words
}

// DocumentInput applies the empty-input fallback to a document text.
func DocumentInput(text string) string {
	if text == "" {
		return FallbackToken
	}
	return text
}
