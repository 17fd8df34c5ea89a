package mock

import (
	"context"
	"hash/fnv"

	"github.com/yunseol/bookrec/encoder"
)

// Engine is a test double for encoder.Engine.
// It allows custom behavior injection via function fields and falls
// back to deterministic hash-based vectors.
type Engine struct {
	// EmbedKeywordsFunc is called by EmbedKeywords if set.
	EmbedKeywordsFunc func(ctx context.Context, words []string) ([][]float32, error)

	// EmbedDocumentFunc is called by EmbedDocument if set.
	EmbedDocumentFunc func(ctx context.Context, text string) ([][]float32, error)

	// Dim is the vector width for generated vectors. Default 64.
	Dim int

	callCount int
}

var _ encoder.Engine = (*Engine)(nil)

// NewEngine creates a mock engine with deterministic default behavior.
func NewEngine() *Engine {
	return &Engine{Dim: 64}
}

// EmbedKeywords returns one deterministic vector per word.
func (m *Engine) EmbedKeywords(ctx context.Context, words []string) ([][]float32, error) {
	m.callCount++
	if m.EmbedKeywordsFunc != nil {
		return m.EmbedKeywordsFunc(ctx, words)
	}
	words = encoder.KeywordInputs(words)
	vectors := make([][]float32, len(words))
	for i, word := range words {
		vectors[i] = deterministicVector(word, m.dim())
	}
	return vectors, nil
}

// EmbedDocument returns a single deterministic chunk vector.
func (m *Engine) EmbedDocument(ctx context.Context, text string) ([][]float32, error) {
	m.callCount++
	if m.EmbedDocumentFunc != nil {
		return m.EmbedDocumentFunc(ctx, text)
	}
	return [][]float32{deterministicVector(encoder.DocumentInput(text), m.dim())}, nil
}

// Close is a no-op.
func (m *Engine) Close() error {
	return nil
}

// CallCount returns the number of embed calls made.
func (m *Engine) CallCount() int {
	return m.callCount
}

func (m *Engine) dim() int {
	if m.Dim > 0 {
		return m.Dim
	}
	return 64
}

// deterministicVector creates a unit vector seeded by an FNV hash of
// the text, so the same text always embeds identically.
func deterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000)/500.0 - 1.0
	}
	return encoder.NormalizeVector(vector)
}
