package openai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/yunseol/bookrec/encoder"
)

// Engine implements encoder.Engine against an OpenAI-compatible
// embedding endpoint. Tokenization, boundary handling and pooling are
// performed server-side by the embedding model, so a document yields a
// single vector.
type Engine struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

var _ encoder.Engine = (*Engine)(nil)

// NewEngine creates a remote engine from the encoder config.
func NewEngine(cfg *encoder.Config) (*Engine, error) {
	if err := cfg.ValidateRemote(); err != nil {
		return nil, err
	}

	// "none" as token keeps local OpenAI-compatible services happy
	// when they do not require authentication.
	client, err := openai.New(
		openai.WithBaseURL(cfg.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Engine{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-encoder"),
	}, nil
}

// EmbedKeywords generates one vector per keyword in a single batch call.
func (e *Engine) EmbedKeywords(ctx context.Context, words []string) ([][]float32, error) {
	words = encoder.KeywordInputs(words)
	e.logger.Debug("embedding keywords", "count", len(words))

	vectors, err := e.embedder.EmbedDocuments(ctx, words)
	if err != nil {
		e.logger.Error("failed to embed keywords", "count", len(words), "err", err)
		return nil, err
	}
	return vectors, nil
}

// EmbedDocument generates the document embedding. The remote model
// handles long inputs itself, so exactly one vector is returned.
func (e *Engine) EmbedDocument(ctx context.Context, text string) ([][]float32, error) {
	text = encoder.DocumentInput(text)
	e.logger.Debug("embedding document", "length", len(text))

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to embed document", "err", err)
		return nil, err
	}
	return vectors, nil
}

// Close is a no-op; the HTTP client holds no resources to release.
func (e *Engine) Close() error {
	return nil
}
