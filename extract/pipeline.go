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


package extract

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/yunseol/bookrec/core"
	"github.com/yunseol/bookrec/encoder"
	"github.com/yunseol/bookrec/morph"
	"github.com/yunseol/bookrec/storage"
)

// DefaultEmbedTimeout bounds the embedding step of one record.
const DefaultEmbedTimeout = 30 * time.Second

// Pipeline orchestrates keyword extraction over catalog records.
// It owns a worker pool for batch runs; the analyzer, normalizer and
// engine are shared read-only across workers.
type Pipeline struct {
	analyzer     morph.Analyzer
	normalizer   *morph.Normalizer
	engine       encoder.Engine
	keywordRepo  storage.KeywordRepository
	pool         *ants.Pool
	minCount     int
	minLength    int
	topN         int
	embedTimeout time.Duration
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for batch extraction.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithTopN sets how many keywords are kept per record. Default 20.
func WithTopN(topN int) Option {
	return func(p *Pipeline) error {
		if topN < 1 {
			return fmt.Errorf("top n must be positive, got %d", topN)
		}
		p.topN = topN
		return nil
	}
}

// WithCandidateThresholds sets the minimum occurrence count and word
// length for keyword candidates. Defaults 3 and 2.
func WithCandidateThresholds(minCount, minLength int) Option {
	return func(p *Pipeline) error {
		if minCount < 1 || minLength < 1 {
			return fmt.Errorf("thresholds must be positive, got count=%d length=%d", minCount, minLength)
		}
		p.minCount = minCount
		p.minLength = minLength
		return nil
	}
}

// WithEmbedTimeout bounds the embedding step of a single record.
// Default 30s.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) error {
		if timeout <= 0 {
			return fmt.Errorf("embed timeout must be positive, got %s", timeout)
		}
		p.embedTimeout = timeout
		return nil
	}
}

// NewPipeline creates an extraction pipeline. keywordRepo may be nil
// when results should not be persisted.
func NewPipeline(
	analyzer morph.Analyzer,
	normalizer *morph.Normalizer,
	engine encoder.Engine,
	keywordRepo storage.KeywordRepository,
	opts ...Option,
) (*Pipeline, error) {
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}
	if engine == nil {
		return nil, ErrEngineRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		analyzer:     analyzer,
		normalizer:   normalizer,
		engine:       engine,
		keywordRepo:  keywordRepo,
		pool:         pool,
		minCount:     morph.DefaultMinCount,
		minLength:    morph.DefaultMinLength,
		topN:         DefaultTopN,
		embedTimeout: DefaultEmbedTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}
	return p, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Candidates runs the morphological front of the pipeline on one
// record: tokenize, keep keyword classes, normalize, and threshold.
func (p *Pipeline) Candidates(record *core.Record) []string {
	tokens := p.analyzer.Tokenize(record.Text())
	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !token.Class.IsKeywordClass() {
			continue
		}
		words = append(words, p.normalizer.Normalize(token.Form))
	}
	return morph.FilterCandidates(words, p.minCount, p.minLength)
}

// ExtractRecord extracts the ranked keywords of a single record.
// The embedding step runs under the configured timeout.
func (p *Pipeline) ExtractRecord(ctx context.Context, record *core.Record) (*core.KeywordResult, error) {
	if err := core.ValidateRecord(record); err != nil {
		return nil, err
	}

	candidates := p.Candidates(record)

	embedCtx, cancel := context.WithTimeout(ctx, p.embedTimeout)
	defer cancel()

	kwVecs, err := p.engine.EmbedKeywords(embedCtx, candidates)
	if err != nil {
		return nil, fmt.Errorf("embed keywords for %s: %w", record.ISBN, err)
	}
	docVecs, err := p.engine.EmbedDocument(embedCtx, record.Text())
	if err != nil {
		return nil, fmt.Errorf("embed document for %s: %w", record.ISBN, err)
	}

	return &core.KeywordResult{
		ISBN:     record.ISBN,
		Keywords: RankKeywords(docVecs, kwVecs, candidates, p.topN),
	}, nil
}

// BatchResult is the output of a batch extraction: keyword lists in
// the same order as the surviving input records, plus the ISBNs of the
// records that failed and were excluded.
type BatchResult struct {
	ISBNs    []string
	Keywords [][]string
	Failed   []string
}

// ExtractKeywords extracts keywords for a batch of records on the
// worker pool. Each record is processed independently; a failed record
// is logged, reported in Failed and excluded from the output, and the
// rest of the batch continues. When a keyword repository is configured
// every successful result is persisted atomically before it is
// reported.
func (p *Pipeline) ExtractKeywords(ctx context.Context, records []*core.Record) (*BatchResult, error) {
	results := make([]*core.KeywordResult, len(records))
	failed := make([]bool, len(records))

	var wg sync.WaitGroup
	for i, record := range records {
		i, record := i, record
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			result, err := p.ExtractRecord(ctx, record)
			if err != nil {
				p.logger.Error("record extraction failed", "isbn", record.ISBN, "err", err)
				failed[i] = true
				return
			}
			if p.keywordRepo != nil {
				if err := p.keywordRepo.PutKeywordResults(ctx, result); err != nil {
					p.logger.Error("persisting keyword result failed", "isbn", record.ISBN, "err", err)
					failed[i] = true
					return
				}
			}
			results[i] = result
		})
		if err != nil {
			wg.Done()
			p.logger.Error("submitting record to pool failed", "isbn", record.ISBN, "err", err)
			failed[i] = true
		}
	}
	wg.Wait()

	batch := &BatchResult{}
	for i, result := range results {
		if failed[i] || result == nil {
			batch.Failed = append(batch.Failed, records[i].ISBN)
			continue
		}
		batch.ISBNs = append(batch.ISBNs, result.ISBN)
		batch.Keywords = append(batch.Keywords, result.Keywords)
	}
	p.logger.Info("batch extraction finished",
		"records", len(records), "extracted", len(batch.ISBNs), "failed", len(batch.Failed))
	return batch, nil
}
