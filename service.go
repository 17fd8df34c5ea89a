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

package bookrec

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/yunseol/bookrec/core"
	"github.com/yunseol/bookrec/encoder"
	"github.com/yunseol/bookrec/encoder/onnx"
	"github.com/yunseol/bookrec/encoder/openai"
	"github.com/yunseol/bookrec/extract"
	"github.com/yunseol/bookrec/morph"
	"github.com/yunseol/bookrec/recommend"
	"github.com/yunseol/bookrec/storage"
	"github.com/yunseol/bookrec/storage/badger"
	"github.com/yunseol/bookrec/wordvec"
)

// ErrDictionaryPathRequired is returned when a Service is opened
// without a normalization dictionary.
var ErrDictionaryPathRequired = errors.New("dictionary path is required")

// Service wires the storage, morphology, encoder and word-vector
// components behind one handle. All fields are immutable after Open.
type Service struct {
	backend     *badger.Backend
	keywordRepo storage.KeywordRepository
	catalogRepo storage.CatalogRepository
	dict        *morph.Dictionary
	analyzer    *morph.DictAnalyzer
	normalizer  *morph.Normalizer
	engine      encoder.Engine
	model       *wordvec.Model
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	inMemory        bool
	dictionaryPath  string
	wordVectorsPath string
	encoderConfig   *encoder.Config
	remoteEncoder   bool
	engine          encoder.Engine
	logger          *slog.Logger
}

// WithInMemory keeps the key-value store in memory. Tests only.
func WithInMemory() ServiceOption {
	return func(o *serviceOptions) { o.inMemory = true }
}

// WithDictionary sets the foreign-to-canonical dictionary CSV path.
func WithDictionary(path string) ServiceOption {
	return func(o *serviceOptions) { o.dictionaryPath = path }
}

// WithWordVectors sets the word2vec text-format model path, enabling
// query expansion. Without it Recommend always runs degraded.
func WithWordVectors(path string) ServiceOption {
	return func(o *serviceOptions) { o.wordVectorsPath = path }
}

// WithLocalEncoder enables a local ONNX encoder, required for
// extraction.
func WithLocalEncoder(cfg *encoder.Config) ServiceOption {
	return func(o *serviceOptions) { o.encoderConfig = cfg }
}

// WithRemoteEncoder enables an OpenAI-compatible remote encoder
// instead of the local one.
func WithRemoteEncoder(cfg *encoder.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.encoderConfig = cfg
		o.remoteEncoder = true
	}
}

// WithEngine injects an encoder engine directly, overriding the
// encoder configuration. Tests only.
func WithEngine(engine encoder.Engine) ServiceOption {
	return func(o *serviceOptions) { o.engine = engine }
}

// WithServiceLogger sets a custom logger. Default is slog.Default().
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open creates a Service over the badger store at filePath. The
// dictionary is always required; the encoder and word-vector model
// are loaded only when configured, so a recommend-only process does
// not pay for the ONNX runtime.
func Open(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.dictionaryPath == "" {
		return nil, ErrDictionaryPathRequired
	}

	dict, err := morph.LoadDictionary(options.dictionaryPath)
	if err != nil {
		return nil, err
	}
	analyzer, err := morph.NewDictAnalyzer(dict)
	if err != nil {
		return nil, err
	}
	normalizer, err := morph.NewNormalizer(dict)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	keywordRepo, err := badger.NewKeywordRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	catalogRepo, err := badger.NewCatalogRepository(backend)
	if err != nil {
		keywordRepo.Close()
		backend.Close()
		return nil, err
	}

	s := &Service{
		backend:     backend,
		keywordRepo: keywordRepo,
		catalogRepo: catalogRepo,
		dict:        dict,
		analyzer:    analyzer,
		normalizer:  normalizer,
		logger:      options.logger,
	}

	s.engine = options.engine
	if s.engine == nil && options.encoderConfig != nil {
		if options.remoteEncoder {
			s.engine, err = openai.NewEngine(options.encoderConfig)
		} else {
			s.engine, err = onnx.NewEngine(options.encoderConfig)
		}
		if err != nil {
			s.close()
			return nil, err
		}
	}

	if options.wordVectorsPath != "" {
		s.model, err = wordvec.Load(options.wordVectorsPath)
		if err != nil {
			s.close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Service) close() {
	if s.engine != nil {
		s.engine.Close()
	}
	s.catalogRepo.Close()
	s.keywordRepo.Close()
	s.backend.Close()
}

// Close releases every component of the service.
func (s *Service) Close() error {
	if s.engine != nil {
		if err := s.engine.Close(); err != nil {
			s.logger.Error("error closing encoder engine", "err", err)
		}
	}
	if err := s.catalogRepo.Close(); err != nil {
		s.logger.Error("error closing catalog repository", "err", err)
		return err
	}
	if err := s.keywordRepo.Close(); err != nil {
		s.logger.Error("error closing keyword repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) KeywordRepository() storage.KeywordRepository {
	return s.keywordRepo
}

func (s *Service) CatalogRepository() storage.CatalogRepository {
	return s.catalogRepo
}

// NewExtractionPipeline builds an extraction pipeline over the
// service's components. Requires a configured encoder.
func (s *Service) NewExtractionPipeline(opts ...extract.Option) (*extract.Pipeline, error) {
	return extract.NewPipeline(s.analyzer, s.normalizer, s.engine, s.keywordRepo, opts...)
}

// ExtractKeywords runs one batch extraction over records, persisting
// every successful result.
func (s *Service) ExtractKeywords(ctx context.Context, records []*core.Record, opts ...extract.Option) (*extract.BatchResult, error) {
	pipeline, err := s.NewExtractionPipeline(opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()
	return pipeline.ExtractKeywords(ctx, records)
}

// Query is one recommendation request.
type Query struct {
	UserTerms       []string
	SelectedLibrary string
}

// Result is an assembled recommendation response. Degraded is set
// when query expansion was skipped because no user term was in the
// word-vector vocabulary, leaving direct-match scoring only.
type Result struct {
	Rows     []*recommend.Recommendation
	Degraded bool
}

// NewRecommender builds a scorer over the service's keyword store and
// word-vector model, when one is loaded.
func (s *Service) NewRecommender(opts ...recommend.Option) (*recommend.Recommender, error) {
	opts = append([]recommend.Option{
		recommend.WithNormalizer(s.normalizer),
		recommend.WithLogger(s.logger),
	}, opts...)
	return recommend.NewRecommender(s.model, s.keywordRepo, opts...)
}

// Recommend scores the stored catalog against the query and joins the
// surviving items with catalog metadata and availability. When every
// user term is outside the word-vector vocabulary, or no model is
// loaded, scoring degrades to direct matches and Result.Degraded is
// set.
func (s *Service) Recommend(ctx context.Context, query Query, opts ...recommend.Option) (*Result, error) {
	var (
		scored   []core.ScoredBook
		degraded bool
		err      error
	)

	recommender, err := s.NewRecommender(opts...)
	if err != nil {
		return nil, err
	}
	if s.model == nil {
		s.logger.Warn("no word-vector model loaded, matching user terms only", "terms", query.UserTerms)
		scored, err = recommender.ScoreWithoutExpansion(ctx, query.UserTerms)
		degraded = true
	} else {
		scored, err = recommender.Score(ctx, query.UserTerms)
		if errors.Is(err, wordvec.ErrUnknownVocabulary) {
			s.logger.Warn("query expansion failed, matching user terms only",
				"terms", query.UserTerms, "err", err)
			scored, err = recommender.ScoreWithoutExpansion(ctx, query.UserTerms)
			degraded = true
		}
	}
	if err != nil {
		return nil, err
	}

	assembler, err := recommend.NewAssembler(s.catalogRepo)
	if err != nil {
		return nil, err
	}
	rows, err := assembler.Assemble(ctx, scored, query.SelectedLibrary)
	if err != nil {
		return nil, err
	}
	return &Result{Rows: rows, Degraded: degraded}, nil
}

// ExportKeywords writes every stored keyword result to w in the
// artifact format.
func (s *Service) ExportKeywords(ctx context.Context, w io.Writer) (int, error) {
	results, err := s.keywordRepo.AllKeywordResults(ctx)
	if err != nil {
		return 0, err
	}
	if err := storage.WriteArtifact(w, results); err != nil {
		return 0, err
	}
	return len(results), nil
}

// ImportKeywords loads an artifact from r and stores its keyword
// results, replacing existing results for the same ISBNs.
func (s *Service) ImportKeywords(ctx context.Context, r io.Reader) (int, error) {
	results, err := storage.ReadArtifact(r)
	if err != nil {
		return 0, err
	}
	if err := s.keywordRepo.PutKeywordResults(ctx, results...); err != nil {
		return 0, err
	}
	return len(results), nil
}
