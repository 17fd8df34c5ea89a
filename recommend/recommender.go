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

package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/yunseol/bookrec/core"
	"github.com/yunseol/bookrec/morph"
	"github.com/yunseol/bookrec/storage"
	"github.com/yunseol/bookrec/wordvec"
)

const (
	// DefaultExpansionCount is how many nearest neighbors the query
	// is expanded with.
	DefaultExpansionCount = 15

	// DefaultTopK bounds the number of scored items returned.
	DefaultTopK = 50

	// userTermWeight is the score weight of a direct user-term match.
	// Expanded-term matches count 1.
	userTermWeight = 3
)

// Recommender scores stored keyword results against a user query.
type Recommender struct {
	model      *wordvec.Model
	repo       storage.KeywordRepository
	normalizer *morph.Normalizer

	expansionCount int
	topK           int
	logger         *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithExpansionCount sets how many neighbors expand the query.
// Default 15.
func WithExpansionCount(n int) Option {
	return func(r *Recommender) error {
		if n < 1 {
			return fmt.Errorf("expansion count must be positive, got %d", n)
		}
		r.expansionCount = n
		return nil
	}
}

// WithTopK sets the result cap. Default 50.
func WithTopK(k int) Option {
	return func(r *Recommender) error {
		if k < 1 {
			return fmt.Errorf("top k must be positive, got %d", k)
		}
		r.topK = k
		return nil
	}
}

// WithNormalizer sets a normalizer applied to user terms before
// matching. Default is no normalization.
func WithNormalizer(normalizer *morph.Normalizer) Option {
	return func(r *Recommender) error {
		r.normalizer = normalizer
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecommender creates a scorer over the given word-vector model
// and keyword repository. A nil model is allowed; expansion is then
// unavailable and Score fails with ErrModelRequired, leaving only
// ScoreWithoutExpansion.
func NewRecommender(model *wordvec.Model, repo storage.KeywordRepository, opts ...Option) (*Recommender, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	r := &Recommender{
		model:          model,
		repo:           repo,
		expansionCount: DefaultExpansionCount,
		topK:           DefaultTopK,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Expand returns the nearest-neighbor expansion of the user terms.
// Terms unknown to the model are ignored; if every term is unknown
// the error is wordvec.ErrUnknownVocabulary.
func (r *Recommender) Expand(userTerms []string) ([]string, error) {
	if r.model == nil {
		return nil, ErrModelRequired
	}
	matches, err := r.model.MostSimilar(r.normalizeTerms(userTerms), r.expansionCount)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(matches))
	for i, match := range matches {
		words[i] = match.Word
	}
	return words, nil
}

// Score ranks every stored catalog item against the expanded query.
// A direct user-term keyword match scores 3, an expanded-term match
// scores 1; items scoring 0 are dropped. Results are sorted by score
// descending, then ISBN ascending, and truncated to the configured
// cap. A fully out-of-vocabulary query fails with
// wordvec.ErrUnknownVocabulary.
func (r *Recommender) Score(ctx context.Context, userTerms []string) ([]core.ScoredBook, error) {
	if len(userTerms) == 0 {
		return nil, ErrEmptyQuery
	}

	expansion, err := r.Expand(userTerms)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("query expanded", "terms", userTerms, "expansion", expansion)

	return r.score(ctx, userTerms, expansion)
}

// ScoreWithoutExpansion ranks items by direct user-term matches only.
// Used as the degraded path when query expansion fails on vocabulary.
func (r *Recommender) ScoreWithoutExpansion(ctx context.Context, userTerms []string) ([]core.ScoredBook, error) {
	if len(userTerms) == 0 {
		return nil, ErrEmptyQuery
	}
	return r.score(ctx, userTerms, nil)
}

func (r *Recommender) score(ctx context.Context, userTerms, expansion []string) ([]core.ScoredBook, error) {
	userSet := termSet(r.normalizeTerms(userTerms))
	expansionSet := termSet(expansion)

	results, err := r.repo.AllKeywordResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading keyword results: %w", err)
	}

	scored := make([]core.ScoredBook, 0, len(results))
	for _, result := range results {
		score := 0
		for _, kw := range result.Keywords {
			if userSet[kw] {
				score += userTermWeight
			} else if expansionSet[kw] {
				score++
			}
		}
		if score > 0 {
			scored = append(scored, core.ScoredBook{ISBN: result.ISBN, Score: score})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ISBN < scored[j].ISBN
	})
	if len(scored) > r.topK {
		scored = scored[:r.topK]
	}
	return scored, nil
}

func (r *Recommender) normalizeTerms(terms []string) []string {
	if r.normalizer == nil {
		return terms
	}
	normalized := make([]string, len(terms))
	for i, term := range terms {
		normalized[i] = r.normalizer.Normalize(term)
	}
	return normalized
}

func termSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, term := range terms {
		set[term] = true
	}
	return set
}
