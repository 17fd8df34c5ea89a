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


// Package wordvec loads a static word-embedding table in the word2vec
// text format and answers nearest-neighbor queries over it. The model
// is loaded once at process start and is read-only afterwards, so one
// instance may be shared by all queries without locking.
package wordvec

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Model is an immutable word → vector mapping with unit-normalized
// vectors, so cosine similarity reduces to a dot product.
type Model struct {
	words   []string
	index   map[string]int
	vectors [][]float32
	dim     int
}

// Match is one nearest-neighbor hit.
type Match struct {
	Word       string
	Similarity float32
}

// Load reads a model from a word2vec text-format file.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a model from r. The optional word2vec header line
// ("<count> <dim>") is detected and skipped. Every vector is
// normalized to unit length at load.
func Parse(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	m := &Model{index: make(map[string]int)}
	first := true
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if first {
			first = false
			if isHeader(fields) {
				continue
			}
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: row with %d fields", ErrMalformedModel, len(fields))
		}
		word := fields[0]
		if _, dup := m.index[word]; dup {
			continue
		}
		vec := make([]float32, len(fields)-1)
		for i, field := range fields[1:] {
			value, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: vector value %q for %q", ErrMalformedModel, field, word)
			}
			vec[i] = float32(value)
		}
		if m.dim == 0 {
			m.dim = len(vec)
		} else if len(vec) != m.dim {
			return nil, fmt.Errorf("%w: %q has dimension %d, want %d", ErrMalformedModel, word, len(vec), m.dim)
		}
		m.index[word] = len(m.words)
		m.words = append(m.words, word)
		m.vectors = append(m.vectors, normalize(vec))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(m.words) == 0 {
		return nil, ErrEmptyModel
	}
	return m, nil
}

// isHeader reports whether the first row is a "<count> <dim>" header.
func isHeader(fields []string) bool {
	if len(fields) != 2 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.ParseUint(f, 10, 64); err != nil {
			return false
		}
	}
	return true
}

// Dim returns the vector width.
func (m *Model) Dim() int {
	return m.dim
}

// Len returns the vocabulary size.
func (m *Model) Len() int {
	return len(m.words)
}

// Contains reports whether word is in the vocabulary.
func (m *Model) Contains(word string) bool {
	_, ok := m.index[word]
	return ok
}

// Vector returns the unit vector for word.
func (m *Model) Vector(word string) ([]float32, bool) {
	i, ok := m.index[word]
	if !ok {
		return nil, false
	}
	return m.vectors[i], true
}

// MostSimilar returns the topn vocabulary words nearest to the
// positive combination of the query terms: the mean of the terms' unit
// vectors, re-normalized, ranked by cosine similarity. Query terms
// missing from the vocabulary are ignored; the terms themselves never
// appear in the result. When no term is known the lookup fails with
// ErrUnknownVocabulary.
//
// Ties sort by word ascending so results are deterministic.
func (m *Model) MostSimilar(positive []string, topn int) ([]Match, error) {
	if topn <= 0 {
		return nil, nil
	}

	query := make([]float32, m.dim)
	exclude := make(map[int]bool, len(positive))
	known := 0
	for _, term := range positive {
		i, ok := m.index[term]
		if !ok {
			continue
		}
		known++
		exclude[i] = true
		for d, v := range m.vectors[i] {
			query[d] += v
		}
	}
	if known == 0 {
		return nil, ErrUnknownVocabulary
	}
	query = normalize(query)

	matches := make([]Match, 0, len(m.words)-known)
	for i, vec := range m.vectors {
		if exclude[i] {
			continue
		}
		matches = append(matches, Match{Word: m.words[i], Similarity: dot(query, vec)})
	}
	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Similarity != matches[b].Similarity {
			return matches[a].Similarity > matches[b].Similarity
		}
		return matches[a].Word < matches[b].Word
	})
	if len(matches) > topn {
		matches = matches[:topn]
	}
	return matches, nil
}

func dot(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(v []float32) []float32 {
	var magnitude float64
	for _, val := range v {
		magnitude += float64(val) * float64(val)
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, val := range v {
		out[i] = float32(float64(val) / magnitude)
	}
	return out
}
