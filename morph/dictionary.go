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


package morph

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// Dictionary maps foreign-script or misspelled words to their canonical
// spelling. It is loaded once at startup and read-only afterwards.
//
// The source is a two-column CSV (foreign_word, canonical_word), e.g.
// "python,파이썬" or "파이선,파이썬". Malformed rows are skipped
// silently; they must not abort startup.
type Dictionary struct {
	table      map[string]string
	canonicals []string
}

// LoadDictionary reads a dictionary from a CSV file.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDictionary(f)
}

// ParseDictionary reads dictionary rows from r.
// Rows with missing fields, blank fields, or a key seen before are
// dropped. Self-mappings are dropped too. Chains (a→b, b→c) are
// resolved at load so that lookups are idempotent.
func ParseDictionary(r io.Reader) (*Dictionary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	table := make(map[string]string)
	seenCanonical := make(map[string]bool)
	var canonicals []string

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, skip.
			continue
		}
		if len(row) < 2 {
			continue
		}
		// Both sides lowercased so that normalization stays idempotent
		// even for Latin-script canonical forms.
		foreign := strings.ToLower(strings.TrimSpace(row[0]))
		canonical := strings.ToLower(strings.TrimSpace(row[1]))
		if foreign == "" || canonical == "" || foreign == canonical {
			continue
		}
		if _, dup := table[foreign]; dup {
			continue
		}
		table[foreign] = canonical
		if !seenCanonical[canonical] {
			seenCanonical[canonical] = true
			canonicals = append(canonicals, canonical)
		}
	}

	if len(table) == 0 {
		return nil, ErrDictionaryEmpty
	}

	resolveChains(table)

	return &Dictionary{table: table, canonicals: canonicals}, nil
}

// resolveChains rewrites every value to its final target so that
// looking up a lookup result is a no-op. Cycles are cut after a
// bounded number of hops.
func resolveChains(table map[string]string) {
	for key, value := range table {
		for hops := 0; hops < 8; hops++ {
			next, ok := table[value]
			if !ok || next == value {
				break
			}
			value = next
		}
		table[key] = value
	}
}

// Lookup returns the canonical form for a lowercased word.
func (d *Dictionary) Lookup(word string) (string, bool) {
	canonical, ok := d.table[word]
	return canonical, ok
}

// Canonicals returns the canonical words in first-seen order. They are
// registered into the analyzer vocabulary at construction.
func (d *Dictionary) Canonicals() []string {
	return d.canonicals
}

// Len returns the number of dictionary entries.
func (d *Dictionary) Len() int {
	return len(d.table)
}
