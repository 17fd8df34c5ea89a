package core

import (
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Record is one catalog entry as it arrives from the upstream catalog feed.
// ISBN is the immutable identifier. Title participates both in the document
// text and in the keyword-source text; the auxiliary fields are tokenized
// but ISBN never is.
type Record struct {
	ISBN        string
	Title       string
	Authors     []string
	Publisher   []string
	Subjects    []string
	Description []string
}

// AuxiliaryFields returns the tokenizable fields other than the title.
func (r *Record) AuxiliaryFields() [][]string {
	return [][]string{r.Authors, r.Publisher, r.Subjects, r.Description}
}

// Text concatenates the record into the single string fed to the
// tokenizer and the document encoder: the title followed by every
// auxiliary field value. ISBN is never part of it.
func (r *Record) Text() string {
	parts := make([]string, 0, 8)
	if r.Title != "" {
		parts = append(parts, r.Title)
	}
	for _, field := range r.AuxiliaryFields() {
		for _, value := range field {
			if value != "" {
				parts = append(parts, value)
			}
		}
	}
	return strings.Join(parts, " ")
}

// KeywordResult is the persisted output of the extraction pipeline:
// the ranked keywords of one record, most document-similar first.
// The order of Keywords is meaningful.
type KeywordResult struct {
	ISBN     string
	Keywords []string
}

// KeywordSet returns the keywords as a membership set for overlap scoring.
func (kr *KeywordResult) KeywordSet() map[string]bool {
	set := make(map[string]bool, len(kr.Keywords))
	for _, kw := range kr.Keywords {
		set[kw] = true
	}
	return set
}

// ScoredBook is a transient recommendation score for one catalog item.
// Rebuilt per query, discarded after top-N selection.
type ScoredBook struct {
	ISBN  string
	Score int
}

// ContentKey produces a deterministic hex key from text content using
// BLAKE2b hashing. Identical content always produces the same key.
func ContentKey(parts ...string) string {
	h, _ := blake2b.New(16, nil)
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
