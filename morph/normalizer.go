package morph

import "strings"

// Normalizer maps foreign-script tokens to their canonical spelling.
// It is a pure lookup over the loaded dictionary: lowercase the input,
// return the canonical form on a hit, the lowercased input otherwise.
// Safe for concurrent use.
type Normalizer struct {
	dict *Dictionary
}

// NewNormalizer creates a normalizer backed by the given dictionary.
func NewNormalizer(dict *Dictionary) (*Normalizer, error) {
	if dict == nil {
		return nil, ErrDictionaryRequired
	}
	return &Normalizer{dict: dict}, nil
}

// Normalize returns the canonical form of word. Idempotent:
// Normalize(Normalize(w)) == Normalize(w).
func (n *Normalizer) Normalize(word string) string {
	lower := strings.ToLower(word)
	if canonical, ok := n.dict.Lookup(lower); ok {
		return canonical
	}
	return lower
}
