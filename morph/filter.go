package morph

import "unicode/utf8"

// Candidate filter defaults, matching the extraction contract: a word
// must occur at least three times in a record's text and be at least
// two characters long to become a keyword candidate.
const (
	DefaultMinCount  = 3
	DefaultMinLength = 2
)

// FilterCandidates thresholds a normalized word stream into keyword
// candidates. A word is kept when it occurs at least minCount times in
// words and is at least minLength runes long. The output lists each
// surviving word once, in order of first appearance.
func FilterCandidates(words []string, minCount, minLength int) []string {
	if minCount < 1 {
		minCount = 1
	}
	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	candidates := make([]string, 0, len(order))
	for _, w := range order {
		if counts[w] >= minCount && utf8.RuneCountInString(w) >= minLength {
			candidates = append(candidates, w)
		}
	}
	return candidates
}
