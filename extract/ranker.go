package extract

import (
	"sort"

	"github.com/yunseol/bookrec/encoder"
)

// DefaultTopN is the number of keywords kept per record.
const DefaultTopN = 20

// RankKeywords orders candidate keywords by cosine similarity between
// the document embedding and each keyword embedding, descending, and
// keeps the topN best.
//
// A document split into chunks has several vectors; a keyword's score
// is the elementwise max of its similarity against every chunk.
// Duplicate labels collapse into one entry, the last-assigned score
// winning. Ties keep first-seen order (stable sort); the result never
// contains duplicates and never exceeds topN.
func RankKeywords(docVecs, kwVecs [][]float32, labels []string, topN int) []string {
	if topN <= 0 || len(labels) == 0 {
		return nil
	}

	n := len(labels)
	if len(kwVecs) < n {
		n = len(kwVecs)
	}

	scores := make(map[string]float32, n)
	order := make([]string, 0, n)
	for j := 0; j < n; j++ {
		var best float32 = -1
		for _, docVec := range docVecs {
			if sim := encoder.Cosine(docVec, kwVecs[j]); sim > best {
				best = sim
			}
		}
		label := labels[j]
		if _, seen := scores[label]; !seen {
			order = append(order, label)
		}
		scores[label] = best
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	return order
}
