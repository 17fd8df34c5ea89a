package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankKeywords(t *testing.T) {
	doc := [][]float32{{1, 0}}

	t.Run("descending similarity", func(t *testing.T) {
		kwVecs := [][]float32{
			{0, 1},    // orthogonal
			{1, 0},    // identical
			{1, 1},    // in between
		}
		got := RankKeywords(doc, kwVecs, []string{"멀다", "가깝다", "중간"}, 3)
		assert.Equal(t, []string{"가깝다", "중간", "멀다"}, got)
	})

	t.Run("truncates to top n", func(t *testing.T) {
		kwVecs := [][]float32{{1, 0}, {1, 1}, {0, 1}}
		got := RankKeywords(doc, kwVecs, []string{"a", "b", "c"}, 2)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("multi-chunk document max-pools scores", func(t *testing.T) {
		chunks := [][]float32{{1, 0}, {0, 1}}
		kwVecs := [][]float32{
			{0, 1}, // matches second chunk perfectly
			{1, 1}, // partial match against both
		}
		got := RankKeywords(chunks, kwVecs, []string{"이차", "부분"}, 2)
		assert.Equal(t, []string{"이차", "부분"}, got)
	})

	t.Run("duplicate labels collapse", func(t *testing.T) {
		kwVecs := [][]float32{{0, 1}, {1, 0}}
		got := RankKeywords(doc, kwVecs, []string{"중복", "중복"}, 5)
		// Last-assigned score wins, one entry survives.
		assert.Equal(t, []string{"중복"}, got)
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		kwVecs := [][]float32{{1, 0}, {2, 0}, {3, 0}}
		got := RankKeywords(doc, kwVecs, []string{"하나", "둘", "셋"}, 3)
		assert.Equal(t, []string{"하나", "둘", "셋"}, got)
	})

	t.Run("no duplicates in output", func(t *testing.T) {
		kwVecs := [][]float32{{1, 0}, {1, 0}, {0, 1}}
		got := RankKeywords(doc, kwVecs, []string{"x", "x", "y"}, 10)
		seen := map[string]int{}
		for _, kw := range got {
			seen[kw]++
		}
		for kw, n := range seen {
			assert.Equal(t, 1, n, "keyword %q duplicated", kw)
		}
	})

	t.Run("empty labels", func(t *testing.T) {
		assert.Empty(t, RankKeywords(doc, nil, nil, 5))
	})
}
