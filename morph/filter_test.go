package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterCandidates(t *testing.T) {
	t.Run("below min count excluded", func(t *testing.T) {
		words := []string{"파이썬", "파이썬", "자바", "자바", "자바"}
		got := FilterCandidates(words, DefaultMinCount, DefaultMinLength)
		assert.Equal(t, []string{"자바"}, got)
	})

	t.Run("exactly min count included", func(t *testing.T) {
		words := []string{"도서관", "도서관", "도서관"}
		got := FilterCandidates(words, 3, 2)
		assert.Equal(t, []string{"도서관"}, got)
	})

	t.Run("short words excluded", func(t *testing.T) {
		words := []string{"책", "책", "책", "역사", "역사", "역사"}
		got := FilterCandidates(words, 3, 2)
		assert.Equal(t, []string{"역사"}, got)
	})

	t.Run("length measured in runes", func(t *testing.T) {
		// Two-syllable Hangul word is two runes, not six bytes.
		got := FilterCandidates([]string{"역사", "역사", "역사"}, 3, 2)
		assert.Equal(t, []string{"역사"}, got)
	})

	t.Run("first appearance order", func(t *testing.T) {
		words := []string{"자바", "파이썬", "자바", "파이썬", "자바", "파이썬"}
		got := FilterCandidates(words, 3, 2)
		assert.Equal(t, []string{"자바", "파이썬"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, FilterCandidates(nil, 3, 2))
	})
}
