package wordvec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = `4 3
러스트 1.0 0.0 0.0
도구 0.9 0.1 0.0
역사 0.0 1.0 0.0
요리 0.0 0.0 1.0
`

func TestParse(t *testing.T) {
	t.Run("with header", func(t *testing.T) {
		m, err := Parse(strings.NewReader(testModel))
		require.NoError(t, err)
		assert.Equal(t, 4, m.Len())
		assert.Equal(t, 3, m.Dim())
		assert.True(t, m.Contains("러스트"))
		assert.False(t, m.Contains("파이썬"))
	})

	t.Run("without header", func(t *testing.T) {
		m, err := Parse(strings.NewReader("alpha 1 0\nbeta 0 1\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, m.Len())
	})

	t.Run("vectors normalized at load", func(t *testing.T) {
		m, err := Parse(strings.NewReader("word 3 4\n"))
		require.NoError(t, err)
		vec, ok := m.Vector("word")
		require.True(t, ok)
		assert.InDelta(t, 0.6, vec[0], 1e-6)
		assert.InDelta(t, 0.8, vec[1], 1e-6)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Parse(strings.NewReader("a 1 0\nb 1\n"))
		assert.ErrorIs(t, err, ErrMalformedModel)
	})

	t.Run("bad number", func(t *testing.T) {
		_, err := Parse(strings.NewReader("a one two\n"))
		assert.ErrorIs(t, err, ErrMalformedModel)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyModel)
	})
}

func TestMostSimilar(t *testing.T) {
	m, err := Parse(strings.NewReader(testModel))
	require.NoError(t, err)

	t.Run("nearest neighbor first", func(t *testing.T) {
		matches, err := m.MostSimilar([]string{"러스트"}, 2)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "도구", matches[0].Word)
	})

	t.Run("query terms excluded from result", func(t *testing.T) {
		matches, err := m.MostSimilar([]string{"러스트"}, 10)
		require.NoError(t, err)
		for _, match := range matches {
			assert.NotEqual(t, "러스트", match.Word)
		}
	})

	t.Run("unknown terms ignored when any term known", func(t *testing.T) {
		matches, err := m.MostSimilar([]string{"없는단어", "러스트"}, 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "도구", matches[0].Word)
	})

	t.Run("all terms unknown", func(t *testing.T) {
		_, err := m.MostSimilar([]string{"없는단어", "모르는말"}, 5)
		assert.ErrorIs(t, err, ErrUnknownVocabulary)
	})

	t.Run("topn caps the result", func(t *testing.T) {
		matches, err := m.MostSimilar([]string{"러스트"}, 1)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("deterministic tie order", func(t *testing.T) {
		tied, err := Parse(strings.NewReader("q 1 0\nbb 0 1\naa 0 1\n"))
		require.NoError(t, err)
		matches, err := tied.MostSimilar([]string{"q"}, 2)
		require.NoError(t, err)
		assert.Equal(t, "aa", matches[0].Word)
		assert.Equal(t, "bb", matches[1].Word)
	})
}
