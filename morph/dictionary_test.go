package morph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDictionary(t *testing.T) {
	t.Run("valid rows", func(t *testing.T) {
		dict, err := ParseDictionary(strings.NewReader("python,파이썬\njava,자바\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, dict.Len())

		canonical, ok := dict.Lookup("python")
		assert.True(t, ok)
		assert.Equal(t, "파이썬", canonical)
	})

	t.Run("malformed rows skipped silently", func(t *testing.T) {
		in := "python,파이썬\nonlyonefield\n,\ngo\n\"broken\ngolang,고랭\n"
		dict, err := ParseDictionary(strings.NewReader(in))
		require.NoError(t, err)

		_, ok := dict.Lookup("python")
		assert.True(t, ok)
		_, ok = dict.Lookup("onlyonefield")
		assert.False(t, ok)
	})

	t.Run("duplicate keys keep first row", func(t *testing.T) {
		dict, err := ParseDictionary(strings.NewReader("rust,러스트\nrust,녹\n"))
		require.NoError(t, err)

		canonical, ok := dict.Lookup("rust")
		require.True(t, ok)
		assert.Equal(t, "러스트", canonical)
	})

	t.Run("keys lowercased", func(t *testing.T) {
		dict, err := ParseDictionary(strings.NewReader("Python,파이썬\n"))
		require.NoError(t, err)

		_, ok := dict.Lookup("Python")
		assert.False(t, ok)
		canonical, ok := dict.Lookup("python")
		require.True(t, ok)
		assert.Equal(t, "파이썬", canonical)
	})

	t.Run("chains resolved", func(t *testing.T) {
		dict, err := ParseDictionary(strings.NewReader("파이선,python\npython,파이썬\n"))
		require.NoError(t, err)

		canonical, ok := dict.Lookup("파이선")
		require.True(t, ok)
		assert.Equal(t, "파이썬", canonical)
	})

	t.Run("no valid rows", func(t *testing.T) {
		_, err := ParseDictionary(strings.NewReader(",\nbroken\n"))
		assert.ErrorIs(t, err, ErrDictionaryEmpty)
	})

	t.Run("canonicals in first-seen order", func(t *testing.T) {
		dict, err := ParseDictionary(strings.NewReader("python,파이썬\n파이선,파이썬\njava,자바\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"파이썬", "자바"}, dict.Canonicals())
	})
}
