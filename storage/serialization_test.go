package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunseol/bookrec/catalog"
	"github.com/yunseol/bookrec/core"
)

func TestKeywordResultSerialization(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		result := &core.KeywordResult{
			ISBN:     "9788960777330",
			Keywords: []string{"파이썬", "데이터", "분석"},
		}
		got, err := UnmarshalKeywordResult(MarshalKeywordResult(result))
		require.NoError(t, err)
		assert.Equal(t, result, got)
	})

	t.Run("keyword order preserved", func(t *testing.T) {
		result := &core.KeywordResult{ISBN: "1", Keywords: []string{"c", "a", "b"}}
		got, err := UnmarshalKeywordResult(MarshalKeywordResult(result))
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, got.Keywords)
	})

	t.Run("truncated data fails", func(t *testing.T) {
		data := MarshalKeywordResult(&core.KeywordResult{ISBN: "9788960777330", Keywords: []string{"역사"}})
		_, err := UnmarshalKeywordResult(data[:3])
		assert.Error(t, err)
	})
}

func TestBookSerialization(t *testing.T) {
	book := &catalog.Book{
		ISBN:           "9788960777330",
		Title:          "러스트 프로그래밍",
		Authors:        "김철수",
		Publisher:      "한빛미디어",
		Classification: "005.13",
		RegisteredAt:   "2024-03-01",
		CoverURL:       "https://covers.example.com/1.jpg",
	}
	got, err := UnmarshalBook(MarshalBook(book))
	require.NoError(t, err)
	assert.Equal(t, book, got)
}

func TestAvailabilitySerialization(t *testing.T) {
	row := &catalog.Availability{ISBN: "9788960777330", Library: "강남도서관"}
	got, err := UnmarshalAvailability(MarshalAvailability(row))
	require.NoError(t, err)
	assert.Equal(t, row, got)
}

func TestArtifact(t *testing.T) {
	results := []*core.KeywordResult{
		{ISBN: "111", Keywords: []string{"역사", "문화"}},
		{ISBN: "222", Keywords: []string{"요리"}},
		{ISBN: "333", Keywords: []string{"과학"}},
	}

	t.Run("round trip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteArtifact(&buf, results))

		got, err := ReadArtifact(&buf)
		require.NoError(t, err)
		assert.Equal(t, results, got)
	})

	t.Run("empty index", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteArtifact(&buf, nil))

		got, err := ReadArtifact(&buf)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("flipped byte detected", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteArtifact(&buf, results))
		data := buf.Bytes()
		data[len(data)/2] ^= 0xff

		_, err := ReadArtifact(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrArtifactCorrupt)
	})

	t.Run("truncated file detected", func(t *testing.T) {
		_, err := ReadArtifact(bytes.NewReader([]byte("BK")))
		assert.ErrorIs(t, err, ErrArtifactCorrupt)
	})
}
