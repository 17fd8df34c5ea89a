package bookrec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunseol/bookrec/catalog"
	"github.com/yunseol/bookrec/core"
	"github.com/yunseol/bookrec/encoder/mock"
)

const testDictionary = "python,파이썬\nhistory,역사\n"

const testVectors = `역사 1 0
문화 0.9 0.1
요리 0 1
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func openTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	opts = append([]ServiceOption{
		WithInMemory(),
		WithDictionary(writeFile(t, "dict.csv", testDictionary)),
		WithEngine(mock.NewEngine()),
	}, opts...)
	s, err := Open("", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Run("create new service", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		s, err := Open(tmpDir,
			WithDictionary(writeFile(t, "dict.csv", testDictionary)),
			WithEngine(mock.NewEngine()))
		require.NoError(t, err)
		require.NotNil(t, s)
		defer s.Close()

		assert.NotNil(t, s.KeywordRepository())
		assert.NotNil(t, s.CatalogRepository())
		assert.NotNil(t, s.backend)
		assert.NotNil(t, s.logger)
	})

	t.Run("dictionary required", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "db"))
		assert.ErrorIs(t, err, ErrDictionaryPathRequired)
	})

	t.Run("missing dictionary file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "db"),
			WithDictionary(filepath.Join(t.TempDir(), "no_such.csv")))
		assert.Error(t, err)
	})

	t.Run("word vectors loaded when configured", func(t *testing.T) {
		s := openTestService(t, WithWordVectors(writeFile(t, "vectors.txt", testVectors)))
		assert.NotNil(t, s.model)
	})
}

func TestService_Close(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "db")
	s, err := Open(tmpDir, WithDictionary(writeFile(t, "dict.csv", testDictionary)))
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestService_ExtractKeywords(t *testing.T) {
	s := openTestService(t)
	ctx := context.Background()

	records := []*core.Record{
		{ISBN: "111", Title: "역사 역사 역사"},
		{ISBN: "222", Title: "요리 요리 요리"},
	}
	batch, err := s.ExtractKeywords(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222"}, batch.ISBNs)

	stored, err := s.KeywordRepository().GetKeywordResult(ctx, "111")
	require.NoError(t, err)
	assert.Contains(t, stored.Keywords, "역사")
}

func TestService_Recommend(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, s *Service) {
		require.NoError(t, s.KeywordRepository().PutKeywordResults(ctx,
			&core.KeywordResult{ISBN: "111", Keywords: []string{"역사", "문화"}},
			&core.KeywordResult{ISBN: "222", Keywords: []string{"역사"}},
		))
		require.NoError(t, s.CatalogRepository().PutBooks(ctx,
			&catalog.Book{ISBN: "111", Title: "조선왕조실록"},
			&catalog.Book{ISBN: "222", Title: "한국사 개론"},
		))
		require.NoError(t, s.CatalogRepository().PutAvailability(ctx,
			&catalog.Availability{ISBN: "111", Library: "중앙도서관"},
			&catalog.Availability{ISBN: "222", Library: "시립도서관"},
		))
	}

	t.Run("expanded scoring", func(t *testing.T) {
		s := openTestService(t, WithWordVectors(writeFile(t, "vectors.txt", testVectors)))
		seed(t, s)

		result, err := s.Recommend(ctx, Query{UserTerms: []string{"역사"}})
		require.NoError(t, err)
		assert.False(t, result.Degraded)
		require.Len(t, result.Rows, 2)
		// 111 matches 역사 directly and 문화 via expansion.
		assert.Equal(t, "111", result.Rows[0].ISBN)
		assert.Equal(t, 4, result.Rows[0].Score)
		assert.Equal(t, "222", result.Rows[1].ISBN)
	})

	t.Run("user terms normalized", func(t *testing.T) {
		s := openTestService(t, WithWordVectors(writeFile(t, "vectors.txt", testVectors)))
		seed(t, s)

		result, err := s.Recommend(ctx, Query{UserTerms: []string{"history"}})
		require.NoError(t, err)
		require.NotEmpty(t, result.Rows)
		assert.Equal(t, "111", result.Rows[0].ISBN)
	})

	t.Run("library filter", func(t *testing.T) {
		s := openTestService(t, WithWordVectors(writeFile(t, "vectors.txt", testVectors)))
		seed(t, s)

		result, err := s.Recommend(ctx, Query{UserTerms: []string{"역사"}, SelectedLibrary: "중앙도서관"})
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "111", result.Rows[0].ISBN)
	})

	t.Run("degraded on unknown vocabulary", func(t *testing.T) {
		s := openTestService(t, WithWordVectors(writeFile(t, "vectors.txt", testVectors)))
		seed(t, s)
		require.NoError(t, s.KeywordRepository().PutKeywordResults(ctx,
			&core.KeywordResult{ISBN: "111", Keywords: []string{"미지어"}},
		))

		result, err := s.Recommend(ctx, Query{UserTerms: []string{"미지어"}})
		require.NoError(t, err)
		assert.True(t, result.Degraded)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "111", result.Rows[0].ISBN)
	})

	t.Run("degraded without model", func(t *testing.T) {
		s := openTestService(t)
		seed(t, s)

		result, err := s.Recommend(ctx, Query{UserTerms: []string{"역사"}})
		require.NoError(t, err)
		assert.True(t, result.Degraded)
		require.Len(t, result.Rows, 2)
	})
}

func TestService_ArtifactRoundTrip(t *testing.T) {
	ctx := context.Background()

	src := openTestService(t)
	require.NoError(t, src.KeywordRepository().PutKeywordResults(ctx,
		&core.KeywordResult{ISBN: "111", Keywords: []string{"역사"}},
		&core.KeywordResult{ISBN: "222", Keywords: []string{"요리", "한식"}},
	))

	path := filepath.Join(t.TempDir(), "keywords.bkwa")
	f, err := os.Create(path)
	require.NoError(t, err)
	exported, err := src.ExportKeywords(ctx, f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, 2, exported)

	dst := openTestService(t)
	f, err = os.Open(path)
	require.NoError(t, err)
	imported, err := dst.ImportKeywords(ctx, f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	stored, err := dst.KeywordRepository().GetKeywordResult(ctx, "222")
	require.NoError(t, err)
	assert.Equal(t, []string{"요리", "한식"}, stored.Keywords)
}
