package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunseol/bookrec/core"
	"github.com/yunseol/bookrec/storage"
)

func setupKeywordRepo(t *testing.T) *KeywordRepository {
	t.Helper()
	keywordRepo, catalogRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		catalogRepo.Close()
		keywordRepo.Close()
		backend.Close()
	})
	return keywordRepo
}

func TestKeywordRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("put and get", func(t *testing.T) {
		repo := setupKeywordRepo(t)

		result := &core.KeywordResult{
			ISBN:     "9788960777330",
			Keywords: []string{"파이썬", "프로그래밍", "입문"},
		}
		require.NoError(t, repo.PutKeywordResults(ctx, result))

		got, err := repo.GetKeywordResult(ctx, "9788960777330")
		require.NoError(t, err)
		assert.Equal(t, result, got)
	})

	t.Run("get missing", func(t *testing.T) {
		repo := setupKeywordRepo(t)

		_, err := repo.GetKeywordResult(ctx, "0000000000000")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("put replaces existing result", func(t *testing.T) {
		repo := setupKeywordRepo(t)

		isbn := "9788960777330"
		require.NoError(t, repo.PutKeywordResults(ctx,
			&core.KeywordResult{ISBN: isbn, Keywords: []string{"역사"}}))
		require.NoError(t, repo.PutKeywordResults(ctx,
			&core.KeywordResult{ISBN: isbn, Keywords: []string{"과학", "문화"}}))

		got, err := repo.GetKeywordResult(ctx, isbn)
		require.NoError(t, err)
		assert.Equal(t, []string{"과학", "문화"}, got.Keywords)
	})

	t.Run("missing isbn rejected", func(t *testing.T) {
		repo := setupKeywordRepo(t)

		err := repo.PutKeywordResults(ctx, &core.KeywordResult{Keywords: []string{"역사"}})
		assert.ErrorIs(t, err, core.ErrMissingISBN)
	})

	t.Run("all results ordered by isbn", func(t *testing.T) {
		repo := setupKeywordRepo(t)

		require.NoError(t, repo.PutKeywordResults(ctx,
			&core.KeywordResult{ISBN: "222", Keywords: []string{"b"}},
			&core.KeywordResult{ISBN: "111", Keywords: []string{"a"}},
			&core.KeywordResult{ISBN: "333", Keywords: []string{"c"}},
		))

		all, err := repo.AllKeywordResults(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "111", all[0].ISBN)
		assert.Equal(t, "222", all[1].ISBN)
		assert.Equal(t, "333", all[2].ISBN)
	})

	t.Run("empty repository", func(t *testing.T) {
		repo := setupKeywordRepo(t)

		all, err := repo.AllKeywordResults(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
