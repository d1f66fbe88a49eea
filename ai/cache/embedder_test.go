package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/asha/ai/mock"
	"github.com/poiesic/asha/ai/tfidf"
	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/storage"
	"github.com/poiesic/asha/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) storage.EmbeddingRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestNew(t *testing.T) {
	repo := newRepo(t)

	_, err := New(nil, repo)
	assert.Equal(t, ErrEmbedderRequired, err)

	_, err = New(mock.NewMockEmbedder(), nil)
	assert.Equal(t, ErrRepositoryRequired, err)

	e, err := New(mock.NewMockEmbedderWithDimension(8), repo)
	require.NoError(t, err)
	assert.Equal(t, "mock:8", e.ModelID())
}

func TestEmbedTexts_CachesAcrossCalls(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	inner := mock.NewMockEmbedderWithDimension(8)

	e, err := New(inner, repo)
	require.NoError(t, err)

	texts := []string{"alpha", "beta", "alpha", "gamma"}
	first, err := e.EmbedTexts(ctx, texts)
	require.NoError(t, err)
	require.Len(t, first, 4)
	assert.Equal(t, first[0], first[2])
	assert.Equal(t, mock.GenerateDeterministicVector("beta", 8), first[1])
	assert.Equal(t, 1, inner.CallCount())
	assert.Equal(t, 3, inner.TextCount())

	second, err := e.EmbedTexts(ctx, texts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.CallCount(), "fully cached batch must not reach the inner embedder")

	t.Run("partial hit embeds only misses", func(t *testing.T) {
		out, err := e.EmbedTexts(ctx, []string{"delta", "beta"})
		require.NoError(t, err)
		assert.Equal(t, mock.GenerateDeterministicVector("delta", 8), out[0])
		assert.Equal(t, first[1], out[1])
		assert.Equal(t, 2, inner.CallCount())
		assert.Equal(t, 4, inner.TextCount())
	})

	hits, misses := e.Stats()
	assert.Equal(t, 6, hits)
	assert.Equal(t, 4, misses)
}

func TestEmbedTexts_ModelIsolation(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	small, err := New(mock.NewMockEmbedderWithDimension(4), repo)
	require.NoError(t, err)
	_, err = small.EmbedTexts(ctx, []string{"alpha"})
	require.NoError(t, err)

	largeInner := mock.NewMockEmbedderWithDimension(6)
	large, err := New(largeInner, repo)
	require.NoError(t, err)
	out, err := large.EmbedTexts(ctx, []string{"alpha"})
	require.NoError(t, err)
	assert.Len(t, out[0], 6)
	assert.Equal(t, 1, largeInner.CallCount())
}

func TestEmbedTexts_InnerFailure(t *testing.T) {
	repo := newRepo(t)
	inner := mock.NewMockEmbedder()
	boom := errors.New("service down")
	inner.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}

	e, err := New(inner, repo)
	require.NoError(t, err)

	_, err = e.EmbedTexts(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, boom)

	count, err := repo.CountEmbeddings(context.Background(), e.ModelID())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEmbedTexts_ShortBatch(t *testing.T) {
	repo := newRepo(t)
	inner := mock.NewMockEmbedder()
	inner.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}

	e, err := New(inner, repo)
	require.NoError(t, err)

	_, err = e.EmbedTexts(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}

func TestEmbedText_BypassesCache(t *testing.T) {
	repo := newRepo(t)
	inner := mock.NewMockEmbedderWithDimension(4)
	e, err := New(inner, repo)
	require.NoError(t, err)

	v, err := e.EmbedText(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, mock.GenerateDeterministicVector("query", 4), v)

	found, err := repo.GetEmbeddings(context.Background(), e.ModelID(), core.HashContent("query"))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestPrepare_Forwards(t *testing.T) {
	repo := newRepo(t)
	inner := tfidf.NewEmbedder()
	e, err := New(inner, repo)
	require.NoError(t, err)

	assert.Equal(t, "tfidf:unprepared", e.ModelID())
	require.NoError(t, e.Prepare([]string{"remote software engineer", "networking mixer delhi"}))
	assert.Equal(t, inner.ModelID(), e.ModelID())
	assert.NotEqual(t, "tfidf:unprepared", e.ModelID())

	// Embedders without preparation accept Prepare as a no-op
	plain, err := New(mock.NewMockEmbedder(), repo)
	require.NoError(t, err)
	assert.NoError(t, plain.Prepare(nil))
}
