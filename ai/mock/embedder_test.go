package mock

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/poiesic/asha/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Default(t *testing.T) {
	ctx := context.Background()
	embedder := NewMockEmbedderWithDimension(16)

	a, err := embedder.EmbedText(ctx, "hello")
	require.NoError(t, err)
	b, err := embedder.EmbedText(ctx, "hello")
	require.NoError(t, err)
	c, err := embedder.EmbedText(ctx, "world")
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)

	batch, err := embedder.EmbedTexts(ctx, []string{"hello", "world"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{a, c}, batch)

	assert.Equal(t, 4, embedder.CallCount())
	assert.Equal(t, 5, embedder.TextCount())
	assert.Equal(t, "mock:16", ai.ModelIDOf(embedder, ""))
}

func TestMockEmbedder_Injected(t *testing.T) {
	embedder := NewMockEmbedder()
	boom := errors.New("boom")
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}

	_, err := embedder.EmbedTexts(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, boom)

	embedder.Reset()
	assert.Zero(t, embedder.CallCount())
	_, err = embedder.EmbedTexts(context.Background(), []string{"x"})
	assert.NoError(t, err)
}

func TestMockProvider(t *testing.T) {
	provider := NewMockProvider()
	mp := provider.(*MockProvider)

	assert.Same(t, mp.GetMockEmbedder(), provider.Embedder())
	require.NoError(t, provider.Close())
	assert.True(t, mp.Closed())
}
