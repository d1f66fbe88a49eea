package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/asha/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embeddingServer answers OpenAI embedding requests with one vector per input,
// where element 0 is the input's length.
func embeddingServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data := make([]map[string]any, len(req.Input))
		for i, text := range req.Input {
			data[i] = map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float32{float32(len(text)), 1, 0},
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  req.Model,
			"data":   data,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
}

func TestNewProvider(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := NewProvider(&ai.Config{EmbeddingHost: "http://localhost", BatchSize: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("valid config", func(t *testing.T) {
		provider, err := NewProvider(ai.NewConfig(ai.WithEmbeddingHost("http://localhost:9999")))
		require.NoError(t, err)
		defer provider.Close()

		assert.NotNil(t, provider.Embedder())
		assert.Equal(t, "openai:all-minilm@http://localhost:9999/v1", ai.ModelIDOf(provider.Embedder(), ""))
	})
}

func TestEmbedder(t *testing.T) {
	server := embeddingServer(t)
	defer server.Close()

	embedder, err := NewEmbedder(ai.NewConfig(
		ai.WithEmbeddingHost(server.URL),
		ai.WithBatchSize(2),
	))
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("single text", func(t *testing.T) {
		vector, err := embedder.EmbedText(ctx, "abcd")
		require.NoError(t, err)
		assert.Equal(t, []float32{4, 1, 0}, vector)
	})

	t.Run("batch preserves order across requests", func(t *testing.T) {
		vectors, err := embedder.EmbedTexts(ctx, []string{"a", "bb", "ccc", "dddd", "eeeee"})
		require.NoError(t, err)
		require.Len(t, vectors, 5)
		for i, v := range vectors {
			assert.Equal(t, float32(i+1), v[0])
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		vectors, err := embedder.EmbedTexts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, vectors)
	})
}

func TestEmbedder_ServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	embedder, err := NewEmbedder(ai.NewConfig(ai.WithEmbeddingHost(server.URL)))
	require.NoError(t, err)

	_, err = embedder.EmbedText(context.Background(), "hello")
	assert.Error(t, err)
}
