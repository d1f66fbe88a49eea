package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts
	// and every vector has the same dimension.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Preparer is implemented by embedders that must see the corpus before they
// can embed anything, such as vocabulary-based models.
// Prepare is called once, before the first embedding request.
type Preparer interface {
	Prepare(corpus []string) error
}

// Identified is implemented by embedders that can name the exact model
// producing their vectors. Two embedders with the same ModelID produce
// identical vectors for identical input.
type Identified interface {
	ModelID() string
}

// Sized is implemented by embedders that know their vector dimension
// before embedding anything.
type Sized interface {
	Dimension() int
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

// ModelIDOf returns the model identity of e, or fallback if e does not
// implement Identified.
func ModelIDOf(e Embedder, fallback string) string {
	if id, ok := e.(Identified); ok {
		return id.ModelID()
	}
	return fallback
}

// DimensionOf returns the vector dimension of e, or 0 if e does not
// implement Sized.
func DimensionOf(e Embedder) int {
	if s, ok := e.(Sized); ok {
		return s.Dimension()
	}
	return 0
}
