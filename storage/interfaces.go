package storage

import (
	"context"
	"time"

	"github.com/poiesic/asha/core"
)

// Manifest describes the most recently built index: which model produced the
// vectors and what corpus they cover.
type Manifest struct {
	ModelID    string
	Dimension  int
	Units      int
	CorpusHash core.ContentHash
	BuiltAt    time.Time
}

// EmbeddingRepository persists embedding vectors keyed by model identity and
// content hash. Implementations must be thread-safe and support concurrent access.
type EmbeddingRepository interface {
	// GetEmbeddings returns the stored vectors for the given hashes under model.
	// Missing hashes are absent from the result; that is not an error.
	GetEmbeddings(ctx context.Context, model string, hashes ...core.ContentHash) (map[core.ContentHash][]float32, error)

	// PutEmbeddings stores vectors under model, replacing existing entries.
	PutEmbeddings(ctx context.Context, model string, vectors map[core.ContentHash][]float32) error

	// CountEmbeddings returns the number of vectors stored under model.
	CountEmbeddings(ctx context.Context, model string) (int, error)

	// LoadManifest returns the stored manifest.
	// Returns ErrNotFound if no index has been recorded yet.
	LoadManifest(ctx context.Context) (*Manifest, error)

	// SaveManifest replaces the stored manifest.
	SaveManifest(ctx context.Context, manifest *Manifest) error

	// Purge removes every stored vector and the manifest.
	Purge(ctx context.Context) error

	// Close releases the repository. The backend is closed separately.
	Close() error
}
