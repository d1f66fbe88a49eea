package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/asha/ai"
	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/storage"
)

var (
	// ErrEmbedderRequired is returned when no inner embedder is supplied.
	ErrEmbedderRequired = errors.New("inner embedder is required")

	// ErrRepositoryRequired is returned when no embedding repository is supplied.
	ErrRepositoryRequired = errors.New("embedding repository is required")
)

// Embedder decorates an ai.Embedder with persistent storage of batch
// embeddings. Vectors are keyed by the inner model identity and the content
// hash of each text, so a model change never serves stale vectors.
//
// Only EmbedTexts consults the cache. Single-text queries go straight to the
// inner embedder. Storage failures are logged and the inner embedder is used
// as if the cache were empty.
type Embedder struct {
	inner   ai.Embedder
	repo    storage.EmbeddingRepository
	modelID string
	logger  *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

var (
	_ ai.Embedder   = (*Embedder)(nil)
	_ ai.Preparer   = (*Embedder)(nil)
	_ ai.Identified = (*Embedder)(nil)
)

// Option configures an Embedder.
type Option func(*Embedder)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Embedder) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithModelID sets the identity used when the inner embedder does not
// implement ai.Identified.
func WithModelID(id string) Option {
	return func(e *Embedder) {
		e.modelID = id
	}
}

// New wraps inner with a cache backed by repo.
func New(inner ai.Embedder, repo storage.EmbeddingRepository, opts ...Option) (*Embedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	e := &Embedder{
		inner:   inner,
		repo:    repo,
		modelID: fmt.Sprintf("%T", inner),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "embedding-cache")
	return e, nil
}

// ModelID returns the identity of the inner model.
func (e *Embedder) ModelID() string {
	return ai.ModelIDOf(e.inner, e.modelID)
}

// Prepare forwards to the inner embedder when it needs preparation.
func (e *Embedder) Prepare(corpus []string) error {
	if p, ok := e.inner.(ai.Preparer); ok {
		return p.Prepare(corpus)
	}
	return nil
}

// EmbedText embeds a single text with the inner embedder, bypassing the cache.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return e.inner.EmbedText(ctx, text)
}

// EmbedTexts returns cached vectors where available and embeds the rest in
// a single inner batch. Output order matches input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	model := e.ModelID()
	hashes := make([]core.ContentHash, len(texts))
	for i, text := range texts {
		hashes[i] = core.HashContent(text)
	}

	cached, err := e.repo.GetEmbeddings(ctx, model, hashes...)
	if err != nil {
		e.logger.Warn("cache read failed, embedding everything", "err", err)
		cached = nil
	}

	// Deduplicate misses so repeated texts are embedded once
	var (
		missTexts  []string
		missHashes []core.ContentHash
		queued     = make(map[core.ContentHash]struct{})
	)
	for i, hash := range hashes {
		if _, ok := cached[hash]; ok {
			continue
		}
		if _, ok := queued[hash]; ok {
			continue
		}
		queued[hash] = struct{}{}
		missTexts = append(missTexts, texts[i])
		missHashes = append(missHashes, hash)
	}

	e.hits.Add(int64(len(texts) - len(missTexts)))
	e.misses.Add(int64(len(missTexts)))

	fresh := make(map[core.ContentHash][]float32, len(missTexts))
	if len(missTexts) > 0 {
		vectors, err := e.inner.EmbedTexts(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(missTexts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(missTexts))
		}
		for i, hash := range missHashes {
			fresh[hash] = vectors[i]
		}
		if err := e.repo.PutEmbeddings(ctx, model, fresh); err != nil {
			e.logger.Warn("cache write failed", "count", len(fresh), "err", err)
		}
	}

	e.logger.Debug("embedded batch", "model", model, "texts", len(texts), "cached", len(texts)-len(missTexts), "embedded", len(missTexts))

	out := make([][]float32, len(texts))
	for i, hash := range hashes {
		if v, ok := fresh[hash]; ok {
			out[i] = v
		} else {
			out[i] = cached[hash]
		}
	}
	return out, nil
}

// Stats returns the number of texts served from the cache and the number
// sent to the inner embedder since creation.
func (e *Embedder) Stats() (hits, misses int) {
	return int(e.hits.Load()), int(e.misses.Load())
}
