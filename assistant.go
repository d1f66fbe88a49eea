// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package asha

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/asha/ai"
	"github.com/poiesic/asha/ai/cache"
	"github.com/poiesic/asha/ai/tfidf"
	"github.com/poiesic/asha/chat"
	"github.com/poiesic/asha/compose"
	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/corpus"
	"github.com/poiesic/asha/index"
	"github.com/poiesic/asha/retrieval"
	"github.com/poiesic/asha/storage"
)

// BuildStats describes how the index was built. Cached counts units whose
// vectors came from the repository, Embedded those sent to the embedding
// service. Purged reports whether stored embeddings were discarded first.
type BuildStats struct {
	ModelID   string
	Units     int
	Dimension int
	Cached    int
	Embedded  int
	Purged    bool
	Duration  time.Duration
}

// Assistant is the process-wide handle: a built corpus and index plus the
// query pipeline over them. It is immutable after construction and safe for
// concurrent use.
type Assistant struct {
	kb        *core.KnowledgeBase
	corpus    core.Corpus
	index     *index.Index
	retriever *retrieval.Retriever
	handler   *chat.Handler
	stats     BuildStats
	closers   []func() error
	logger    *slog.Logger
}

// NewAssistant builds the corpus and index for kb and wires the query
// pipeline. Validation and embedding failures are fatal: no partially built
// assistant is returned.
func NewAssistant(ctx context.Context, kb *core.KnowledgeBase, opts ...Option) (*Assistant, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return build(ctx, kb, o)
}

func build(ctx context.Context, kb *core.KnowledgeBase, o *options) (*Assistant, error) {
	if kb == nil {
		return nil, ErrKnowledgeBaseRequired
	}
	// The assistant owns its records; later edits by the caller must not
	// drift from the index.
	kb = kb.Clone()
	started := time.Now()
	logger := o.logger.With("component", "assistant")

	// 1. Corpus
	units, err := corpus.Build(kb)
	if err != nil {
		return nil, err
	}
	texts := units.Texts()

	// 2. Embedding model
	embedder := o.embedder
	if embedder == nil {
		embedder = tfidf.NewEmbedder()
	}
	if p, ok := embedder.(ai.Preparer); ok {
		if err := p.Prepare(texts); err != nil {
			return nil, fmt.Errorf("%w: preparing model: %w", core.ErrEmbeddingService, err)
		}
	}
	modelID := ai.ModelIDOf(embedder, fmt.Sprintf("%T", embedder))
	stats := BuildStats{ModelID: modelID, Units: len(units)}
	current := &storage.Manifest{
		ModelID:    modelID,
		Dimension:  ai.DimensionOf(embedder),
		Units:      len(units),
		CorpusHash: core.HashContent(strings.Join(texts, "\x00")),
	}

	// 3. Embed the corpus, through the repository when one is configured
	batch := embedder
	var cached *cache.Embedder
	if o.repo != nil {
		purged, err := reconcile(ctx, o.repo, current, o.rebuild, logger)
		if err != nil {
			return nil, err
		}
		stats.Purged = purged
		cached, err = cache.New(embedder, o.repo, cache.WithLogger(o.logger), cache.WithModelID(modelID))
		if err != nil {
			return nil, err
		}
		batch = cached
	}

	matrix, err := batch.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding corpus: %w", core.ErrEmbeddingService, err)
	}
	if len(matrix) != len(units) {
		return nil, fmt.Errorf("%w: got %d vectors for %d units", core.ErrEmbeddingService, len(matrix), len(units))
	}
	if cached != nil {
		stats.Cached, stats.Embedded = cached.Stats()
	} else {
		stats.Embedded = len(units)
	}

	// 4. Index
	ix, err := index.Build(matrix)
	if err != nil {
		return nil, err
	}
	stats.Dimension = ix.Dimension()

	if o.repo != nil {
		current.Dimension = ix.Dimension()
		current.BuiltAt = time.Now().UTC()
		if err := o.repo.SaveManifest(ctx, current); err != nil {
			logger.Warn("unable to save index manifest", "err", err)
		}
	}

	// 5. Query pipeline. Queries use the model directly; only corpus
	// vectors are persisted.
	retrieverOpts := []retrieval.Option{
		retrieval.WithLogger(o.logger),
		retrieval.WithTopK(o.topK),
	}
	if o.hasMatcher {
		retrieverOpts = append(retrieverOpts, retrieval.WithMatcher(o.matcher))
	}
	retriever, err := retrieval.NewRetriever(units, kb, ix, embedder, retrieverOpts...)
	if err != nil {
		return nil, err
	}

	composer := o.composer
	if composer == nil {
		composer = compose.New()
	}
	handler, err := chat.NewHandler(retriever, composer, chat.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	stats.Duration = time.Since(started)
	logger.Info("index built",
		"model", stats.ModelID,
		"units", stats.Units,
		"dimension", stats.Dimension,
		"cached", stats.Cached,
		"embedded", stats.Embedded,
		"duration", stats.Duration)

	return &Assistant{
		kb:        kb,
		corpus:    units,
		index:     ix,
		retriever: retriever,
		handler:   handler,
		stats:     stats,
		logger:    logger,
	}, nil
}

// reconcile drops stored embeddings when a rebuild is requested, the stored
// index was built by a different model, or the same model now reports a
// different vector dimension. A changed corpus alone keeps the store, since
// vectors are keyed by content.
func reconcile(ctx context.Context, repo storage.EmbeddingRepository, current *storage.Manifest, rebuild bool, logger *slog.Logger) (bool, error) {
	if !rebuild {
		previous, err := repo.LoadManifest(ctx)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return false, nil
		case err != nil:
			logger.Warn("unable to read index manifest", "err", err)
			return false, nil
		}
		if !stale(previous, current, logger) {
			return false, nil
		}
	}
	if err := repo.Purge(ctx); err != nil {
		return false, fmt.Errorf("purging stored embeddings: %w", err)
	}
	return true, nil
}

func stale(previous, current *storage.Manifest, logger *slog.Logger) bool {
	if previous.ModelID != current.ModelID {
		logger.Info("embedding model changed, discarding stored vectors", "previous", previous.ModelID, "current", current.ModelID)
		return true
	}
	if current.Dimension > 0 && previous.Dimension != current.Dimension {
		logger.Warn("stored vectors have a different dimension, discarding", "model", current.ModelID, "stored", previous.Dimension, "current", current.Dimension)
		return true
	}
	if previous.CorpusHash != current.CorpusHash {
		logger.Info("knowledge base changed since last build", "previous_units", previous.Units, "units", current.Units, "built_at", previous.BuiltAt)
	}
	return false
}

// Respond answers a chat message. See chat.Handler.Respond.
func (a *Assistant) Respond(ctx context.Context, message string, history []chat.Turn) (string, error) {
	return a.handler.Respond(ctx, message, history)
}

// Handler returns the chat handler.
func (a *Assistant) Handler() *chat.Handler {
	return a.handler
}

// Retriever returns the retrieval orchestrator.
func (a *Assistant) Retriever() *retrieval.Retriever {
	return a.retriever
}

// Corpus returns the knowledge units in index order.
func (a *Assistant) Corpus() core.Corpus {
	return a.corpus
}

// Index returns the vector index.
func (a *Assistant) Index() *index.Index {
	return a.index
}

// KnowledgeBase returns the assistant's copy of the records the corpus was
// built from. Callers must not modify it.
func (a *Assistant) KnowledgeBase() *core.KnowledgeBase {
	return a.kb
}

// Stats returns how the index was built.
func (a *Assistant) Stats() BuildStats {
	return a.stats
}

// Close releases resources opened on the assistant's behalf by Open.
// Collaborators passed in through options are left to the caller.
func (a *Assistant) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("error closing resource", "err", err)
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
