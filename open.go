package asha

import (
	"context"
	"fmt"

	"github.com/poiesic/asha/ai"
	"github.com/poiesic/asha/ai/openai"
	"github.com/poiesic/asha/ai/tfidf"
	"github.com/poiesic/asha/compose"
	"github.com/poiesic/asha/config"
	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/kb"
	"github.com/poiesic/asha/storage/badger"
)

// Open bootstraps cfg and builds an assistant from it: the knowledge base
// file (or the built-in dataset), the configured embedder, the on-disk
// embedding cache when enabled, and the assistant names. Options are applied
// after the configuration and override it.
//
// The returned assistant owns the cache and the embedding provider; call
// Close to release them.
func Open(ctx context.Context, cfg *config.AppConfig, opts ...Option) (*Assistant, error) {
	if err := config.Bootstrap(cfg); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	knowledge, err := loadKnowledgeBase(cfg.KnowledgeBase.Path)
	if err != nil {
		return nil, err
	}

	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	if o.embedder == nil {
		provider, err := newProvider(cfg)
		if err != nil {
			return nil, err
		}
		closers = append(closers, provider.Close)
		o.embedder = provider.Embedder()
	}

	if cfg.Cache.Enabled && o.repo == nil {
		backend, err := badger.OpenBackend(cfg.Cache.Dir, false, badger.WithLogger(o.logger))
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("opening embedding cache: %w", err)
		}
		closers = append(closers, backend.Close)
		repo, err := badger.NewEmbeddingRepository(backend)
		if err != nil {
			closeAll()
			return nil, err
		}
		closers = append(closers, repo.Close)
		o.repo = repo
	}

	if o.composer == nil {
		o.composer = compose.New(
			compose.WithAssistantName(cfg.Assistant.Name),
			compose.WithPlatform(cfg.Assistant.Platform),
			compose.WithOrganization(cfg.Assistant.Organization),
		)
	}

	assistant, err := build(ctx, knowledge, o)
	if err != nil {
		closeAll()
		return nil, err
	}
	assistant.closers = closers
	return assistant, nil
}

func loadKnowledgeBase(path string) (*core.KnowledgeBase, error) {
	if path == "" {
		return kb.Default(), nil
	}
	return kb.Load(path)
}

func newProvider(cfg *config.AppConfig) (ai.AIProvider, error) {
	switch cfg.Embedder.Type {
	case config.EmbedderOpenAI:
		return openai.NewProvider(cfg.Embedder.AIConfig())
	default:
		return tfidf.NewProvider(), nil
	}
}
