package asha

import (
	"log/slog"

	"github.com/poiesic/asha/ai"
	"github.com/poiesic/asha/compose"
	"github.com/poiesic/asha/matcher"
	"github.com/poiesic/asha/retrieval"
	"github.com/poiesic/asha/storage"
)

// Option configures an Assistant.
type Option func(*options) error

type options struct {
	embedder   ai.Embedder
	repo       storage.EmbeddingRepository
	composer   *compose.Composer
	matcher    *matcher.Matcher
	hasMatcher bool
	topK       int
	rebuild    bool
	logger     *slog.Logger
}

func defaultOptions() *options {
	return &options{
		topK:   retrieval.DefaultTopK,
		logger: slog.Default(),
	}
}

// WithEmbedder sets the embedding model.
// Default is a local TF-IDF embedder.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(o *options) error {
		if embedder == nil {
			return ErrEmbedderRequired
		}
		o.embedder = embedder
		return nil
	}
}

// WithRepository persists corpus embeddings in repo so later builds with
// the same model skip the embedding service for unchanged units.
func WithRepository(repo storage.EmbeddingRepository) Option {
	return func(o *options) error {
		if repo == nil {
			return ErrRepositoryRequired
		}
		o.repo = repo
		return nil
	}
}

// WithComposer sets the response composer.
// Default is compose.New().
func WithComposer(composer *compose.Composer) Option {
	return func(o *options) error {
		if composer == nil {
			return ErrComposerRequired
		}
		o.composer = composer
		return nil
	}
}

// WithMatcher replaces the direct-answer rules. A nil matcher disables
// direct answers.
func WithMatcher(m *matcher.Matcher) Option {
	return func(o *options) error {
		o.matcher = m
		o.hasMatcher = true
		return nil
	}
}

// WithTopK sets how many nearest units are retrieved per query.
// Default is retrieval.DefaultTopK.
func WithTopK(k int) Option {
	return func(o *options) error {
		o.topK = k
		return nil
	}
}

// WithRebuild discards every stored embedding before building.
func WithRebuild() Option {
	return func(o *options) error {
		o.rebuild = true
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}
