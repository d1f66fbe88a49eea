package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/asha/compose"
	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/retrieval"
)

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation transcript.
type Turn struct {
	Role    Role
	Content string
}

// ExamplePrompts are suggested questions shown to new users.
var ExamplePrompts = []string{
	"Tell me about JobsForHer",
	"What job opportunities are available?",
	"Are there any upcoming events?",
	"How do I update my profile?",
	"Tell me about mentorship programs",
}

// Retriever resolves a query to a retrieval result.
// *retrieval.Retriever satisfies it.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (*retrieval.Result, error)
}

// Handler answers chat messages.
// It holds no per-conversation state and is safe for concurrent use.
type Handler struct {
	retriever Retriever
	composer  *compose.Composer
	logger    *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) error {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger
		return nil
	}
}

// NewHandler creates a new chat handler.
func NewHandler(retriever Retriever, composer *compose.Composer, opts ...Option) (*Handler, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if composer == nil {
		return nil, ErrComposerRequired
	}

	h := &Handler{
		retriever: retriever,
		composer:  composer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	h.logger = h.logger.With("component", "chat")

	return h, nil
}

// Respond returns the reply to message. History is accepted for front-end
// compatibility but does not influence the reply.
//
// A blank message yields the introduction. Embedding failures are logged and
// answered with an apology; they do not return an error. Any other failure,
// such as an unbuilt index, is returned to the caller.
func (h *Handler) Respond(ctx context.Context, message string, history []Turn) (string, error) {
	if strings.TrimSpace(message) == "" {
		return h.composer.Fallback(), nil
	}

	result, err := h.retriever.Retrieve(ctx, message)
	if err != nil {
		if errors.Is(err, core.ErrEmbeddingService) {
			h.logger.Warn("unable to answer message", "err", err, "history", len(history))
			return h.composer.Apology(), nil
		}
		return "", err
	}

	return h.composer.Compose(result), nil
}

// Welcome returns the greeting shown at the start of a conversation.
func (h *Handler) Welcome() string {
	return h.composer.Welcome()
}
