package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/asha/ai"
	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/corpus"
	"github.com/poiesic/asha/matcher"
)

// DefaultTopK is the number of nearest units retrieved per query.
const DefaultTopK = 3

// VectorIndex is the nearest-neighbor search used by a Retriever.
// *index.Index satisfies it.
type VectorIndex interface {
	Search(query []float32, k int) ([]core.Hit, error)
	Len() int
	Dimension() int
}

// Result is the outcome of a single retrieval. Either Direct is set, or
// Hits, Refs and Grouping describe the retrieved units.
type Result struct {
	Query    string
	Direct   string
	Hits     []core.Hit
	Refs     []core.UnitRef
	Grouping Grouping
}

// IsDirect reports whether the query was answered by a direct-answer rule.
func (r *Result) IsDirect() bool {
	return r.Direct != ""
}

// Retriever resolves a query to either a canned answer or a grouped set of
// knowledge base records.
// It holds only read-only state after construction and is safe for concurrent use.
type Retriever struct {
	corpus   core.Corpus
	kb       *core.KnowledgeBase
	index    VectorIndex
	embedder ai.Embedder
	matcher  *matcher.Matcher
	topK     int
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMatcher replaces the default direct-answer matcher.
// A nil matcher disables direct answers.
func WithMatcher(m *matcher.Matcher) Option {
	return func(r *Retriever) error {
		if m == nil {
			m = matcher.New()
		}
		r.matcher = m
		return nil
	}
}

// WithTopK sets how many nearest units are retrieved.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(r *Retriever) error {
		if k < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidTopK, k)
		}
		r.topK = k
		return nil
	}
}

// NewRetriever creates a new retriever. The index must hold one vector per
// corpus unit, in corpus order, or be empty (unbuilt).
func NewRetriever(
	units core.Corpus,
	kb *core.KnowledgeBase,
	ix VectorIndex,
	embedder ai.Embedder,
	opts ...Option,
) (*Retriever, error) {
	if len(units) == 0 {
		return nil, ErrCorpusRequired
	}
	if kb == nil {
		return nil, ErrKnowledgeBaseRequired
	}
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if n := ix.Len(); n != 0 && n != len(units) {
		return nil, fmt.Errorf("%w: %d vectors for %d units", ErrCorpusIndexMismatch, n, len(units))
	}

	r := &Retriever{
		corpus:   units,
		kb:       kb,
		index:    ix,
		embedder: embedder,
		matcher:  matcher.Default(),
		topK:     DefaultTopK,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "retriever")

	return r, nil
}

// Retrieve resolves query. See RetrieveWithMonitor.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Result, error) {
	return r.RetrieveWithMonitor(ctx, query, nil)
}

// RetrieveWithMonitor resolves query, reporting each step to monitor.
//
// A direct-answer match returns immediately without embedding or searching.
// Otherwise the query is embedded, the topK nearest units are found and
// their records are grouped by kind in retrieval order.
//
// Embedding failures and malformed vectors are returned wrapped in
// core.ErrEmbeddingService. Searching an unbuilt index returns
// core.ErrIndexNotBuilt.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, monitor Monitor) (*Result, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)
	result := &Result{Query: query}

	// 1. Keyword shortcut
	if answer, ok := r.matcher.Match(query); ok {
		result.Direct = answer
		monitor.DirectAnswer(answer)
		monitor.Finish(result)
		return result, nil
	}

	if r.index.Len() == 0 {
		return nil, core.ErrIndexNotBuilt
	}

	// 2. Embed the query as a one-text batch
	vector, err := r.embedQuery(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(vector)

	// 3. Nearest neighbors
	hits, err := r.index.Search(vector, r.topK)
	if err != nil {
		r.logger.Error("error searching index", "err", err)
		return nil, err
	}
	monitor.AfterSearch(hits)

	// 4. Map hits to records
	result.Hits = hits
	result.Refs = make([]core.UnitRef, 0, len(hits))
	for _, hit := range hits {
		if hit.UnitIndex < 0 || hit.UnitIndex >= len(r.corpus) {
			return nil, fmt.Errorf("%w: hit %d outside corpus of %d", ErrCorpusIndexMismatch, hit.UnitIndex, len(r.corpus))
		}
		ref := r.corpus[hit.UnitIndex].Ref
		record, err := corpus.Resolve(r.kb, ref)
		if err != nil {
			return nil, err
		}
		if err := result.Grouping.add(record); err != nil {
			return nil, err
		}
		result.Refs = append(result.Refs, ref)
		monitor.UnitHit(hit, ref)
	}

	r.logger.Debug("retrieved units", "query", query, "hits", len(hits), "kinds", len(result.Grouping.Kinds()))
	monitor.Finish(result)
	return result, nil
}

func (r *Retriever) embedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrEmbeddingService, err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: got %d vectors for 1 query", core.ErrEmbeddingService, len(vectors))
	}
	vector := vectors[0]
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", core.ErrEmbeddingService)
	}
	if len(vector) != r.index.Dimension() {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d", core.ErrEmbeddingService, len(vector), r.index.Dimension())
	}
	return vector, nil
}

// TopK returns the number of units retrieved per query.
func (r *Retriever) TopK() int {
	return r.topK
}
