package tfidf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/poiesic/asha/ai"
	"github.com/poiesic/asha/core"
)

var (
	// ErrNotPrepared is returned when embedding before Prepare has been called.
	ErrNotPrepared = errors.New("tfidf embedder not prepared")

	// ErrEmptyCorpus is returned when Prepare finds nothing to build a vocabulary from.
	ErrEmptyCorpus = errors.New("empty corpus for TF-IDF prepare")
)

// Embedder implements a local TF-IDF vectorizer.
// It builds a vocabulary from the corpus and computes smoothed IDF values.
// The vector dimension equals the vocabulary size.
type Embedder struct {
	mu           sync.RWMutex
	vocabulary   map[string]int
	idf          []float32
	modelID      string
	prepared     bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
	logger       *slog.Logger
}

var (
	_ ai.Embedder   = (*Embedder)(nil)
	_ ai.Preparer   = (*Embedder)(nil)
	_ ai.Identified = (*Embedder)(nil)
)

// NewEmbedder creates an unprepared TF-IDF embedder.
func NewEmbedder() *Embedder {
	return &Embedder{
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`),
		stopwords:    defaultStopwords(),
		logger:       slog.Default().With("component", "tfidf-embedder"),
	}
}

// Prepare builds the vocabulary and IDF values from the provided corpus.
// Calling Prepare again replaces the previous vocabulary.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}

	// Build vocabulary and document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return fmt.Errorf("%w: no tokens found", ErrEmptyCorpus)
	}

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float32, len(terms))
	n := float64(len(corpus))
	var signature strings.Builder
	for i, term := range terms {
		vocabulary[term] = i
		// Smoothed IDF
		idf[i] = float32(math.Log((1+n)/(1+float64(df[term]))) + 1.0)
		fmt.Fprintf(&signature, "%s=%d;", term, df[term])
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.vocabulary = vocabulary
	e.idf = idf
	e.modelID = fmt.Sprintf("tfidf:%d:%016x", len(terms), uint64(core.HashContent(signature.String())))
	e.prepared = true

	e.logger.Debug("prepared vocabulary", "documents", len(corpus), "terms", len(terms))
	return nil
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.idf)
}

// ModelID identifies the vocabulary. Two embedders prepared on the same
// corpus report the same identity.
func (e *Embedder) ModelID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.prepared {
		return "tfidf:unprepared"
	}
	return e.modelID
}

// EmbedText computes the TF-IDF embedding for the given text.
// Text with no vocabulary terms embeds to the zero vector.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.prepared {
		return nil, ErrNotPrepared
	}
	return e.embed(text), nil
}

// EmbedTexts computes TF-IDF embeddings for each text in order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.prepared {
		return nil, ErrNotPrepared
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = e.embed(text)
	}
	return vectors, nil
}

func (e *Embedder) embed(text string) []float32 {
	vec := make([]float32, len(e.idf))
	tf := make(map[int]int)
	total := 0
	for _, tok := range e.tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float32(count) / float32(total) * e.idf[idx]
	}

	// L2 normalize
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func (e *Embedder) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"i", "me", "my", "you", "your", "we", "our", "us", "do", "does", "how", "what", "any", "there", "some", "tell",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
