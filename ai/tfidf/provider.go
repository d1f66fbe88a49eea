package tfidf

import "github.com/poiesic/asha/ai"

// Provider implements ai.AIProvider with a local TF-IDF embedder.
type Provider struct {
	embedder *Embedder
}

// NewProvider creates a provider with a fresh, unprepared TF-IDF embedder.
func NewProvider() ai.AIProvider {
	return &Provider{embedder: NewEmbedder()}
}

// Embedder returns the TF-IDF embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close is a no-op.
func (p *Provider) Close() error {
	return nil
}
