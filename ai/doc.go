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


// Package ai provides abstractions for the embedding service used by asha.
//
// The core retrieval code depends only on the Embedder interface, allowing
// the embedding model to be swapped without touching business logic.
//
// # Design Principles
//
// The package is designed around a small set of interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Preparer: Optional, for embedders that must see the corpus first
//   - Identified: Optional, names the model so stored vectors can be keyed by it
//   - AIProvider: Aggregates AI services for convenient lifecycle management
//
// # Implementation Packages
//
//   - ai/openai: OpenAI-compatible HTTP embeddings via langchaingo
//   - ai/tfidf: Local TF-IDF vectorizer, needs no network
//   - ai/cache: Decorator persisting batch embeddings in a storage.EmbeddingRepository
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// INTERFACE types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder) return CONCRETE types to enable test assertions
// such as CallCount.
//
// # Contract
//
// EmbedTexts returns exactly one vector per input, in input order. Every
// vector produced during a process lifetime has the same dimension, and the
// same model maps the same text to the same vector.
//
// # Usage Example
//
//	provider, err := openai.NewProvider(ai.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedTexts(ctx, corpus.Texts())
package ai
