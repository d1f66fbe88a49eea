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


// Package asha answers questions about a small knowledge base of job
// postings, events, mentorship programs, FAQs and an organization
// description.
//
// Every record is rendered to a text unit and embedded once at startup into
// an exact nearest-neighbor index. A query is first checked against a short
// list of keyword rules with canned answers; otherwise it is embedded, the
// three closest units are retrieved, and their records are composed into a
// reply grouped by kind.
//
// # Basic Usage
//
//	assistant, err := asha.NewAssistant(ctx, kb.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer assistant.Close()
//
//	reply, err := assistant.Respond(ctx, "Are there any upcoming events?", nil)
//
// Open builds an assistant from a config.AppConfig instead, selecting the
// embedder and enabling the persistent embedding cache:
//
//	cfg, _, err := config.LoadDefault()
//	assistant, err := asha.Open(ctx, cfg)
//
// # Package Structure
//
//   - core: records, knowledge units and domain errors
//   - kb: the built-in dataset and YAML loading
//   - corpus: renders records into knowledge units
//   - ai: embedding interfaces with openai, tfidf, mock and cache implementations
//   - storage: persistence of embeddings with a BadgerDB backend
//   - index: exact Euclidean nearest-neighbor search
//   - matcher: keyword rules with canned answers
//   - retrieval: resolves a query to records grouped by kind
//   - compose: renders retrieval results as text
//   - chat: the message handler and concurrent batch answering
//   - config, tui: application configuration and the terminal chat window
package asha
