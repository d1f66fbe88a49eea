// Package retrieval resolves a user query against the knowledge base.
//
// A query first goes through the direct-answer matcher. If no rule matches,
// it is embedded, the nearest corpus units are found in the vector index,
// and their source records are grouped by kind for the response composer.
//
// # Usage
//
//	r, err := retrieval.NewRetriever(units, kb, ix, embedder, retrieval.WithTopK(3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := r.Retrieve(ctx, "Are there any upcoming events?")
//
// Pass a Monitor to RetrieveWithMonitor to observe each step.
package retrieval
