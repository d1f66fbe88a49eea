package core

import "errors"

// Domain errors
var (
	// ErrValidation indicates a record is missing a required field.
	// It is fatal during startup: no partial corpus is ever served.
	ErrValidation = errors.New("validation failed")

	// ErrEmbeddingService indicates the embedding service was unreachable or
	// returned malformed output.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrIndexNotBuilt indicates a search reached the vector index before it was built.
	ErrIndexNotBuilt = errors.New("vector index not built")

	// ErrEmptyField indicates a required field is empty or whitespace-only.
	ErrEmptyField = errors.New("required field is empty")
)
