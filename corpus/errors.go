package corpus

import "errors"

var (
	// ErrKnowledgeBaseRequired is returned when a nil knowledge base is supplied.
	ErrKnowledgeBaseRequired = errors.New("knowledge base is required")

	// ErrUnknownRef is returned when a unit reference does not point at a record.
	ErrUnknownRef = errors.New("unit reference does not resolve to a record")
)
