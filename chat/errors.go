package chat

import "errors"

// Construction errors
var (
	ErrRetrieverRequired = errors.New("retriever is required")
	ErrComposerRequired  = errors.New("composer is required")
	ErrHandlerRequired   = errors.New("handler is required")
)
