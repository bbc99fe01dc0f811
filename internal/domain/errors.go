package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing knowledge document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidDocument signals a document that fails validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrStoreUnavailable signals that the knowledge store could not be reached.
	ErrStoreUnavailable = errors.New("knowledge store unavailable")
	// ErrRateLimited signals that the completion provider kept rejecting requests.
	ErrRateLimited = errors.New("rate limited")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
)
