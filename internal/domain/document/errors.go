package document

import "errors"

var (
	// ErrDocumentNotFound indicates the document doesn't exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidInput indicates invalid input for document operations.
	ErrInvalidInput = errors.New("invalid document input")
	// ErrEmptyPayload indicates a signed payload is required.
	ErrEmptyPayload = errors.New("signed payload is empty")
)
