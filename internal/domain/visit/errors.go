package visit

import "errors"

var (
	// ErrVisitNotFound indicates the visit doesn't exist.
	ErrVisitNotFound = errors.New("visit not found")
	// ErrInvalidInput indicates invalid input for visit operations.
	ErrInvalidInput = errors.New("invalid visit input")
	// ErrInvalidVisitCount indicates the extra-visit count must be positive.
	ErrInvalidVisitCount = errors.New("number of visits must be greater than zero")
)
