package contract

import "errors"

var (
	// ErrContractNotFound indicates the contract doesn't exist.
	ErrContractNotFound = errors.New("contract not found")
	// ErrNotDraft indicates the contract must be in draft state to start.
	ErrNotDraft = errors.New("contract must be in draft state to start")
	// ErrInvalidInput indicates invalid input for contract operations.
	ErrInvalidInput = errors.New("invalid contract input")
	// ErrInvalidWindow indicates the end date precedes the start date.
	ErrInvalidWindow = errors.New("contract end date precedes start date")
)
