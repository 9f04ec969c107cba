package signature

import "errors"

var (
	// ErrRequestNotFound indicates the signature request doesn't exist.
	ErrRequestNotFound = errors.New("signature request not found")
	// ErrMissingSignerEmail indicates the signer email is required.
	ErrMissingSignerEmail = errors.New("signer email is required")
	// ErrNoReportDocument indicates the visit has no report to sign.
	ErrNoReportDocument = errors.New("visit has no report document to sign")
)
