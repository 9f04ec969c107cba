package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rhammad/visitflow/internal/domain/signature"
	"github.com/rhammad/visitflow/internal/repository"
)

// SignatureRepository implements signature.Repository for SQLite
type SignatureRepository struct {
	db *DB
}

// NewSignatureRepository creates a new SignatureRepository
func NewSignatureRepository(db *DB) *SignatureRepository {
	return &SignatureRepository{db: db}
}

// Create inserts a new signature request
func (r *SignatureRepository) Create(ctx context.Context, req *signature.Request) error {
	query := `
		INSERT INTO signature_requests (
			id, visit_id, signer_role, signer_email, status,
			signed_payload, document_id, created_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.VisitID,
		req.SignerRole,
		req.SignerEmail,
		req.Status,
		base64.StdEncoding.EncodeToString(req.SignedPayload),
		req.DocumentID,
		req.CreatedAt,
		req.CompletedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create signature request: %w", err)
	}

	return nil
}

// Get retrieves a signature request by ID
func (r *SignatureRepository) Get(ctx context.Context, id string) (*signature.Request, error) {
	query := `
		SELECT id, visit_id, signer_role, signer_email, status,
		       signed_payload, document_id, created_at, completed_at
		FROM signature_requests
		WHERE id = ?
	`

	var req signature.Request
	var payload string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID,
		&req.VisitID,
		&req.SignerRole,
		&req.SignerEmail,
		&req.Status,
		&payload,
		&req.DocumentID,
		&req.CreatedAt,
		&req.CompletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signature request: %w", err)
	}

	if req.SignedPayload, err = base64.StdEncoding.DecodeString(payload); err != nil {
		return nil, fmt.Errorf("decoding signed payload: %w", err)
	}

	return &req, nil
}

// Update persists request status, payload and document link
func (r *SignatureRepository) Update(ctx context.Context, req *signature.Request) error {
	query := `
		UPDATE signature_requests
		SET status = ?, signed_payload = ?, document_id = ?, completed_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		req.Status,
		base64.StdEncoding.EncodeToString(req.SignedPayload),
		req.DocumentID,
		req.CompletedAt,
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update signature request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
