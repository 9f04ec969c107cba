package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rhammad/visitflow/internal/domain/document"
	"github.com/rhammad/visitflow/internal/repository"
)

// DocumentRepository implements document.Repository for SQLite.
// Payloads are base64-encoded at rest.
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document
func (r *DocumentRepository) Create(ctx context.Context, d *document.Document) error {
	query := `
		INSERT INTO documents (
			id, name, folder_id, data, visit_id, signed,
			supersedes_id, signature_request_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.FolderID,
		base64.StdEncoding.EncodeToString(d.Data),
		d.VisitID,
		d.Signed,
		d.SupersedesID,
		d.SignatureRequestID,
		d.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// Get retrieves a document by ID
func (r *DocumentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	query := selectDocument + ` WHERE id = ?`

	d, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return d, nil
}

// GetDraftByVisit returns the visit's unsigned draft document
func (r *DocumentRepository) GetDraftByVisit(ctx context.Context, visitID string) (*document.Document, error) {
	query := selectDocument + ` WHERE visit_id = ? AND signed = 0 ORDER BY created_at ASC LIMIT 1`

	d, err := scanDocument(r.db.QueryRowContext(ctx, query, visitID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft document: %w", err)
	}

	return d, nil
}

// GetSignedByVisit returns the visit's signed document
func (r *DocumentRepository) GetSignedByVisit(ctx context.Context, visitID string) (*document.Document, error) {
	query := selectDocument + ` WHERE visit_id = ? AND signed = 1 ORDER BY created_at ASC LIMIT 1`

	d, err := scanDocument(r.db.QueryRowContext(ctx, query, visitID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signed document: %w", err)
	}

	return d, nil
}

// ListByFolder returns the documents stored directly in a folder
func (r *DocumentRepository) ListByFolder(ctx context.Context, folderID string) ([]document.Document, error) {
	query := selectDocument + ` WHERE folder_id = ? ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}

// Delete removes a document
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
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

const selectDocument = `
	SELECT id, name, folder_id, data, visit_id, signed,
	       supersedes_id, signature_request_id, created_at
	FROM documents`

func scanDocument(row rowScanner) (*document.Document, error) {
	var d document.Document
	var data string
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.FolderID,
		&data,
		&d.VisitID,
		&d.Signed,
		&d.SupersedesID,
		&d.SignatureRequestID,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if d.Data, err = base64.StdEncoding.DecodeString(data); err != nil {
		return nil, fmt.Errorf("decoding document payload: %w", err)
	}

	return &d, nil
}
