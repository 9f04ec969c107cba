package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rhammad/visitflow/internal/domain/visit"
	"github.com/rhammad/visitflow/internal/repository"
)

// VisitRepository implements visit.Repository for SQLite
type VisitRepository struct {
	db *DB
}

// NewVisitRepository creates a new VisitRepository
func NewVisitRepository(db *DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// Create inserts a new visit. A unique violation on the numbering scope
// surfaces as repository.ErrDuplicate so callers can retry with a fresh
// sequence number.
func (r *VisitRepository) Create(ctx context.Context, v *visit.Visit) error {
	query := `
		INSERT INTO visits (
			id, reference, seq, period_year, period_month, kind, contract_id,
			client_id, client_name, folder_id, visit_date, engineer, reason,
			description, engineer_signature, client_signature, is_extra,
			state, report_document_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.Reference,
		v.Seq,
		v.PeriodYear,
		v.PeriodMonth,
		v.Kind,
		v.ContractID,
		v.ClientID,
		v.ClientName,
		v.FolderID,
		v.VisitDate,
		v.Engineer,
		v.Reason,
		v.Description,
		base64.StdEncoding.EncodeToString(v.EngineerSignature),
		base64.StdEncoding.EncodeToString(v.ClientSignature),
		v.IsExtra,
		v.State,
		v.ReportDocumentID,
		v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create visit: %w", err)
	}

	return nil
}

// Get retrieves a visit by ID
func (r *VisitRepository) Get(ctx context.Context, id string) (*visit.Visit, error) {
	query := selectVisit + ` WHERE id = ?`

	v, err := scanVisit(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}

	return v, nil
}

// Update persists the mutable visit fields. Numbering and reference are
// immutable after creation and deliberately excluded.
func (r *VisitRepository) Update(ctx context.Context, v *visit.Visit) error {
	query := `
		UPDATE visits
		SET folder_id = ?, visit_date = ?, engineer = ?, reason = ?,
		    description = ?, engineer_signature = ?, client_signature = ?,
		    state = ?, report_document_id = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		v.FolderID,
		v.VisitDate,
		v.Engineer,
		v.Reason,
		v.Description,
		base64.StdEncoding.EncodeToString(v.EngineerSignature),
		base64.StdEncoding.EncodeToString(v.ClientSignature),
		v.State,
		v.ReportDocumentID,
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update visit: %w", err)
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

// ListByContract returns all visits of a contract in creation order
func (r *VisitRepository) ListByContract(ctx context.Context, contractID string) ([]visit.Visit, error) {
	query := selectVisit + ` WHERE contract_id = ? ORDER BY created_at ASC, seq ASC`

	rows, err := r.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	var visits []visit.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		visits = append(visits, *v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visit rows: %w", err)
	}

	return visits, nil
}

// CountByContractAndFolder counts visits linked to both a contract and a
// month folder; the scheduler's already-generated check
func (r *VisitRepository) CountByContractAndFolder(ctx context.Context, contractID, folderID string) (int, error) {
	query := `SELECT COUNT(*) FROM visits WHERE contract_id = ? AND folder_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, contractID, folderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}

	return count, nil
}

// MaxSeq returns the highest sequence number assigned to contracted visits
// in the (client, year, month) scope, zero when none exist
func (r *VisitRepository) MaxSeq(ctx context.Context, clientID string, year, month int) (int, error) {
	query := `
		SELECT COALESCE(MAX(seq), 0)
		FROM visits
		WHERE client_id = ? AND kind = 'contracted' AND period_year = ? AND period_month = ?
	`

	var max int
	if err := r.db.QueryRowContext(ctx, query, clientID, year, month).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to query max sequence: %w", err)
	}

	return max, nil
}

// SetReportDocument updates the visit's current-report back-reference
func (r *VisitRepository) SetReportDocument(ctx context.Context, visitID string, documentID *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE visits SET report_document_id = ? WHERE id = ?`, documentID, visitID)
	if err != nil {
		return fmt.Errorf("failed to set report document: %w", err)
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

const selectVisit = `
	SELECT id, reference, seq, period_year, period_month, kind, contract_id,
	       client_id, client_name, folder_id, visit_date, engineer, reason,
	       description, engineer_signature, client_signature, is_extra,
	       state, report_document_id, created_at
	FROM visits`

func scanVisit(row rowScanner) (*visit.Visit, error) {
	var v visit.Visit
	var engineerSig, clientSig string
	err := row.Scan(
		&v.ID,
		&v.Reference,
		&v.Seq,
		&v.PeriodYear,
		&v.PeriodMonth,
		&v.Kind,
		&v.ContractID,
		&v.ClientID,
		&v.ClientName,
		&v.FolderID,
		&v.VisitDate,
		&v.Engineer,
		&v.Reason,
		&v.Description,
		&engineerSig,
		&clientSig,
		&v.IsExtra,
		&v.State,
		&v.ReportDocumentID,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if v.EngineerSignature, err = base64.StdEncoding.DecodeString(engineerSig); err != nil {
		return nil, fmt.Errorf("decoding engineer signature: %w", err)
	}
	if v.ClientSignature, err = base64.StdEncoding.DecodeString(clientSig); err != nil {
		return nil, fmt.Errorf("decoding client signature: %w", err)
	}

	return &v, nil
}
