package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rhammad/visitflow/internal/domain/contract"
	"github.com/rhammad/visitflow/internal/repository"
)

// ContractRepository implements contract.Repository for SQLite
type ContractRepository struct {
	db *DB
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(db *DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create inserts a new contract
func (r *ContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	query := `
		INSERT INTO contracts (
			id, name, client_id, client_name, start_date, end_date,
			visits_per_month, weekdays, state, folder_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.ClientID,
		c.ClientName,
		c.StartDate,
		c.EndDate,
		c.VisitsPerMonth,
		encodeWeekdays(c.Weekdays),
		c.State,
		c.FolderID,
		c.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create contract: %w", err)
	}

	return nil
}

// Get retrieves a contract by ID
func (r *ContractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	query := `
		SELECT id, name, client_id, client_name, start_date, end_date,
		       visits_per_month, weekdays, state, folder_id, created_at
		FROM contracts
		WHERE id = ?
	`

	c, err := scanContract(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}

	return c, nil
}

// Update persists contract state, folder link and terms
func (r *ContractRepository) Update(ctx context.Context, c *contract.Contract) error {
	query := `
		UPDATE contracts
		SET name = ?, start_date = ?, end_date = ?, visits_per_month = ?,
		    weekdays = ?, state = ?, folder_id = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.StartDate,
		c.EndDate,
		c.VisitsPerMonth,
		encodeWeekdays(c.Weekdays),
		c.State,
		c.FolderID,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
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

// ListByState returns contracts in the given lifecycle state
func (r *ContractRepository) ListByState(ctx context.Context, state contract.State) ([]contract.Contract, error) {
	query := `
		SELECT id, name, client_id, client_name, start_date, end_date,
		       visits_per_month, weekdays, state, folder_id, created_at
		FROM contracts
		WHERE state = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	return collectContracts(rows)
}

// ListExpiring returns in-progress contracts whose end date falls inside
// the given window
func (r *ContractRepository) ListExpiring(ctx context.Context, after, before time.Time) ([]contract.Contract, error) {
	query := `
		SELECT id, name, client_id, client_name, start_date, end_date,
		       visits_per_month, weekdays, state, folder_id, created_at
		FROM contracts
		WHERE state = 'in_progress' AND end_date >= ? AND end_date <= ?
		ORDER BY end_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, after, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring contracts: %w", err)
	}
	defer rows.Close()

	return collectContracts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*contract.Contract, error) {
	var c contract.Contract
	var weekdays string
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.ClientID,
		&c.ClientName,
		&c.StartDate,
		&c.EndDate,
		&c.VisitsPerMonth,
		&weekdays,
		&c.State,
		&c.FolderID,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Weekdays = decodeWeekdays(weekdays)
	return &c, nil
}

func collectContracts(rows *sql.Rows) ([]contract.Contract, error) {
	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract rows: %w", err)
	}

	return contracts, nil
}

// encodeWeekdays stores the preference set as a comma-separated list of
// time.Weekday values, empty when no preference is configured.
func encodeWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(s string) []time.Weekday {
	if s == "" {
		return nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}
