package sqlite

import (
	"context"
	"fmt"
)

// SequenceRepository implements visit.SequenceRepository for SQLite.
// Counters are allocated inside a transaction so the same value is never
// handed out twice for a scope, even under concurrent creation.
type SequenceRepository struct {
	db *DB
}

// NewSequenceRepository creates a new SequenceRepository
func NewSequenceRepository(db *DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next atomically increments the named counter and returns the new value,
// creating the counter on first use.
func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = value + 1
	`
	if _, err := tx.ExecContext(ctx, upsert, name); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var value int64
	if err := tx.QueryRowContext(ctx, `SELECT value FROM sequences WHERE name = ?`, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to read sequence value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return value, nil
}
