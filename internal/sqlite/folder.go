package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rhammad/visitflow/internal/domain/folder"
	"github.com/rhammad/visitflow/internal/repository"
	"github.com/google/uuid"
)

func newFolderID() string { return uuid.NewString() }

// FolderRepository implements folder.Repository for SQLite
type FolderRepository struct {
	db *DB
}

// NewFolderRepository creates a new FolderRepository
func NewFolderRepository(db *DB) *FolderRepository {
	return &FolderRepository{db: db}
}

// Create inserts a new folder
func (r *FolderRepository) Create(ctx context.Context, f *folder.Folder) error {
	query := `
		INSERT INTO folders (id, name, parent_id, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, f.ID, f.Name, f.ParentID, f.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create folder: %w", err)
	}

	return nil
}

// Get retrieves a folder by ID
func (r *FolderRepository) Get(ctx context.Context, id string) (*folder.Folder, error) {
	query := `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE id = ?
	`

	var f folder.Folder
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	return &f, nil
}

// GetOrCreateChild looks up a child folder by exact name, creating it if
// absent. The insert is an upsert under the (parent_id, name) unique
// constraint, so two racing callers converge on a single row.
func (r *FolderRepository) GetOrCreateChild(ctx context.Context, parentID, name string) (*folder.Folder, error) {
	insert := `
		INSERT INTO folders (id, name, parent_id, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (parent_id, name) DO NOTHING
	`

	id := newFolderID()
	if _, err := r.db.ExecContext(ctx, insert, id, name, parentID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to upsert folder: %w", err)
	}

	query := `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE parent_id = ? AND name = ?
	`

	var f folder.Folder
	err := r.db.QueryRowContext(ctx, query, parentID, name).Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read back folder: %w", err)
	}

	return &f, nil
}

// FindRootByName returns the oldest top-level folder with the given name
func (r *FolderRepository) FindRootByName(ctx context.Context, name string) (*folder.Folder, error) {
	query := `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE parent_id IS NULL AND name = ?
		ORDER BY created_at ASC
		LIMIT 1
	`

	var f folder.Folder
	err := r.db.QueryRowContext(ctx, query, name).Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find root folder: %w", err)
	}

	return &f, nil
}

// FindChildByPrefix returns the first child folder whose name starts with
// the given prefix, e.g. the "2025-03" month folder regardless of locale
// suffix
func (r *FolderRepository) FindChildByPrefix(ctx context.Context, parentID, prefix string) (*folder.Folder, error) {
	query := `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE parent_id = ? AND name LIKE ? || '%'
		ORDER BY name ASC
		LIMIT 1
	`

	var f folder.Folder
	err := r.db.QueryRowContext(ctx, query, parentID, prefix).Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find child folder: %w", err)
	}

	return &f, nil
}

// Children returns the direct subfolders of a folder
func (r *FolderRepository) Children(ctx context.Context, parentID string) ([]folder.Folder, error) {
	query := `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE parent_id = ?
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	defer rows.Close()

	var children []folder.Folder
	for rows.Next() {
		var f folder.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		children = append(children, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folder rows: %w", err)
	}

	return children, nil
}

// Delete removes a folder; descendant folders and contained documents go
// with it via cascade
func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
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

// DocumentCount returns the recursive document count over the subtree
func (r *FolderRepository) DocumentCount(ctx context.Context, id string) (int, error) {
	query := `
		WITH RECURSIVE subtree(id) AS (
			SELECT id FROM folders WHERE id = ?
			UNION ALL
			SELECT f.id FROM folders f JOIN subtree s ON f.parent_id = s.id
		)
		SELECT COUNT(*) FROM documents WHERE folder_id IN (SELECT id FROM subtree)
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return count, nil
}
