package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer; one pooled connection avoids SQLITE_BUSY
	// and keeps :memory: databases shared across the pool.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Folder tree. The unique constraint makes get-or-create an upsert and
-- prevents duplicate sibling folders under concurrent creation.
CREATE TABLE IF NOT EXISTS folders (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    parent_id TEXT REFERENCES folders(id) ON DELETE CASCADE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (parent_id, name)
);
CREATE INDEX IF NOT EXISTS idx_folder_parent ON folders(parent_id);

-- Contracts
CREATE TABLE IF NOT EXISTS contracts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    client_id TEXT NOT NULL,
    client_name TEXT NOT NULL,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    visits_per_month INTEGER NOT NULL DEFAULT 1,
    weekdays TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL CHECK(state IN ('draft', 'in_progress', 'done', 'cancelled')),
    folder_id TEXT REFERENCES folders(id) ON DELETE SET NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_contract_state ON contracts(state);
CREATE INDEX IF NOT EXISTS idx_contract_client ON contracts(client_id);
CREATE INDEX IF NOT EXISTS idx_contract_end_date ON contracts(end_date);

-- Visits. The unique index on the numbering scope is the backstop that
-- converts a cross-batch numbering race into a retryable conflict instead
-- of a silent duplicate.
CREATE TABLE IF NOT EXISTS visits (
    id TEXT PRIMARY KEY,
    reference TEXT NOT NULL UNIQUE,
    seq INTEGER NOT NULL,
    period_year INTEGER NOT NULL,
    period_month INTEGER NOT NULL,
    kind TEXT NOT NULL CHECK(kind IN ('contracted', 'ad_hoc')),
    contract_id TEXT REFERENCES contracts(id) ON DELETE CASCADE,
    client_id TEXT NOT NULL,
    client_name TEXT NOT NULL,
    folder_id TEXT REFERENCES folders(id) ON DELETE SET NULL,
    visit_date TIMESTAMP NOT NULL,
    engineer TEXT NOT NULL DEFAULT '',
    reason TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    engineer_signature TEXT NOT NULL DEFAULT '',
    client_signature TEXT NOT NULL DEFAULT '',
    is_extra INTEGER NOT NULL DEFAULT 0,
    state TEXT NOT NULL CHECK(state IN ('pending', 'done', 'cancelled')),
    report_document_id TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (client_id, kind, period_year, period_month, seq)
);
CREATE INDEX IF NOT EXISTS idx_visit_contract ON visits(contract_id);
CREATE INDEX IF NOT EXISTS idx_visit_folder ON visits(folder_id);
CREATE INDEX IF NOT EXISTS idx_visit_state ON visits(state);

-- Documents. Payloads are base64-encoded at rest. supersedes_id is the
-- explicit link from a signed document to the draft it replaces.
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    folder_id TEXT NOT NULL REFERENCES folders(id) ON DELETE CASCADE,
    data TEXT NOT NULL,
    visit_id TEXT REFERENCES visits(id) ON DELETE CASCADE,
    signed INTEGER NOT NULL DEFAULT 0,
    supersedes_id TEXT REFERENCES documents(id) ON DELETE SET NULL,
    signature_request_id TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_document_folder ON documents(folder_id);
CREATE INDEX IF NOT EXISTS idx_document_visit ON documents(visit_id);

-- Signature requests
CREATE TABLE IF NOT EXISTS signature_requests (
    id TEXT PRIMARY KEY,
    visit_id TEXT NOT NULL REFERENCES visits(id) ON DELETE CASCADE,
    signer_role TEXT NOT NULL DEFAULT '',
    signer_email TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('sent', 'completed')),
    signed_payload TEXT NOT NULL DEFAULT '',
    document_id TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    completed_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_signature_visit ON signature_requests(visit_id);

-- Named counters for the counter numbering strategy
CREATE TABLE IF NOT EXISTS sequences (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL DEFAULT 0
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
