package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/xvierd/fokus/internal/domain"
	"github.com/xvierd/fokus/internal/ports"
)

// SQLite implements ports.HistoryStore with one row per day.
type SQLite struct {
	db *sql.DB
}

// Ensure SQLite implements ports.HistoryStore.
var _ ports.HistoryStore = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and writes serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// NewMemory creates a new in-memory SQLite store for testing.
func NewMemory() (*SQLite, error) {
	return NewSQLite(":memory:")
}

// Migrate creates the database schema.
func (s *SQLite) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_focus (
		day TEXT PRIMARY KEY,
		minutes INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Load implements ports.HistoryStore.
func (s *SQLite) Load(ctx context.Context) (domain.History, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT day, minutes FROM daily_focus")
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	h := domain.NewHistory()
	for rows.Next() {
		var (
			day     string
			minutes int
		)
		if err := rows.Scan(&day, &minutes); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		h[day] = minutes
	}
	return h, rows.Err()
}

// Save implements ports.HistoryStore. The table is replaced inside one
// transaction so readers never see a partial history.
func (s *SQLite) Save(ctx context.Context, h domain.History) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM daily_focus"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO daily_focus (day, minutes) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for day, minutes := range h {
		if _, err := stmt.ExecContext(ctx, day, minutes); err != nil {
			return fmt.Errorf("failed to insert %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
