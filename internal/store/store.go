package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"bizplan/internal/core"
)

// SQLiteStore persists plans in a local SQLite database file
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates the data directory and opens bizplan.db inside it
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "bizplan.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer keeps concurrent Saves from tripping "database is locked".
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the plans table
func (s *SQLiteStore) initialize() error {
	plansTable := `
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		business_name TEXT,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		saved_at INTEGER NOT NULL
	);`

	savedIndex := `CREATE INDEX IF NOT EXISTS idx_plans_saved_at ON plans (saved_at);`

	for _, stmt := range []string{plansTable, savedIndex} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Path returns the database file location
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the plan and marks it as the latest write
func (s *SQLiteStore) Save(ctx context.Context, plan core.PlanResult) error {
	payload, err := encodePlan(plan)
	if err != nil {
		return err
	}

	query := `
	INSERT OR REPLACE INTO plans (id, business_name, payload, created_at, saved_at)
	VALUES (?, ?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query,
		plan.ID,
		plan.BusinessName,
		string(payload),
		plan.CreatedAt,
		time.Now().UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to save plan %s: %w", plan.ID, err)
	}
	return nil
}

// Load returns the plan with the given ID
func (s *SQLiteStore) Load(ctx context.Context, id string) (core.PlanResult, error) {
	return s.queryOne(ctx, `SELECT payload FROM plans WHERE id = ?`, id)
}

// Latest returns the most recently saved plan
func (s *SQLiteStore) Latest(ctx context.Context) (core.PlanResult, error) {
	return s.queryOne(ctx, `SELECT payload FROM plans ORDER BY saved_at DESC, rowid DESC LIMIT 1`)
}

func (s *SQLiteStore) queryOne(ctx context.Context, query string, args ...any) (core.PlanResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.PlanResult{}, ErrNotFound
	}
	if err != nil {
		return core.PlanResult{}, fmt.Errorf("failed to query plan: %w", err)
	}
	return decodePlan([]byte(payload))
}
