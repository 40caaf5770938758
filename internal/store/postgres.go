package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Postgres driver

	"bizplan/internal/config"
	"bizplan/internal/core"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS plans (
	id TEXT PRIMARY KEY,
	business_name TEXT,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_plans_saved_at ON plans (saved_at DESC);`

// PostgresStore persists plans in PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool, verifies it and creates the
// plans table when missing
func NewPostgresStore(ctx context.Context, cfg config.PostgresConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	if maxIdle <= 0 {
		maxIdle = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := NewPostgresStoreWithDB(db)
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStoreWithDB wraps an already opened database handle
func NewPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the plans table and index
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create plans table: %w", err)
	}
	return nil
}

func (p *PostgresStore) Save(ctx context.Context, plan core.PlanResult) error {
	payload, err := encodePlan(plan)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO plans (id, business_name, payload, created_at, saved_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			payload = EXCLUDED.payload,
			saved_at = NOW()`

	if _, err := p.db.ExecContext(ctx, query, plan.ID, plan.BusinessName, string(payload), plan.CreatedAt); err != nil {
		return fmt.Errorf("failed to save plan %s: %w", plan.ID, err)
	}
	return nil
}

func (p *PostgresStore) Load(ctx context.Context, id string) (core.PlanResult, error) {
	return p.queryOne(ctx, `SELECT payload FROM plans WHERE id = $1`, id)
}

func (p *PostgresStore) Latest(ctx context.Context) (core.PlanResult, error) {
	return p.queryOne(ctx, `SELECT payload FROM plans ORDER BY saved_at DESC LIMIT 1`)
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}

func (p *PostgresStore) queryOne(ctx context.Context, query string, args ...any) (core.PlanResult, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.PlanResult{}, ErrNotFound
	}
	if err != nil {
		return core.PlanResult{}, fmt.Errorf("failed to query plan: %w", err)
	}
	return decodePlan(payload)
}
