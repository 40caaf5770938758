package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bizplan/internal/config"
	"bizplan/internal/core"
)

// ErrNotFound is returned when no plan matches the request.
var ErrNotFound = errors.New("plan not found")

// PlanStore persists generated plans by ID. The most recent Save wins for
// Latest; concurrent writers get no ordering guarantee.
type PlanStore interface {
	Save(ctx context.Context, plan core.PlanResult) error
	Load(ctx context.Context, id string) (core.PlanResult, error)
	Latest(ctx context.Context) (core.PlanResult, error)
	Close() error
}

// New opens the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.Store) (PlanStore, error) {
	var (
		s   PlanStore
		err error
	)

	switch strings.ToLower(cfg.Driver) {
	case "", config.DriverMemory:
		s = NewMemoryStore()
	case config.DriverSQLite:
		s, err = NewSQLiteStore(cfg.SQLite.DataDir)
	case config.DriverPostgres:
		s, err = NewPostgresStore(ctx, cfg.Postgres)
	case config.DriverRedis:
		s, err = NewRedisStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s), nil
}

func encodePlan(plan core.PlanResult) ([]byte, error) {
	if plan.ID == "" {
		return nil, errors.New("plan has no ID")
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan %s: %w", plan.ID, err)
	}
	return data, nil
}

func decodePlan(data []byte) (core.PlanResult, error) {
	var plan core.PlanResult
	if err := json.Unmarshal(data, &plan); err != nil {
		return core.PlanResult{}, fmt.Errorf("failed to decode plan: %w", err)
	}
	return plan, nil
}
