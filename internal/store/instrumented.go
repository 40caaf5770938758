package store

import (
	"context"
	"errors"

	"bizplan/internal/core"
	"bizplan/internal/logger"
	"bizplan/internal/observability"
)

type instrumentedStore struct {
	next PlanStore
}

// Instrument wraps s so every call is counted and failures are logged.
func Instrument(s PlanStore) PlanStore {
	return &instrumentedStore{next: s}
}

func (i *instrumentedStore) Save(ctx context.Context, plan core.PlanResult) error {
	err := i.next.Save(ctx, plan)
	observability.RecordStoreOp("save", err, false)
	if err != nil {
		logger.Error("Failed to save plan", err, "plan_id", plan.ID)
		return err
	}
	logger.Debug("Plan saved", "plan_id", plan.ID, "business_name", plan.BusinessName)
	return nil
}

func (i *instrumentedStore) Load(ctx context.Context, id string) (core.PlanResult, error) {
	plan, err := i.next.Load(ctx, id)
	i.record("load", err, "plan_id", id)
	return plan, err
}

func (i *instrumentedStore) Latest(ctx context.Context) (core.PlanResult, error) {
	plan, err := i.next.Latest(ctx)
	i.record("latest", err)
	return plan, err
}

func (i *instrumentedStore) Close() error {
	return i.next.Close()
}

func (i *instrumentedStore) record(op string, err error, args ...any) {
	notFound := errors.Is(err, ErrNotFound)
	observability.RecordStoreOp(op, err, notFound)
	if err != nil && !notFound {
		logger.Error("Plan store "+op+" failed", err, args...)
	}
}
