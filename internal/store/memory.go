package store

import (
	"context"
	"sync"

	"bizplan/internal/core"
)

// MemoryStore keeps plans in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	plans    map[string]core.PlanResult
	latestID string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]core.PlanResult)}
}

func (m *MemoryStore) Save(ctx context.Context, plan core.PlanResult) error {
	if _, err := encodePlan(plan); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = clonePlan(plan)
	m.latestID = plan.ID
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, id string) (core.PlanResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	plan, ok := m.plans[id]
	if !ok {
		return core.PlanResult{}, ErrNotFound
	}
	return clonePlan(plan), nil
}

func (m *MemoryStore) Latest(ctx context.Context) (core.PlanResult, error) {
	m.mu.RLock()
	id := m.latestID
	m.mu.RUnlock()
	if id == "" {
		return core.PlanResult{}, ErrNotFound
	}
	return m.Load(ctx, id)
}

func (m *MemoryStore) Close() error { return nil }

// clonePlan detaches the plan body so callers cannot mutate stored state.
func clonePlan(plan core.PlanResult) core.PlanResult {
	if plan.Data != nil {
		plan.Data = plan.Data.Clone()
	}
	return plan
}
