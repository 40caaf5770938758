package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"bizplan/internal/core"
)

// samplePlan returns a small generated plan for persistence tests.
func samplePlan(name string) core.PlanResult {
	data := core.NewBusinessPlan()
	data.Set("businessOverview", "description", name)
	data.Set("executiveSummary", "missionStatement", "Bake honest bread.")
	data.Set("financialPlan", "breakEvenAnalysis", core.NotSpecified)

	return core.PlanResult{
		ID:              uuid.NewString(),
		Data:            data,
		BusinessName:    name,
		Industry:        "Food",
		Message:         "Generated with AI",
		GeneratedWithAI: true,
		RawResponse:     "**Mission Statement**: Bake honest bread.",
		CreatedAt:       time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewSQLiteStore(tmpDir)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.db == nil {
		t.Error("Store database should not be nil")
	}

	dbPath := filepath.Join(tmpDir, "bizplan.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file should be created")
	}
	if store.Path() != dbPath {
		t.Errorf("Expected path %s, got %s", dbPath, store.Path())
	}
}

func TestNewSQLiteStore_InvalidDirectory(t *testing.T) {
	// Try to create store in a file (not directory)
	tmpDir := t.TempDir()
	invalidPath := filepath.Join(tmpDir, "file.txt")
	_ = os.WriteFile(invalidPath, []byte("test"), 0644)

	_, err := NewSQLiteStore(invalidPath)
	if err == nil {
		t.Error("Expected error when creating store in invalid directory")
	}
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	store, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	plan := samplePlan("Rise Bakery")
	if err := store.Save(ctx, plan); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, plan.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertSamePlan(t, plan, loaded)
}

func TestSQLiteStore_LatestIsLastWrite(t *testing.T) {
	store, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	if _, err := store.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on empty store, got %v", err)
	}

	first := samplePlan("First")
	second := samplePlan("Second")
	for _, p := range []core.PlanResult{first, second} {
		if err := store.Save(ctx, p); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("Expected latest %s, got %s", second.ID, latest.ID)
	}

	// Re-saving the first plan makes it the latest again.
	first.Message = "updated"
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	latest, err = store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.ID != first.ID || latest.Message != "updated" {
		t.Errorf("Expected updated first plan as latest, got %s %q", latest.ID, latest.Message)
	}
}

func TestSQLiteStore_NotFound(t *testing.T) {
	store, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_RejectsMissingID(t *testing.T) {
	store, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	plan := samplePlan("No ID")
	plan.ID = ""
	if err := store.Save(context.Background(), plan); err == nil {
		t.Error("Expected error saving a plan without ID")
	}
}

func assertSamePlan(t *testing.T, want, got core.PlanResult) {
	t.Helper()
	if got.ID != want.ID || got.BusinessName != want.BusinessName || got.Message != want.Message {
		t.Errorf("Expected %s/%s/%s, got %s/%s/%s",
			want.ID, want.BusinessName, want.Message, got.ID, got.BusinessName, got.Message)
	}
	if got.GeneratedWithAI != want.GeneratedWithAI || got.RawResponse != want.RawResponse {
		t.Errorf("AI fields differ: %+v vs %+v", want, got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("Expected createdAt %v, got %v", want.CreatedAt, got.CreatedAt)
	}
	if got.Data == nil {
		t.Fatal("Expected plan data to be restored")
	}
	for _, key := range [][2]string{
		{"businessOverview", "description"},
		{"executiveSummary", "missionStatement"},
		{"financialPlan", "breakEvenAnalysis"},
	} {
		if got.Data.Get(key[0], key[1]) != want.Data.Get(key[0], key[1]) {
			t.Errorf("%s.%s: expected %q, got %q", key[0], key[1],
				want.Data.Get(key[0], key[1]), got.Data.Get(key[0], key[1]))
		}
	}
}
