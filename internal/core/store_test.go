package core

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRecordAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	rs := defaultSet(t)
	labels, err := rs.Classify(15)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	id, err := store.RecordRun(ctx, 15, "sequence 1..15", rs.String(), labels)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Expected a nonzero run id")
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	if runs[0].ID != id || runs[0].Bound != 15 || runs[0].Rules != "3=Fizz,5=Buzz" {
		t.Errorf("Unexpected run summary: %+v", runs[0])
	}

	stored, err := store.RunLabels(ctx, id)
	if err != nil {
		t.Fatalf("RunLabels failed: %v", err)
	}
	if len(stored) != 15 {
		t.Fatalf("Expected 15 labels, got %d", len(stored))
	}
	for i := range labels {
		if stored[i] != labels[i] {
			t.Errorf("Label %d: expected %q, got %q", i+1, labels[i], stored[i])
		}
	}
}

func TestStoreRecordChunked(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rs := defaultSet(t)
	// Larger than one insert chunk, so the batched path is exercised.
	const bound = insertChunkSize*2 + 37
	labels, err := rs.Classify(bound)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	id, err := store.RecordRun(ctx, bound, "sequence 1..1037", rs.String(), labels)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	stored, err := store.RunLabels(ctx, id)
	if err != nil {
		t.Fatalf("RunLabels failed: %v", err)
	}
	if len(stored) != bound {
		t.Fatalf("Expected %d labels, got %d", bound, len(stored))
	}
	if stored[0] != "1" || stored[14] != "FizzBuzz" || stored[bound-1] != labels[bound-1] {
		t.Error("Stored labels out of order")
	}
}

func TestStoreListOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rs := defaultSet(t)
	for _, bound := range []int{5, 10, 15} {
		labels, err := rs.Classify(bound)
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if _, err := store.RecordRun(ctx, bound, "banner", rs.String(), labels); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].Bound != 15 || runs[1].Bound != 10 {
		t.Errorf("Unexpected order: %+v", runs)
	}
}

func TestStoreUnusablePath(t *testing.T) {
	// A directory is not a valid database file, so migration fails and
	// NewStore must return an error instead of a half-open store.
	store, err := NewStore(t.TempDir())
	if err == nil {
		_ = store.Close()
		t.Fatal("Expected error for directory store path")
	}
	if store != nil {
		t.Errorf("Expected nil store on failure, got %v", store)
	}
}

func TestStoreRunLabelsNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.RunLabels(context.Background(), 99); err == nil {
		t.Error("Expected error for unknown run id")
	}
}
