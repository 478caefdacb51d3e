package storage

import (
	"path/filepath"
	"testing"
	"time"

	"zameen_watcher/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore_BadPath(t *testing.T) {
	// a directory is not a usable database file; the open must fail
	// cleanly instead of handing back a half-initialized store
	if store, err := NewStore(t.TempDir()); err == nil {
		store.Close()
		t.Fatalf("expected error for directory path")
	}
}

func TestSeenRoundTrip(t *testing.T) {
	store := newTestStore(t)

	seen, err := store.LoadSeen()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(seen) != 0 {
		t.Fatalf("expected empty seen set on first run, got %d", len(seen))
	}

	first := []string{
		"https://www.zameen.com/Property/b-3-4-4.html",
		"https://www.zameen.com/Property/a-1-2-4.html",
		"", // blanks never persist
	}
	if err := store.AddSeen(first); err != nil {
		t.Fatalf("add: %v", err)
	}

	// second save unions with the first
	if err := store.AddSeen([]string{
		"https://www.zameen.com/Property/a-1-2-4.html",
		"https://www.zameen.com/Property/c-5-6-4.html",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	seen, err = store.LoadSeen()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 links after union, got %d", len(seen))
	}
	for _, link := range []string{
		"https://www.zameen.com/Property/a-1-2-4.html",
		"https://www.zameen.com/Property/b-3-4-4.html",
		"https://www.zameen.com/Property/c-5-6-4.html",
	} {
		if _, ok := seen[link]; !ok {
			t.Fatalf("missing link %s", link)
		}
	}

	updated, err := store.SeenUpdatedAt()
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if updated.IsZero() {
		t.Fatalf("expected non-zero updated_at after save")
	}
}

func TestRunLifecycle(t *testing.T) {
	store := newTestStore(t)

	run := &models.ScrapeRun{
		SearchID:  "karachi_fba",
		StartedAt: time.Now(),
		Status:    models.RunStatusRunning,
	}
	if err := store.CreateRun(run); err != nil {
		t.Fatalf("create run: %v", err)
	}
	if run.ID == "" {
		t.Fatalf("expected generated run ID")
	}

	now := time.Now()
	run.FinishedAt = &now
	run.Status = models.RunStatusCompleted
	run.PagesScanned = 2
	run.ListingsFound = 14
	run.ListingsNew = 3
	run.EmailSent = true
	if err := store.UpdateRun(run); err != nil {
		t.Fatalf("update run: %v", err)
	}

	last, err := store.GetLastRunTime("karachi_fba")
	if err != nil {
		t.Fatalf("last run: %v", err)
	}
	if last.IsZero() {
		t.Fatalf("expected last run time")
	}

	last, err = store.GetLastRunTime("never_ran")
	if err != nil {
		t.Fatalf("last run: %v", err)
	}
	if !last.IsZero() {
		t.Fatalf("expected zero time for unknown search, got %v", last)
	}
}
