package scraper

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"zameen_watcher/config"
	"zameen_watcher/models"
	"zameen_watcher/storage"
)

func newTestOrchestrator(t *testing.T, search *config.SearchConfig) (*Orchestrator, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		Searches: map[string]*config.SearchConfig{search.ID: search},
	}
	return NewOrchestrator(cfg, store), store
}

func TestNotifyAndRemember_NoMailer(t *testing.T) {
	flagPath := filepath.Join(t.TempDir(), "new_listings.flag")
	search := &config.SearchConfig{ID: "s1", FlagPath: flagPath}
	o, store := newTestOrchestrator(t, search)

	listings := []models.Listing{
		{PriceText: "PKR 45000", Link: "https://www.zameen.com/Property/a-1-2-4.html"},
		{PriceText: "PKR 30000", Link: "https://www.zameen.com/Property/b-3-4-4.html"},
	}
	run := &models.ScrapeRun{SearchID: "s1", StartedAt: time.Now()}

	if err := o.notifyAndRemember(search, listings, run); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if run.ListingsNew != 2 {
		t.Fatalf("expected 2 new listings on first run, got %d", run.ListingsNew)
	}
	if run.EmailSent {
		t.Fatalf("no mailer configured, EmailSent must stay false")
	}
	// the flag file marks a delivered digest; without a send it must not appear
	if _, err := os.Stat(flagPath); !os.IsNotExist(err) {
		t.Fatalf("flag file written without a sent digest (stat err: %v)", err)
	}

	// the seen set updates regardless of notification outcome
	seen, err := store.LoadSeen()
	if err != nil {
		t.Fatalf("load seen: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 seen links, got %d", len(seen))
	}
}

func TestNotifyAndRemember_DeltaOnly(t *testing.T) {
	search := &config.SearchConfig{ID: "s1"}
	o, store := newTestOrchestrator(t, search)

	if err := store.AddSeen([]string{"https://www.zameen.com/Property/a-1-2-4.html"}); err != nil {
		t.Fatalf("seed seen: %v", err)
	}

	listings := []models.Listing{
		{Link: "https://www.zameen.com/Property/a-1-2-4.html"},
		{Link: "https://www.zameen.com/Property/b-3-4-4.html"},
	}
	run := &models.ScrapeRun{SearchID: "s1", StartedAt: time.Now()}

	if err := o.notifyAndRemember(search, listings, run); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if run.ListingsNew != 1 {
		t.Fatalf("expected delta of 1, got %d", run.ListingsNew)
	}

	seen, err := store.LoadSeen()
	if err != nil {
		t.Fatalf("load seen: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected union of 2 links, got %d", len(seen))
	}
}
