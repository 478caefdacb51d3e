package storage

import (
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"zameen_watcher/models"
)

// Store keeps the seen-link set and scrape run bookkeeping in SQLite.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS seen_links (
		link TEXT PRIMARY KEY,
		first_seen_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS seen_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		updated_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS scrape_runs (
		id TEXT PRIMARY KEY,
		search_id TEXT,
		started_at DATETIME,
		finished_at DATETIME,
		status TEXT,
		pages_scanned INTEGER,
		listings_found INTEGER,
		listings_new INTEGER,
		errors_count INTEGER,
		email_sent BOOLEAN DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_search ON scrape_runs(search_id, started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadSeen returns every previously reported link. An empty set signals a
// first run, which makes the caller report all listings instead of a delta.
func (s *Store) LoadSeen() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT link FROM seen_links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, err
		}
		seen[link] = struct{}{}
	}
	return seen, rows.Err()
}

// AddSeen merges links into the seen set and bumps the last-updated
// timestamp. Links are inserted in sorted order for determinism;
// already-present links are left untouched so first_seen_at survives.
func (s *Store) AddSeen(links []string) error {
	sorted := make([]string, len(links))
	copy(sorted, links)
	sort.Strings(sorted)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	for _, link := range sorted {
		if link == "" {
			continue
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO seen_links (link, first_seen_at) VALUES (?, ?)`,
			link, now,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO seen_meta (id, updated_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		now,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// SeenUpdatedAt returns when the seen set was last saved, or the zero
// time if it never was.
func (s *Store) SeenUpdatedAt() (time.Time, error) {
	var updated sql.NullTime
	err := s.db.QueryRow(`SELECT updated_at FROM seen_meta WHERE id = 1`).Scan(&updated)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	if !updated.Valid {
		return time.Time{}, nil
	}
	return updated.Time, nil
}

func (s *Store) CreateRun(run *models.ScrapeRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO scrape_runs (id, search_id, started_at, status, pages_scanned, listings_found, listings_new, errors_count, email_sent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SearchID, run.StartedAt, run.Status,
		run.PagesScanned, run.ListingsFound, run.ListingsNew, run.ErrorsCount, run.EmailSent,
	)
	return err
}

func (s *Store) UpdateRun(run *models.ScrapeRun) error {
	_, err := s.db.Exec(`
		UPDATE scrape_runs
		SET finished_at = ?, status = ?, pages_scanned = ?, listings_found = ?, listings_new = ?, errors_count = ?, email_sent = ?
		WHERE id = ?`,
		run.FinishedAt, run.Status, run.PagesScanned,
		run.ListingsFound, run.ListingsNew, run.ErrorsCount, run.EmailSent, run.ID,
	)
	return err
}

// GetLastRunTime returns the most recent run start for a search, or the
// zero time if the search never ran.
func (s *Store) GetLastRunTime(searchID string) (time.Time, error) {
	var started time.Time
	err := s.db.QueryRow(
		`SELECT started_at FROM scrape_runs WHERE search_id = ? ORDER BY started_at DESC LIMIT 1`,
		searchID,
	).Scan(&started)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return started, nil
}
