package models

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

type ScrapeRun struct {
	ID            string     `json:"id" db:"id"`
	SearchID      string     `json:"search_id" db:"search_id"`
	StartedAt     time.Time  `json:"started_at" db:"started_at"`
	FinishedAt    *time.Time `json:"finished_at" db:"finished_at"`
	Status        RunStatus  `json:"status" db:"status"`
	PagesScanned  int        `json:"pages_scanned" db:"pages_scanned"`
	ListingsFound int        `json:"listings_found" db:"listings_found"`
	ListingsNew   int        `json:"listings_new" db:"listings_new"`
	ErrorsCount   int        `json:"errors_count" db:"errors_count"`
	EmailSent     bool       `json:"email_sent" db:"email_sent"`
}
