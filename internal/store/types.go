package store

import "time"

// RunSummary is the list view of a persisted pipeline run
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Scenario   string    `json:"scenario"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Decisions  int       `json:"decisions"`
	Routes     int       `json:"routes"`
}
