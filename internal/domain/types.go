package domain

import (
	"context"
)

// Status labels written by dircap check.
const (
	StatusOK   = "OK"
	StatusWarn = "WARN"
	StatusOver = "OVER"
)

// Result represents a single directory check record from the JSON log.
// Every field is optional in the source JSON; absent fields stay empty.
type Result struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	PctUsed    string `json:"pct_used"` // rendered verbatim, not parsed
	Status     string `json:"status"`   // "OK", "WARN" or "OVER"
	UsedBytes  *int64 `json:"used_bytes"`
	LimitBytes *int64 `json:"limit_bytes"`
}

// Affected reports whether the record should appear in an alert email.
// OK rows are noise for alerts.
func (r Result) Affected() bool {
	return r.Status == StatusWarn || r.Status == StatusOver
}

// Summary is the three-counter tally of a dircap run.
type Summary struct {
	OK   int `json:"ok"`
	Warn int `json:"warn"`
	Over int `json:"over"`
}

// IsZero reports whether no counter has been set. A zero summary together
// with a non-empty results list means the tally must be recomputed.
func (s Summary) IsZero() bool {
	return s.OK == 0 && s.Warn == 0 && s.Over == 0
}

// Message is a composed alert email, ready to hand to a notifier.
type Message struct {
	Subject string
	Body    string
}

// Interfaces define the behavior of the system's dependencies

type INotifier interface {
	Send(ctx context.Context, subject, body string) error
}
