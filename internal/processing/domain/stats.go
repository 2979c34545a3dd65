package domain

import "time"

// StatsID is the primary key of the singleton stats row
const StatsID uint = 1

// AppStats holds the aggregate counters. They only ever grow.
type AppStats struct {
	ID              uint      `json:"-" gorm:"primaryKey"`
	EmailsProcessed int64     `json:"emailsProcessed"`
	DraftsCreated   int64     `json:"draftsCreated"`
	Warnings        int64     `json:"warnings"`
	Errors          int64     `json:"errors"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// StatField names a counter that can be incremented
type StatField string

const (
	StatEmailsProcessed StatField = "emails_processed"
	StatDraftsCreated   StatField = "drafts_created"
	StatWarnings        StatField = "warnings"
	StatErrors          StatField = "errors"
)

// Valid reports whether f is one of the known counters
func (f StatField) Valid() bool {
	switch f {
	case StatEmailsProcessed, StatDraftsCreated, StatWarnings, StatErrors:
		return true
	}
	return false
}
