package repository

import (
	"database/sql"
	"time"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/database"
)

// formatTime renders a time in the canonical column layout (UTC).
func formatTime(t time.Time) string {
	return t.UTC().Format(database.TimeLayout)
}

// parseTime reads a canonical time column back into a UTC time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(database.TimeLayout, s)
}

// parseNullTime converts a nullable time column. Empty strings are
// treated the same as NULL.
func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formatDate renders a date-only value in the canonical layout (UTC).
func formatDate(t time.Time) string {
	return t.UTC().Format(database.DateLayout)
}

// parseDate reads a date-only column back into a UTC time.Time.
func parseDate(s string) (time.Time, error) {
	return time.Parse(database.DateLayout, s)
}
