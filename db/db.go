// ABOUTME: Database connection management, initialization and store-level errors
// ABOUTME: Opens SQLite with WAL mode and foreign keys on a single connection
package db

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTaskAlreadyDone is returned when completing a task that is not open.
	ErrTaskAlreadyDone = errors.New("task already completed")
	// ErrDuplicateEngagement is returned when a lead already has an engagement
	// logged for the same business day.
	ErrDuplicateEngagement = errors.New("engagement already logged for this day")
)

func OpenDatabase(path string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// Configure connection pool for SQLite (avoid database locked errors)
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Timestamps used in ORDER BY are stored in UTC so text order is time order.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrConstraint && se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
