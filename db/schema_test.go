// ABOUTME: Tests for database schema creation
// ABOUTME: Uses in-memory SQLite for fast isolated tests
package db

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestInitSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	for _, table := range []string{"leads", "activities", "bookings", "tasks"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	indexes := []string{
		"idx_leads_owner",
		"idx_leads_assigned",
		"idx_leads_status",
		"idx_activities_lead",
		"idx_activities_engagement_day",
		"idx_bookings_lead",
		"idx_tasks_lead_status",
	}
	for _, idx := range indexes {
		var indexName string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&indexName)
		if err != nil {
			t.Errorf("Index %s not found: %v", idx, err)
		}
	}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	for i := 0; i < 2; i++ {
		if err := InitSchema(db); err != nil {
			t.Fatalf("InitSchema run %d failed: %v", i+1, err)
		}
	}
}
