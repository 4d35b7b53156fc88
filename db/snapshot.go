// ABOUTME: Consistent read of everything the action engine needs
// ABOUTME: Loads leads with their activities, bookings and open tasks in one transaction
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/models"
)

// SnapshotFilter picks the leads to load. LeadID wins over OwnerID.
type SnapshotFilter struct {
	OwnerID string
	LeadID  *uuid.UUID
}

func (f SnapshotFilter) leadClause() (string, []any) {
	switch {
	case f.LeadID != nil:
		return "id = ?", []any{f.LeadID.String()}
	case f.OwnerID != "":
		return "(owner_id = ? OR assigned_to = ?)", []any{f.OwnerID, f.OwnerID}
	default:
		return "1 = 1", nil
	}
}

// LoadSnapshot reads the filtered leads and their related rows inside one
// read transaction, so a completion landing mid-load is seen entirely or not at all.
func LoadSnapshot(ctx context.Context, db *sql.DB, filter SnapshotFilter) (engine.Snapshot, error) {
	var snap engine.Snapshot

	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return snap, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	clause, args := filter.leadClause()
	sub := `SELECT id FROM leads WHERE ` + clause

	rows, err := tx.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE `+clause+` ORDER BY created_at`, args...)
	if err != nil {
		return snap, fmt.Errorf("failed to load leads: %w", err)
	}
	err = collect(rows, func(r *sql.Rows) error {
		lead, err := scanLead(r)
		if err != nil {
			return err
		}
		snap.Leads = append(snap.Leads, *lead)
		return nil
	})
	if err != nil {
		return snap, fmt.Errorf("failed to load leads: %w", err)
	}

	rows, err = tx.QueryContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE lead_id IN (`+sub+`) ORDER BY occurred_at, id`, args...)
	if err != nil {
		return snap, fmt.Errorf("failed to load activities: %w", err)
	}
	err = collect(rows, func(r *sql.Rows) error {
		a, err := scanActivity(r)
		if err != nil {
			return err
		}
		snap.Activities = append(snap.Activities, *a)
		return nil
	})
	if err != nil {
		return snap, fmt.Errorf("failed to load activities: %w", err)
	}

	rows, err = tx.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE lead_id IN (`+sub+`) ORDER BY booked_at`, args...)
	if err != nil {
		return snap, fmt.Errorf("failed to load bookings: %w", err)
	}
	err = collect(rows, func(r *sql.Rows) error {
		var b models.Booking
		if err := r.Scan(&b.ID, &b.LeadID, &b.BookedAt, &b.ShootDate, &b.Notes, &b.CreatedAt); err != nil {
			return err
		}
		snap.Bookings = append(snap.Bookings, b)
		return nil
	})
	if err != nil {
		return snap, fmt.Errorf("failed to load bookings: %w", err)
	}

	taskArgs := append([]any{models.TaskStatusOpen}, args...)
	rows, err = tx.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE status = ? AND lead_id IN (`+sub+`) ORDER BY created_at`, taskArgs...)
	if err != nil {
		return snap, fmt.Errorf("failed to load tasks: %w", err)
	}
	err = collect(rows, func(r *sql.Rows) error {
		task, err := scanTask(r)
		if err != nil {
			return err
		}
		snap.Tasks = append(snap.Tasks, *task)
		return nil
	})
	if err != nil {
		return snap, fmt.Errorf("failed to load tasks: %w", err)
	}

	return snap, tx.Commit()
}

func collect(rows *sql.Rows, fn func(*sql.Rows) error) error {
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
