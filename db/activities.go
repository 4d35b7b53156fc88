// ABOUTME: Activity log database operations
// ABOUTME: Append-only touchpoints keyed by ULID, one engagement per lead per day
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
	"github.com/oklog/ulid/v2"
)

const activityColumns = `id, lead_id, activity_type, outcome, occurred_at, shoot_date, notes, created_at`

func scanActivity(s rowScanner) (*models.Activity, error) {
	a := &models.Activity{}
	if err := s.Scan(&a.ID, &a.LeadID, &a.ActivityType, &a.Outcome, &a.OccurredAt, &a.ShootDate, &a.Notes, &a.CreatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateActivity appends an activity. loc is the business timezone used to
// derive the engagement day; a second engagement for the same lead on the
// same day fails with ErrDuplicateEngagement.
func CreateActivity(db *sql.DB, a *models.Activity, loc *time.Location) error {
	a.ID = ulid.Make().String()
	a.CreatedAt = time.Now()
	if a.OccurredAt.IsZero() {
		a.OccurredAt = a.CreatedAt
	}

	var engagementDay *string
	if a.ActivityType == models.ActivityEngagement {
		day := clock.DayKey(a.OccurredAt, loc)
		engagementDay = &day
	}

	_, err := db.Exec(`
		INSERT INTO activities (id, lead_id, activity_type, outcome, occurred_at, shoot_date, notes, engagement_day, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.LeadID.String(), a.ActivityType, a.Outcome, a.OccurredAt.UTC(), a.ShootDate, a.Notes, engagementDay, a.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEngagement
	}
	return err
}

func GetActivity(db *sql.DB, id string) (*models.Activity, error) {
	a, err := scanActivity(db.QueryRow(`SELECT `+activityColumns+` FROM activities WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListActivities returns activities oldest first, for one lead or all when
// leadID is nil.
func ListActivities(db *sql.DB, leadID *uuid.UUID) ([]models.Activity, error) {
	var rows *sql.Rows
	var err error
	if leadID != nil {
		rows, err = db.Query(`SELECT `+activityColumns+` FROM activities WHERE lead_id = ? ORDER BY occurred_at, id`, leadID.String())
	} else {
		rows, err = db.Query(`SELECT ` + activityColumns + ` FROM activities ORDER BY occurred_at, id`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func DeleteActivity(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}
