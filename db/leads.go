// ABOUTME: Lead database operations
// ABOUTME: Handles CRUD, status changes, reassignment and filtered lookups
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/models"
)

const leadColumns = `id, name, email, phone, status, lead_source, instagram, facebook,
	owner_id, assigned_to, reassigned_at, notes, created_at, updated_at`

// LeadFilter narrows FindLeads. Zero values match everything.
type LeadFilter struct {
	OwnerID string // owner or assignee
	Status  string
	Source  string
	Query   string // name, email or phone substring
	Limit   int
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(s rowScanner) (*models.Lead, error) {
	lead := &models.Lead{}
	err := s.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Status,
		&lead.LeadSource,
		&lead.Instagram,
		&lead.Facebook,
		&lead.OwnerID,
		&lead.AssignedTo,
		&lead.ReassignedAt,
		&lead.Notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func CreateLead(db *sql.DB, lead *models.Lead) error {
	lead.ID = uuid.New()
	now := time.Now()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now
	if lead.Status == "" {
		lead.Status = models.StatusNew
	}

	_, err := db.Exec(`
		INSERT INTO leads (`+leadColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, lead.ID.String(), lead.Name, lead.Email, lead.Phone, lead.Status, lead.LeadSource,
		lead.Instagram, lead.Facebook, lead.OwnerID, lead.AssignedTo, lead.ReassignedAt,
		lead.Notes, lead.CreatedAt.UTC(), lead.UpdatedAt)

	return err
}

func GetLead(db *sql.DB, id uuid.UUID) (*models.Lead, error) {
	lead, err := scanLead(db.QueryRow(`SELECT `+leadColumns+` FROM leads WHERE id = ?`, id.String()))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func FindLeads(db *sql.DB, filter LeadFilter) ([]models.Lead, error) {
	var where []string
	var args []any

	if filter.OwnerID != "" {
		where = append(where, "(owner_id = ? OR assigned_to = ?)")
		args = append(args, filter.OwnerID, filter.OwnerID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Source != "" {
		where = append(where, "lead_source = ?")
		args = append(args, filter.Source)
	}
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}

	return leads, rows.Err()
}

func UpdateLead(db *sql.DB, lead *models.Lead) error {
	lead.UpdatedAt = time.Now()

	result, err := db.Exec(`
		UPDATE leads
		SET name = ?, email = ?, phone = ?, status = ?, lead_source = ?, instagram = ?,
			facebook = ?, owner_id = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, lead.Name, lead.Email, lead.Phone, lead.Status, lead.LeadSource, lead.Instagram,
		lead.Facebook, lead.OwnerID, lead.Notes, lead.UpdatedAt, lead.ID.String())
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func UpdateLeadStatus(db *sql.DB, id uuid.UUID, status string) error {
	result, err := db.Exec(`UPDATE leads SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id.String())
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// ReassignLead hands a lead to another salesperson. The original owner keeps
// ownership; the assignee sees it on their dashboard too.
func ReassignLead(db *sql.DB, id uuid.UUID, assignee string) error {
	now := time.Now()
	result, err := db.Exec(`UPDATE leads SET assigned_to = ?, reassigned_at = ?, updated_at = ? WHERE id = ?`,
		assignee, now, now, id.String())
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// DeleteLead removes a lead together with its activities, bookings and tasks.
func DeleteLead(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"activities", "bookings", "tasks"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE lead_id = ?`, id.String()); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}

	result, err := tx.Exec(`DELETE FROM leads WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if err := expectOneRow(result); err != nil {
		return err
	}

	return tx.Commit()
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
