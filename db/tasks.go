// ABOUTME: Manual task database operations
// ABOUTME: Handles task creation, listing and the open to done transition
package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/models"
)

const taskColumns = `id, lead_id, title, status, due_date, due_time, priority, owner_id, created_at, completed_at`

// TaskFilter narrows ListTasks. Zero values match everything.
type TaskFilter struct {
	LeadID  *uuid.UUID
	Status  string
	OwnerID string
}

func scanTask(s rowScanner) (*models.Task, error) {
	t := &models.Task{}
	err := s.Scan(&t.ID, &t.LeadID, &t.Title, &t.Status, &t.DueDate, &t.DueTime, &t.Priority, &t.OwnerID, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func CreateTask(db *sql.DB, task *models.Task) error {
	task.ID = uuid.New()
	task.CreatedAt = time.Now()
	task.Status = models.TaskStatusOpen
	task.CompletedAt = nil

	_, err := db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID.String(), task.LeadID.String(), task.Title, task.Status, utcPtr(task.DueDate), task.DueTime,
		task.Priority, task.OwnerID, task.CreatedAt, task.CompletedAt)
	return err
}

func GetTask(db *sql.DB, id uuid.UUID) (*models.Task, error) {
	task, err := scanTask(db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String()))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func ListTasks(db *sql.DB, filter TaskFilter) ([]models.Task, error) {
	var where []string
	var args []any
	if filter.LeadID != nil {
		where = append(where, "lead_id = ?")
		args = append(args, filter.LeadID.String())
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.OwnerID != "" {
		where = append(where, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY due_date IS NULL, due_date, created_at"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// CompleteTask moves an open task to done. The transition happens in a single
// conditional update so two concurrent completions cannot both succeed.
func CompleteTask(db *sql.DB, id uuid.UUID, at time.Time) error {
	result, err := db.Exec(`
		UPDATE tasks SET status = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`, models.TaskStatusDone, at, id.String(), models.TaskStatusOpen)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	if _, err := GetTask(db, id); err != nil {
		return err
	}
	return ErrTaskAlreadyDone
}

func DeleteTask(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	return expectOneRow(result)
}
