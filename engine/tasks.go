// ABOUTME: Manual task adapter
// ABOUTME: Turns open manual tasks into recommended actions
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
)

// reservedEngagementTitle is owned by the engagement rule; plain manual tasks
// with this title would duplicate it.
const reservedEngagementTitle = "daily engagement"

// IsReservedTaskTitle reports whether a manual task title duplicates the
// auto-generated engagement reminder: the bare phrase, ignoring case and
// surrounding space. Qualified titles are kept.
func IsReservedTaskTitle(title string) bool {
	return strings.ToLower(strings.TrimSpace(title)) == reservedEngagementTitle
}

// taskActions adapts a lead's open manual tasks into recommended actions.
func taskActions(lead *models.Lead, tasks []models.Task, today time.Time, loc *time.Location) ([]models.RecommendedAction, error) {
	var out []models.RecommendedAction
	for _, task := range tasks {
		if task.LeadID != lead.ID || !task.IsOpen() {
			continue
		}
		if IsReservedTaskTitle(task.Title) {
			continue
		}

		due := today
		if task.DueDate != nil {
			due = clock.StartOfDay(*task.DueDate, loc)
		}

		urgency, err := taskUrgency(&task, due, today)
		if err != nil {
			return nil, err
		}

		action := newAction(lead, models.RuleManualTask, task.ID.String(), task.Title, models.ActionManual, urgency, due)
		taskID := task.ID
		action.TaskID = &taskID
		out = append(out, *action)
	}
	return out, nil
}

func taskUrgency(task *models.Task, due, today time.Time) (string, error) {
	if task.Priority != "" {
		if !models.IsValidPriority(task.Priority) {
			return "", apperr.Validation(fmt.Sprintf("task %s has invalid priority %q", task.ID, task.Priority)).WithOp("taskActions")
		}
		return task.Priority, nil
	}
	switch {
	case due.Before(today):
		return models.PriorityHigh, nil
	case due.Equal(today):
		return models.PriorityMedium, nil
	default:
		return models.PriorityLow, nil
	}
}
