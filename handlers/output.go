// ABOUTME: JSON output shapes shared by the MCP tool handlers
// ABOUTME: Flattens ids and timestamps to strings so tool schemas stay simple
package handlers

import (
	"fmt"
	"time"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/models"
)

const timeLayout = time.RFC3339

type LeadOutput struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	Status       string  `json:"status"`
	LeadSource   string  `json:"lead_source"`
	Instagram    string  `json:"instagram,omitempty"`
	Facebook     string  `json:"facebook,omitempty"`
	OwnerID      string  `json:"owner_id,omitempty"`
	AssignedTo   string  `json:"assigned_to,omitempty"`
	ReassignedAt *string `json:"reassigned_at,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func leadToOutput(lead *models.Lead) LeadOutput {
	out := LeadOutput{
		ID:         lead.ID.String(),
		Name:       lead.Name,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Status:     lead.Status,
		LeadSource: lead.LeadSource,
		Instagram:  lead.Instagram,
		Facebook:   lead.Facebook,
		OwnerID:    lead.OwnerID,
		AssignedTo: lead.AssignedTo,
		Notes:      lead.Notes,
		CreatedAt:  lead.CreatedAt.Format(timeLayout),
	}
	if lead.ReassignedAt != nil {
		at := lead.ReassignedAt.Format(timeLayout)
		out.ReassignedAt = &at
	}
	return out
}

type ActionOutput struct {
	ID        string `json:"id"`
	LeadID    string `json:"lead_id"`
	LeadName  string `json:"lead_name"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	Urgency   string `json:"urgency"`
	DueDate   string `json:"due_date"`
	Rule      string `json:"rule"`
	TaskID    string `json:"task_id,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

func actionToOutput(a *models.RecommendedAction) ActionOutput {
	out := ActionOutput{
		ID:       a.ID,
		LeadID:   a.LeadID.String(),
		LeadName: a.LeadName,
		Label:    a.Label,
		Type:     a.Type,
		Urgency:  a.Urgency,
		DueDate:  a.DueDate.Format(actions.DateLayout),
		Rule:     a.Rule,
	}
	if a.TaskID != nil {
		out.TaskID = a.TaskID.String()
	}
	if a.Social != nil {
		out.Instagram = a.Social.Instagram
		out.Facebook = a.Social.Facebook
	}
	return out
}

func actionsToOutput(list []models.RecommendedAction) []ActionOutput {
	out := make([]ActionOutput, len(list))
	for i := range list {
		out[i] = actionToOutput(&list[i])
	}
	return out
}

type CompletionOutput struct {
	ActionID    string `json:"action_id"`
	Type        string `json:"type"`
	LeadID      string `json:"lead_id"`
	TaskID      string `json:"task_id,omitempty"`
	ActivityID  string `json:"activity_id,omitempty"`
	CompletedAt string `json:"completed_at"`
}

func completionToOutput(c *actions.Completion) CompletionOutput {
	out := CompletionOutput{
		ActionID:    c.ActionID,
		Type:        c.Type,
		LeadID:      c.LeadID.String(),
		ActivityID:  c.ActivityID,
		CompletedAt: c.CompletedAt.Format(timeLayout),
	}
	if c.TaskID != nil {
		out.TaskID = c.TaskID.String()
	}
	return out
}

type ActivityOutput struct {
	ID           string `json:"id"`
	LeadID       string `json:"lead_id"`
	ActivityType string `json:"activity_type"`
	Outcome      string `json:"outcome,omitempty"`
	OccurredAt   string `json:"occurred_at"`
	Notes        string `json:"notes,omitempty"`
}

func activityToOutput(a *models.Activity) ActivityOutput {
	return ActivityOutput{
		ID:           a.ID,
		LeadID:       a.LeadID.String(),
		ActivityType: a.ActivityType,
		Outcome:      a.Outcome,
		OccurredAt:   a.OccurredAt.Format(timeLayout),
		Notes:        a.Notes,
	}
}

type BookingOutput struct {
	ID        string `json:"id"`
	LeadID    string `json:"lead_id"`
	BookedAt  string `json:"booked_at"`
	ShootDate string `json:"shoot_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func bookingToOutput(b *models.Booking) BookingOutput {
	out := BookingOutput{
		ID:       b.ID.String(),
		LeadID:   b.LeadID.String(),
		BookedAt: b.BookedAt.Format(timeLayout),
		Notes:    b.Notes,
	}
	if b.ShootDate != nil {
		out.ShootDate = b.ShootDate.Format(actions.DateLayout)
	}
	return out
}

type TaskOutput struct {
	ID       string `json:"id"`
	LeadID   string `json:"lead_id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	DueDate  string `json:"due_date,omitempty"`
	DueTime  string `json:"due_time,omitempty"`
	Priority string `json:"priority,omitempty"`
	OwnerID  string `json:"owner_id,omitempty"`
}

func taskToOutput(t *models.Task) TaskOutput {
	out := TaskOutput{
		ID:       t.ID.String(),
		LeadID:   t.LeadID.String(),
		Title:    t.Title,
		Status:   t.Status,
		DueTime:  t.DueTime,
		Priority: t.Priority,
		OwnerID:  t.OwnerID,
	}
	if t.DueDate != nil {
		out.DueDate = t.DueDate.Format(actions.DateLayout)
	}
	return out
}

// toolError prefixes domain errors with their kind so MCP clients can tell a
// missing record from a state conflict.
func toolError(err error) error {
	kind := apperr.GetKind(err)
	if kind == apperr.KindUnknown {
		return err
	}
	return fmt.Errorf("%s: %w", kind, err)
}
