// ABOUTME: Validated entry points for recording leads, activities, bookings and tasks
// ABOUTME: Shared by the CLI, MCP tools and HTTP API so every surface applies the same rules
package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/validation"
	"github.com/sirupsen/logrus"
)

// DateLayout is the calendar date format accepted on every surface.
const DateLayout = "2006-01-02"

type LeadInput struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty"`
	Status     string `json:"status,omitempty" validate:"lead_status"`
	LeadSource string `json:"lead_source" validate:"required,lead_source"`
	Instagram  string `json:"instagram,omitempty"`
	Facebook   string `json:"facebook,omitempty"`
	OwnerID    string `json:"owner_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type ActivityInput struct {
	LeadID       string `json:"lead_id" validate:"required,uuid"`
	ActivityType string `json:"activity_type" validate:"required,activity_type"`
	Outcome      string `json:"outcome,omitempty" validate:"outcome"`
	// OccurredAt is RFC 3339 or a YYYY-MM-DD date (noon business time). Empty means now.
	OccurredAt string `json:"occurred_at,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type BookingInput struct {
	LeadID string `json:"lead_id" validate:"required,uuid"`
	// BookedAt is RFC 3339 or YYYY-MM-DD. Empty means now.
	BookedAt  string `json:"booked_at,omitempty"`
	ShootDate string `json:"shoot_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type TaskInput struct {
	LeadID   string `json:"lead_id" validate:"required,uuid"`
	Title    string `json:"title" validate:"required,max=200"`
	DueDate  string `json:"due_date,omitempty"`
	DueTime  string `json:"due_time,omitempty" validate:"omitempty,datetime=15:04"`
	Priority string `json:"priority,omitempty" validate:"priority"`
	OwnerID  string `json:"owner_id,omitempty"`
}

// AddLead validates and stores a new lead.
func (s *Service) AddLead(_ context.Context, in LeadInput) (*models.Lead, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	lead := &models.Lead{
		Name:       strings.TrimSpace(in.Name),
		Email:      in.Email,
		Phone:      in.Phone,
		Status:     in.Status,
		LeadSource: in.LeadSource,
		Instagram:  in.Instagram,
		Facebook:   in.Facebook,
		OwnerID:    in.OwnerID,
		Notes:      in.Notes,
		CreatedAt:  s.engine.Clock.Now(),
	}
	if err := db.CreateLead(s.db, lead); err != nil {
		return nil, apperr.Internal("failed to create lead", err)
	}

	s.log.WithFields(logrus.Fields{"lead_id": lead.ID, "source": lead.LeadSource}).Info("lead added")
	return lead, nil
}

// GetLead loads one lead.
func (s *Service) GetLead(_ context.Context, id uuid.UUID) (*models.Lead, error) {
	lead, err := db.GetLead(s.db, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, apperr.NotFound(fmt.Sprintf("lead %s not found", id))
	}
	if err != nil {
		return nil, apperr.Internal("failed to load lead", err)
	}
	return lead, nil
}

// FindLeads searches leads.
func (s *Service) FindLeads(_ context.Context, filter db.LeadFilter) ([]models.Lead, error) {
	if filter.Status != "" && !models.IsValidStatus(filter.Status) {
		return nil, apperr.Validation(fmt.Sprintf("unknown status %q", filter.Status))
	}
	leads, err := db.FindLeads(s.db, filter)
	if err != nil {
		return nil, apperr.Internal("failed to find leads", err)
	}
	return leads, nil
}

// UpdateLeadStatus moves a lead through the pipeline.
func (s *Service) UpdateLeadStatus(_ context.Context, id uuid.UUID, status string) error {
	if !models.IsValidStatus(status) {
		return apperr.Validation(fmt.Sprintf("status must be one of: %s", strings.Join(models.Statuses(), ", ")))
	}
	err := db.UpdateLeadStatus(s.db, id, status)
	if errors.Is(err, db.ErrNotFound) {
		return apperr.NotFound(fmt.Sprintf("lead %s not found", id))
	}
	if err != nil {
		return apperr.Internal("failed to update lead status", err)
	}
	s.log.WithFields(logrus.Fields{"lead_id": id, "status": status}).Info("lead status updated")
	return nil
}

// ReassignLead shares a lead with another salesperson.
func (s *Service) ReassignLead(_ context.Context, id uuid.UUID, assignee string) error {
	err := db.ReassignLead(s.db, id, strings.TrimSpace(assignee))
	if errors.Is(err, db.ErrNotFound) {
		return apperr.NotFound(fmt.Sprintf("lead %s not found", id))
	}
	if err != nil {
		return apperr.Internal("failed to reassign lead", err)
	}
	s.log.WithFields(logrus.Fields{"lead_id": id, "assigned_to": assignee}).Info("lead reassigned")
	return nil
}

// DeleteLead removes a lead and everything recorded against it.
func (s *Service) DeleteLead(_ context.Context, id uuid.UUID) error {
	err := db.DeleteLead(s.db, id)
	if errors.Is(err, db.ErrNotFound) {
		return apperr.NotFound(fmt.Sprintf("lead %s not found", id))
	}
	if err != nil {
		return apperr.Internal("failed to delete lead", err)
	}
	s.log.WithField("lead_id", id).Info("lead deleted")
	return nil
}

// LogActivity records a touchpoint. A second engagement on the same business
// day is a conflict.
func (s *Service) LogActivity(ctx context.Context, in ActivityInput) (*models.Activity, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	lead, err := s.GetLead(ctx, uuid.MustParse(in.LeadID))
	if err != nil {
		return nil, err
	}
	at, err := s.parseMoment(in.OccurredAt)
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		LeadID:       lead.ID,
		ActivityType: in.ActivityType,
		Outcome:      in.Outcome,
		OccurredAt:   at,
		Notes:        in.Notes,
	}
	loc := s.engine.Clock.Location()
	switch err := db.CreateActivity(s.db, activity, loc); {
	case errors.Is(err, db.ErrDuplicateEngagement):
		return nil, apperr.Conflict(fmt.Sprintf("engagement already logged for %s on %s", lead.Name, clock.DayKey(at, loc)))
	case err != nil:
		return nil, apperr.Internal("failed to log activity", err)
	}

	s.log.WithFields(logrus.Fields{
		"lead_id":  lead.ID,
		"activity": activity.ID,
		"type":     activity.ActivityType,
	}).Info("activity logged")
	return activity, nil
}

// ListActivities returns one lead's history, oldest first.
func (s *Service) ListActivities(ctx context.Context, leadID uuid.UUID) ([]models.Activity, error) {
	if _, err := s.GetLead(ctx, leadID); err != nil {
		return nil, err
	}
	activities, err := db.ListActivities(s.db, &leadID)
	if err != nil {
		return nil, apperr.Internal("failed to list activities", err)
	}
	return activities, nil
}

// AddBooking records a booking.
func (s *Service) AddBooking(ctx context.Context, in BookingInput) (*models.Booking, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	lead, err := s.GetLead(ctx, uuid.MustParse(in.LeadID))
	if err != nil {
		return nil, err
	}
	at, err := s.parseMoment(in.BookedAt)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{LeadID: lead.ID, BookedAt: at, Notes: in.Notes}
	if in.ShootDate != "" {
		shoot, err := s.parseDay(in.ShootDate)
		if err != nil {
			return nil, err
		}
		booking.ShootDate = &shoot
	}
	if err := db.CreateBooking(s.db, booking); err != nil {
		return nil, apperr.Internal("failed to add booking", err)
	}

	s.log.WithFields(logrus.Fields{"lead_id": lead.ID, "booking_id": booking.ID}).Info("booking added")
	return booking, nil
}

// ListBookings returns one lead's bookings, oldest first.
func (s *Service) ListBookings(ctx context.Context, leadID uuid.UUID) ([]models.Booking, error) {
	if _, err := s.GetLead(ctx, leadID); err != nil {
		return nil, err
	}
	bookings, err := db.ListBookings(s.db, &leadID)
	if err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

// AddTask records a manual task. Titles that duplicate the automatic daily
// engagement reminder are rejected since they would never surface.
func (s *Service) AddTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if engine.IsReservedTaskTitle(in.Title) {
		return nil, apperr.Validation(`"Daily Engagement" reminders are generated automatically; add a qualifier such as "(Custom)" to keep a manual one`)
	}
	lead, err := s.GetLead(ctx, uuid.MustParse(in.LeadID))
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		LeadID:   lead.ID,
		Title:    strings.TrimSpace(in.Title),
		DueTime:  in.DueTime,
		Priority: in.Priority,
		OwnerID:  in.OwnerID,
	}
	if in.DueDate != "" {
		due, err := s.parseDay(in.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}
	if err := db.CreateTask(s.db, task); err != nil {
		return nil, apperr.Internal("failed to add task", err)
	}

	s.log.WithFields(logrus.Fields{"lead_id": lead.ID, "task_id": task.ID}).Info("task added")
	return task, nil
}

// ListTasks lists tasks matching filter.
func (s *Service) ListTasks(_ context.Context, filter db.TaskFilter) ([]models.Task, error) {
	tasks, err := db.ListTasks(s.db, filter)
	if err != nil {
		return nil, apperr.Internal("failed to list tasks", err)
	}
	return tasks, nil
}

// CompleteTask closes a task directly, the same way completing its manual
// action would.
func (s *Service) CompleteTask(ctx context.Context, taskID uuid.UUID) (*Completion, error) {
	task, err := db.GetTask(s.db, taskID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, apperr.NotFound(fmt.Sprintf("task %s not found", taskID))
	}
	if err != nil {
		return nil, apperr.Internal("failed to load task", err)
	}
	return s.Complete(ctx, models.RecommendedAction{
		ID:     models.ActionID(task.LeadID, models.RuleManualTask, task.ID.String()),
		LeadID: task.LeadID,
		Type:   models.ActionManual,
		TaskID: &task.ID,
	})
}

// parseMoment accepts RFC 3339 or a bare date, which is read as noon
// business time on that day.
func (s *Service) parseMoment(v string) (time.Time, error) {
	if v == "" {
		return s.engine.Clock.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	day, err := s.parseDay(v)
	if err != nil {
		return time.Time{}, err
	}
	return clock.LocalNoon(day, s.engine.Clock.Location()), nil
}

func (s *Service) parseDay(v string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, v, s.engine.Clock.Location())
	if err != nil {
		return time.Time{}, apperr.Validation(fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", v))
	}
	return t, nil
}
