// ABOUTME: Action service tying the entity store, rule config and engine together
// ABOUTME: Computes dashboards and per-lead lists and completes actions against the store
package actions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/models"
	"github.com/sirupsen/logrus"
)

// RuleSource hands out a point-in-time copy of the rule configuration.
// *ruleconfig.Store satisfies it.
type RuleSource interface {
	Snapshot() (engine.StaticCriteria, error)
}

// Service is safe for concurrent use. It holds no per-request state; every
// call reads a fresh snapshot.
type Service struct {
	db     *sql.DB
	rules  RuleSource
	engine *engine.Engine
	log    logrus.FieldLogger
}

// NewService wires a service. rules may be nil, in which case every DM
// follow-up uses the default criterion.
func NewService(database *sql.DB, rules RuleSource, eng *engine.Engine, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{db: database, rules: rules, engine: eng, log: log}
}

// Clock is the business clock the engine evaluates against.
func (s *Service) Clock() clock.Clock { return s.engine.Clock }

// DB exposes the entity store to read-only surfaces such as reports.
func (s *Service) DB() *sql.DB { return s.db }

// Dashboard returns the top actions across every lead owned by or assigned
// to owner. An empty owner means all leads.
func (s *Service) Dashboard(ctx context.Context, owner string) ([]models.RecommendedAction, error) {
	snap, err := db.LoadSnapshot(ctx, s.db, db.SnapshotFilter{OwnerID: owner})
	if err != nil {
		return nil, apperr.Internal("failed to load dashboard", err)
	}
	return s.evaluate(snap, engine.DashboardScope(owner), 0)
}

// AllActions is the dashboard without truncation, for reports that need
// every lead's actions.
func (s *Service) AllActions(ctx context.Context, owner string) ([]models.RecommendedAction, error) {
	snap, err := db.LoadSnapshot(ctx, s.db, db.SnapshotFilter{OwnerID: owner})
	if err != nil {
		return nil, apperr.Internal("failed to load leads", err)
	}
	return s.evaluate(snap, engine.DashboardScope(owner), math.MaxInt)
}

// ForLead returns every action for one lead, ranked and untruncated.
func (s *Service) ForLead(ctx context.Context, leadID uuid.UUID) ([]models.RecommendedAction, error) {
	snap, err := db.LoadSnapshot(ctx, s.db, db.SnapshotFilter{LeadID: &leadID})
	if err != nil {
		return nil, apperr.Internal("failed to load lead", err)
	}
	if len(snap.Leads) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("lead %s not found", leadID))
	}
	return s.evaluate(snap, engine.LeadScope(leadID), 0)
}

func (s *Service) evaluate(snap engine.Snapshot, scope engine.Scope, limit int) ([]models.RecommendedAction, error) {
	eng := *s.engine
	if limit > 0 {
		eng.DashboardLimit = limit
	}
	if s.rules != nil {
		criteria, err := s.rules.Snapshot()
		if err != nil {
			return nil, apperr.Internal("failed to read rule configuration", err)
		}
		eng.Criteria = criteria
	}
	return eng.Evaluate(snap, scope)
}

// Completion describes the side effect of completing an action.
type Completion struct {
	ActionID    string     `json:"action_id"`
	Type        string     `json:"type"`
	LeadID      uuid.UUID  `json:"lead_id"`
	TaskID      *uuid.UUID `json:"task_id,omitempty"`
	ActivityID  string     `json:"activity_id,omitempty"`
	CompletedAt time.Time  `json:"completed_at"`
}

// Complete applies the completion side effect for action. Manual actions
// close their task; engagement actions log today's engagement. Other types
// are completed by logging the real outreach instead.
func (s *Service) Complete(ctx context.Context, action models.RecommendedAction) (*Completion, error) {
	log := s.log.WithFields(logrus.Fields{
		"action_id": action.ID,
		"lead_id":   action.LeadID,
		"type":      action.Type,
	})

	var (
		done *Completion
		err  error
	)
	switch action.Type {
	case models.ActionManual:
		done, err = s.completeTask(ctx, action)
	case models.ActionEngagement:
		done, err = s.completeEngagement(ctx, action)
	default:
		err = apperr.Validation(fmt.Sprintf("%s actions are not completable; log the outreach as an activity", action.Type))
	}
	if err != nil {
		log.WithError(err).Warn("action completion failed")
		return nil, err
	}

	log.Info("action completed")
	return done, nil
}

// CompleteByID completes an action from its identifier alone, without
// re-evaluating the engine.
func (s *Service) CompleteByID(ctx context.Context, id string) (*Completion, error) {
	ref, err := models.ParseActionID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid action id", err)
	}

	action := models.RecommendedAction{ID: id, LeadID: ref.LeadID, Rule: ref.Rule}
	switch ref.Rule {
	case models.RuleManualTask:
		taskID, err := uuid.Parse(ref.SubKey)
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("invalid task id in action %q", id))
		}
		action.Type = models.ActionManual
		action.TaskID = &taskID
	case models.RuleEngagement:
		action.Type = models.ActionEngagement
	default:
		return nil, apperr.Validation(fmt.Sprintf("%s actions are not completable; log the outreach as an activity", ref.Rule))
	}
	return s.Complete(ctx, action)
}

func (s *Service) completeTask(_ context.Context, action models.RecommendedAction) (*Completion, error) {
	if action.TaskID == nil {
		return nil, apperr.Validation("manual action has no task")
	}

	task, err := db.GetTask(s.db, *action.TaskID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, apperr.NotFound(fmt.Sprintf("task %s not found", action.TaskID))
	}
	if err != nil {
		return nil, apperr.Internal("failed to load task", err)
	}
	if action.LeadID != uuid.Nil && task.LeadID != action.LeadID {
		return nil, apperr.NotFound(fmt.Sprintf("task %s not found for lead %s", task.ID, action.LeadID))
	}

	now := s.engine.Clock.Now()
	switch err := db.CompleteTask(s.db, task.ID, now); {
	case errors.Is(err, db.ErrNotFound):
		return nil, apperr.NotFound(fmt.Sprintf("task %s not found", task.ID))
	case errors.Is(err, db.ErrTaskAlreadyDone):
		return nil, apperr.Conflict(fmt.Sprintf("task %q is already done", task.Title))
	case err != nil:
		return nil, apperr.Internal("failed to complete task", err)
	}

	return &Completion{
		ActionID:    action.ID,
		Type:        models.ActionManual,
		LeadID:      task.LeadID,
		TaskID:      &task.ID,
		CompletedAt: now,
	}, nil
}

func (s *Service) completeEngagement(_ context.Context, action models.RecommendedAction) (*Completion, error) {
	if _, err := db.GetLead(s.db, action.LeadID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("lead %s not found", action.LeadID))
		}
		return nil, apperr.Internal("failed to load lead", err)
	}

	c := s.engine.Clock
	activity := &models.Activity{
		LeadID:       action.LeadID,
		ActivityType: models.ActivityEngagement,
		Outcome:      models.OutcomeNoResponse,
		OccurredAt:   clock.LocalNoon(clock.Today(c), c.Location()),
	}
	switch err := db.CreateActivity(s.db, activity, c.Location()); {
	case errors.Is(err, db.ErrDuplicateEngagement):
		return nil, apperr.Conflict("engagement already logged today for this lead")
	case err != nil:
		return nil, apperr.Internal("failed to log engagement", err)
	}

	return &Completion{
		ActionID:    action.ID,
		Type:        models.ActionEngagement,
		LeadID:      action.LeadID,
		ActivityID:  activity.ID,
		CompletedAt: activity.OccurredAt,
	}, nil
}
