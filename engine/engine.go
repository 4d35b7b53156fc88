// ABOUTME: Next-best-action engine over lead, activity, booking and task snapshots
// ABOUTME: Evaluates cadence rules per lead, merges manual tasks, ranks and truncates
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
)

// DefaultDashboardLimit caps the multi-lead dashboard list.
const DefaultDashboardLimit = 10

// Criteria resolves the completion criterion configured for a DM follow-up label.
// An empty result means unconfigured.
type Criteria interface {
	CriterionFor(label string) string
}

// StaticCriteria is a fixed label -> criterion map.
type StaticCriteria map[string]string

func (s StaticCriteria) CriterionFor(label string) string { return s[label] }

func criterionFor(c Criteria, label string) string {
	if c == nil {
		return models.CriterionAnyOutreach
	}
	if v := c.CriterionFor(label); v != "" {
		return v
	}
	return models.CriterionAnyOutreach
}

// Snapshot is the full input of one engine run.
type Snapshot struct {
	Leads      []models.Lead
	Activities []models.Activity
	Bookings   []models.Booking
	Tasks      []models.Task
}

// Scope selects which leads are evaluated and whether the result is capped.
type Scope struct {
	OwnerID string
	LeadID  *uuid.UUID
}

// DashboardScope evaluates every lead owned by or assigned to owner.
// An empty owner means all leads.
func DashboardScope(owner string) Scope {
	return Scope{OwnerID: owner}
}

// LeadScope evaluates one lead and returns its full list.
func LeadScope(leadID uuid.UUID) Scope {
	return Scope{LeadID: &leadID}
}

// IsLead reports whether this is the single-lead variant.
func (s Scope) IsLead() bool { return s.LeadID != nil }

func (s Scope) includes(lead *models.Lead) bool {
	if s.LeadID != nil {
		return lead.ID == *s.LeadID
	}
	return lead.OwnedBy(s.OwnerID)
}

// Engine is stateless apart from its policy settings; every call recomputes
// from the snapshot it is given.
type Engine struct {
	Clock clock.Clock
	// Criteria supplies DM follow-up completion criteria. Nil means defaults.
	Criteria Criteria
	// CheckinSuppression is the booking check-in suppression mode:
	// models.CriterionAnyOutreach (default) or models.CriterionConversation.
	CheckinSuppression string
	// DashboardLimit caps dashboard results. Zero means DefaultDashboardLimit.
	DashboardLimit int
}

// New creates an engine with default policy settings.
func New(c clock.Clock, criteria Criteria) *Engine {
	return &Engine{
		Clock:              c,
		Criteria:           criteria,
		CheckinSuppression: models.CriterionAnyOutreach,
		DashboardLimit:     DefaultDashboardLimit,
	}
}

// Evaluate produces the ranked action list for the leads in scope.
func (e *Engine) Evaluate(snap Snapshot, scope Scope) ([]models.RecommendedAction, error) {
	activities := make(map[uuid.UUID][]models.Activity)
	for _, a := range snap.Activities {
		activities[a.LeadID] = append(activities[a.LeadID], a)
	}
	bookings := make(map[uuid.UUID][]models.Booking)
	for _, b := range snap.Bookings {
		bookings[b.LeadID] = append(bookings[b.LeadID], b)
	}
	tasks := make(map[uuid.UUID][]models.Task)
	for _, t := range snap.Tasks {
		tasks[t.LeadID] = append(tasks[t.LeadID], t)
	}

	actions := make([]models.RecommendedAction, 0)
	for i := range snap.Leads {
		lead := &snap.Leads[i]
		if !scope.includes(lead) {
			continue
		}
		lk := NewLookup(lead.ID, activities[lead.ID], bookings[lead.ID])
		leadActions, err := e.EvaluateLead(lead, lk, tasks[lead.ID])
		if err != nil {
			return nil, err
		}
		actions = append(actions, leadActions...)
	}

	Rank(actions)
	if scope.IsLead() {
		return actions, nil
	}
	return Truncate(actions, e.limit()), nil
}

// EvaluateLead runs every rule and the task adapter for one lead, unranked.
func (e *Engine) EvaluateLead(lead *models.Lead, lk *Lookup, tasks []models.Task) ([]models.RecommendedAction, error) {
	loc := e.Clock.Location()
	today := clock.Today(e.Clock)

	var out []models.RecommendedAction
	if lead.Status != models.StatusLost {
		rules := []*models.RecommendedAction{
			engagementRule(lead, lk, today, loc),
			dmFollowupRule(lead, lk, e.Criteria, today, loc),
			coldOutreachRule(lead, lk, today, loc),
			bookingCheckinRule(lead, lk, e.CheckinSuppression, today, loc),
			repeatBookingRule(lead, lk, today, loc),
		}
		for _, a := range rules {
			if a != nil {
				out = append(out, *a)
			}
		}
	}

	manual, err := taskActions(lead, tasks, today, loc)
	if err != nil {
		return nil, err
	}
	return append(out, manual...), nil
}

func (e *Engine) limit() int {
	if e.DashboardLimit > 0 {
		return e.DashboardLimit
	}
	return DefaultDashboardLimit
}

func newAction(lead *models.Lead, rule, subkey, label, actionType, urgency string, due time.Time) *models.RecommendedAction {
	a := &models.RecommendedAction{
		ID:       models.ActionID(lead.ID, rule, subkey),
		LeadID:   lead.ID,
		LeadName: lead.Name,
		Label:    label,
		Type:     actionType,
		Urgency:  urgency,
		DueDate:  due,
		Rule:     rule,
	}
	if lead.HasSocialLink() {
		a.Social = &models.SocialLinks{Instagram: lead.Instagram, Facebook: lead.Facebook}
	}
	return a
}
