// ABOUTME: Cold outreach call cadence
// ABOUTME: Initial call, then Day 2 and Day 4 follow-ups from the last touch
package engine

import (
	"time"

	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
)

// Cold outreach labels.
const (
	LabelColdDay4    = "Cold Call Follow-up (Day 4)"
	LabelColdDay2    = "Cold Call Follow-up (Day 2)"
	LabelColdInitial = "Initial Cold Call"
)

func coldOutreachRule(lead *models.Lead, lk *Lookup, today time.Time, loc *time.Location) *models.RecommendedAction {
	if lead.LeadSource != models.SourceColdOutreach || lead.Status == models.StatusWon {
		return nil
	}

	// With no activity yet the clock starts at lead creation.
	ref := lead.CreatedAt
	if lk.LastActivity != nil {
		ref = lk.LastActivity.OccurredAt
	}
	days := clock.DaysBetween(ref, today, loc)

	switch {
	case days >= 4:
		return newAction(lead, models.RuleColdOutreach, "day4", LabelColdDay4, models.ActionCall, models.PriorityHigh, clock.AddDays(ref, 4, loc))
	case days >= 2:
		return newAction(lead, models.RuleColdOutreach, "day2", LabelColdDay2, models.ActionCall, models.PriorityMedium, clock.AddDays(ref, 2, loc))
	case lk.LastActivity == nil && clock.DaysBetween(lead.CreatedAt, today, loc) >= 0:
		return newAction(lead, models.RuleColdOutreach, "initial", LabelColdInitial, models.ActionCall, models.PriorityHigh, clock.StartOfDay(lead.CreatedAt, loc))
	}
	return nil
}
