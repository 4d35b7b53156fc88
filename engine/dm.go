// ABOUTME: DM follow-up rule
// ABOUTME: Day 3, 14 and 30 follow-ups after the first DM with configurable criteria
package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
)

type dmThreshold struct {
	days    int
	urgency string
}

// Largest first: only the first threshold met is a candidate.
var dmThresholds = []dmThreshold{
	{30, models.PriorityHigh},
	{14, models.PriorityMedium},
	{3, models.PriorityLow},
}

// DMLabel is the label, and rule-config key, of a DM follow-up threshold.
func DMLabel(days int) string {
	return fmt.Sprintf("DM Follow-up (Day %d)", days)
}

// DMLabels lists every configurable DM follow-up label.
func DMLabels() []string {
	labels := make([]string, 0, len(dmThresholds))
	for _, th := range dmThresholds {
		labels = append(labels, DMLabel(th.days))
	}
	return labels
}

func dmFollowupRule(lead *models.Lead, lk *Lookup, criteria Criteria, today time.Time, loc *time.Location) *models.RecommendedAction {
	if lead.LeadSource != models.SourceSocialMedia || lead.Status == models.StatusWon {
		return nil
	}
	first := lk.FirstDM
	if first == nil {
		return nil
	}

	days := clock.DaysBetween(first.OccurredAt, today, loc)
	for _, th := range dmThresholds {
		if days < th.days {
			continue
		}
		label := DMLabel(th.days)
		if dmHandled(criterionFor(criteria, label), lk, first.OccurredAt) {
			return nil
		}
		due := clock.AddDays(first.OccurredAt, th.days, loc)
		return newAction(lead, models.RuleDMFollowup, strconv.Itoa(th.days), label, models.ActionDM, th.urgency, due)
	}
	return nil
}

// dmHandled reports whether activity since the first DM satisfies criterion.
func dmHandled(criterion string, lk *Lookup, since time.Time) bool {
	switch criterion {
	case models.CriterionAnyOutreach:
		return lk.ContactAfter(since)
	case models.CriterionEngagement:
		return lk.EngagementAfter(since)
	case models.CriterionConversation:
		return lk.ConversationAfter(since)
	case models.CriterionBooking:
		return lk.BookingAfter(since)
	default:
		return lk.DMAfter(since)
	}
}
