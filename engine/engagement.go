// ABOUTME: Social engagement cadence rule
// ABOUTME: Picks a like/comment interval from booking, conversation and contact history
package engine

import (
	"time"

	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
)

// Engagement labels.
const (
	LabelEngageBooked      = "Engage (Booked Client)"
	LabelEngageEveryOther  = "Every Other Day Engagement"
	LabelEngagePostContact = "Daily Engagement (Post-Contact)"
	LabelEngageNewLead     = "Daily Engagement (New Lead)"
)

// postContactWindow is how long after first contact daily engagement continues.
const postContactWindow = 5

type engagementCadence struct {
	key      string
	label    string
	interval int
	urgency  string
}

// engagementRule keeps social leads warm by liking and commenting on their
// posts at a cadence that depends on how far along the relationship is.
func engagementRule(lead *models.Lead, lk *Lookup, today time.Time, loc *time.Location) *models.RecommendedAction {
	if lead.Status != models.StatusNew && lead.Status != models.StatusEngaged {
		return nil
	}
	if !lead.HasSocialLink() {
		return nil
	}

	var cadence engagementCadence
	switch {
	case lk.HasBooking():
		cadence = engagementCadence{"booked", LabelEngageBooked, 5, models.PriorityLow}
	case lk.LastConversation != nil:
		cadence = engagementCadence{"conversation", LabelEngageEveryOther, 2, models.PriorityMedium}
	case lk.FirstContact != nil:
		if clock.DaysBetween(lk.FirstContact.OccurredAt, today, loc) > postContactWindow {
			return nil
		}
		cadence = engagementCadence{"post_contact", LabelEngagePostContact, 1, models.PriorityMedium}
	default:
		cadence = engagementCadence{"new_lead", LabelEngageNewLead, 1, models.PriorityHigh}
	}

	if lk.EngagementOn(today, loc) {
		return nil
	}
	if lk.LastEngagement != nil && clock.DaysBetween(lk.LastEngagement.OccurredAt, today, loc) < cadence.interval {
		return nil
	}

	return newAction(lead, models.RuleEngagement, cadence.key, cadence.label, models.ActionEngagement, cadence.urgency, today)
}
