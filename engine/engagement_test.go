// ABOUTME: Tests for the daily engagement rule
// ABOUTME: Table-driven with testify
package engine

import (
	"testing"
	"time"

	"github.com/harperreed/outreach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementRuleBranches(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)

	tests := []struct {
		name        string
		status      string
		activities  func(models.Lead) []models.Activity
		bookings    func(models.Lead) []models.Booking
		wantLabel   string
		wantUrgency string
	}{
		{
			name:        "new lead never contacted",
			status:      models.StatusNew,
			wantLabel:   LabelEngageNewLead,
			wantUrgency: models.PriorityHigh,
		},
		{
			name:   "contacted two days ago",
			status: models.StatusNew,
			activities: func(l models.Lead) []models.Activity {
				return []models.Activity{activity(l, models.ActivityDM, models.OutcomeNoResponse, daysAgo(c, 2))}
			},
			wantLabel:   LabelEngagePostContact,
			wantUrgency: models.PriorityMedium,
		},
		{
			name:   "contacted exactly five days ago",
			status: models.StatusEngaged,
			activities: func(l models.Lead) []models.Activity {
				return []models.Activity{activity(l, models.ActivityText, "", daysAgo(c, 5))}
			},
			wantLabel:   LabelEngagePostContact,
			wantUrgency: models.PriorityMedium,
		},
		{
			name:   "contact older than five days",
			status: models.StatusEngaged,
			activities: func(l models.Lead) []models.Activity {
				return []models.Activity{activity(l, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 6))}
			},
		},
		{
			name:   "had a conversation",
			status: models.StatusEngaged,
			activities: func(l models.Lead) []models.Activity {
				return []models.Activity{activity(l, models.ActivityCall, models.OutcomeConversation, daysAgo(c, 20))}
			},
			wantLabel:   LabelEngageEveryOther,
			wantUrgency: models.PriorityMedium,
		},
		{
			name:   "booked client",
			status: models.StatusEngaged,
			bookings: func(l models.Lead) []models.Booking {
				return []models.Booking{booking(l, daysAgo(c, 1))}
			},
			wantLabel:   LabelEngageBooked,
			wantUrgency: models.PriorityLow,
		},
		{
			name:   "status outside new and engaged",
			status: models.StatusContacted,
		},
		{
			name:   "won lead",
			status: models.StatusWon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := newLead(c, "Ava", tt.status, models.SourceReferral)
			lead.Instagram = "@ava"

			var acts []models.Activity
			if tt.activities != nil {
				acts = tt.activities(lead)
			}
			var books []models.Booking
			if tt.bookings != nil {
				books = tt.bookings(lead)
			}

			got := byRule(evaluateLead(t, e, lead, acts, books, nil), models.RuleEngagement)
			if tt.wantLabel == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantLabel, got[0].Label)
			assert.Equal(t, tt.wantUrgency, got[0].Urgency)
			assert.Equal(t, models.ActionEngagement, got[0].Type)
			assert.Equal(t, dayStart(c, 0), got[0].DueDate)
			require.NotNil(t, got[0].Social)
			assert.Equal(t, "@ava", got[0].Social.Instagram)
		})
	}
}

func TestEngagementRuleNeedsSocialLink(t *testing.T) {
	c := testClock(t)
	lead := newLead(c, "No Socials", models.StatusNew, models.SourceReferral)

	got := byRule(evaluateLead(t, New(c, nil), lead, nil, nil, nil), models.RuleEngagement)
	assert.Empty(t, got)
}

func TestEngagementRuleRespectsInterval(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)
	lead := newLead(c, "Bea", models.StatusEngaged, models.SourceReferral)
	lead.Facebook = "fb.com/bea"
	books := []models.Booking{booking(lead, daysAgo(c, 30))}

	// Booked clients are engaged every 5 days.
	recent := []models.Activity{activity(lead, models.ActivityEngagement, "", daysAgo(c, 4))}
	assert.Empty(t, byRule(evaluateLead(t, e, lead, recent, books, nil), models.RuleEngagement))

	due := []models.Activity{activity(lead, models.ActivityEngagement, "", daysAgo(c, 5))}
	got := byRule(evaluateLead(t, e, lead, due, books, nil), models.RuleEngagement)
	require.Len(t, got, 1)
	assert.Equal(t, LabelEngageBooked, got[0].Label)
}

func TestEngagementLoggedTodaySuppresses(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)
	lead := newLead(c, "Cal", models.StatusNew, models.SourceSocialMedia)
	lead.Instagram = "@cal"

	// Logged at 00:30 local today.
	early := dayStart(c, 0).Add(30 * time.Minute)
	acts := []models.Activity{activity(lead, models.ActivityEngagement, models.OutcomeNoResponse, early)}

	assert.Empty(t, byRule(evaluateLead(t, e, lead, acts, nil, nil), models.RuleEngagement))
}

func TestEngagementIdempotentAndAdvancesWithDate(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)
	lead := newLead(c, "Dee", models.StatusNew, models.SourceReferral)
	lead.Instagram = "@dee"
	acts := []models.Activity{activity(lead, models.ActivityEngagement, "", c.Now().Add(-1))}

	first := evaluateLead(t, e, lead, acts, nil, nil)
	second := evaluateLead(t, e, lead, acts, nil, nil)
	assert.Equal(t, first, second)
	assert.Empty(t, byRule(first, models.RuleEngagement))

	c.AdvanceDays(1)
	next := byRule(evaluateLead(t, e, lead, acts, nil, nil), models.RuleEngagement)
	require.Len(t, next, 1)
	assert.Equal(t, LabelEngageNewLead, next[0].Label)
	assert.Equal(t, dayStart(c, 0), next[0].DueDate)
}

func TestEngagementAtMostOnePerLead(t *testing.T) {
	c := testClock(t)
	lead := newLead(c, "Eli", models.StatusEngaged, models.SourceSocialMedia)
	lead.Instagram = "@eli"
	acts := []models.Activity{
		activity(lead, models.ActivityDM, models.OutcomeConversation, daysAgo(c, 3)),
		activity(lead, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 2)),
	}
	books := []models.Booking{booking(lead, daysAgo(c, 1))}

	got := byRule(evaluateLead(t, New(c, nil), lead, acts, books, nil), models.RuleEngagement)
	require.Len(t, got, 1)
	assert.Equal(t, LabelEngageBooked, got[0].Label)
}
