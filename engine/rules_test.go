// ABOUTME: Tests for the cadence rules and manual task adapter
// ABOUTME: Thresholds, suppression boundaries and reserved titles
package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDMFollowupThresholds(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)

	tests := []struct {
		name        string
		firstDMAgo  int
		wantLabel   string
		wantUrgency string
	}{
		{"day 31 fires only the 30 day step", 31, DMLabel(30), models.PriorityHigh},
		{"day 30", 30, DMLabel(30), models.PriorityHigh},
		{"day 15", 15, DMLabel(14), models.PriorityMedium},
		{"day 3", 3, DMLabel(3), models.PriorityLow},
		{"day 2 is too early", 2, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := newLead(c, "Fay", models.StatusEngaged, models.SourceSocialMedia)
			acts := []models.Activity{activity(lead, models.ActivityDM, models.OutcomeNoResponse, daysAgo(c, tt.firstDMAgo))}

			got := byRule(evaluateLead(t, e, lead, acts, nil, nil), models.RuleDMFollowup)
			if tt.wantLabel == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantLabel, got[0].Label)
			assert.Equal(t, tt.wantUrgency, got[0].Urgency)
			assert.Equal(t, models.ActionDM, got[0].Type)
		})
	}
}

func TestDMFollowupDueDateIsAnchoredToFirstDM(t *testing.T) {
	c := testClock(t)
	lead := newLead(c, "Gus", models.StatusNew, models.SourceSocialMedia)
	acts := []models.Activity{
		activity(lead, models.ActivityDM, "", daysAgo(c, 31)),
		activity(lead, models.ActivityEngagement, "", daysAgo(c, 20)),
	}

	got := byRule(evaluateLead(t, New(c, nil), lead, acts, nil, nil), models.RuleDMFollowup)
	require.Len(t, got, 1)
	assert.Equal(t, dayStart(c, -1), got[0].DueDate)
	assert.Equal(t, models.ActionID(lead.ID, models.RuleDMFollowup, "30"), got[0].ID)
}

func TestDMFollowupSuppressedStepDoesNotFallBack(t *testing.T) {
	c := testClock(t)
	lead := newLead(c, "Hal", models.StatusEngaged, models.SourceSocialMedia)
	acts := []models.Activity{
		activity(lead, models.ActivityDM, "", daysAgo(c, 31)),
		activity(lead, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 10)),
	}

	assert.Empty(t, byRule(evaluateLead(t, New(c, nil), lead, acts, nil, nil), models.RuleDMFollowup))
}

func TestDMFollowupCompletionCriteria(t *testing.T) {
	c := testClock(t)
	label := DMLabel(14)

	tests := []struct {
		name      string
		criterion string
		followup  func(models.Lead) ([]models.Activity, []models.Booking)
		wantFired bool
	}{
		{
			name:      "default any outreach counts a call",
			criterion: "",
			followup: func(l models.Lead) ([]models.Activity, []models.Booking) {
				return []models.Activity{activity(l, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 5))}, nil
			},
		},
		{
			name:      "engagement criterion ignores a call",
			criterion: models.CriterionEngagement,
			followup: func(l models.Lead) ([]models.Activity, []models.Booking) {
				return []models.Activity{activity(l, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 5))}, nil
			},
			wantFired: true,
		},
		{
			name:      "engagement criterion satisfied by engagement",
			criterion: models.CriterionEngagement,
			followup: func(l models.Lead) ([]models.Activity, []models.Booking) {
				return []models.Activity{activity(l, models.ActivityEngagement, "", daysAgo(c, 5))}, nil
			},
		},
		{
			name:      "conversation criterion ignores a missed call",
			criterion: models.CriterionConversation,
			followup: func(l models.Lead) ([]models.Activity, []models.Booking) {
				return []models.Activity{activity(l, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 5))}, nil
			},
			wantFired: true,
		},
		{
			name:      "conversation criterion satisfied by a conversation",
			criterion: models.CriterionConversation,
			followup: func(l models.Lead) ([]models.Activity, []models.Booking) {
				return []models.Activity{activity(l, models.ActivityText, models.OutcomeConversation, daysAgo(c, 5))}, nil
			},
		},
		{
			name:      "booking criterion satisfied by a later booking",
			criterion: models.CriterionBooking,
			followup: func(l models.Lead) ([]models.Activity, []models.Booking) {
				return nil, []models.Booking{booking(l, daysAgo(c, 5))}
			},
		},
		{
			name:      "booking criterion ignores outreach",
			criterion: models.CriterionBooking,
			followup: func(l models.Lead) ([]models.Activity, []models.Booking) {
				return []models.Activity{activity(l, models.ActivityCall, models.OutcomeConversation, daysAgo(c, 5))}, nil
			},
			wantFired: true,
		},
		{
			name:      "unknown criterion needs another DM",
			criterion: "carrier_pigeon",
			followup: func(l models.Lead) ([]models.Activity, []models.Booking) {
				return []models.Activity{activity(l, models.ActivityCall, models.OutcomeConversation, daysAgo(c, 5))}, nil
			},
			wantFired: true,
		},
		{
			name:      "unknown criterion satisfied by a second DM",
			criterion: "carrier_pigeon",
			followup: func(l models.Lead) ([]models.Activity, []models.Booking) {
				return []models.Activity{activity(l, models.ActivityDM, "", daysAgo(c, 5))}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(c, StaticCriteria{label: tt.criterion})
			lead := newLead(c, "Ivy", models.StatusEngaged, models.SourceSocialMedia)
			acts, books := tt.followup(lead)
			acts = append(acts, activity(lead, models.ActivityDM, "", daysAgo(c, 15)))

			got := byRule(evaluateLead(t, e, lead, acts, books, nil), models.RuleDMFollowup)
			if !tt.wantFired {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, label, got[0].Label)
		})
	}
}

func TestDMFollowupEligibility(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)

	won := newLead(c, "Won", models.StatusWon, models.SourceSocialMedia)
	referral := newLead(c, "Ref", models.StatusEngaged, models.SourceReferral)

	for _, lead := range []models.Lead{won, referral} {
		acts := []models.Activity{activity(lead, models.ActivityDM, "", daysAgo(c, 40))}
		assert.Empty(t, byRule(evaluateLead(t, e, lead, acts, nil, nil), models.RuleDMFollowup), lead.Name)
	}
}

func TestColdOutreachCadence(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)

	tests := []struct {
		name        string
		createdAgo  time.Duration
		lastAgo     int // days; negative means no activity
		wantLabel   string
		wantUrgency string
		wantDue     int
	}{
		{"created today", time.Hour, -1, LabelColdInitial, models.PriorityHigh, 0},
		{"created yesterday", 24 * time.Hour, -1, LabelColdInitial, models.PriorityHigh, -1},
		{"untouched for three days", 72 * time.Hour, -1, LabelColdDay2, models.PriorityMedium, -1},
		{"untouched for a week", 7 * 24 * time.Hour, -1, LabelColdDay4, models.PriorityHigh, -3},
		{"last call two days ago", 30 * 24 * time.Hour, 2, LabelColdDay2, models.PriorityMedium, 0},
		{"last call five days ago", 30 * 24 * time.Hour, 5, LabelColdDay4, models.PriorityHigh, -1},
		{"called yesterday", 30 * 24 * time.Hour, 1, "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := newLead(c, "Jo", models.StatusNew, models.SourceColdOutreach)
			lead.CreatedAt = c.Now().Add(-tt.createdAgo)
			var acts []models.Activity
			if tt.lastAgo >= 0 {
				acts = append(acts, activity(lead, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, tt.lastAgo)))
			}

			got := byRule(evaluateLead(t, e, lead, acts, nil, nil), models.RuleColdOutreach)
			if tt.wantLabel == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantLabel, got[0].Label)
			assert.Equal(t, tt.wantUrgency, got[0].Urgency)
			assert.Equal(t, models.ActionCall, got[0].Type)
			assert.Equal(t, dayStart(c, tt.wantDue), got[0].DueDate)
		})
	}
}

func TestColdOutreachSkipsWonAndOtherSources(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)

	won := newLead(c, "Won", models.StatusWon, models.SourceColdOutreach)
	web := newLead(c, "Web", models.StatusNew, models.SourceWebsite)
	for _, lead := range []models.Lead{won, web} {
		assert.Empty(t, byRule(evaluateLead(t, e, lead, nil, nil, nil), models.RuleColdOutreach), lead.Name)
	}
}

func TestBookingCheckin(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)

	tests := []struct {
		name        string
		bookedAgo   int
		wantLabel   string
		wantUrgency string
	}{
		{"eight days after booking", 8, LabelCheckinDay7, models.PriorityMedium},
		{"four days after booking", 4, LabelCheckinDay3, models.PriorityLow},
		{"two days after booking", 2, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := newLead(c, "Kit", models.StatusWon, models.SourceReferral)
			books := []models.Booking{booking(lead, daysAgo(c, tt.bookedAgo))}

			got := byRule(evaluateLead(t, e, lead, nil, books, nil), models.RuleBookingCheckin)
			if tt.wantLabel == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantLabel, got[0].Label)
			assert.Equal(t, tt.wantUrgency, got[0].Urgency)
			assert.Equal(t, dayStart(c, -1), got[0].DueDate)
		})
	}
}

func TestBookingCheckinSuppression(t *testing.T) {
	c := testClock(t)
	lead := newLead(c, "Lou", models.StatusWon, models.SourceReferral)
	books := []models.Booking{booking(lead, daysAgo(c, 8))}
	missed := []models.Activity{activity(lead, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 2))}
	talked := []models.Activity{activity(lead, models.ActivityCall, models.OutcomeConversation, daysAgo(c, 2))}

	anyOutreach := New(c, nil)
	assert.Empty(t, byRule(evaluateLead(t, anyOutreach, lead, missed, books, nil), models.RuleBookingCheckin))

	conversation := New(c, nil)
	conversation.CheckinSuppression = models.CriterionConversation
	assert.Len(t, byRule(evaluateLead(t, conversation, lead, missed, books, nil), models.RuleBookingCheckin), 1)
	assert.Empty(t, byRule(evaluateLead(t, conversation, lead, talked, books, nil), models.RuleBookingCheckin))
}

func TestBookingCheckinOnlyForFirstBooking(t *testing.T) {
	c := testClock(t)
	lead := newLead(c, "Max", models.StatusWon, models.SourceReferral)
	books := []models.Booking{booking(lead, daysAgo(c, 100)), booking(lead, daysAgo(c, 8))}

	assert.Empty(t, byRule(evaluateLead(t, New(c, nil), lead, nil, books, nil), models.RuleBookingCheckin))
}

func TestRepeatBooking(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)
	lead := newLead(c, "Ned", models.StatusWon, models.SourceReferral)

	books := []models.Booking{booking(lead, daysAgo(c, 200)), booking(lead, daysAgo(c, 61))}
	got := evaluateLead(t, e, lead, nil, books, nil)
	repeat := byRule(got, models.RuleRepeatBooking)
	require.Len(t, repeat, 1)
	assert.Equal(t, LabelRepeatDay60, repeat[0].Label)
	assert.Equal(t, models.PriorityHigh, repeat[0].Urgency)
	assert.Equal(t, dayStart(c, -1), repeat[0].DueDate)
	assert.Empty(t, byRule(got, models.RuleBookingCheckin))

	books = []models.Booking{booking(lead, daysAgo(c, 31))}
	repeat = byRule(evaluateLead(t, e, lead, nil, books, nil), models.RuleRepeatBooking)
	require.Len(t, repeat, 1)
	assert.Equal(t, LabelRepeatDay30, repeat[0].Label)
	assert.Equal(t, models.PriorityMedium, repeat[0].Urgency)

	contacted := []models.Activity{activity(lead, models.ActivityText, models.OutcomeNoResponse, daysAgo(c, 10))}
	assert.Empty(t, byRule(evaluateLead(t, e, lead, contacted, books, nil), models.RuleRepeatBooking))
}

func TestSuppressionOnlyCountsContactAfterReference(t *testing.T) {
	c := testClock(t)
	booked := daysAgo(c, 8)
	firstDM := daysAgo(c, 31)

	tests := []struct {
		name      string
		rule      string
		source    string
		mode      string
		acts      func(models.Lead) []models.Activity
		books     func(models.Lead) []models.Booking
		wantLabel string
	}{
		{
			name:   "call before the only booking keeps the check-in",
			rule:   models.RuleBookingCheckin,
			source: models.SourceReferral,
			acts: func(l models.Lead) []models.Activity {
				return []models.Activity{activity(l, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 10))}
			},
			books:     func(l models.Lead) []models.Booking { return []models.Booking{booking(l, booked)} },
			wantLabel: LabelCheckinDay7,
		},
		{
			name:   "conversation before the only booking keeps the check-in",
			rule:   models.RuleBookingCheckin,
			source: models.SourceReferral,
			mode:   models.CriterionConversation,
			acts: func(l models.Lead) []models.Activity {
				return []models.Activity{activity(l, models.ActivityText, models.OutcomeConversation, daysAgo(c, 10))}
			},
			books:     func(l models.Lead) []models.Booking { return []models.Booking{booking(l, booked)} },
			wantLabel: LabelCheckinDay7,
		},
		{
			name:   "call at the booking instant keeps the check-in",
			rule:   models.RuleBookingCheckin,
			source: models.SourceReferral,
			acts: func(l models.Lead) []models.Activity {
				return []models.Activity{activity(l, models.ActivityCall, models.OutcomeConversation, booked)}
			},
			books:     func(l models.Lead) []models.Booking { return []models.Booking{booking(l, booked)} },
			wantLabel: LabelCheckinDay7,
		},
		{
			name:   "earlier call does not hide a later one",
			rule:   models.RuleBookingCheckin,
			source: models.SourceReferral,
			acts: func(l models.Lead) []models.Activity {
				return []models.Activity{
					activity(l, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 10)),
					activity(l, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 2)),
				}
			},
			books: func(l models.Lead) []models.Booking { return []models.Booking{booking(l, booked)} },
		},
		{
			name:   "text between bookings keeps repeat outreach",
			rule:   models.RuleRepeatBooking,
			source: models.SourceReferral,
			acts: func(l models.Lead) []models.Activity {
				return []models.Activity{activity(l, models.ActivityText, models.OutcomeConversation, daysAgo(c, 100))}
			},
			books: func(l models.Lead) []models.Booking {
				return []models.Booking{booking(l, daysAgo(c, 200)), booking(l, daysAgo(c, 61))}
			},
			wantLabel: LabelRepeatDay60,
		},
		{
			name:   "call before the first DM keeps the DM follow-up",
			rule:   models.RuleDMFollowup,
			source: models.SourceSocialMedia,
			acts: func(l models.Lead) []models.Activity {
				return []models.Activity{
					activity(l, models.ActivityCall, models.OutcomeNoResponse, daysAgo(c, 40)),
					activity(l, models.ActivityDM, "", firstDM),
				}
			},
			wantLabel: DMLabel(30),
		},
		{
			name:   "call at the first DM instant keeps the DM follow-up",
			rule:   models.RuleDMFollowup,
			source: models.SourceSocialMedia,
			acts: func(l models.Lead) []models.Activity {
				return []models.Activity{
					activity(l, models.ActivityDM, "", firstDM),
					activity(l, models.ActivityCall, models.OutcomeNoResponse, firstDM),
				}
			},
			wantLabel: DMLabel(30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(c, nil)
			if tt.mode != "" {
				e.CheckinSuppression = tt.mode
			}
			lead := newLead(c, "Rae", models.StatusEngaged, tt.source)
			var books []models.Booking
			if tt.books != nil {
				books = tt.books(lead)
			}

			got := byRule(evaluateLead(t, e, lead, tt.acts(lead), books, nil), tt.rule)
			if tt.wantLabel == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantLabel, got[0].Label)
		})
	}
}

func TestManualTaskAdapter(t *testing.T) {
	c := testClock(t)
	e := New(c, nil)
	lead := newLead(c, "Oz", models.StatusEngaged, models.SourceReferral)

	overdue := dayStart(c, -2)
	future := dayStart(c, 3)
	today := c.Now()

	tasks := []models.Task{
		{ID: uuid.New(), LeadID: lead.ID, Title: "Send contract", Status: models.TaskStatusOpen},
		{ID: uuid.New(), LeadID: lead.ID, Title: "Chase invoice", Status: models.TaskStatusOpen, DueDate: &overdue},
		{ID: uuid.New(), LeadID: lead.ID, Title: "Plan shoot", Status: models.TaskStatusOpen, DueDate: &future},
		{ID: uuid.New(), LeadID: lead.ID, Title: "Confirm venue", Status: models.TaskStatusOpen, DueDate: &today},
		{ID: uuid.New(), LeadID: lead.ID, Title: "Pinned", Status: models.TaskStatusOpen, DueDate: &overdue, Priority: models.PriorityLow},
		{ID: uuid.New(), LeadID: lead.ID, Title: "Old news", Status: models.TaskStatusDone},
	}

	got := byRule(evaluateLead(t, e, lead, nil, nil, tasks), models.RuleManualTask)
	require.Len(t, got, 5)

	byTitle := make(map[string]models.RecommendedAction)
	for _, a := range got {
		byTitle[a.Label] = a
		assert.Equal(t, models.ActionManual, a.Type)
		require.NotNil(t, a.TaskID)
		assert.Equal(t, models.ActionID(lead.ID, models.RuleManualTask, a.TaskID.String()), a.ID)
	}

	assert.Equal(t, models.PriorityMedium, byTitle["Send contract"].Urgency)
	assert.Equal(t, dayStart(c, 0), byTitle["Send contract"].DueDate)
	assert.Equal(t, models.PriorityHigh, byTitle["Chase invoice"].Urgency)
	assert.Equal(t, models.PriorityLow, byTitle["Plan shoot"].Urgency)
	assert.Equal(t, dayStart(c, 3), byTitle["Plan shoot"].DueDate)
	assert.Equal(t, models.PriorityMedium, byTitle["Confirm venue"].Urgency)
	assert.Equal(t, dayStart(c, 0), byTitle["Confirm venue"].DueDate)
	assert.Equal(t, models.PriorityLow, byTitle["Pinned"].Urgency)
	assert.NotContains(t, byTitle, "Old news")
}

func TestManualTaskReservedTitle(t *testing.T) {
	c := testClock(t)
	lead := newLead(c, "Pat", models.StatusEngaged, models.SourceReferral)
	tasks := []models.Task{
		{ID: uuid.New(), LeadID: lead.ID, Title: "Daily Engagement", Status: models.TaskStatusOpen},
		{ID: uuid.New(), LeadID: lead.ID, Title: "  daily engagement ", Status: models.TaskStatusOpen},
		{ID: uuid.New(), LeadID: lead.ID, Title: "Daily Engagement (Custom)", Status: models.TaskStatusOpen},
		{ID: uuid.New(), LeadID: lead.ID, Title: "Prep daily engagement deck", Status: models.TaskStatusOpen},
	}

	got := byRule(evaluateLead(t, New(c, nil), lead, nil, nil, tasks), models.RuleManualTask)
	require.Len(t, got, 2)
	labels := []string{got[0].Label, got[1].Label}
	assert.ElementsMatch(t, []string{"Daily Engagement (Custom)", "Prep daily engagement deck"}, labels)
}

func TestIsReservedTaskTitle(t *testing.T) {
	assert.True(t, IsReservedTaskTitle("Daily Engagement"))
	assert.True(t, IsReservedTaskTitle("DAILY ENGAGEMENT"))
	assert.False(t, IsReservedTaskTitle("Daily Engagement (Custom)"))
	assert.False(t, IsReservedTaskTitle("Weekly engagement"))
	assert.False(t, IsReservedTaskTitle("Prep daily engagement deck"))
	assert.False(t, IsReservedTaskTitle("Daily engagement reminder"))
}

func TestManualTaskInvalidPriority(t *testing.T) {
	c := testClock(t)
	lead := newLead(c, "Quinn", models.StatusEngaged, models.SourceReferral)
	tasks := []models.Task{{ID: uuid.New(), LeadID: lead.ID, Title: "Broken", Status: models.TaskStatusOpen, Priority: "urgent"}}

	_, err := New(c, nil).Evaluate(Snapshot{Leads: []models.Lead{lead}, Tasks: tasks}, LeadScope(lead.ID))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
