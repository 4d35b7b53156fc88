package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
	"github.com/stretchr/testify/require"
)

// testClock is pinned to a Monday mid-morning in the business timezone.
func testClock(t *testing.T) *clock.FixedClock {
	t.Helper()
	loc, err := clock.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return clock.Fixed(time.Date(2026, 10, 19, 10, 0, 0, 0, loc), loc)
}

func daysAgo(c clock.Clock, n int) time.Time {
	return c.Now().AddDate(0, 0, -n)
}

func dayStart(c clock.Clock, offset int) time.Time {
	return clock.AddDays(c.Now(), offset, c.Location())
}

func newLead(c clock.Clock, name, status, source string) models.Lead {
	return models.Lead{
		ID:         uuid.New(),
		Name:       name,
		Status:     status,
		LeadSource: source,
		CreatedAt:  daysAgo(c, 90),
	}
}

func activity(lead models.Lead, typ, outcome string, at time.Time) models.Activity {
	return models.Activity{
		ID:           uuid.NewString(),
		LeadID:       lead.ID,
		ActivityType: typ,
		Outcome:      outcome,
		OccurredAt:   at,
	}
}

func booking(lead models.Lead, at time.Time) models.Booking {
	return models.Booking{ID: uuid.New(), LeadID: lead.ID, BookedAt: at}
}

func byRule(actions []models.RecommendedAction, rule string) []models.RecommendedAction {
	var out []models.RecommendedAction
	for _, a := range actions {
		if a.Rule == rule {
			out = append(out, a)
		}
	}
	return out
}

func evaluateLead(t *testing.T, e *Engine, lead models.Lead, acts []models.Activity, books []models.Booking, tasks []models.Task) []models.RecommendedAction {
	t.Helper()
	actions, err := e.Evaluate(Snapshot{
		Leads:      []models.Lead{lead},
		Activities: acts,
		Bookings:   books,
		Tasks:      tasks,
	}, LeadScope(lead.ID))
	require.NoError(t, err)
	return actions
}
