// ABOUTME: Action ranking
// ABOUTME: Orders actions by urgency, due date and id, then truncates
package engine

import (
	"sort"

	"github.com/harperreed/outreach/models"
)

// Rank sorts actions in place: urgency, then due date, then ID so equal
// (urgency, due) pairs come out the same on every run.
func Rank(actions []models.RecommendedAction) {
	sort.Slice(actions, func(i, j int) bool {
		a, b := actions[i], actions[j]
		if ra, rb := models.UrgencyRank(a.Urgency), models.UrgencyRank(b.Urgency); ra != rb {
			return ra < rb
		}
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.ID < b.ID
	})
}

// Truncate keeps at most limit actions. A non-positive limit keeps everything.
func Truncate(actions []models.RecommendedAction, limit int) []models.RecommendedAction {
	if limit <= 0 || len(actions) <= limit {
		return actions
	}
	return actions[:limit]
}
