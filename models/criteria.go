// ABOUTME: DM follow-up completion criteria
// ABOUTME: Shared with the booking check-in suppression setting
package models

// Completion criteria decide when a DM follow-up counts as handled.
// The same values select the booking check-in suppression mode.
const (
	CriterionAnyOutreach  = "any_outreach"
	CriterionEngagement   = "engagement"
	CriterionConversation = "conversation"
	CriterionBooking      = "booking"
)

// IsKnownCriterion reports whether c is one of the recognised criteria.
func IsKnownCriterion(c string) bool {
	switch c {
	case CriterionAnyOutreach, CriterionEngagement, CriterionConversation, CriterionBooking:
		return true
	}
	return false
}
