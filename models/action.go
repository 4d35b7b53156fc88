// ABOUTME: RecommendedAction model produced by the next-action engine
// ABOUTME: Deterministic identifiers, action types and urgency ranking
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action type constants select which completion transition applies.
const (
	ActionManual     = "manual"
	ActionDM         = "dm"
	ActionCall       = "call"
	ActionEngagement = "engagement"
)

// Rule names used in action identifiers.
const (
	RuleEngagement     = "engagement"
	RuleDMFollowup     = "dm_followup"
	RuleColdOutreach   = "cold_outreach"
	RuleBookingCheckin = "booking_checkin"
	RuleRepeatBooking  = "repeat_booking"
	RuleManualTask     = "task"
)

// SocialLinks is the display payload for engagement and DM actions.
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// RecommendedAction is derived on every engine run and never persisted.
type RecommendedAction struct {
	ID       string       `json:"id"`
	LeadID   uuid.UUID    `json:"lead_id"`
	LeadName string       `json:"lead_name"`
	Label    string       `json:"label"`
	Type     string       `json:"type"`
	Urgency  string       `json:"urgency"`
	DueDate  time.Time    `json:"due_date"`
	Rule     string       `json:"rule"`
	TaskID   *uuid.UUID   `json:"task_id,omitempty"`
	Social   *SocialLinks `json:"social,omitempty"`
}

// ActionID builds the stable identifier for a (lead, rule, subkey) triple.
func ActionID(leadID uuid.UUID, rule, subkey string) string {
	return fmt.Sprintf("%s:%s:%s", leadID, rule, subkey)
}

// ActionRef is a parsed action identifier.
type ActionRef struct {
	LeadID uuid.UUID
	Rule   string
	SubKey string
}

// ParseActionID splits an identifier produced by ActionID.
func ParseActionID(id string) (ActionRef, error) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return ActionRef{}, fmt.Errorf("malformed action id: %q", id)
	}
	leadID, err := uuid.Parse(parts[0])
	if err != nil {
		return ActionRef{}, fmt.Errorf("malformed action id %q: %w", id, err)
	}
	return ActionRef{LeadID: leadID, Rule: parts[1], SubKey: parts[2]}, nil
}

// UrgencyRank orders urgencies for sorting: high first.
func UrgencyRank(urgency string) int {
	switch urgency {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// UrgencyIndicator returns the emoji used by the CLI and TUI tables.
func UrgencyIndicator(urgency string) string {
	switch urgency {
	case PriorityHigh:
		return "🔴"
	case PriorityMedium:
		return "🟡"
	}
	return "🟢"
}
