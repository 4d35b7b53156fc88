// ABOUTME: Data models for lead CRM entities
// ABOUTME: Defines Lead, Activity, Booking and Task structs plus their enums
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lead status constants.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusEngaged   = "engaged"
	StatusNurture   = "nurture"
	StatusWon       = "won"
	StatusLost      = "lost"
)

// Lead source constants.
const (
	SourceSocialMedia  = "social_media"
	SourceColdOutreach = "cold_outreach"
	SourceReferral     = "referral"
	SourceWebsite      = "website"
	SourceEvent        = "event"
	SourceOther        = "other"
)

// Activity type constants.
const (
	ActivityCall       = "call"
	ActivityText       = "text"
	ActivityEmail      = "email"
	ActivityDM         = "dm"
	ActivityEngagement = "engagement"
	ActivityNote       = "note"
)

// Activity outcome constants. Only meaningful for contact-type activities.
const (
	OutcomeNoResponse    = "no_response"
	OutcomeConversation  = "conversation"
	OutcomeBooked        = "booked"
	OutcomeNotInterested = "not_interested"
)

// Task status constants.
const (
	TaskStatusOpen = "open"
	TaskStatusDone = "done"
)

// Priority constants shared by tasks and recommended actions.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var (
	validStatuses   = []string{StatusNew, StatusContacted, StatusEngaged, StatusNurture, StatusWon, StatusLost}
	validSources    = []string{SourceSocialMedia, SourceColdOutreach, SourceReferral, SourceWebsite, SourceEvent, SourceOther}
	validActivities = []string{ActivityCall, ActivityText, ActivityEmail, ActivityDM, ActivityEngagement, ActivityNote}
	validOutcomes   = []string{OutcomeNoResponse, OutcomeConversation, OutcomeBooked, OutcomeNotInterested}
	validPriorities = []string{PriorityHigh, PriorityMedium, PriorityLow}
)

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a known lead status.
func IsValidStatus(s string) bool { return contains(validStatuses, s) }

// IsValidSource reports whether s is a known lead source.
func IsValidSource(s string) bool { return contains(validSources, s) }

// IsValidActivityType reports whether s is a known activity type.
func IsValidActivityType(s string) bool { return contains(validActivities, s) }

// IsValidOutcome reports whether s is a known activity outcome.
func IsValidOutcome(s string) bool { return contains(validOutcomes, s) }

// IsValidPriority reports whether s is a known priority.
func IsValidPriority(s string) bool { return contains(validPriorities, s) }

// Statuses lists every lead status in pipeline order.
func Statuses() []string { return append([]string(nil), validStatuses...) }

type Lead struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Status       string     `json:"status"`
	LeadSource   string     `json:"lead_source"`
	Instagram    string     `json:"instagram,omitempty"`
	Facebook     string     `json:"facebook,omitempty"`
	OwnerID      string     `json:"owner_id,omitempty"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
	ReassignedAt *time.Time `json:"reassigned_at,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasSocialLink reports whether the lead has any social profile to engage with.
func (l *Lead) HasSocialLink() bool {
	return strings.TrimSpace(l.Instagram) != "" || strings.TrimSpace(l.Facebook) != ""
}

// IsClosed reports whether the lead has left the active pipeline.
func (l *Lead) IsClosed() bool {
	return l.Status == StatusWon || l.Status == StatusLost
}

// OwnedBy reports whether the lead belongs to or is assigned to owner.
// An empty owner matches every lead.
func (l *Lead) OwnedBy(owner string) bool {
	if owner == "" {
		return true
	}
	return l.OwnerID == owner || l.AssignedTo == owner
}

type Activity struct {
	ID           string     `json:"id"`
	LeadID       uuid.UUID  `json:"lead_id"`
	ActivityType string     `json:"activity_type"`
	Outcome      string     `json:"outcome,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
	ShootDate    *time.Time `json:"shoot_date,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsContact reports whether the activity is direct outreach (call, text, email or DM).
func (a *Activity) IsContact() bool {
	switch a.ActivityType {
	case ActivityCall, ActivityText, ActivityEmail, ActivityDM:
		return true
	}
	return false
}

// IsConversation reports whether the activity ended in a conversation.
func (a *Activity) IsConversation() bool {
	return a.Outcome == OutcomeConversation
}

type Booking struct {
	ID        uuid.UUID  `json:"id"`
	LeadID    uuid.UUID  `json:"lead_id"`
	BookedAt  time.Time  `json:"booked_at"`
	ShootDate *time.Time `json:"shoot_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	LeadID      uuid.UUID  `json:"lead_id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	DueTime     string     `json:"due_time,omitempty"` // HH:MM, business local
	Priority    string     `json:"priority,omitempty"`
	OwnerID     string     `json:"owner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IsOpen reports whether the task still needs doing.
func (t *Task) IsOpen() bool {
	return t.Status == "" || t.Status == TaskStatusOpen
}
