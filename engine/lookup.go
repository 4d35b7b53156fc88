// ABOUTME: Per-lead index over activity and booking history
// ABOUTME: Answers the first/last/after questions the cadence rules ask
package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
)

// Lookup holds one lead's activities and bookings, both oldest first.
type Lookup struct {
	Activities []models.Activity
	Bookings   []models.Booking

	LastActivity     *models.Activity
	FirstDM          *models.Activity
	LastConversation *models.Activity
	LastEngagement   *models.Activity
	FirstContact     *models.Activity
}

// NewLookup indexes the rows belonging to leadID. Rows for other leads are ignored.
func NewLookup(leadID uuid.UUID, activities []models.Activity, bookings []models.Booking) *Lookup {
	lk := &Lookup{}
	for _, a := range activities {
		if a.LeadID == leadID {
			lk.Activities = append(lk.Activities, a)
		}
	}
	for _, b := range bookings {
		if b.LeadID == leadID {
			lk.Bookings = append(lk.Bookings, b)
		}
	}

	sort.SliceStable(lk.Activities, func(i, j int) bool {
		return lk.Activities[i].OccurredAt.Before(lk.Activities[j].OccurredAt)
	})
	sort.SliceStable(lk.Bookings, func(i, j int) bool {
		return lk.Bookings[i].BookedAt.Before(lk.Bookings[j].BookedAt)
	})

	for i := range lk.Activities {
		a := &lk.Activities[i]
		lk.LastActivity = a
		switch {
		case a.ActivityType == models.ActivityEngagement:
			lk.LastEngagement = a
		case a.ActivityType == models.ActivityDM && lk.FirstDM == nil:
			lk.FirstDM = a
		}
		if a.IsContact() && lk.FirstContact == nil {
			lk.FirstContact = a
		}
		if a.IsConversation() {
			lk.LastConversation = a
		}
	}

	return lk
}

// HasBooking reports whether the lead has ever booked.
func (lk *Lookup) HasBooking() bool { return len(lk.Bookings) > 0 }

// FirstBooking returns the oldest booking, or nil.
func (lk *Lookup) FirstBooking() *models.Booking {
	if len(lk.Bookings) == 0 {
		return nil
	}
	return &lk.Bookings[0]
}

// LastBooking returns the most recent booking, or nil.
func (lk *Lookup) LastBooking() *models.Booking {
	if len(lk.Bookings) == 0 {
		return nil
	}
	return &lk.Bookings[len(lk.Bookings)-1]
}

// EngagementOn reports whether an engagement was logged on day's calendar date.
func (lk *Lookup) EngagementOn(day time.Time, loc *time.Location) bool {
	for i := len(lk.Activities) - 1; i >= 0; i-- {
		a := lk.Activities[i]
		if a.ActivityType == models.ActivityEngagement && clock.SameDay(a.OccurredAt, day, loc) {
			return true
		}
	}
	return false
}

func (lk *Lookup) anyActivityAfter(t time.Time, match func(*models.Activity) bool) bool {
	for i := len(lk.Activities) - 1; i >= 0; i-- {
		a := &lk.Activities[i]
		if !a.OccurredAt.After(t) {
			return false
		}
		if match(a) {
			return true
		}
	}
	return false
}

// ContactAfter reports a call, text, email or DM strictly after t.
func (lk *Lookup) ContactAfter(t time.Time) bool {
	return lk.anyActivityAfter(t, func(a *models.Activity) bool { return a.IsContact() })
}

// EngagementAfter reports an engagement strictly after t.
func (lk *Lookup) EngagementAfter(t time.Time) bool {
	return lk.anyActivityAfter(t, func(a *models.Activity) bool {
		return a.ActivityType == models.ActivityEngagement
	})
}

// ConversationAfter reports a conversation outcome strictly after t.
func (lk *Lookup) ConversationAfter(t time.Time) bool {
	return lk.anyActivityAfter(t, func(a *models.Activity) bool { return a.IsConversation() })
}

// DMAfter reports a DM strictly after t.
func (lk *Lookup) DMAfter(t time.Time) bool {
	return lk.anyActivityAfter(t, func(a *models.Activity) bool {
		return a.ActivityType == models.ActivityDM
	})
}

// BookingAfter reports a booking created strictly after t.
func (lk *Lookup) BookingAfter(t time.Time) bool {
	last := lk.LastBooking()
	return last != nil && last.BookedAt.After(t)
}
