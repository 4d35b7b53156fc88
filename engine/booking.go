// ABOUTME: Booking follow-up rules
// ABOUTME: First-booking check-ins and repeat booking outreach
package engine

import (
	"time"

	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
)

// Booking labels.
const (
	LabelCheckinDay7 = "Post-Booking Check-in (Day 7)"
	LabelCheckinDay3 = "Post-Booking Check-in (Day 3)"
	LabelRepeatDay60 = "Repeat Booking Outreach (Day 60)"
	LabelRepeatDay30 = "Repeat Booking Outreach (Day 30)"
)

// bookingCheckinRule follows up once after a lead's first and only booking.
// mode decides what counts as already checked in: any outreach, or only a
// conversation.
func bookingCheckinRule(lead *models.Lead, lk *Lookup, mode string, today time.Time, loc *time.Location) *models.RecommendedAction {
	if len(lk.Bookings) != 1 {
		return nil
	}
	booking := lk.Bookings[0]

	if mode == models.CriterionConversation {
		if lk.ConversationAfter(booking.BookedAt) {
			return nil
		}
	} else if lk.ContactAfter(booking.BookedAt) {
		return nil
	}

	days := clock.DaysBetween(booking.BookedAt, today, loc)
	switch {
	case days >= 7:
		return newAction(lead, models.RuleBookingCheckin, "day7", LabelCheckinDay7, models.ActionCall, models.PriorityMedium, clock.AddDays(booking.BookedAt, 7, loc))
	case days >= 3:
		return newAction(lead, models.RuleBookingCheckin, "day3", LabelCheckinDay3, models.ActionCall, models.PriorityLow, clock.AddDays(booking.BookedAt, 3, loc))
	}
	return nil
}

func repeatBookingRule(lead *models.Lead, lk *Lookup, today time.Time, loc *time.Location) *models.RecommendedAction {
	last := lk.LastBooking()
	if last == nil {
		return nil
	}
	if lk.ContactAfter(last.BookedAt) {
		return nil
	}

	days := clock.DaysBetween(last.BookedAt, today, loc)
	switch {
	case days >= 60:
		return newAction(lead, models.RuleRepeatBooking, "day60", LabelRepeatDay60, models.ActionCall, models.PriorityHigh, clock.AddDays(last.BookedAt, 60, loc))
	case days >= 30:
		return newAction(lead, models.RuleRepeatBooking, "day30", LabelRepeatDay30, models.ActionCall, models.PriorityMedium, clock.AddDays(last.BookedAt, 30, loc))
	}
	return nil
}
