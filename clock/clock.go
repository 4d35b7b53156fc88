// ABOUTME: Business-timezone clock used by the recommendation engine
// ABOUTME: Provides today, whole-day differences and local-noon timestamps
package clock

import (
	"fmt"
	"time"
)

// DefaultTimezone is the business timezone used when none is configured.
const DefaultTimezone = "America/Chicago"

// Clock supplies the current instant and the fixed business timezone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type realClock struct {
	loc *time.Location
}

// New returns a wall clock in the given business location.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return realClock{loc: loc}
}

func (c realClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c realClock) Location() *time.Location { return c.loc }

// FixedClock always reports the same instant. Used by tests and replays.
type FixedClock struct {
	At  time.Time
	Loc *time.Location
}

// Fixed returns a clock frozen at t in loc.
func Fixed(t time.Time, loc *time.Location) *FixedClock {
	if loc == nil {
		loc = time.UTC
	}
	return &FixedClock{At: t, Loc: loc}
}

func (c *FixedClock) Now() time.Time           { return c.At.In(c.Loc) }
func (c *FixedClock) Location() *time.Location { return c.Loc }

// Advance moves the fixed clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.At = c.At.Add(d)
}

// AdvanceDays moves the fixed clock forward by whole calendar days.
func (c *FixedClock) AdvanceDays(days int) {
	c.At = c.At.In(c.Loc).AddDate(0, 0, days)
}

// LoadLocation resolves a timezone name, falling back to DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Today returns the start of the current business day.
func Today(c Clock) time.Time {
	return StartOfDay(c.Now(), c.Location())
}

// AddDays returns the start of the calendar day n days after t's day.
func AddDays(t time.Time, n int, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, loc)
}

// DaysBetween counts whole calendar days from the local date of from to the
// local date of to. Negative when to is before from.
func DaysBetween(from, to time.Time, loc *time.Location) int {
	fy, fm, fd := from.In(loc).Date()
	ty, tm, td := to.In(loc).Date()
	// Civil dates in UTC have no DST transitions, so every day is 24h.
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DaysBetween(a, b, loc) == 0
}

// LocalNoon returns 12:00 on day's calendar date in loc.
func LocalNoon(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, 12, 0, 0, 0, loc)
}

// DayKey formats the calendar date of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}
