package booking

import (
	"time"

	"courtbot/models"
)

// Clock is the single source of truth for "today". Every component that
// reasons about time (slot generation, booking windows, expiry) goes through
// one injected instance instead of constructing time zones inline.
type Clock interface {
	Now() time.Time
	DayKey(offset int) string
	Location() *time.Location
}

type zoneClock struct {
	loc *time.Location
}

// NewClock returns a Clock pinned to the given location.
func NewClock(loc *time.Location) Clock {
	return zoneClock{loc: loc}
}

func (c zoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c zoneClock) DayKey(offset int) string {
	return c.Now().AddDate(0, 0, offset).Format(models.DayKeyLayout)
}

func (c zoneClock) Location() *time.Location {
	return c.loc
}

// fixedClock serves tests that need a pinned "now".
type fixedClock struct {
	now time.Time
}

// NewFixedClock returns a Clock frozen at now.
func NewFixedClock(now time.Time) Clock {
	return fixedClock{now: now}
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func (c fixedClock) DayKey(offset int) string {
	return c.now.AddDate(0, 0, offset).Format(models.DayKeyLayout)
}

func (c fixedClock) Location() *time.Location {
	return c.now.Location()
}
