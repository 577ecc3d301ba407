package models

import (
	"fmt"
	"strings"
	"time"
)

// DayKeyLayout is the canonical day key format used both as the store's
// partition key and as the label shown to users.
const DayKeyLayout = "02/01/2006"

// SlotDash separates start and end in a slot label. It is an en dash, not a
// hyphen; labels coming back from chat keyboards carry the same rune.
const SlotDash = "–"

// SlotOption is a transient view of one bookable window within a day. It is
// never persisted; Taken is a read snapshot, not a guarantee.
type SlotOption struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Label   string    `json:"label"`
	Taken   bool      `json:"taken"`
	Blocked bool      `json:"blocked"`
}

// FormatSlotLabel renders the canonical "HH:MM–HH:MM" label.
func FormatSlotLabel(start, end time.Time) string {
	return start.Format("15:04") + SlotDash + end.Format("15:04")
}

// ParseDayKey parses a canonical day key into a date at local midnight.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// ParseSlotLabel splits a "HH:MM–HH:MM" label into start and end minutes
// from midnight.
func ParseSlotLabel(label string) (startMin, endMin int, err error) {
	parts := strings.Split(label, SlotDash)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid slot label %q", label)
	}
	startMin, err = parseWallClock(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	endMin, err = parseWallClock(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	return startMin, endMin, nil
}

// SlotEndTime resolves the absolute end instant of a (day, slot) pair in the
// given location. Used by the expiry sweep.
func SlotEndTime(day, slot string, loc *time.Location) (time.Time, error) {
	d, err := ParseDayKey(day, loc)
	if err != nil {
		return time.Time{}, err
	}
	_, endMin, err := ParseSlotLabel(slot)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(endMin) * time.Minute), nil
}

func parseWallClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
