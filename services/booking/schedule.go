package booking

import (
	"fmt"
	"time"

	"courtbot/config"
	"courtbot/models"
)

// Schedule holds the deployment's slot policy: operating hours, slot length,
// the siesta blackout window and how far ahead days may be offered. All
// wall-clock values are minutes from midnight in Location.
type Schedule struct {
	Location     *time.Location
	OpenMin      int
	CloseMin     int
	SlotMinutes  int
	SiestaStart  int
	SiestaEnd    int
	LeadDays     int
	EnableSiesta bool
}

// NewScheduleFromConfig builds the schedule from the loaded AppConfig.
func NewScheduleFromConfig() (Schedule, error) {
	cfg := config.AppConfig

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Schedule{}, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	open, err := parseWallClockMinutes(cfg.OpeningTime)
	if err != nil {
		return Schedule{}, fmt.Errorf("OPENING_TIME: %w", err)
	}
	clos, err := parseWallClockMinutes(cfg.ClosingTime)
	if err != nil {
		return Schedule{}, fmt.Errorf("CLOSING_TIME: %w", err)
	}
	siestaStart, err := parseWallClockMinutes(cfg.SiestaStart)
	if err != nil {
		return Schedule{}, fmt.Errorf("SIESTA_START: %w", err)
	}
	siestaEnd, err := parseWallClockMinutes(cfg.SiestaEnd)
	if err != nil {
		return Schedule{}, fmt.Errorf("SIESTA_END: %w", err)
	}
	if cfg.SlotMinutes <= 0 {
		return Schedule{}, fmt.Errorf("SLOT_MINUTES must be positive, got %d", cfg.SlotMinutes)
	}
	if open >= clos {
		return Schedule{}, fmt.Errorf("OPENING_TIME %s must precede CLOSING_TIME %s", cfg.OpeningTime, cfg.ClosingTime)
	}

	return Schedule{
		Location:     loc,
		OpenMin:      open,
		CloseMin:     clos,
		SlotMinutes:  cfg.SlotMinutes,
		SiestaStart:  siestaStart,
		SiestaEnd:    siestaEnd,
		LeadDays:     cfg.BookingLeadDays,
		EnableSiesta: cfg.EnableSiesta,
	}, nil
}

func parseWallClockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid wall-clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// slotBlocked reports whether a slot must not be booked for the resource.
// Court slots overlapping the siesta window are blocked; siesta slots are the
// inverse, only windows inside the siesta range are bookable.
func (s Schedule) slotBlocked(startMin, endMin int, resource models.ResourceKind) bool {
	overlaps := startMin < s.SiestaEnd && endMin > s.SiestaStart
	if resource == models.ResourceSiesta {
		return !overlaps
	}
	return overlaps
}

// LabelBlocked re-validates a selected slot label against the blackout
// policy. Selection must never trust the rendered tag alone.
func (s Schedule) LabelBlocked(label string, resource models.ResourceKind) (bool, error) {
	startMin, endMin, err := models.ParseSlotLabel(label)
	if err != nil {
		return false, err
	}
	return s.slotBlocked(startMin, endMin, resource), nil
}

// DaySelectable reports whether the day may currently be reserved:
// reservations open at local midnight of the preceding day and close at the
// end of the day itself.
func (s Schedule) DaySelectable(dayKey string, now time.Time) bool {
	day, err := models.ParseDayKey(dayKey, s.Location)
	if err != nil {
		return false
	}
	windowOpen := day.AddDate(0, 0, -1)
	windowClose := day.AddDate(0, 0, 1)
	return !now.Before(windowOpen) && now.Before(windowClose)
}
