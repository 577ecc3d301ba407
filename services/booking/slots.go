package booking

import (
	"context"
	"fmt"
	"time"

	"courtbot/models"
)

// takenChecker is the single store query slot generation needs.
type takenChecker interface {
	IsTaken(ctx context.Context, key models.BookingKey) (bool, error)
}

// GenerateSlots produces the ordered bookable windows for a day. Slots step
// from opening time by the slot duration while start+duration fits before
// closing. For today, slots whose start has already passed are dropped
// entirely. Slots falling foul of the blackout policy are tagged Blocked but
// kept visible; Taken is a read snapshot of the store at generation time.
func GenerateSlots(ctx context.Context, sched Schedule, clock Clock, store takenChecker, dayKey string, resource models.ResourceKind) ([]models.SlotOption, error) {
	day, err := models.ParseDayKey(dayKey, sched.Location)
	if err != nil {
		return nil, err
	}

	now := clock.Now()
	today := dayKey == now.Format(models.DayKeyLayout)

	var slots []models.SlotOption
	for m := sched.OpenMin; m+sched.SlotMinutes <= sched.CloseMin; m += sched.SlotMinutes {
		start := day.Add(time.Duration(m) * time.Minute)
		end := day.Add(time.Duration(m+sched.SlotMinutes) * time.Minute)
		if today && start.Before(now) {
			continue
		}

		key := models.BookingKey{Day: dayKey, Slot: models.FormatSlotLabel(start, end), Resource: resource}
		taken, err := store.IsTaken(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("check slot %s %s: %w", dayKey, key.Slot, err)
		}

		slots = append(slots, models.SlotOption{
			Start:   start,
			End:     end,
			Label:   key.Slot,
			Taken:   taken,
			Blocked: sched.slotBlocked(m, m+sched.SlotMinutes, resource),
		})
	}
	return slots, nil
}
