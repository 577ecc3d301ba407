package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtbot/models"
)

type mockTakenChecker struct {
	taken map[models.BookingKey]bool
	err   error
}

func (m *mockTakenChecker) IsTaken(ctx context.Context, key models.BookingKey) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.taken[key], nil
}

func testSchedule() Schedule {
	return Schedule{
		Location:    time.UTC,
		OpenMin:     10 * 60,      // 10:00
		CloseMin:    22 * 60,      // 22:00
		SlotMinutes: 90,
		SiestaStart: 14*60 + 30, // 14:30
		SiestaEnd:   17*60 + 30, // 17:30
		LeadDays:    2,
	}
}

func TestGenerateSlotsFullDay(t *testing.T) {
	sched := testSchedule()
	clock := NewFixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	store := &mockTakenChecker{taken: map[models.BookingKey]bool{}}

	slots, err := GenerateSlots(context.Background(), sched, clock, store, "01/03/2025", models.ResourceCourt)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	want := []string{
		"10:00–11:30", "11:30–13:00", "13:00–14:30", "14:30–16:00",
		"16:00–17:30", "17:30–19:00", "19:00–20:30", "20:30–22:00",
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d", len(slots), len(want))
	}
	for i, s := range slots {
		if s.Label != want[i] {
			t.Errorf("slot %d: got %q, want %q", i, s.Label, want[i])
		}
		if s.Taken {
			t.Errorf("slot %q unexpectedly taken", s.Label)
		}
	}
}

func TestGenerateSlotsDropsPastStartsToday(t *testing.T) {
	sched := testSchedule()
	now := time.Date(2025, 3, 1, 13, 30, 0, 0, time.UTC)
	clock := NewFixedClock(now)
	store := &mockTakenChecker{taken: map[models.BookingKey]bool{}}

	slots, err := GenerateSlots(context.Background(), sched, clock, store, "01/03/2025", models.ResourceCourt)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	for _, s := range slots {
		if s.Start.Before(now) {
			t.Errorf("slot %q starts in the past", s.Label)
		}
	}
	if len(slots) != 5 {
		t.Errorf("got %d slots, want 5 (first three elapsed)", len(slots))
	}

	// A future day keeps its full grid.
	slots, err = GenerateSlots(context.Background(), sched, clock, store, "02/03/2025", models.ResourceCourt)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 8 {
		t.Errorf("future day: got %d slots, want 8", len(slots))
	}
}

func TestGenerateSlotsBlackoutTagging(t *testing.T) {
	sched := testSchedule()
	clock := NewFixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	store := &mockTakenChecker{taken: map[models.BookingKey]bool{}}

	slots, err := GenerateSlots(context.Background(), sched, clock, store, "01/03/2025", models.ResourceCourt)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	blocked := map[string]bool{"14:30–16:00": true, "16:00–17:30": true}
	for _, s := range slots {
		if s.Blocked != blocked[s.Label] {
			t.Errorf("slot %q: blocked=%v, want %v", s.Label, s.Blocked, blocked[s.Label])
		}
	}
}

func TestGenerateSlotsSiestaResourceInvertsBlackout(t *testing.T) {
	sched := testSchedule()
	clock := NewFixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	store := &mockTakenChecker{taken: map[models.BookingKey]bool{}}

	slots, err := GenerateSlots(context.Background(), sched, clock, store, "01/03/2025", models.ResourceSiesta)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	for _, s := range slots {
		inSiesta := s.Label == "14:30–16:00" || s.Label == "16:00–17:30"
		if s.Blocked == inSiesta {
			t.Errorf("siesta slot %q: blocked=%v", s.Label, s.Blocked)
		}
	}
}

func TestGenerateSlotsMarksTakenFromStore(t *testing.T) {
	sched := testSchedule()
	clock := NewFixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	key := models.BookingKey{Day: "01/03/2025", Slot: "11:30–13:00", Resource: models.ResourceCourt}
	store := &mockTakenChecker{taken: map[models.BookingKey]bool{key: true}}

	slots, err := GenerateSlots(context.Background(), sched, clock, store, "01/03/2025", models.ResourceCourt)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	for _, s := range slots {
		if (s.Label == key.Slot) != s.Taken {
			t.Errorf("slot %q: taken=%v", s.Label, s.Taken)
		}
	}
}

func TestGenerateSlotsStoreFailureSurfaces(t *testing.T) {
	sched := testSchedule()
	clock := NewFixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	store := &mockTakenChecker{err: errors.New("connection refused")}

	if _, err := GenerateSlots(context.Background(), sched, clock, store, "01/03/2025", models.ResourceCourt); err == nil {
		t.Fatal("expected error when store is unavailable")
	}
}

func TestGenerateSlotsDropsPartialFinalSlot(t *testing.T) {
	sched := testSchedule()
	sched.CloseMin = 21*60 + 45 // 21:45, not divisible by 90m from 10:00
	clock := NewFixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	store := &mockTakenChecker{taken: map[models.BookingKey]bool{}}

	slots, err := GenerateSlots(context.Background(), sched, clock, store, "01/03/2025", models.ResourceCourt)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	last := slots[len(slots)-1]
	if last.Label != "19:00–20:30" {
		t.Errorf("last slot %q, want 19:00–20:30 (20:30–22:00 would overrun closing)", last.Label)
	}
}
