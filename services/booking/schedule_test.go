package booking

import (
	"testing"
	"time"

	"courtbot/models"
)

func TestDaySelectableWindow(t *testing.T) {
	sched := testSchedule()

	cases := []struct {
		name string
		now  time.Time
		day  string
		want bool
	}{
		{"today midday", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), "01/03/2025", true},
		{"tomorrow", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), "02/03/2025", true},
		{"day after tomorrow too early", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), "03/03/2025", false},
		{"opens at midnight of previous day", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "02/03/2025", true},
		{"closes at end of the day", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), "01/03/2025", false},
		{"last instant of the day", time.Date(2025, 3, 1, 23, 59, 59, 0, time.UTC), "01/03/2025", true},
		{"day already over", time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC), "01/03/2025", false},
		{"unparseable day key", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), "garbage", false},
	}
	for _, tc := range cases {
		if got := sched.DaySelectable(tc.day, tc.now); got != tc.want {
			t.Errorf("%s: DaySelectable(%q)=%v, want %v", tc.name, tc.day, got, tc.want)
		}
	}
}

func TestLabelBlocked(t *testing.T) {
	sched := testSchedule()

	cases := []struct {
		label    string
		resource models.ResourceKind
		want     bool
	}{
		{"14:00–15:30", models.ResourceCourt, true}, // partial overlap
		{"14:30–16:00", models.ResourceCourt, true},
		{"13:00–14:30", models.ResourceCourt, false}, // touches, no overlap
		{"17:30–19:00", models.ResourceCourt, false},
		{"10:00–11:30", models.ResourceCourt, false},
		{"14:30–16:00", models.ResourceSiesta, false},
		{"10:00–11:30", models.ResourceSiesta, true},
	}
	for _, tc := range cases {
		got, err := sched.LabelBlocked(tc.label, tc.resource)
		if err != nil {
			t.Fatalf("LabelBlocked(%q): %v", tc.label, err)
		}
		if got != tc.want {
			t.Errorf("LabelBlocked(%q, %s)=%v, want %v", tc.label, tc.resource, got, tc.want)
		}
	}

	if _, err := sched.LabelBlocked("not a slot", models.ResourceCourt); err == nil {
		t.Error("expected error for malformed label")
	}
}

func TestClockDayKey(t *testing.T) {
	clock := NewFixedClock(time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC))
	if got := clock.DayKey(0); got != "28/02/2025" {
		t.Errorf("DayKey(0)=%q", got)
	}
	if got := clock.DayKey(1); got != "01/03/2025" {
		t.Errorf("DayKey(1)=%q, want rollover into March", got)
	}
}
