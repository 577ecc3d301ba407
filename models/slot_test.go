package models

import (
	"testing"
	"time"
)

func TestParseSlotLabel(t *testing.T) {
	start, end, err := ParseSlotLabel("11:30–13:00")
	if err != nil {
		t.Fatal(err)
	}
	if start != 11*60+30 || end != 13*60 {
		t.Errorf("got %d–%d", start, end)
	}

	for _, bad := range []string{"", "11:30", "11:30-13:00", "25:00–26:00", "siesta"} {
		if _, _, err := ParseSlotLabel(bad); err == nil {
			t.Errorf("ParseSlotLabel(%q): expected error", bad)
		}
	}
}

func TestSlotEndTime(t *testing.T) {
	end, err := SlotEndTime("01/03/2025", "20:30–22:00", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("got %v, want %v", end, want)
	}

	if _, err := SlotEndTime("2025-03-01", "20:30–22:00", time.UTC); err == nil {
		t.Error("ISO day key must not parse")
	}
}

func TestFormatSlotLabelRoundTrip(t *testing.T) {
	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	label := FormatSlotLabel(start, start.Add(90*time.Minute))
	if label != "08:00–09:30" {
		t.Fatalf("label %q", label)
	}
	s, e, err := ParseSlotLabel(label)
	if err != nil || s != 8*60 || e != 9*60+30 {
		t.Errorf("round trip: %d %d %v", s, e, err)
	}
}
