package handlers

import (
	"testing"
	"time"

	"courtbot/models"
)

func TestParseIntent(t *testing.T) {
	cases := []struct {
		text string
		want models.Intent
	}{
		{"/start", models.Intent{Kind: models.IntentStart}},
		{"🎾 Reservar pista", models.Intent{Kind: models.IntentReserve, Resource: models.ResourceCourt}},
		{"😴 Reservar siesta", models.Intent{Kind: models.IntentReserve, Resource: models.ResourceSiesta}},
		{"❌ Cancelar reserva", models.Intent{Kind: models.IntentCancel}},
		{"Hoy (01/03/2025)", models.Intent{Kind: models.IntentDaySelected, DayOffset: 0}},
		{"Mañana (02/03/2025)", models.Intent{Kind: models.IntentDaySelected, DayOffset: 1}},
		{"Pasado mañana (03/03/2025)", models.Intent{Kind: models.IntentDaySelected, DayOffset: 2}},
		{"En 3 días (04/03/2025)", models.Intent{Kind: models.IntentDaySelected, DayOffset: 3}},
		{"🟩 11:30–13:00", models.Intent{Kind: models.IntentSlotSelected, Slot: "11:30–13:00"}},
		{"🟥 11:30–13:00", models.Intent{Kind: models.IntentSlotSelected, Slot: "11:30–13:00"}},
		{"11:30–13:00", models.Intent{Kind: models.IntentSlotSelected, Slot: "11:30–13:00"}},
		{"01/03/2025 - 11:30–13:00", models.Intent{Kind: models.IntentCancelChoice, Day: "01/03/2025", Slot: "11:30–13:00"}},
		{"2B", models.Intent{Kind: models.IntentText}},
		{"hola que tal", models.Intent{Kind: models.IntentText}},
	}
	for _, tc := range cases {
		got := ParseIntent(tc.text)
		if got.Kind != tc.want.Kind {
			t.Errorf("ParseIntent(%q).Kind=%v, want %v", tc.text, got.Kind, tc.want.Kind)
			continue
		}
		if got.Resource != tc.want.Resource || got.DayOffset != tc.want.DayOffset ||
			got.Slot != tc.want.Slot || got.Day != tc.want.Day {
			t.Errorf("ParseIntent(%q)=%+v, want %+v", tc.text, got, tc.want)
		}
	}
}

func TestRenderPromptMainMenu(t *testing.T) {
	msg := RenderPrompt(models.Prompt{Text: "hola", MainMenu: true}, false)
	if len(msg.Keyboard) != 1 || len(msg.Keyboard[0]) != 2 {
		t.Fatalf("keyboard %+v", msg.Keyboard)
	}
	if msg.Keyboard[0][0] != reserveCourtButton || msg.Keyboard[0][1] != cancelButton {
		t.Errorf("keyboard %+v", msg.Keyboard)
	}

	msg = RenderPrompt(models.Prompt{Text: "hola", MainMenu: true}, true)
	if len(msg.Keyboard) != 2 || msg.Keyboard[0][1] != reserveSiestaButton {
		t.Errorf("siesta keyboard %+v", msg.Keyboard)
	}
}

func TestRenderPromptSlotGlyphs(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := models.Prompt{Text: "elige", Slots: []models.SlotOption{
		{Label: "10:00–11:30", Start: start, End: start.Add(90 * time.Minute)},
		{Label: "11:30–13:00", Taken: true},
		{Label: "14:30–16:00", Blocked: true},
		{Label: "16:00–17:30", Taken: true, Blocked: true},
	}}
	msg := RenderPrompt(p, false)

	want := []string{
		"🟩 10:00–11:30",
		"🟥 11:30–13:00",
		"🚫 14:30–16:00",
		"🚫 16:00–17:30", // blocked wins over taken
	}
	if len(msg.Keyboard) != len(want) {
		t.Fatalf("keyboard %+v", msg.Keyboard)
	}
	for i, row := range msg.Keyboard {
		if row[0] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, row[0], want[i])
		}
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	// A rendered slot button must parse back to the bare label.
	p := models.Prompt{Slots: []models.SlotOption{{Label: "11:30–13:00"}}}
	msg := RenderPrompt(p, false)
	intent := ParseIntent(msg.Keyboard[0][0])
	if intent.Kind != models.IntentSlotSelected || intent.Slot != "11:30–13:00" {
		t.Errorf("round trip: %+v", intent)
	}

	// Same for cancellation options.
	p = models.Prompt{CancelOptions: []models.BookingKey{{Day: "01/03/2025", Slot: "11:30–13:00", Resource: models.ResourceCourt}}}
	msg = RenderPrompt(p, false)
	intent = ParseIntent(msg.Keyboard[0][0])
	if intent.Kind != models.IntentCancelChoice || intent.Day != "01/03/2025" || intent.Slot != "11:30–13:00" {
		t.Errorf("cancel round trip: %+v", intent)
	}

	// Day options too.
	p = models.Prompt{DayOffsets: []models.DayOption{{Offset: 1, Key: "02/03/2025"}}}
	msg = RenderPrompt(p, false)
	intent = ParseIntent(msg.Keyboard[0][0])
	if intent.Kind != models.IntentDaySelected || intent.DayOffset != 1 {
		t.Errorf("day round trip: %+v", intent)
	}
}
