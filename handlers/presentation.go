package handlers

import (
	"fmt"
	"regexp"
	"strings"

	"courtbot/models"
	"courtbot/services/notification"
)

// Keyboard button labels and their status glyphs. These are presentation
// protocol only: inbound text is mapped to a typed intent here, and the
// dialogue engine never sees the decoration.
const (
	reserveCourtButton  = "🎾 Reservar pista"
	reserveSiestaButton = "😴 Reservar siesta"
	cancelButton        = "❌ Cancelar reserva"

	glyphFree    = "🟩"
	glyphTaken   = "🟥"
	glyphBlocked = "🚫"
)

var (
	slotLabelRe    = regexp.MustCompile(`^\d{2}:\d{2}–\d{2}:\d{2}$`)
	cancelChoiceRe = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4}) - (\d{2}:\d{2}–\d{2}:\d{2})$`)
	dayChoiceRe    = regexp.MustCompile(`^(Hoy|Mañana|Pasado mañana|En (\d+) días)`)
)

// ParseIntent maps raw message text to a typed intent, stripping keyboard
// decoration first.
func ParseIntent(text string) models.Intent {
	text = strings.TrimSpace(text)

	switch {
	case text == "/start":
		return models.Intent{Kind: models.IntentStart, Text: text}
	case strings.HasPrefix(text, reserveCourtButton), strings.HasPrefix(text, "🎾"):
		return models.Intent{Kind: models.IntentReserve, Resource: models.ResourceCourt, Text: text}
	case strings.HasPrefix(text, reserveSiestaButton):
		return models.Intent{Kind: models.IntentReserve, Resource: models.ResourceSiesta, Text: text}
	case strings.HasPrefix(text, cancelButton), strings.HasPrefix(text, "❌"):
		return models.Intent{Kind: models.IntentCancel, Text: text}
	}

	if m := cancelChoiceRe.FindStringSubmatch(text); m != nil {
		return models.Intent{Kind: models.IntentCancelChoice, Day: m[1], Slot: m[2], Text: text}
	}

	if m := dayChoiceRe.FindStringSubmatch(text); m != nil {
		offset := 0
		switch {
		case m[1] == "Mañana":
			offset = 1
		case m[1] == "Pasado mañana":
			offset = 2
		case m[2] != "":
			fmt.Sscanf(m[2], "%d", &offset)
		}
		return models.Intent{Kind: models.IntentDaySelected, DayOffset: offset, Text: text}
	}

	if bare := stripSlotGlyphs(text); slotLabelRe.MatchString(bare) {
		return models.Intent{Kind: models.IntentSlotSelected, Slot: bare, Text: text}
	}

	return models.Intent{Kind: models.IntentText, Text: text}
}

func stripSlotGlyphs(text string) string {
	for _, g := range []string{glyphFree, glyphTaken, glyphBlocked} {
		text = strings.ReplaceAll(text, g, "")
	}
	return strings.TrimSpace(text)
}

// RenderPrompt turns a typed prompt into a deliverable message, adding day
// labels, slot status glyphs and the main menu keyboard.
func RenderPrompt(p models.Prompt, siestaEnabled bool) notification.Message {
	msg := notification.Message{Text: p.Text, RemoveKeyboard: p.RemoveKeyboard}

	switch {
	case p.MainMenu:
		row := []string{reserveCourtButton, cancelButton}
		msg.Keyboard = [][]string{row}
		if siestaEnabled {
			msg.Keyboard = [][]string{{reserveCourtButton, reserveSiestaButton}, {cancelButton}}
		}
	case len(p.DayOffsets) > 0:
		var row []string
		for _, d := range p.DayOffsets {
			row = append(row, dayLabel(d))
		}
		msg.Keyboard = [][]string{row}
	case len(p.Slots) > 0:
		for _, s := range p.Slots {
			glyph := glyphFree
			if s.Blocked {
				glyph = glyphBlocked
			} else if s.Taken {
				glyph = glyphTaken
			}
			msg.Keyboard = append(msg.Keyboard, []string{glyph + " " + s.Label})
		}
	case len(p.CancelOptions) > 0:
		for _, opt := range p.CancelOptions {
			msg.Keyboard = append(msg.Keyboard, []string{opt.Day + " - " + opt.Slot})
		}
	}
	return msg
}

func dayLabel(d models.DayOption) string {
	switch d.Offset {
	case 0:
		return fmt.Sprintf("Hoy (%s)", d.Key)
	case 1:
		return fmt.Sprintf("Mañana (%s)", d.Key)
	case 2:
		return fmt.Sprintf("Pasado mañana (%s)", d.Key)
	}
	return fmt.Sprintf("En %d días (%s)", d.Offset, d.Key)
}
