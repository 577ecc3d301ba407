package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reservationRepo "courtbot/database/repository/reservation"
	"courtbot/models"
	"courtbot/utils"
)

// User-visible dialogue strings. Decorative status glyphs on keyboard
// options live in the presentation layer, not here.
const (
	msgWelcome     = "🎾 ¡Reserva tu pista aquí!\n\nPulsa un botón para empezar.\n\nTodas las reservas se publican en el grupo automáticamente 👇"
	msgChooseDay   = "📅 ¿Para qué día quieres reservar?"
	msgChooseSlot  = "🕒 Elige una hora:"
	msgAskUnit     = "🏠 ¿Cuál es tu piso? (ej: 2B o 3A)"
	msgAskName     = "👤 ¿A qué nombre hago la reserva?"
	msgTaken       = "⛔ Esa hora ya está reservada."
	msgBlocked     = "😴 Esa franja cae en la siesta y no se puede reservar."
	msgDayClosed   = "📅 Ese día todavía no admite reservas."
	msgSlotGone    = "🕒 Esa hora ya no está disponible, elige otra:"
	msgNoSlots     = "🔎 No quedan horas libres para ese día."
	msgStoreDown   = "⚠️ No se ha podido completar la operación. Inténtalo de nuevo en unos minutos."
	msgNoBookings  = "🔎 No tienes reservas activas."
	msgWhichCancel = "❓ ¿Cuál reserva quieres cancelar?"
	msgCancelAgain = "❓ No he encontrado esa reserva. Elige una de la lista:"
	msgCancelGone  = "🔎 Esa reserva ya no existe."
	msgCancelled   = "❌ Reserva cancelada."
	msgSiestaOff   = "😴 Las reservas de siesta no están disponibles."
)

// Handle applies one inbound intent to the user's session.
func (svc *DefaultFlowService) Handle(ctx context.Context, user models.User, intent models.Intent) ([]models.Prompt, error) {
	session := svc.Sessions.Get(user.ID)

	switch intent.Kind {
	case models.IntentStart:
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgWelcome), nil
	case models.IntentReserve:
		return svc.startReservation(user, intent.Resource)
	case models.IntentCancel:
		return svc.startCancellation(ctx, user)
	case models.IntentDaySelected:
		return svc.daySelected(ctx, user, session, intent.DayOffset)
	case models.IntentSlotSelected:
		return svc.slotSelected(ctx, user, session, intent.Slot)
	case models.IntentCancelChoice:
		return svc.cancelChoice(ctx, user, session, models.BookingKey{Day: intent.Day, Slot: intent.Slot})
	case models.IntentText:
		return svc.freeText(ctx, user, session, intent.Text)
	}

	svc.Sessions.Reset(user.ID)
	return svc.mainMenu(msgWelcome), nil
}

// startReservation opens the day menu. Only days inside their booking window
// are offered; the selection transition re-validates regardless.
func (svc *DefaultFlowService) startReservation(user models.User, resource models.ResourceKind) ([]models.Prompt, error) {
	if resource == "" {
		resource = models.ResourceCourt
	}
	// Button text is not trusted either: a siesta intent can arrive on a
	// deployment whose menu never offers it.
	if resource == models.ResourceSiesta && !svc.Schedule.EnableSiesta {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgSiestaOff), nil
	}

	now := svc.Clock.Now()
	var days []models.DayOption
	for offset := 0; offset <= svc.Schedule.LeadDays; offset++ {
		key := svc.Clock.DayKey(offset)
		if svc.Schedule.DaySelectable(key, now) {
			days = append(days, models.DayOption{Offset: offset, Key: key})
		}
	}
	if len(days) == 0 {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgDayClosed), nil
	}

	svc.Sessions.Put(models.Session{
		UserID:   user.ID,
		Stage:    models.StageAwaitingDay,
		Resource: resource,
	})
	return []models.Prompt{{Text: msgChooseDay, DayOffsets: days}}, nil
}

func (svc *DefaultFlowService) daySelected(ctx context.Context, user models.User, session models.Session, offset int) ([]models.Prompt, error) {
	if session.Stage != models.StageAwaitingDay {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgWelcome), nil
	}

	dayKey := svc.Clock.DayKey(offset)
	if offset < 0 || offset > svc.Schedule.LeadDays || !svc.Schedule.DaySelectable(dayKey, svc.Clock.Now()) {
		return svc.startReservationRetry(user, session.Resource, msgDayClosed)
	}

	slots, err := GenerateSlots(ctx, svc.Schedule, svc.Clock, svc.Store, dayKey, session.Resource)
	if err != nil {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgStoreDown), NewStoreError(err.Error())
	}
	if len(slots) == 0 {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgNoSlots), nil
	}

	session.Stage = models.StageAwaitingSlot
	session.Day = dayKey
	svc.Sessions.Put(session)
	return []models.Prompt{{Text: msgChooseSlot, Slots: slots}}, nil
}

// slotSelected recomputes the slot list fresh before matching: time has
// passed since the keyboard was rendered and the snapshot may be stale.
func (svc *DefaultFlowService) slotSelected(ctx context.Context, user models.User, session models.Session, label string) ([]models.Prompt, error) {
	if session.Stage != models.StageAwaitingSlot {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgWelcome), nil
	}

	slots, err := GenerateSlots(ctx, svc.Schedule, svc.Clock, svc.Store, session.Day, session.Resource)
	if err != nil {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgStoreDown), NewStoreError(err.Error())
	}

	var chosen *models.SlotOption
	for i := range slots {
		if slots[i].Label == label {
			chosen = &slots[i]
			break
		}
	}
	switch {
	case chosen == nil:
		return []models.Prompt{{Text: msgSlotGone, Slots: slots}}, nil
	case chosen.Blocked:
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgBlocked), nil
	case chosen.Taken:
		return []models.Prompt{{Text: msgTaken + "\n" + msgChooseSlot, Slots: slots}}, nil
	}

	session.Stage = models.StageAwaitingUnit
	session.Slot = label
	svc.Sessions.Put(session)
	return []models.Prompt{{Text: msgAskUnit, RemoveKeyboard: true}}, nil
}

func (svc *DefaultFlowService) freeText(ctx context.Context, user models.User, session models.Session, text string) ([]models.Prompt, error) {
	text = strings.TrimSpace(text)

	switch session.Stage {
	case models.StageAwaitingUnit:
		if text == "" {
			return []models.Prompt{{Text: msgAskUnit}}, nil
		}
		session.Stage = models.StageAwaitingName
		session.Unit = text
		svc.Sessions.Put(session)
		return []models.Prompt{{Text: msgAskName}}, nil

	case models.StageAwaitingName:
		if text == "" {
			return []models.Prompt{{Text: msgAskName}}, nil
		}
		return svc.commit(ctx, user, session, text)

	case models.StageAwaitingCancelChoice:
		// Decorated free text that did not parse as a choice: re-prompt.
		return []models.Prompt{{Text: msgCancelAgain, CancelOptions: session.CancelOptions}}, nil
	}

	svc.Sessions.Reset(user.ID)
	return svc.mainMenu(msgWelcome), nil
}

// commit re-validates the draft and attempts the atomic claim. A lost race
// reports the conflict and discards the draft without side effects.
func (svc *DefaultFlowService) commit(ctx context.Context, user models.User, session models.Session, name string) ([]models.Prompt, error) {
	defer svc.Sessions.Reset(user.ID)

	// The keyboard label is not trusted: resource availability, blackout and
	// booking-window rules are checked again right before claiming.
	if session.Resource == models.ResourceSiesta && !svc.Schedule.EnableSiesta {
		return svc.mainMenu(msgSiestaOff), nil
	}
	if blocked, err := svc.Schedule.LabelBlocked(session.Slot, session.Resource); err != nil || blocked {
		return svc.mainMenu(msgBlocked), nil
	}
	if !svc.Schedule.DaySelectable(session.Day, svc.Clock.Now()) {
		return svc.mainMenu(msgDayClosed), nil
	}

	booking := models.Booking{
		ID:        uuid.New().String(),
		Day:       session.Day,
		Slot:      session.Slot,
		Resource:  session.Resource,
		HolderID:  user.ID,
		Holder:    user.Handle,
		Unit:      session.Unit,
		Name:      name,
		CreatedAt: svc.Clock.Now(),
	}

	ok, err := svc.Store.Claim(ctx, booking)
	if err != nil {
		// Indeterminate claim: assume not claimed and tell the user to retry.
		return svc.mainMenu(msgStoreDown), NewStoreError(err.Error())
	}
	if !ok {
		return svc.mainMenu(msgTaken), nil
	}

	confirmation := fmt.Sprintf("✅ ¡Reservado!\n📅 Día: %s\n🕒 Hora: %s\n🏠 Piso: %s\n👤 Nombre: %s",
		booking.Day, booking.Slot, booking.Unit, booking.Name)
	svc.announce(ctx, fmt.Sprintf("📢 Nueva reserva%s:\n📅 %s\n🕒 %s\n🏠 Piso: %s\n👤 Usuario: @%s",
		resourceSuffix(booking.Resource), booking.Day, booking.Slot, booking.Unit, booking.Holder))

	return []models.Prompt{
		{Text: confirmation, RemoveKeyboard: true},
		{Text: msgWelcome, MainMenu: true},
	}, nil
}

func (svc *DefaultFlowService) startCancellation(ctx context.Context, user models.User) ([]models.Prompt, error) {
	keys, err := svc.Store.ListByHolder(ctx, user.ID)
	if err != nil {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgStoreDown), NewStoreError(err.Error())
	}
	if len(keys) == 0 {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgNoBookings), nil
	}

	svc.Sessions.Put(models.Session{
		UserID:        user.ID,
		Stage:         models.StageAwaitingCancelChoice,
		CancelOptions: keys,
	})
	return []models.Prompt{{Text: msgWhichCancel, CancelOptions: keys}}, nil
}

func (svc *DefaultFlowService) cancelChoice(ctx context.Context, user models.User, session models.Session, choice models.BookingKey) ([]models.Prompt, error) {
	if session.Stage != models.StageAwaitingCancelChoice {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgWelcome), nil
	}

	var match *models.BookingKey
	for i := range session.CancelOptions {
		if session.CancelOptions[i].Day == choice.Day && session.CancelOptions[i].Slot == choice.Slot {
			match = &session.CancelOptions[i]
			break
		}
	}
	if match == nil {
		return []models.Prompt{{Text: msgCancelAgain, CancelOptions: session.CancelOptions}}, nil
	}

	booking, err := svc.Store.Get(ctx, *match)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgCancelGone), nil
	}
	if err != nil {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgStoreDown), NewStoreError(err.Error())
	}
	if booking.HolderID != user.ID {
		// Offered set is per holder; a mismatch means the slot was re-claimed
		// by someone else after this user's booking was swept.
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgCancelGone), nil
	}

	if err := svc.Store.Delete(ctx, *match); err != nil {
		svc.Sessions.Reset(user.ID)
		return svc.mainMenu(msgStoreDown), NewStoreError(err.Error())
	}

	svc.announce(ctx, fmt.Sprintf("❌ Reserva cancelada%s:\n📅 %s\n🕒 %s\n👤 Usuario: @%s",
		resourceSuffix(match.Resource), match.Day, match.Slot, user.Handle))

	svc.Sessions.Reset(user.ID)
	return []models.Prompt{
		{Text: msgCancelled, RemoveKeyboard: true},
		{Text: msgWelcome, MainMenu: true},
	}, nil
}

// startReservationRetry re-opens the day menu with a rejection note.
func (svc *DefaultFlowService) startReservationRetry(user models.User, resource models.ResourceKind, note string) ([]models.Prompt, error) {
	prompts, err := svc.startReservation(user, resource)
	if err != nil || len(prompts) == 0 {
		return prompts, err
	}
	prompts[0].Text = note + "\n" + prompts[0].Text
	return prompts, nil
}

// announce broadcasts to the shared channel, fire-and-forget.
func (svc *DefaultFlowService) announce(ctx context.Context, text string) {
	if svc.Notifier == nil {
		return
	}
	if err := svc.Notifier.NotifyChannel(ctx, text); err != nil {
		utils.GetLogger().Error("channel announcement failed", zap.Error(err))
	}
}

func (svc *DefaultFlowService) mainMenu(text string) []models.Prompt {
	return []models.Prompt{{Text: text, MainMenu: true}}
}

func resourceSuffix(r models.ResourceKind) string {
	if r == models.ResourceSiesta {
		return " de siesta"
	}
	return ""
}

// StartupSweep removes stale and malformed bookings, mirroring the periodic
// sweep at process start.
func StartupSweep(ctx context.Context, store reservationRepo.ReservationStore, clock Clock) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := store.SweepExpired(ctx, clock.Now()); err != nil {
		utils.GetLogger().Error("startup sweep failed", zap.Error(err))
	}
}
