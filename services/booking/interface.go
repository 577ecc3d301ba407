package booking

import (
	"context"

	reservationRepo "courtbot/database/repository/reservation"
	"courtbot/models"
	"courtbot/services/notification"
)

// FlowService drives one user's reservation dialogue. Handle resolves the
// current session, applies the intent, and returns the replies to deliver.
// The returned error reports internal failures already reflected in the
// replies; callers log it and deliver the replies either way.
type FlowService interface {
	Handle(ctx context.Context, user models.User, intent models.Intent) ([]models.Prompt, error)
}

// DefaultFlowService implements FlowService.
type DefaultFlowService struct {
	Store    reservationRepo.ReservationStore
	Sessions *SessionRepository
	Clock    Clock
	Schedule Schedule
	Notifier notification.Notifier
}
