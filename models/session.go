package models

// Stage enumerates the steps of the guided reservation dialogue.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitingDay
	StageAwaitingSlot
	StageAwaitingUnit
	StageAwaitingName
	StageAwaitingCancelChoice
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAwaitingDay:
		return "awaiting_day"
	case StageAwaitingSlot:
		return "awaiting_slot"
	case StageAwaitingUnit:
		return "awaiting_unit"
	case StageAwaitingName:
		return "awaiting_name"
	case StageAwaitingCancelChoice:
		return "awaiting_cancel_choice"
	}
	return "unknown"
}

// Session holds one user's progress through the dialogue. Sessions live only
// in process memory; they are never persisted.
type Session struct {
	UserID        string
	Stage         Stage
	Resource      ResourceKind
	Day           string
	Slot          string
	Unit          string
	CancelOptions []BookingKey // offered during cancellation only
}

// User identifies the chat peer driving a session.
type User struct {
	ID     string // opaque identifier, also the booking holder id
	Handle string // display handle used in announcements
}
