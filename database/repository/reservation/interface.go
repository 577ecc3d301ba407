package reservationRepo

import (
	"context"
	"errors"
	"time"

	"courtbot/models"
)

// ErrNotFound is returned by Get when no booking exists for the key.
var ErrNotFound = errors.New("booking not found")

// ReservationStore is the durable mapping from (day, slot, resource) to a
// booking record. Claim is the single correctness-critical operation: it must
// be a true atomic set-if-absent, never a read-then-write pair.
//
// Every method returns a non-nil error when the backing storage is
// unreachable; callers must treat such failures as "cannot proceed" rather
// than assuming a slot free or taken.
type ReservationStore interface {
	// IsTaken reports whether a booking exists for the key.
	IsTaken(ctx context.Context, key models.BookingKey) (bool, error)

	// Claim stores booking iff no booking exists for its key. It returns
	// false with a nil error when the key was already claimed.
	Claim(ctx context.Context, booking models.Booking) (bool, error)

	// Get returns the booking for the key, or ErrNotFound.
	Get(ctx context.Context, key models.BookingKey) (*models.Booking, error)

	// Delete removes the booking for the key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key models.BookingKey) error

	// ListByHolder returns the keys of every booking held by holderID.
	ListByHolder(ctx context.Context, holderID string) ([]models.BookingKey, error)

	// SweepExpired removes every booking whose slot end plus the configured
	// grace period is at or before ref, as well as records whose day key or
	// slot label no longer parses. Safe to call concurrently with Claim.
	SweepExpired(ctx context.Context, ref time.Time) error
}
