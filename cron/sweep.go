package cron

import (
	"context"
	"log"
	"time"

	reservationRepo "courtbot/database/repository/reservation"
	"courtbot/services/booking"
)

// StartSweepCron removes elapsed bookings on a fixed interval until ctx is
// cancelled. Safe to run alongside live claims.
func StartSweepCron(ctx context.Context, store reservationRepo.ReservationStore, clock booking.Clock, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Sweep cron shutdown signal received.")
			return
		case <-ticker.C:
			if err := store.SweepExpired(ctx, clock.Now()); err != nil {
				log.Printf("Booking sweep failed: %v\n", err)
			}
		}
	}
}
