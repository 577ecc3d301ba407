package reservationRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"courtbot/models"
	"courtbot/utils"
)

// FileReservationStore keeps bookings in a single JSON file. All operations
// run under one mutex, which makes Claim a true set-if-absent.
type FileReservationStore struct {
	path  string
	loc   *time.Location
	grace time.Duration

	mu       sync.Mutex
	bookings map[string]models.Booking
}

// NewFileReservationStore loads (or creates) the JSON file at path.
func NewFileReservationStore(path string, loc *time.Location, grace time.Duration) (*FileReservationStore, error) {
	s := &FileReservationStore{
		path:     path,
		loc:      loc,
		grace:    grace,
		bookings: make(map[string]models.Booking),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read bookings file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.bookings); err != nil {
			return nil, fmt.Errorf("parse bookings file: %w", err)
		}
	}
	return s, nil
}

func fileKey(key models.BookingKey) string {
	return fmt.Sprintf("%s|%s|%s", key.Resource, key.Day, key.Slot)
}

// persist writes the current map back to disk. Caller holds the mutex.
func (s *FileReservationStore) persist() error {
	data, err := json.MarshalIndent(s.bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write bookings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace bookings file: %w", err)
	}
	return nil
}

func (s *FileReservationStore) IsTaken(ctx context.Context, key models.BookingKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.bookings[fileKey(key)]
	return ok, nil
}

func (s *FileReservationStore) Claim(ctx context.Context, booking models.Booking) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := fileKey(booking.Key())
	if _, ok := s.bookings[k]; ok {
		return false, nil
	}
	s.bookings[k] = booking
	if err := s.persist(); err != nil {
		delete(s.bookings, k)
		return false, err
	}
	return true, nil
}

func (s *FileReservationStore) Get(ctx context.Context, key models.BookingKey) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[fileKey(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (s *FileReservationStore) Delete(ctx context.Context, key models.BookingKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := fileKey(key)
	b, ok := s.bookings[k]
	if !ok {
		return nil
	}
	delete(s.bookings, k)
	if err := s.persist(); err != nil {
		// Keep memory and file in agreement, otherwise the cancelled booking
		// comes back on restart.
		s.bookings[k] = b
		return err
	}
	return nil
}

func (s *FileReservationStore) ListByHolder(ctx context.Context, holderID string) ([]models.BookingKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []models.BookingKey
	for _, b := range s.bookings {
		if b.HolderID == holderID {
			keys = append(keys, b.Key())
		}
	}
	return keys, nil
}

func (s *FileReservationStore) SweepExpired(ctx context.Context, ref time.Time) error {
	logger := utils.GetLogger()
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for k, b := range s.bookings {
		end, err := models.SlotEndTime(b.Day, b.Slot, s.loc)
		if err != nil {
			// Corrupt record, drop it rather than failing the sweep.
			logger.Warn("dropping malformed booking record",
				zap.String("day", b.Day), zap.String("slot", b.Slot), zap.Error(err))
			delete(s.bookings, k)
			changed = true
			continue
		}
		if !end.Add(s.grace).After(ref) {
			delete(s.bookings, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persist()
}
