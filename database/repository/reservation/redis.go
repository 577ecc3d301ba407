package reservationRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"courtbot/models"
	"courtbot/utils"
)

const bookingKeyPrefix = "booking:"

// RedisReservationStore backs the reservation store with Redis. Claim maps
// directly onto SETNX, which gives the required set-if-absent atomicity
// across processes.
type RedisReservationStore struct {
	client *redis.Client
	loc    *time.Location
	grace  time.Duration
}

func NewRedisReservationStore(client *redis.Client, loc *time.Location, grace time.Duration) *RedisReservationStore {
	return &RedisReservationStore{client: client, loc: loc, grace: grace}
}

// redisKey is "booking:<resource>:<day>:<slot>". Day keys carry no colon so
// the slot label, which does, survives as the remainder on split.
func redisKey(key models.BookingKey) string {
	return fmt.Sprintf("%s%s:%s:%s", bookingKeyPrefix, key.Resource, key.Day, key.Slot)
}

func parseRedisKey(raw string) (models.BookingKey, error) {
	rest := strings.TrimPrefix(raw, bookingKeyPrefix)
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return models.BookingKey{}, fmt.Errorf("malformed booking key %q", raw)
	}
	return models.BookingKey{
		Resource: models.ResourceKind(parts[0]),
		Day:      parts[1],
		Slot:     parts[2],
	}, nil
}

func (s *RedisReservationStore) IsTaken(ctx context.Context, key models.BookingKey) (bool, error) {
	n, err := s.client.Exists(ctx, redisKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (s *RedisReservationStore) Claim(ctx context.Context, booking models.Booking) (bool, error) {
	data, err := json.Marshal(booking)
	if err != nil {
		return false, fmt.Errorf("encode booking: %w", err)
	}
	ok, err := s.client.SetNX(ctx, redisKey(booking.Key()), data, 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (s *RedisReservationStore) Get(ctx context.Context, key models.BookingKey) (*models.Booking, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var b models.Booking
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, fmt.Errorf("decode booking: %w", err)
	}
	return &b, nil
}

func (s *RedisReservationStore) Delete(ctx context.Context, key models.BookingKey) error {
	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *RedisReservationStore) ListByHolder(ctx context.Context, holderID string) ([]models.BookingKey, error) {
	var keys []models.BookingKey
	iter := s.client.Scan(ctx, 0, bookingKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		raw := iter.Val()
		data, err := s.client.Get(ctx, raw).Result()
		if err == redis.Nil {
			continue // deleted between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("redis get %s: %w", raw, err)
		}
		var b models.Booking
		if err := json.Unmarshal([]byte(data), &b); err != nil {
			continue // malformed value, the sweep will reap it
		}
		if b.HolderID == holderID {
			keys = append(keys, b.Key())
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

func (s *RedisReservationStore) SweepExpired(ctx context.Context, ref time.Time) error {
	logger := utils.GetLogger()
	iter := s.client.Scan(ctx, 0, bookingKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		raw := iter.Val()
		key, err := parseRedisKey(raw)
		if err == nil {
			var end time.Time
			end, err = models.SlotEndTime(key.Day, key.Slot, s.loc)
			if err == nil && end.Add(s.grace).After(ref) {
				continue
			}
		}
		if err != nil {
			logger.Warn("dropping malformed booking record", zap.String("key", raw), zap.Error(err))
		}
		if err := s.client.Del(ctx, raw).Err(); err != nil {
			return fmt.Errorf("redis del %s: %w", raw, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}
