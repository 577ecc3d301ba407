package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"courtbot/models"
	"courtbot/utils"
)

// MongoReservationStore backs the reservation store with a MongoDB
// collection. A unique compound index on (day, slot, resource) makes
// InsertOne the set-if-absent primitive: a losing claim surfaces as a
// duplicate-key error.
type MongoReservationStore struct {
	coll  *mongo.Collection
	loc   *time.Location
	grace time.Duration
}

func NewMongoReservationStore(client *mongo.Client, dbName string, loc *time.Location, grace time.Duration) *MongoReservationStore {
	return &MongoReservationStore{
		coll:  client.Database(dbName).Collection("bookings"),
		loc:   loc,
		grace: grace,
	}
}

// EnsureIndexes creates the unique index that enforces one booking per slot.
func (s *MongoReservationStore) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "day", Value: 1}, {Key: "slot", Value: 1}, {Key: "resource", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_day_slot_resource"),
	})
	if err != nil {
		return fmt.Errorf("create booking indexes: %w", err)
	}
	return nil
}

func keyFilter(key models.BookingKey) bson.M {
	return bson.M{"day": key.Day, "slot": key.Slot, "resource": key.Resource}
}

func (s *MongoReservationStore) IsTaken(ctx context.Context, key models.BookingKey) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, keyFilter(key))
	if err != nil {
		return false, fmt.Errorf("count bookings: %w", err)
	}
	return n > 0, nil
}

func (s *MongoReservationStore) Claim(ctx context.Context, booking models.Booking) (bool, error) {
	_, err := s.coll.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert booking: %w", err)
	}
	return true, nil
}

func (s *MongoReservationStore) Get(ctx context.Context, key models.BookingKey) (*models.Booking, error) {
	var b models.Booking
	err := s.coll.FindOne(ctx, keyFilter(key)).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

func (s *MongoReservationStore) Delete(ctx context.Context, key models.BookingKey) error {
	if _, err := s.coll.DeleteOne(ctx, keyFilter(key)); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

func (s *MongoReservationStore) ListByHolder(ctx context.Context, holderID string) ([]models.BookingKey, error) {
	cur, err := s.coll.Find(ctx, bson.M{"holder_id": holderID})
	if err != nil {
		return nil, fmt.Errorf("find bookings by holder: %w", err)
	}
	defer cur.Close(ctx)

	var keys []models.BookingKey
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			continue
		}
		keys = append(keys, b.Key())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return keys, nil
}

func (s *MongoReservationStore) SweepExpired(ctx context.Context, ref time.Time) error {
	logger := utils.GetLogger()
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("find bookings: %w", err)
	}
	defer cur.Close(ctx)

	var stale []models.BookingKey
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			continue
		}
		end, err := models.SlotEndTime(b.Day, b.Slot, s.loc)
		if err != nil {
			logger.Warn("dropping malformed booking record",
				zap.String("day", b.Day), zap.String("slot", b.Slot), zap.Error(err))
			stale = append(stale, b.Key())
			continue
		}
		if !end.Add(s.grace).After(ref) {
			stale = append(stale, b.Key())
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("iterate bookings: %w", err)
	}
	for _, key := range stale {
		if _, err := s.coll.DeleteOne(ctx, keyFilter(key)); err != nil {
			return fmt.Errorf("delete expired booking: %w", err)
		}
	}
	return nil
}
