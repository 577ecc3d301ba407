package models

import "time"

// ResourceKind identifies which bookable resource a record belongs to.
type ResourceKind string

const (
	ResourceCourt  ResourceKind = "court"
	ResourceSiesta ResourceKind = "siesta"
)

// Booking represents a confirmed reservation record.
type Booking struct {
	ID        string       `bson:"id" json:"id"`                 // Unique booking identifier (UUID)
	Day       string       `bson:"day" json:"day"`               // Day key in "DD/MM/YYYY" format
	Slot      string       `bson:"slot" json:"slot"`             // Slot label in "HH:MM–HH:MM" format
	Resource  ResourceKind `bson:"resource" json:"resource"`     // Resource kind, default "court"
	HolderID  string       `bson:"holder_id" json:"holder_id"`   // Opaque user identifier (chat id)
	Holder    string       `bson:"holder" json:"holder"`         // Display handle used in announcements
	Unit      string       `bson:"unit" json:"unit"`             // First collected detail (e.g. "2B")
	Name      string       `bson:"name" json:"name"`             // Second collected detail (display name)
	CreatedAt time.Time    `bson:"created_at" json:"created_at"` // Timestamp when the claim succeeded
}

// Key returns the tuple that uniquely identifies the booked slot.
func (b Booking) Key() BookingKey {
	return BookingKey{Day: b.Day, Slot: b.Slot, Resource: b.Resource}
}

// BookingKey addresses exactly one claimable slot. At most one Booking may
// exist per key; the reservation store enforces this at claim time.
type BookingKey struct {
	Day      string       `json:"day"`
	Slot     string       `json:"slot"`
	Resource ResourceKind `json:"resource"`
}
