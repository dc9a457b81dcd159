package models

import "time"

// Notification event types.
const (
	EventBooked    = "Booked"
	EventCancelled = "Cancelled"
	EventConfirmed = "Confirmed"
	EventReminder  = "Reminder"
)

// Notification is a stored message addressed to a user. Clients poll for them;
// there is no push delivery.
type Notification struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Role          string    `bson:"role" json:"role"`
	Type          string    `bson:"type" json:"type"`
	Message       string    `bson:"message" json:"message"`
	ReservationID string    `bson:"reservation_id,omitempty" json:"reservation_id,omitempty"`
	Read          bool      `bson:"read" json:"read"`
	SentAt        time.Time `bson:"sent_at" json:"sent_at"`
}
