package models

import "time"

// Reservation statuses.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// Reservation is a client's claim on one discrete slot of a professional's
// published availability. Active mirrors the status: true while the status is
// not Cancelled. It exists so the storage layer can enforce at most one active
// reservation per (professional_id, date, time) with a partial unique index.
type Reservation struct {
	ID             string    `bson:"id" json:"id"`
	ProfessionalID string    `bson:"professional_id" json:"professional_id"`
	ClientID       string    `bson:"client_id" json:"client_id"`
	Date           string    `bson:"date" json:"date"` // "2006-01-02"
	Time           string    `bson:"time" json:"time"` // "HH:MM", a slot boundary
	Status         string    `bson:"status" json:"status"`
	Active         bool      `bson:"active" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// CanTransition reports whether a reservation status change is legal:
// Pending -> Confirmed, Pending -> Cancelled, Confirmed -> Cancelled.
// Cancelled is terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	default:
		return false
	}
}

// ReservationView is a reservation joined with client display info for the
// professional's queue. Presentation only; the Reservation record remains the
// source of truth.
type ReservationView struct {
	Reservation `bson:",inline"`
	ClientName  string `bson:"client_name,omitempty" json:"client_name,omitempty"`
	ClientEmail string `bson:"client_email,omitempty" json:"client_email,omitempty"`
}
