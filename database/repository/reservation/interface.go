// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"clinibook/database"
	"clinibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationRepository is the ledger of slot claims. The collection carries a
// partial unique index on (professional_id, date, time) restricted to
// active: true, so at most one non-cancelled reservation can ever hold a slot —
// concurrent writers lose with a duplicate-key error, surfaced as SLOT_TAKEN.
type ReservationRepository interface {
	// CreateWithHistory inserts the reservation (Pending) and appends its id to
	// the client's history in one transaction.
	CreateWithHistory(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// HasClash reports whether a non-cancelled reservation already holds the
	// exact (professionalID, date, time) slot.
	HasClash(ctx context.Context, professionalID, date, timeHHMM string) (bool, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Reservation, error)
	// ListByProfessional filters by status when statusFilter is non-empty.
	ListByProfessional(ctx context.Context, professionalID, statusFilter string) ([]models.Reservation, error)
	// ListQueueByProfessional is ListByProfessional joined with client display
	// info for the professional's queue view.
	ListQueueByProfessional(ctx context.Context, professionalID, statusFilter string) ([]models.ReservationView, error)
	// ReservedTimes returns the slot times held by non-cancelled reservations
	// for one professional on one day.
	ReservedTimes(ctx context.Context, professionalID, date string) ([]string, error)
	// SetStatus applies a status change, enforcing the legal-transition table.
	SetStatus(ctx context.Context, id, newStatus string) (*models.Reservation, error)
	// DeleteCancelled removes a reservation, failing unless it is Cancelled.
	DeleteCancelled(ctx context.Context, id string) error
	// ListConfirmedBetween returns Confirmed reservations with date in the
	// inclusive range. Used by the reminder scan.
	ListConfirmedBetween(ctx context.Context, fromDate, toDate string) ([]models.Reservation, error)
	EnsureIndexes() error
}

type mongoReservationRepo struct {
	coll       *mongo.Collection
	clientColl *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.DB()
	return &mongoReservationRepo{
		coll:       db.Collection("reservations"),
		clientColl: db.Collection("clients"),
	}
}
