// File: database/repository/reservation/reservation_mongo.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"clinibook/models"
	"clinibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewDomainErrorf(utils.CodeNotFound, "reservation %s not found", id)
		}
		return nil, fmt.Errorf("error fetching reservation %s: %w", id, err)
	}
	return &res, nil
}

// SetStatus enforces the legal-transition table: Pending -> Confirmed,
// Pending -> Cancelled, Confirmed -> Cancelled. The update filter pins the
// status read above, so a concurrent transition makes this one fail rather
// than silently overwrite.
func (r *mongoReservationRepo) SetStatus(ctx context.Context, id, newStatus string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(current.Status, newStatus) {
		return nil, utils.NewDomainErrorf(utils.CodeInvalidTransition,
			"reservation %s cannot move from %s to %s", id, current.Status, newStatus)
	}

	now := time.Now()
	active := newStatus != models.StatusCancelled
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": current.Status},
		bson.M{"$set": bson.M{"status": newStatus, "active": active, "updated_at": now}},
	)
	if err != nil {
		return nil, fmt.Errorf("error updating reservation %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, utils.NewDomainErrorf(utils.CodeInvalidTransition,
			"reservation %s changed concurrently; transition to %s rejected", id, newStatus)
	}

	current.Status = newStatus
	current.Active = active
	current.UpdatedAt = now
	return current, nil
}

func (r *mongoReservationRepo) DeleteCancelled(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "status": models.StatusCancelled})
	if err != nil {
		return fmt.Errorf("error deleting reservation %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		// Distinguish "not cancelled" from "gone".
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return utils.NewDomainErrorf(utils.CodeInvalidState,
			"reservation %s is not cancelled and cannot be deleted", id)
	}
	return nil
}
