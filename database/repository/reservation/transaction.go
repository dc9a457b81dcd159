// File: database/repository/reservation/transaction.go
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

// CreateWithHistory inserts the reservation and appends its id to the owning
// client's history inside a single transaction. The partial unique index on
// the reservations collection rejects the insert when another active
// reservation already holds the slot; that duplicate-key error is surfaced as
// SLOT_TAKEN, which is what closes the check-then-act race in the booking flow.
func (r *mongoReservationRepo) CreateWithHistory(ctx context.Context, reservation *models.Reservation) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, reservation); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return utils.NewDomainErrorf(utils.CodeSlotTaken,
					"slot %s %s is already reserved", reservation.Date, reservation.Time)
			}
			return fmt.Errorf("insert reservation failed: %w", err)
		}

		res, err := r.clientColl.UpdateOne(sc,
			bson.M{"id": reservation.ClientID},
			bson.M{
				"$addToSet": bson.M{"history": reservation.ID},
				"$set":      bson.M{"updated_at": time.Now()},
			},
		)
		if err != nil {
			return fmt.Errorf("append client history failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return utils.NewDomainErrorf(utils.CodeNotFound, "client %s not found", reservation.ClientID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
