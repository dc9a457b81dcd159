// File: database/repository/reservation/queries.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"clinibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoReservationRepo) HasClash(ctx context.Context, professionalID, date, timeHHMM string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"date":            date,
		"time":            timeHHMM,
		"status":          bson.M{"$ne": models.StatusCancelled},
	}
	err := r.coll.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking slot clash: %w", err)
	}
	return true, nil
}

func (r *mongoReservationRepo) ListByClient(ctx context.Context, clientID string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations for client %s: %w", clientID, err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}

func (r *mongoReservationRepo) ListByProfessional(ctx context.Context, professionalID, statusFilter string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professional_id": professionalID}
	if statusFilter != "" {
		filter["status"] = statusFilter
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations for professional %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}

// ListQueueByProfessional joins each reservation with the booking client's
// name and email. Display only; the reservation documents stay authoritative.
func (r *mongoReservationRepo) ListQueueByProfessional(ctx context.Context, professionalID, statusFilter string) ([]models.ReservationView, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	match := bson.M{"professional_id": professionalID}
	if statusFilter != "" {
		match["status"] = statusFilter
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "clients",
			"localField":   "client_id",
			"foreignField": "id",
			"as":           "client_doc",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$client_doc", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "client_doc.user_id",
			"foreignField": "id",
			"as":           "client_user",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$client_user", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"client_name":  "$client_user.name",
			"client_email": "$client_user.email",
		}}},
		bson.D{{Key: "$project", Value: bson.M{"client_doc": 0, "client_user": 0}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating reservation queue: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ReservationView
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservation queue: %w", err)
	}
	return out, nil
}

func (r *mongoReservationRepo) ReservedTimes(ctx context.Context, professionalID, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"date":            date,
		"status":          bson.M{"$ne": models.StatusCancelled},
	}
	values, err := r.coll.Distinct(ctx, "time", filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching reserved times: %w", err)
	}

	times := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			times = append(times, s)
		}
	}
	return times, nil
}

func (r *mongoReservationRepo) ListConfirmedBetween(ctx context.Context, fromDate, toDate string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status": models.StatusConfirmed,
		"date":   bson.M{"$gte": fromDate, "$lte": toDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing confirmed reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding confirmed reservations: %w", err)
	}
	return out, nil
}
