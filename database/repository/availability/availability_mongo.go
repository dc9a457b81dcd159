// File: database/repository/availability/availability_mongo.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"clinibook/models"
	"clinibook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAvailabilityRepo) CreateMany(ctx context.Context, windows []models.AvailabilityWindow) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(windows))
	ids := make([]string, len(windows))
	for i, w := range windows {
		if w.ID == "" {
			w.ID = uuid.New().String()
		}
		docs[i] = w
		ids[i] = w.ID
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("error creating availability windows: %w", err)
	}
	return ids, nil
}

func (r *mongoAvailabilityRepo) ListByProfessional(ctx context.Context, professionalID string) ([]models.AvailabilityWindow, error) {
	return r.ListInRange(ctx, professionalID, "", "")
}

func (r *mongoAvailabilityRepo) ListInRange(ctx context.Context, professionalID, fromDate, toDate string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professional_id": professionalID}
	// Dates are "YYYY-MM-DD" strings, so lexicographic order is date order.
	dateRange := bson.M{}
	if fromDate != "" {
		dateRange["$gte"] = fromDate
	}
	if toDate != "" {
		dateRange["$lte"] = toDate
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding availability windows: %w", err)
	}
	return windows, nil
}

func (r *mongoAvailabilityRepo) ListByDate(ctx context.Context, professionalID, date string) ([]models.AvailabilityWindow, error) {
	return r.ListInRange(ctx, professionalID, date, date)
}

func (r *mongoAvailabilityRepo) DeleteExact(ctx context.Context, professionalID, date, startTime, endTime string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"date":            date,
		"start_time":      startTime,
		"end_time":        endTime,
	}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error deleting availability windows: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoAvailabilityRepo) DeleteByID(ctx context.Context, professionalID, windowID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": windowID, "professional_id": professionalID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("error deleting availability window %s: %w", windowID, err)
	}
	if res.DeletedCount == 0 {
		return utils.NewDomainErrorf(utils.CodeNotFound, "availability window %s not found", windowID)
	}
	return nil
}
