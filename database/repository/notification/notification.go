// File: database/repository/notification/notification.go
package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"clinibook/database"
	"clinibook/models"
	"clinibook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository stores per-user messages for poll-based delivery.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// ListByUser returns the user's notifications newest first. When unreadOnly
	// is set, read notifications are filtered out.
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	// MarkReadByReservation marks the user's notifications of the given type
	// tied to a reservation as read. Used when a confirmation supersedes the
	// original booking notice.
	MarkReadByReservation(ctx context.Context, userID, reservationID, eventType string) error
	// ExistsForReservation reports whether the user already has a notification
	// of the given type for a reservation. The reminder scan uses this to stay
	// idempotent across runs.
	ExistsForReservation(ctx context.Context, userID, reservationID, eventType string) (bool, error)
	Delete(ctx context.Context, id, userID string) error
	EnsureIndexes() error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new MongoDB NotificationRepository.
func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{coll: database.DB().Collection("notifications")}
}

func (r *mongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

func (r *mongoNotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if unreadOnly {
		filter["read"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var out []models.Notification
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding notifications: %w", err)
	}
	return out, nil
}

func (r *mongoNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("error marking notification %s read: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return utils.NewDomainErrorf(utils.CodeNotFound, "notification %s not found", id)
	}
	return nil
}

func (r *mongoNotificationRepo) MarkReadByReservation(ctx context.Context, userID, reservationID, eventType string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "reservation_id": reservationID, "type": eventType},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("error marking reservation notifications read: %w", err)
	}
	return nil
}

func (r *mongoNotificationRepo) ExistsForReservation(ctx context.Context, userID, reservationID, eventType string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.coll.FindOne(ctx, bson.M{
		"user_id":        userID,
		"reservation_id": reservationID,
		"type":           eventType,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking notification existence: %w", err)
	}
	return true, nil
}

func (r *mongoNotificationRepo) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("error deleting notification %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return utils.NewDomainErrorf(utils.CodeNotFound, "notification %s not found", id)
	}
	return nil
}

func (r *mongoNotificationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "sent_at", Value: -1}},
			Options: options.Index().SetName("user_sent_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "reservation_id", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetName("user_reservation_type_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create notification indexes: %w", err)
	}
	return nil
}
