// File: services/notification/notification.go
package notification

import (
	"context"

	notificationRepo "clinibook/database/repository/notification"
	"clinibook/models"
	"clinibook/utils"

	"go.uber.org/zap"
)

// Sink is the write-side notification contract the booking flow depends on.
// Delivery is poll-based: writing a document is the whole job.
type Sink interface {
	Notify(ctx context.Context, userID, role, eventType, message, reservationID string) error
	// MarkReadForReservation marks a user's notifications of one event type
	// tied to a reservation as read. Best-effort housekeeping; failures are
	// logged, not propagated.
	MarkReadForReservation(ctx context.Context, userID, reservationID, eventType string)
}

// NotificationService is the Sink plus the user-facing read/ack surface.
type NotificationService interface {
	Sink
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// DefaultNotificationService is the production implementation of
// NotificationService backed by the notification repository.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
}

// NewNotificationService creates a new DefaultNotificationService.
func NewNotificationService(repo notificationRepo.NotificationRepository) *DefaultNotificationService {
	return &DefaultNotificationService{Repo: repo}
}

func (s *DefaultNotificationService) Notify(ctx context.Context, userID, role, eventType, message, reservationID string) error {
	n := &models.Notification{
		UserID:        userID,
		Role:          role,
		Type:          eventType,
		Message:       message,
		ReservationID: reservationID,
	}
	return s.Repo.Create(ctx, n)
}

func (s *DefaultNotificationService) MarkReadForReservation(ctx context.Context, userID, reservationID, eventType string) {
	if err := s.Repo.MarkReadByReservation(ctx, userID, reservationID, eventType); err != nil {
		utils.GetLogger().Warn("failed to mark reservation notifications read",
			zap.String("userID", userID),
			zap.String("reservationID", reservationID),
			zap.Error(err))
	}
}

func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	return s.Repo.ListByUser(ctx, userID, unreadOnly)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.Repo.MarkRead(ctx, id, userID)
}

func (s *DefaultNotificationService) Delete(ctx context.Context, id, userID string) error {
	return s.Repo.Delete(ctx, id, userID)
}
