// File: services/reminder/reminder.go
package reminder

import (
	"context"
	"fmt"
	"time"

	"clinibook/config"
	clientRepo "clinibook/database/repository/client"
	notificationRepo "clinibook/database/repository/notification"
	reservationRepo "clinibook/database/repository/reservation"
	"clinibook/models"
	"clinibook/services/notification"
	"clinibook/services/timegrid"
	"clinibook/utils"

	"go.uber.org/zap"
)

// ReminderService scans confirmed reservations and writes Reminder
// notifications for those coming up. Two triggers: the whole day exactly
// LeadDays ahead, and a band of LeadHours ± ToleranceMin around now. The
// tolerance band absorbs scan-interval drift; with the defaults a reservation
// 3h45m–4h15m away is caught by a scan every 15 minutes.
type ReminderService interface {
	// Scan evaluates both triggers against now and returns the number of
	// reminders written. Already-reminded reservations are skipped, so Scan is
	// idempotent across overlapping runs.
	Scan(ctx context.Context, now time.Time) (int, error)
}

// DefaultReminderService is the production ReminderService.
type DefaultReminderService struct {
	ResRepo    reservationRepo.ReservationRepository
	ClientRepo clientRepo.ClientRepository
	NotifRepo  notificationRepo.NotificationRepository
	Sink       notification.Sink

	LeadDays  int
	LeadHours int
	Tolerance time.Duration
}

// NewReminderService creates a DefaultReminderService with lead parameters
// taken from the loaded configuration.
func NewReminderService(
	resRepo reservationRepo.ReservationRepository,
	cliRepo clientRepo.ClientRepository,
	notifRepo notificationRepo.NotificationRepository,
	sink notification.Sink,
) *DefaultReminderService {
	return &DefaultReminderService{
		ResRepo:    resRepo,
		ClientRepo: cliRepo,
		NotifRepo:  notifRepo,
		Sink:       sink,
		LeadDays:   config.AppConfig.ReminderLeadDays,
		LeadHours:  config.AppConfig.ReminderLeadHours,
		Tolerance:  time.Duration(config.AppConfig.ReminderToleranceMin) * time.Minute,
	}
}

func (s *DefaultReminderService) Scan(ctx context.Context, now time.Time) (int, error) {
	sent := 0

	// Trigger 1: everything confirmed on the day LeadDays ahead.
	leadDate := now.AddDate(0, 0, s.LeadDays).Format(timegrid.DateLayout)
	dayAhead, err := s.ResRepo.ListConfirmedBetween(ctx, leadDate, leadDate)
	if err != nil {
		return sent, err
	}
	for _, res := range dayAhead {
		n, err := s.remind(ctx, res, fmt.Sprintf("Upcoming appointment in %d days: %s at %s", s.LeadDays, res.Date, res.Time))
		if err != nil {
			return sent, err
		}
		sent += n
	}

	// Trigger 2: reservations LeadHours ± Tolerance from now. The band can
	// straddle midnight, so fetch by date range and filter on the exact moment.
	target := now.Add(time.Duration(s.LeadHours) * time.Hour)
	bandStart := target.Add(-s.Tolerance)
	bandEnd := target.Add(s.Tolerance)
	inBand, err := s.ResRepo.ListConfirmedBetween(ctx,
		bandStart.Format(timegrid.DateLayout), bandEnd.Format(timegrid.DateLayout))
	if err != nil {
		return sent, err
	}
	for _, res := range inBand {
		at, err := slotMoment(res, now.Location())
		if err != nil {
			utils.GetLogger().Warn("skipping reservation with unparsable slot",
				zap.String("reservationID", res.ID), zap.Error(err))
			continue
		}
		if at.Before(bandStart) || at.After(bandEnd) {
			continue
		}
		n, err := s.remind(ctx, res, fmt.Sprintf("Upcoming appointment in about %d hours: %s at %s", s.LeadHours, res.Date, res.Time))
		if err != nil {
			return sent, err
		}
		sent += n
	}

	return sent, nil
}

// remind writes a Reminder notification to the booking client unless one
// already exists for the reservation.
func (s *DefaultReminderService) remind(ctx context.Context, res models.Reservation, message string) (int, error) {
	client, err := s.ClientRepo.GetByID(ctx, res.ClientID)
	if err != nil {
		if utils.HasCode(err, utils.CodeNotFound) {
			return 0, nil // client account deleted; nothing to remind
		}
		return 0, err
	}

	exists, err := s.NotifRepo.ExistsForReservation(ctx, client.UserID, res.ID, models.EventReminder)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	if err := s.Sink.Notify(ctx, client.UserID, models.RoleClient, models.EventReminder, message, res.ID); err != nil {
		return 0, err
	}
	return 1, nil
}

func slotMoment(res models.Reservation, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(timegrid.DateLayout+" 15:04", res.Date+" "+res.Time, loc)
}
