// File: services/booking/booking.go
package booking

import (
	"context"
	"fmt"
	"time"

	availabilityRepo "clinibook/database/repository/availability"
	clientRepo "clinibook/database/repository/client"
	professionalRepo "clinibook/database/repository/professional"
	reservationRepo "clinibook/database/repository/reservation"
	"clinibook/models"
	"clinibook/services/notification"
	"clinibook/services/timegrid"
	"clinibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService drives the reservation lifecycle: request (Pending), confirm,
// cancel, delete. Ownership checks run against the caller's client or
// professional record id, resolved by the auth layer.
type BookingService interface {
	RequestBooking(ctx context.Context, clientID, professionalID, date, timeHHMM string) (*models.Reservation, error)
	Confirm(ctx context.Context, professionalID, reservationID string) (*models.Reservation, error)
	CancelByClient(ctx context.Context, clientID, reservationID string) (*models.Reservation, error)
	DeleteCancelled(ctx context.Context, clientID, reservationID string) error
	MyReservations(ctx context.Context, clientID string) ([]models.Reservation, error)
	Queue(ctx context.Context, professionalID, statusFilter string) ([]models.ReservationView, error)
}

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	ResRepo    reservationRepo.ReservationRepository
	AvailRepo  availabilityRepo.AvailabilityRepository
	ClientRepo clientRepo.ClientRepository
	ProRepo    professionalRepo.ProfessionalRepository
	Sink       notification.Sink
}

// NewBookingService creates a new DefaultBookingService.
func NewBookingService(
	resRepo reservationRepo.ReservationRepository,
	availRepo availabilityRepo.AvailabilityRepository,
	cliRepo clientRepo.ClientRepository,
	proRepo professionalRepo.ProfessionalRepository,
	sink notification.Sink,
) *DefaultBookingService {
	return &DefaultBookingService{
		ResRepo:    resRepo,
		AvailRepo:  availRepo,
		ClientRepo: cliRepo,
		ProRepo:    proRepo,
		Sink:       sink,
	}
}

// RequestBooking validates the requested slot against the professional's
// published windows, then inserts the reservation. The clash pre-check is
// advisory; the storage-level unique constraint is what actually closes the
// race, so a concurrent duplicate surfaces as SLOT_TAKEN either way.
func (s *DefaultBookingService) RequestBooking(ctx context.Context, clientID, professionalID, date, timeHHMM string) (*models.Reservation, error) {
	date, err := timegrid.NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	t, err := timegrid.ToMinutes(timeHHMM)
	if err != nil {
		return nil, err
	}

	pro, err := s.ProRepo.GetByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ClientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	windows, err := s.AvailRepo.ListByDate(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}
	if !covered(windows, t) {
		return nil, utils.NewDomainErrorf(utils.CodeOutsideAvailability,
			"no availability window covers %s %s", date, timeHHMM)
	}

	clash, err := s.ResRepo.HasClash(ctx, professionalID, date, timeHHMM)
	if err != nil {
		return nil, err
	}
	if clash {
		return nil, utils.NewDomainErrorf(utils.CodeSlotTaken,
			"slot %s %s is already reserved", date, timeHHMM)
	}

	now := time.Now()
	res := &models.Reservation{
		ID:             uuid.New().String(),
		ProfessionalID: professionalID,
		ClientID:       clientID,
		Date:           date,
		Time:           timeHHMM,
		Status:         models.StatusPending,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.ResRepo.CreateWithHistory(ctx, res); err != nil {
		return nil, err
	}

	s.notify(ctx, pro.UserID, models.RoleProfessional, models.EventBooked,
		fmt.Sprintf("New booking request for %s at %s", date, timeHHMM), res.ID)
	return res, nil
}

// Confirm moves a Pending reservation to Confirmed. Only the owning
// professional may confirm. As housekeeping, the professional's original
// Booked notification for this reservation is marked read.
func (s *DefaultBookingService) Confirm(ctx context.Context, professionalID, reservationID string) (*models.Reservation, error) {
	res, err := s.ResRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.ProfessionalID != professionalID {
		return nil, utils.NewDomainErrorf(utils.CodeNotOwner,
			"reservation %s does not belong to this professional", reservationID)
	}

	res, err = s.ResRepo.SetStatus(ctx, reservationID, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	if pro, err := s.ProRepo.GetByID(ctx, professionalID); err == nil {
		s.Sink.MarkReadForReservation(ctx, pro.UserID, reservationID, models.EventBooked)
	}
	if client, err := s.ClientRepo.GetByID(ctx, res.ClientID); err == nil {
		s.notify(ctx, client.UserID, models.RoleClient, models.EventConfirmed,
			fmt.Sprintf("Your appointment on %s at %s is confirmed", res.Date, res.Time), res.ID)
	}
	return res, nil
}

// CancelByClient moves a reservation to Cancelled. Only the owning client may
// cancel; cancelling an already-Cancelled reservation fails.
func (s *DefaultBookingService) CancelByClient(ctx context.Context, clientID, reservationID string) (*models.Reservation, error) {
	res, err := s.ResRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.ClientID != clientID {
		return nil, utils.NewDomainErrorf(utils.CodeNotOwner,
			"reservation %s does not belong to this client", reservationID)
	}

	res, err = s.ResRepo.SetStatus(ctx, reservationID, models.StatusCancelled)
	if err != nil {
		return nil, err
	}

	if pro, err := s.ProRepo.GetByID(ctx, res.ProfessionalID); err == nil {
		s.notify(ctx, pro.UserID, models.RoleProfessional, models.EventCancelled,
			fmt.Sprintf("Appointment on %s at %s was cancelled", res.Date, res.Time), res.ID)
	}
	return res, nil
}

// DeleteCancelled removes a Cancelled reservation and strips it from the
// client's history. Non-cancelled reservations are rejected with INVALID_STATE.
func (s *DefaultBookingService) DeleteCancelled(ctx context.Context, clientID, reservationID string) error {
	res, err := s.ResRepo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.ClientID != clientID {
		return utils.NewDomainErrorf(utils.CodeNotOwner,
			"reservation %s does not belong to this client", reservationID)
	}
	if err := s.ResRepo.DeleteCancelled(ctx, reservationID); err != nil {
		return err
	}
	if err := s.ClientRepo.RemoveHistory(ctx, clientID, reservationID); err != nil {
		utils.GetLogger().Warn("failed to strip reservation from client history",
			zap.String("clientID", clientID),
			zap.String("reservationID", reservationID),
			zap.Error(err))
	}
	return nil
}

func (s *DefaultBookingService) MyReservations(ctx context.Context, clientID string) ([]models.Reservation, error) {
	return s.ResRepo.ListByClient(ctx, clientID)
}

func (s *DefaultBookingService) Queue(ctx context.Context, professionalID, statusFilter string) ([]models.ReservationView, error) {
	if statusFilter != "" {
		switch statusFilter {
		case models.StatusPending, models.StatusConfirmed, models.StatusCancelled:
		default:
			return nil, utils.NewDomainErrorf(utils.CodeFormat, "unknown status filter %q", statusFilter)
		}
	}
	return s.ResRepo.ListQueueByProfessional(ctx, professionalID, statusFilter)
}

// notify writes a notification event. Failures do not roll back the booking
// state change; they are logged and dropped.
func (s *DefaultBookingService) notify(ctx context.Context, userID, role, eventType, message, reservationID string) {
	if err := s.Sink.Notify(ctx, userID, role, eventType, message, reservationID); err != nil {
		utils.GetLogger().Warn("notification write failed",
			zap.String("userID", userID),
			zap.String("event", eventType),
			zap.Error(err))
	}
}

func covered(windows []models.AvailabilityWindow, minutes int) bool {
	for _, w := range windows {
		start, err := timegrid.ToMinutes(w.StartTime)
		if err != nil {
			continue
		}
		end, err := timegrid.ToMinutes(w.EndTime)
		if err != nil {
			continue
		}
		if minutes >= start && minutes < end {
			return true
		}
	}
	return false
}
