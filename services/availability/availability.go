// File: services/availability/availability.go
package availability

import (
	"context"
	"sort"

	"clinibook/config"
	availabilityRepo "clinibook/database/repository/availability"
	professionalRepo "clinibook/database/repository/professional"
	reservationRepo "clinibook/database/repository/reservation"
	"clinibook/models"
	"clinibook/services/timegrid"
	"clinibook/utils"
)

// AvailabilityService manages a professional's published open-time windows and
// resolves them into bookable slots.
type AvailabilityService interface {
	// RegisterWindows validates and persists a batch of windows. Entries with
	// any missing field are skipped; a malformed or non-chronological entry
	// fails the whole batch with FORMAT_ERROR before anything is written.
	RegisterWindows(ctx context.Context, professionalID string, inputs []models.WindowInput) ([]models.AvailabilityWindow, error)
	Windows(ctx context.Context, professionalID string) ([]models.AvailabilityWindow, error)
	WindowsInRange(ctx context.Context, professionalID, fromDate, toDate string) ([]models.AvailabilityWindow, error)
	// RemoveWindows deletes windows matching (date, start, end) exactly and
	// returns the removed count. Zero matches is not an error.
	RemoveWindows(ctx context.Context, professionalID, date, startTime, endTime string) (int64, error)
	RemoveWindowByID(ctx context.Context, professionalID, windowID string) error
	// FreeSlots computes, per day in the range, the bookable slot start times:
	// the union of each window's slots minus times held by non-cancelled
	// reservations. A day with windows but no free slots appears with an empty
	// list. Reads only; calling it twice yields identical results.
	FreeSlots(ctx context.Context, professionalID, fromDate, toDate string, stepMin int) ([]models.DaySlots, error)
}

// DefaultAvailabilityService is the production AvailabilityService.
type DefaultAvailabilityService struct {
	AvailRepo availabilityRepo.AvailabilityRepository
	ResRepo   reservationRepo.ReservationRepository
	ProRepo   professionalRepo.ProfessionalRepository
}

// NewAvailabilityService creates a new DefaultAvailabilityService.
func NewAvailabilityService(
	availRepo availabilityRepo.AvailabilityRepository,
	resRepo reservationRepo.ReservationRepository,
	proRepo professionalRepo.ProfessionalRepository,
) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{AvailRepo: availRepo, ResRepo: resRepo, ProRepo: proRepo}
}

func (s *DefaultAvailabilityService) RegisterWindows(ctx context.Context, professionalID string, inputs []models.WindowInput) ([]models.AvailabilityWindow, error) {
	windows := make([]models.AvailabilityWindow, 0, len(inputs))
	for _, in := range inputs {
		if in.Date == "" || in.StartTime == "" || in.EndTime == "" {
			continue // partial entries are skipped, not fatal
		}
		date, err := timegrid.NormalizeDate(in.Date)
		if err != nil {
			return nil, err
		}
		start, err := timegrid.ToMinutes(in.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timegrid.ToMinutes(in.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, utils.NewDomainErrorf(utils.CodeFormat,
				"window start %s must precede end %s", in.StartTime, in.EndTime)
		}
		windows = append(windows, models.AvailabilityWindow{
			ProfessionalID: professionalID,
			Date:           date,
			StartTime:      in.StartTime,
			EndTime:        in.EndTime,
		})
	}
	if len(windows) == 0 {
		return []models.AvailabilityWindow{}, nil
	}
	if _, err := s.AvailRepo.CreateMany(ctx, windows); err != nil {
		return nil, err
	}
	return windows, nil
}

func (s *DefaultAvailabilityService) Windows(ctx context.Context, professionalID string) ([]models.AvailabilityWindow, error) {
	return s.AvailRepo.ListByProfessional(ctx, professionalID)
}

func (s *DefaultAvailabilityService) WindowsInRange(ctx context.Context, professionalID, fromDate, toDate string) ([]models.AvailabilityWindow, error) {
	fromDate, toDate, err := normalizeRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return s.AvailRepo.ListInRange(ctx, professionalID, fromDate, toDate)
}

func (s *DefaultAvailabilityService) RemoveWindows(ctx context.Context, professionalID, date, startTime, endTime string) (int64, error) {
	date, err := timegrid.NormalizeDate(date)
	if err != nil {
		return 0, err
	}
	return s.AvailRepo.DeleteExact(ctx, professionalID, date, startTime, endTime)
}

func (s *DefaultAvailabilityService) RemoveWindowByID(ctx context.Context, professionalID, windowID string) error {
	return s.AvailRepo.DeleteByID(ctx, professionalID, windowID)
}

func (s *DefaultAvailabilityService) FreeSlots(ctx context.Context, professionalID, fromDate, toDate string, stepMin int) ([]models.DaySlots, error) {
	if stepMin <= 0 {
		stepMin = config.AppConfig.DefaultSlotStepMin
	}
	if stepMin <= 0 {
		stepMin = 30
	}
	fromDate, toDate, err := normalizeRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.ProRepo.GetByID(ctx, professionalID); err != nil {
		return nil, err
	}

	windows, err := s.AvailRepo.ListInRange(ctx, professionalID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	// Union slot sets per day: a day may carry several windows, and windows may
	// overlap, so duplicates collapse here.
	byDay := make(map[string]map[string]struct{})
	var dates []string
	for _, w := range windows {
		slots, err := timegrid.BuildSlots(w.StartTime, w.EndTime, stepMin)
		if err != nil {
			return nil, err
		}
		if _, ok := byDay[w.Date]; !ok {
			byDay[w.Date] = make(map[string]struct{})
			dates = append(dates, w.Date)
		}
		for _, slot := range slots {
			byDay[w.Date][slot] = struct{}{}
		}
	}
	sort.Strings(dates)

	out := make([]models.DaySlots, 0, len(dates))
	for _, date := range dates {
		reserved, err := s.ResRepo.ReservedTimes(ctx, professionalID, date)
		if err != nil {
			return nil, err
		}
		for _, t := range reserved {
			delete(byDay[date], t)
		}
		// Zero-padded HH:MM sorts chronologically.
		free := make([]string, 0, len(byDay[date]))
		for t := range byDay[date] {
			free = append(free, t)
		}
		sort.Strings(free)
		// A fully booked day still appears, with an empty slot list.
		out = append(out, models.DaySlots{Date: date, Slots: free})
	}
	return out, nil
}

func normalizeRange(fromDate, toDate string) (string, string, error) {
	var err error
	if fromDate != "" {
		if fromDate, err = timegrid.NormalizeDate(fromDate); err != nil {
			return "", "", err
		}
	}
	if toDate != "" {
		if toDate, err = timegrid.NormalizeDate(toDate); err != nil {
			return "", "", err
		}
	}
	return fromDate, toDate, nil
}
