package availability

import (
	"context"
	"reflect"
	"testing"
	"time"

	"clinibook/models"
	"clinibook/utils"

	"github.com/google/uuid"
)

type fakeAvailabilityRepo struct {
	windows []models.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) CreateMany(_ context.Context, windows []models.AvailabilityWindow) ([]string, error) {
	ids := make([]string, 0, len(windows))
	for i := range windows {
		if windows[i].ID == "" {
			windows[i].ID = uuid.New().String()
		}
		ids = append(ids, windows[i].ID)
		f.windows = append(f.windows, windows[i])
	}
	return ids, nil
}

func (f *fakeAvailabilityRepo) ListByProfessional(_ context.Context, professionalID string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.ProfessionalID == professionalID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListInRange(_ context.Context, professionalID, fromDate, toDate string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.ProfessionalID != professionalID {
			continue
		}
		if fromDate != "" && w.Date < fromDate {
			continue
		}
		if toDate != "" && w.Date > toDate {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListByDate(ctx context.Context, professionalID, date string) ([]models.AvailabilityWindow, error) {
	return f.ListInRange(ctx, professionalID, date, date)
}

func (f *fakeAvailabilityRepo) DeleteExact(_ context.Context, professionalID, date, startTime, endTime string) (int64, error) {
	var kept []models.AvailabilityWindow
	var removed int64
	for _, w := range f.windows {
		if w.ProfessionalID == professionalID && w.Date == date && w.StartTime == startTime && w.EndTime == endTime {
			removed++
			continue
		}
		kept = append(kept, w)
	}
	f.windows = kept
	return removed, nil
}

func (f *fakeAvailabilityRepo) DeleteByID(_ context.Context, professionalID, windowID string) error {
	for i, w := range f.windows {
		if w.ProfessionalID == professionalID && w.ID == windowID {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return nil
		}
	}
	return utils.NewDomainErrorf(utils.CodeNotFound, "window %s not found", windowID)
}

func (f *fakeAvailabilityRepo) EnsureIndexes() error { return nil }

type fakeReservationTimes struct {
	reservationStub
	times map[string][]string // "proID|date" -> reserved times
}

func (f *fakeReservationTimes) ReservedTimes(_ context.Context, professionalID, date string) ([]string, error) {
	return f.times[professionalID+"|"+date], nil
}

// reservationStub fills the ReservationRepository surface the slot tests never
// touch.
type reservationStub struct{}

func (reservationStub) CreateWithHistory(context.Context, *models.Reservation) error {
	panic("not used")
}
func (reservationStub) GetByID(context.Context, string) (*models.Reservation, error) {
	panic("not used")
}
func (reservationStub) HasClash(context.Context, string, string, string) (bool, error) {
	panic("not used")
}
func (reservationStub) ListByClient(context.Context, string) ([]models.Reservation, error) {
	panic("not used")
}
func (reservationStub) ListByProfessional(context.Context, string, string) ([]models.Reservation, error) {
	panic("not used")
}
func (reservationStub) ListQueueByProfessional(context.Context, string, string) ([]models.ReservationView, error) {
	panic("not used")
}
func (reservationStub) ReservedTimes(context.Context, string, string) ([]string, error) {
	return nil, nil
}
func (reservationStub) SetStatus(context.Context, string, string) (*models.Reservation, error) {
	panic("not used")
}
func (reservationStub) DeleteCancelled(context.Context, string) error { panic("not used") }
func (reservationStub) ListConfirmedBetween(context.Context, string, string) ([]models.Reservation, error) {
	panic("not used")
}
func (reservationStub) EnsureIndexes() error { return nil }

type fakeProfessionalRepo struct {
	pros map[string]*models.Professional
}

func (f *fakeProfessionalRepo) Create(_ context.Context, pro *models.Professional) error {
	f.pros[pro.ID] = pro
	return nil
}

func (f *fakeProfessionalRepo) GetByID(_ context.Context, id string) (*models.Professional, error) {
	pro, ok := f.pros[id]
	if !ok {
		return nil, utils.NewDomainErrorf(utils.CodeNotFound, "professional %s not found", id)
	}
	return pro, nil
}

func (f *fakeProfessionalRepo) GetByUserID(_ context.Context, userID string) (*models.Professional, error) {
	for _, pro := range f.pros {
		if pro.UserID == userID {
			return pro, nil
		}
	}
	return nil, utils.NewDomainErrorf(utils.CodeNotFound, "no professional for user %s", userID)
}

func (f *fakeProfessionalRepo) ListAll(_ context.Context) ([]models.Professional, error) {
	var out []models.Professional
	for _, pro := range f.pros {
		out = append(out, *pro)
	}
	return out, nil
}

func (f *fakeProfessionalRepo) Delete(_ context.Context, id string) error {
	delete(f.pros, id)
	return nil
}

func (f *fakeProfessionalRepo) EnsureIndexes() error { return nil }

func newTestService(times map[string][]string) (*DefaultAvailabilityService, *fakeAvailabilityRepo) {
	availRepo := &fakeAvailabilityRepo{}
	proRepo := &fakeProfessionalRepo{pros: map[string]*models.Professional{
		"pro-1": {ID: "pro-1", UserID: "user-pro-1", Specialty: "Dermatology", CreatedAt: time.Now()},
	}}
	return NewAvailabilityService(availRepo, &fakeReservationTimes{times: times}, proRepo), availRepo
}

func TestRegisterWindows_SkipsPartialEntries(t *testing.T) {
	svc, repo := newTestService(nil)

	windows, err := svc.RegisterWindows(context.Background(), "pro-1", []models.WindowInput{
		{Date: "2025-06-10", StartTime: "09:00", EndTime: "11:00"},
		{Date: "2025-06-11", StartTime: "09:00"}, // missing end, skipped
		{StartTime: "09:00", EndTime: "10:00"},   // missing date, skipped
	})
	if err != nil {
		t.Fatalf("RegisterWindows returned error: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 window persisted, got %d", len(windows))
	}
	if len(repo.windows) != 1 {
		t.Fatalf("expected 1 window in repo, got %d", len(repo.windows))
	}
}

func TestRegisterWindows_RejectsNonChronological(t *testing.T) {
	svc, repo := newTestService(nil)

	_, err := svc.RegisterWindows(context.Background(), "pro-1", []models.WindowInput{
		{Date: "2025-06-10", StartTime: "11:00", EndTime: "09:00"},
	})
	if !utils.HasCode(err, utils.CodeFormat) {
		t.Fatalf("expected FORMAT_ERROR, got %v", err)
	}
	if len(repo.windows) != 0 {
		t.Fatalf("nothing should be persisted on validation failure, got %d windows", len(repo.windows))
	}
}

func TestRegisterWindows_RejectsMalformedTime(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.RegisterWindows(context.Background(), "pro-1", []models.WindowInput{
		{Date: "2025-06-10", StartTime: "9am", EndTime: "11:00"},
	})
	if !utils.HasCode(err, utils.CodeFormat) {
		t.Fatalf("expected FORMAT_ERROR, got %v", err)
	}
}

func TestFreeSlots_UnionAcrossWindows(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.RegisterWindows(ctx, "pro-1", []models.WindowInput{
		{Date: "2025-06-10", StartTime: "09:00", EndTime: "10:00"},
		{Date: "2025-06-10", StartTime: "09:30", EndTime: "11:00"},
	})
	if err != nil {
		t.Fatalf("RegisterWindows: %v", err)
	}

	days, err := svc.FreeSlots(ctx, "pro-1", "", "", 30)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	want := []models.DaySlots{
		{Date: "2025-06-10", Slots: []string{"09:00", "09:30", "10:00", "10:30"}},
	}
	if !reflect.DeepEqual(days, want) {
		t.Fatalf("FreeSlots = %v, want %v", days, want)
	}
}

func TestFreeSlots_SubtractsReserved(t *testing.T) {
	svc, _ := newTestService(map[string][]string{
		"pro-1|2025-06-10": {"09:30"},
	})
	ctx := context.Background()

	_, err := svc.RegisterWindows(ctx, "pro-1", []models.WindowInput{
		{Date: "2025-06-10", StartTime: "09:00", EndTime: "11:00"},
	})
	if err != nil {
		t.Fatalf("RegisterWindows: %v", err)
	}

	days, err := svc.FreeSlots(ctx, "pro-1", "", "", 30)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	want := []string{"09:00", "10:00", "10:30"}
	if len(days) != 1 || !reflect.DeepEqual(days[0].Slots, want) {
		t.Fatalf("FreeSlots = %v, want single day with slots %v", days, want)
	}
}

// A fully booked day must still appear with an empty slot list; a day with no
// published windows must be absent. Callers need to tell the two apart.
func TestFreeSlots_FullyBookedDayStillListed(t *testing.T) {
	svc, _ := newTestService(map[string][]string{
		"pro-1|2025-06-10": {"09:00", "09:30"},
	})
	ctx := context.Background()

	_, err := svc.RegisterWindows(ctx, "pro-1", []models.WindowInput{
		{Date: "2025-06-10", StartTime: "09:00", EndTime: "10:00"},
	})
	if err != nil {
		t.Fatalf("RegisterWindows: %v", err)
	}

	days, err := svc.FreeSlots(ctx, "pro-1", "2025-06-09", "2025-06-11", 30)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected exactly the published day, got %v", days)
	}
	if days[0].Date != "2025-06-10" || len(days[0].Slots) != 0 {
		t.Fatalf("expected 2025-06-10 with empty slots, got %v", days[0])
	}
}

func TestFreeSlots_Idempotent(t *testing.T) {
	svc, _ := newTestService(map[string][]string{
		"pro-1|2025-06-10": {"10:00"},
	})
	ctx := context.Background()

	_, err := svc.RegisterWindows(ctx, "pro-1", []models.WindowInput{
		{Date: "2025-06-10", StartTime: "09:00", EndTime: "12:00"},
		{Date: "2025-06-11", StartTime: "14:00", EndTime: "15:00"},
	})
	if err != nil {
		t.Fatalf("RegisterWindows: %v", err)
	}

	first, err := svc.FreeSlots(ctx, "pro-1", "", "", 30)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	second, err := svc.FreeSlots(ctx, "pro-1", "", "", 30)
	if err != nil {
		t.Fatalf("FreeSlots (second call): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("FreeSlots is not idempotent: %v vs %v", first, second)
	}
}

func TestFreeSlots_UnknownProfessional(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.FreeSlots(context.Background(), "no-such-pro", "", "", 30)
	if !utils.HasCode(err, utils.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestRemoveWindows_ExactMatchOnly(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	_, err := svc.RegisterWindows(ctx, "pro-1", []models.WindowInput{
		{Date: "2025-06-10", StartTime: "09:00", EndTime: "11:00"},
		{Date: "2025-06-10", StartTime: "14:00", EndTime: "16:00"},
	})
	if err != nil {
		t.Fatalf("RegisterWindows: %v", err)
	}

	removed, err := svc.RemoveWindows(ctx, "pro-1", "2025-06-10", "09:00", "11:00")
	if err != nil {
		t.Fatalf("RemoveWindows: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if len(repo.windows) != 1 {
		t.Fatalf("expected 1 remaining window, got %d", len(repo.windows))
	}

	// Zero matches is reported as a count, not an error.
	removed, err = svc.RemoveWindows(ctx, "pro-1", "2025-06-10", "09:00", "11:00")
	if err != nil {
		t.Fatalf("RemoveWindows (no match): %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected 0 removed, got %d", removed)
	}
}
