package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinibook/models"
	"clinibook/utils"
)

type fakeReservations struct {
	confirmed []models.Reservation
}

func (f *fakeReservations) ListConfirmedBetween(_ context.Context, fromDate, toDate string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range f.confirmed {
		if res.Date >= fromDate && res.Date <= toDate {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservations) CreateWithHistory(context.Context, *models.Reservation) error {
	panic("not used")
}
func (f *fakeReservations) GetByID(context.Context, string) (*models.Reservation, error) {
	panic("not used")
}
func (f *fakeReservations) HasClash(context.Context, string, string, string) (bool, error) {
	panic("not used")
}
func (f *fakeReservations) ListByClient(context.Context, string) ([]models.Reservation, error) {
	panic("not used")
}
func (f *fakeReservations) ListByProfessional(context.Context, string, string) ([]models.Reservation, error) {
	panic("not used")
}
func (f *fakeReservations) ListQueueByProfessional(context.Context, string, string) ([]models.ReservationView, error) {
	panic("not used")
}
func (f *fakeReservations) ReservedTimes(context.Context, string, string) ([]string, error) {
	panic("not used")
}
func (f *fakeReservations) SetStatus(context.Context, string, string) (*models.Reservation, error) {
	panic("not used")
}
func (f *fakeReservations) DeleteCancelled(context.Context, string) error { panic("not used") }
func (f *fakeReservations) EnsureIndexes() error                          { return nil }

type fakeClients struct {
	clients map[string]*models.Client
}

func (f *fakeClients) GetByID(_ context.Context, id string) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, utils.NewDomainErrorf(utils.CodeNotFound, "client %s not found", id)
	}
	return client, nil
}

func (f *fakeClients) Create(context.Context, *models.Client) error { panic("not used") }
func (f *fakeClients) GetByUserID(context.Context, string) (*models.Client, error) {
	panic("not used")
}
func (f *fakeClients) ListAll(context.Context) ([]models.Client, error) { panic("not used") }
func (f *fakeClients) AppendHistory(context.Context, string, string) error {
	panic("not used")
}
func (f *fakeClients) RemoveHistory(context.Context, string, string) error {
	panic("not used")
}
func (f *fakeClients) Delete(context.Context, string) error { panic("not used") }
func (f *fakeClients) EnsureIndexes() error                 { return nil }

// fakeNotifications doubles as the repository (existence checks) and the sink
// (writes), mirroring how the production service records what it sends.
type fakeNotifications struct {
	mu   sync.Mutex
	sent map[string]bool // "userID|reservationID|type"
}

func key(userID, reservationID, eventType string) string {
	return userID + "|" + reservationID + "|" + eventType
}

func (f *fakeNotifications) ExistsForReservation(_ context.Context, userID, reservationID, eventType string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[key(userID, reservationID, eventType)], nil
}

func (f *fakeNotifications) Notify(_ context.Context, userID, _, eventType, _, reservationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[key(userID, reservationID, eventType)] = true
	return nil
}

func (f *fakeNotifications) MarkReadForReservation(context.Context, string, string, string) {}

func (f *fakeNotifications) Create(context.Context, *models.Notification) error { panic("not used") }
func (f *fakeNotifications) ListByUser(context.Context, string, bool) ([]models.Notification, error) {
	panic("not used")
}
func (f *fakeNotifications) MarkRead(context.Context, string, string) error { panic("not used") }
func (f *fakeNotifications) MarkReadByReservation(context.Context, string, string, string) error {
	panic("not used")
}
func (f *fakeNotifications) Delete(context.Context, string, string) error { panic("not used") }
func (f *fakeNotifications) EnsureIndexes() error                         { return nil }

func newTestReminder(confirmed []models.Reservation) (*DefaultReminderService, *fakeNotifications) {
	notifs := &fakeNotifications{sent: make(map[string]bool)}
	clients := &fakeClients{clients: map[string]*models.Client{
		"cli-1": {ID: "cli-1", UserID: "user-cli-1"},
		"cli-2": {ID: "cli-2", UserID: "user-cli-2"},
	}}
	return &DefaultReminderService{
		ResRepo:    &fakeReservations{confirmed: confirmed},
		ClientRepo: clients,
		NotifRepo:  notifs,
		Sink:       notifs,
		LeadDays:   2,
		LeadHours:  4,
		Tolerance:  15 * time.Minute,
	}, notifs
}

func TestScan_DayAheadTrigger(t *testing.T) {
	now := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)
	svc, notifs := newTestReminder([]models.Reservation{
		{ID: "res-1", ClientID: "cli-1", Date: "2025-06-10", Time: "15:00", Status: models.StatusConfirmed},
		{ID: "res-2", ClientID: "cli-2", Date: "2025-06-11", Time: "09:00", Status: models.StatusConfirmed},
	})

	sent, err := svc.Scan(context.Background(), now)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 reminder, got %d", sent)
	}
	if !notifs.sent[key("user-cli-1", "res-1", models.EventReminder)] {
		t.Fatal("expected a reminder for the reservation two days ahead")
	}
}

func TestScan_LeadHoursBand(t *testing.T) {
	now := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)
	svc, notifs := newTestReminder([]models.Reservation{
		// 4h10m ahead: inside the ±15m band around the 4h lead.
		{ID: "res-in", ClientID: "cli-1", Date: "2025-06-08", Time: "14:10", Status: models.StatusConfirmed},
		// 4h30m ahead: outside the band.
		{ID: "res-out", ClientID: "cli-2", Date: "2025-06-08", Time: "14:30", Status: models.StatusConfirmed},
	})

	sent, err := svc.Scan(context.Background(), now)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 reminder, got %d", sent)
	}
	if !notifs.sent[key("user-cli-1", "res-in", models.EventReminder)] {
		t.Fatal("expected a reminder for the reservation inside the band")
	}
	if notifs.sent[key("user-cli-2", "res-out", models.EventReminder)] {
		t.Fatal("reservation outside the band must not be reminded")
	}
}

func TestScan_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestReminder([]models.Reservation{
		{ID: "res-1", ClientID: "cli-1", Date: "2025-06-10", Time: "15:00", Status: models.StatusConfirmed},
	})
	ctx := context.Background()

	if sent, err := svc.Scan(ctx, now); err != nil || sent != 1 {
		t.Fatalf("first Scan: sent=%d err=%v", sent, err)
	}
	// Same scan again, e.g. the next cron tick: nothing new to send.
	if sent, err := svc.Scan(ctx, now.Add(15*time.Minute)); err != nil || sent != 0 {
		t.Fatalf("second Scan: sent=%d err=%v, want 0 and nil", sent, err)
	}
}

func TestScan_DeletedClientSkipped(t *testing.T) {
	now := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestReminder([]models.Reservation{
		{ID: "res-1", ClientID: "cli-gone", Date: "2025-06-10", Time: "15:00", Status: models.StatusConfirmed},
	})

	sent, err := svc.Scan(context.Background(), now)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected 0 reminders for a deleted client, got %d", sent)
	}
}
