package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papusbarbershop/backend/internal/api"
	"github.com/papusbarbershop/backend/internal/blob"
	"github.com/papusbarbershop/backend/internal/config"
	"github.com/papusbarbershop/backend/internal/mailer"
	"github.com/papusbarbershop/backend/internal/service"
	"github.com/papusbarbershop/backend/internal/storage"
)

// testHarness wires real services over in-memory stores so handler tests
// exercise the full request path.
type testHarness struct {
	appointments *memoryAppointmentStore
	catalog      *memoryCatalogStore
	notifier     *fakeNotifier
	router       chi.Router
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appointments := newMemoryAppointmentStore()
	catalog := newMemoryCatalogStore()
	notifier := &fakeNotifier{}

	apptSvc := service.NewAppointmentService(appointments, catalog, notifier, "Papus BarberShop", logger)
	catalogSvc := service.NewCatalogService(catalog, logger)
	notifSvc := service.NewNotificationService(&memoryNotificationStore{}, notifier, "Papus BarberShop", logger)

	srv := api.New(apptSvc, catalogSvc, notifSvc, blob.NewDisabled(logger), config.DefaultShopProfile(), logger)
	r := chi.NewRouter()
	srv.Mount(r)

	return &testHarness{
		appointments: appointments,
		catalog:      catalog,
		notifier:     notifier,
		router:       r,
	}
}

func (h *testHarness) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// ---------- Appointments ----------

func TestCreateAppointment(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/appointments", jsonBody(t, map[string]any{
		"client_name":   "John Doe",
		"client_emails": []string{"john@example.com"},
		"barber_id":     "b1",
		"haircut_id":    "h1",
		"scheduled_at":  time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}))
	w := h.do(req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var appt storage.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, storage.AppointmentStatusConfirmed, appt.Status)

	// Confirmation was queued for the booking.
	assert.Len(t, h.notifier.confirmations, 1)
}

func TestCreateAppointment_BadRequests(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed JSON", "{not json", http.StatusBadRequest},
		{"blank client name", `{"client_name":"","barber_id":"b1","haircut_id":"h1","scheduled_at":"2030-01-01T10:00:00Z"}`, http.StatusBadRequest},
		{"unknown barber", `{"client_name":"Jo","barber_id":"nope","haircut_id":"h1","scheduled_at":"2030-01-01T10:00:00Z"}`, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader([]byte(tc.body)))
			w := h.do(req)
			assert.Equal(t, tc.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestGetAppointment_NotFound(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/appointments/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelAppointment(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/appointments", jsonBody(t, map[string]any{
		"client_name":   "Jane",
		"client_emails": []string{"jane@example.com"},
		"barber_id":     "b1",
		"haircut_id":    "h1",
		"scheduled_at":  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}))
	w := h.do(req)
	require.Equal(t, http.StatusCreated, w.Code)

	var appt storage.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))

	w = h.do(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/appointments/%s/cancel", appt.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var cancelled storage.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.Equal(t, storage.AppointmentStatusCancelled, cancelled.Status)
	assert.Equal(t, []string{"jane@example.com"}, h.notifier.generic)
}

// ---------- Catalog ----------

func TestListBarbers(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/barbers", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var barbers []storage.Barber
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &barbers))
	require.Len(t, barbers, 1)
	assert.Equal(t, "Miguel", barbers[0].Name)
}

func TestSaveHaircut(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPut, "/haircuts/h1", jsonBody(t, map[string]any{
		"name":        "Classic Cut",
		"price_cents": 2500,
	}))
	w := h.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var h1 storage.Haircut
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h1))
	assert.Equal(t, "h1", h1.ID)
	assert.Equal(t, 2500, h1.PriceCents)
}

func TestSaveHaircut_NegativePrice(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPut, "/haircuts/h1", jsonBody(t, map[string]any{
		"name":        "Classic Cut",
		"price_cents": -1,
	}))
	w := h.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ---------- Notifications ----------

func TestTestNotification(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/notifications/test", jsonBody(t, map[string]string{
		"recipient": "owner@example.com",
	}))
	w := h.do(req)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []string{"owner@example.com"}, h.notifier.generic)
}

func TestListNotifications(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/notifications?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

// ---------- Uploads ----------

func TestPresignUpload_StorageDisabled(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/uploads/presign", jsonBody(t, map[string]string{
		"file_name":    "photo.jpg",
		"folder":       "barbers",
		"content_type": "image/jpeg",
	}))
	w := h.do(req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDownloadURL_MissingKey(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/uploads/download-url", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadURL_StorageDisabled(t *testing.T) {
	h := newHarness(t)

	// The existence check runs before presigning and surfaces the same 503.
	w := h.do(httptest.NewRequest(http.MethodGet, "/uploads/download-url?key=barbers/x.jpg", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// ---------- Shop profile ----------

func TestGetShop(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/shop", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var shop config.ShopProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shop))
	assert.Equal(t, "Papus BarberShop", shop.Name)
}

// ---------- In-memory fakes ----------

type fakeNotifier struct {
	confirmations []mailer.AppointmentDetails
	generic       []string
}

func (f *fakeNotifier) SendAppointmentConfirmation(_ []string, details mailer.AppointmentDetails) {
	f.confirmations = append(f.confirmations, details)
}

func (f *fakeNotifier) SendGenericEmail(recipient, _, _ string) {
	f.generic = append(f.generic, recipient)
}

type memoryAppointmentStore struct {
	appointments map[string]*storage.Appointment
}

func newMemoryAppointmentStore() *memoryAppointmentStore {
	return &memoryAppointmentStore{appointments: make(map[string]*storage.Appointment)}
}

func (s *memoryAppointmentStore) Create(_ context.Context, a *storage.Appointment) error {
	cp := *a
	s.appointments[a.ID] = &cp
	return nil
}

func (s *memoryAppointmentStore) Get(_ context.Context, id string) (*storage.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *memoryAppointmentStore) List(_ context.Context, _ int) ([]*storage.Appointment, error) {
	var out []*storage.Appointment
	for _, a := range s.appointments {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memoryAppointmentStore) UpdateStatus(_ context.Context, id, status string) error {
	if a, ok := s.appointments[id]; ok {
		a.Status = status
	}
	return nil
}

func (s *memoryAppointmentStore) ListUpcoming(_ context.Context, _, _ time.Time) ([]*storage.Appointment, error) {
	return nil, nil
}

func (s *memoryAppointmentStore) MarkReminderSent(_ context.Context, id string) error {
	if a, ok := s.appointments[id]; ok {
		a.ReminderSent = true
	}
	return nil
}

type memoryCatalogStore struct {
	barbers  map[string]*storage.Barber
	haircuts map[string]*storage.Haircut
}

func newMemoryCatalogStore() *memoryCatalogStore {
	return &memoryCatalogStore{
		barbers:  map[string]*storage.Barber{"b1": {ID: "b1", Name: "Miguel", Active: true}},
		haircuts: map[string]*storage.Haircut{"h1": {ID: "h1", Name: "Classic Cut", Active: true}},
	}
}

func (s *memoryCatalogStore) ListBarbers(_ context.Context) ([]*storage.Barber, error) {
	var out []*storage.Barber
	for _, b := range s.barbers {
		out = append(out, b)
	}
	return out, nil
}

func (s *memoryCatalogStore) GetBarber(_ context.Context, id string) (*storage.Barber, error) {
	return s.barbers[id], nil
}

func (s *memoryCatalogStore) SaveBarber(_ context.Context, b *storage.Barber) error {
	s.barbers[b.ID] = b
	return nil
}

func (s *memoryCatalogStore) ListHaircuts(_ context.Context) ([]*storage.Haircut, error) {
	var out []*storage.Haircut
	for _, h := range s.haircuts {
		out = append(out, h)
	}
	return out, nil
}

func (s *memoryCatalogStore) GetHaircut(_ context.Context, id string) (*storage.Haircut, error) {
	return s.haircuts[id], nil
}

func (s *memoryCatalogStore) SaveHaircut(_ context.Context, h *storage.Haircut) error {
	s.haircuts[h.ID] = h
	return nil
}

type memoryNotificationStore struct {
	entries []storage.NotificationLogEntry
}

func (s *memoryNotificationStore) RecordDelivery(_ context.Context, _ mailer.DeliveryRecord) error {
	return nil
}

func (s *memoryNotificationStore) ListDeliveries(_ context.Context, limit int) ([]storage.NotificationLogEntry, error) {
	if limit > 0 && limit < len(s.entries) {
		return s.entries[:limit], nil
	}
	return s.entries, nil
}
