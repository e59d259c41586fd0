package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papusbarbershop/backend/internal/mailer"
	"github.com/papusbarbershop/backend/internal/storage"
)

// Notifier is the slice of the mail dispatcher the services need. Both
// operations are fire-and-forget: they return nothing and never block on
// delivery.
type Notifier interface {
	SendAppointmentConfirmation(recipients []string, details mailer.AppointmentDetails)
	SendGenericEmail(recipient, subject, body string)
}

// CreateAppointmentRequest carries the fields for booking an appointment.
type CreateAppointmentRequest struct {
	ClientName   string    `json:"client_name"`
	ClientEmails []string  `json:"client_emails"`
	BarberID     string    `json:"barber_id"`
	HaircutID    string    `json:"haircut_id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Comments     string    `json:"comments"`
}

// AppointmentService defines the business logic for appointments.
type AppointmentService interface {
	Create(ctx context.Context, req CreateAppointmentRequest) (*storage.Appointment, error)
	Get(ctx context.Context, id string) (*storage.Appointment, error)
	List(ctx context.Context, limit int) ([]*storage.Appointment, error)
	Cancel(ctx context.Context, id string) (*storage.Appointment, error)
}

type appointmentService struct {
	appointments storage.AppointmentStore
	catalog      storage.CatalogStore
	notifier     Notifier
	shopName     string
	logger       *slog.Logger
}

// NewAppointmentService returns a new AppointmentService.
func NewAppointmentService(
	appointments storage.AppointmentStore,
	catalog storage.CatalogStore,
	notifier Notifier,
	shopName string,
	logger *slog.Logger,
) AppointmentService {
	return &appointmentService{
		appointments: appointments,
		catalog:      catalog,
		notifier:     notifier,
		shopName:     shopName,
		logger:       logger,
	}
}

// Create validates and persists a new appointment, then queues the
// confirmation email. The email is asynchronous: a delivery failure never
// affects the returned appointment or error.
func (s *appointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (*storage.Appointment, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, &ValidationError{Field: "client_name", Message: "client name is required"}
	}
	if req.ScheduledAt.IsZero() {
		return nil, &ValidationError{Field: "scheduled_at", Message: "scheduled time is required"}
	}
	if req.ScheduledAt.Before(time.Now()) {
		return nil, &ValidationError{Field: "scheduled_at", Message: "scheduled time must be in the future"}
	}

	barber, err := s.catalog.GetBarber(ctx, req.BarberID)
	if err != nil {
		return nil, fmt.Errorf("loading barber: %w", err)
	}
	if barber == nil {
		return nil, &NotFoundError{Resource: "barber", ID: req.BarberID}
	}

	haircut, err := s.catalog.GetHaircut(ctx, req.HaircutID)
	if err != nil {
		return nil, fmt.Errorf("loading haircut: %w", err)
	}
	if haircut == nil {
		return nil, &NotFoundError{Resource: "haircut", ID: req.HaircutID}
	}

	now := time.Now().UTC()
	appt := &storage.Appointment{
		ID:           uuid.NewString(),
		ClientName:   strings.TrimSpace(req.ClientName),
		ClientEmails: req.ClientEmails,
		BarberID:     barber.ID,
		HaircutID:    haircut.ID,
		ScheduledAt:  req.ScheduledAt.UTC(),
		Comments:     req.Comments,
		Status:       storage.AppointmentStatusConfirmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("saving appointment: %w", err)
	}

	s.logger.Info("appointment created",
		"appointment_id", appt.ID, "barber", barber.Name, "haircut", haircut.Name)

	// Fire-and-forget; the dispatcher drops the request itself when no
	// usable recipient exists.
	s.notifier.SendAppointmentConfirmation(appt.ClientEmails, mailer.AppointmentDetails{
		ClientName:  appt.ClientName,
		Date:        appt.ScheduledAt.Format("2006-01-02"),
		Time:        appt.ScheduledAt.Format("15:04"),
		BarberName:  barber.Name,
		ServiceName: haircut.Name,
		Comments:    appt.Comments,
	})

	return appt, nil
}

func (s *appointmentService) Get(ctx context.Context, id string) (*storage.Appointment, error) {
	appt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting appointment %q: %w", id, err)
	}
	if appt == nil {
		return nil, &NotFoundError{Resource: "appointment", ID: id}
	}
	return appt, nil
}

func (s *appointmentService) List(ctx context.Context, limit int) ([]*storage.Appointment, error) {
	appts, err := s.appointments.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appts, nil
}

// Cancel marks an appointment cancelled and queues a cancellation notice for
// each recipient.
func (s *appointmentService) Cancel(ctx context.Context, id string) (*storage.Appointment, error) {
	appt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == storage.AppointmentStatusCancelled {
		return appt, nil
	}

	if err := s.appointments.UpdateStatus(ctx, id, storage.AppointmentStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancelling appointment %q: %w", id, err)
	}
	appt.Status = storage.AppointmentStatusCancelled

	subject := "Appointment Cancelled - " + s.shopName
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment on %s at %s has been cancelled.\n\nBest regards,\nThe %s team",
		appt.ClientName,
		appt.ScheduledAt.Format("2006-01-02"),
		appt.ScheduledAt.Format("15:04"),
		s.shopName,
	)
	for _, email := range appt.ClientEmails {
		s.notifier.SendGenericEmail(email, subject, body)
	}

	s.logger.Info("appointment cancelled", "appointment_id", id)
	return appt, nil
}
