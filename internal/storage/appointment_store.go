package storage

import (
	"context"
	"time"
)

// Appointment statuses.
const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment is a booked slot with a barber for a haircut.
type Appointment struct {
	ID           string    `json:"id"`
	ClientName   string    `json:"client_name"`
	ClientEmails []string  `json:"client_emails"`
	BarberID     string    `json:"barber_id"`
	HaircutID    string    `json:"haircut_id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Comments     string    `json:"comments"`
	Status       string    `json:"status"`
	ReminderSent bool      `json:"reminder_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AppointmentStore defines the interface for appointment persistence.
type AppointmentStore interface {
	// Create persists a new appointment.
	Create(ctx context.Context, a *Appointment) error
	// Get returns the appointment with the given ID, or nil if not found.
	Get(ctx context.Context, id string) (*Appointment, error)
	// List returns appointments ordered by scheduled time descending, up to limit.
	List(ctx context.Context, limit int) ([]*Appointment, error)
	// UpdateStatus changes the status of an appointment.
	UpdateStatus(ctx context.Context, id, status string) error
	// ListUpcoming returns confirmed appointments scheduled in [from, until)
	// whose reminder has not yet been sent.
	ListUpcoming(ctx context.Context, from, until time.Time) ([]*Appointment, error)
	// MarkReminderSent flags an appointment so its reminder is sent only once.
	MarkReminderSent(ctx context.Context, id string) error
}
