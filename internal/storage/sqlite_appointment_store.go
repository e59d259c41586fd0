package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SQLiteAppointmentStore implements AppointmentStore backed by SQLite.
type SQLiteAppointmentStore struct {
	db *sql.DB
}

// NewSQLiteAppointmentStore returns a new SQLiteAppointmentStore.
func NewSQLiteAppointmentStore(db *sql.DB) *SQLiteAppointmentStore {
	return &SQLiteAppointmentStore{db: db}
}

// Create persists a new appointment.
func (s *SQLiteAppointmentStore) Create(ctx context.Context, a *Appointment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments
			(id, client_name, client_emails, barber_id, haircut_id,
			 scheduled_at, comments, status, reminder_sent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ClientName, strings.Join(a.ClientEmails, ","),
		a.BarberID, a.HaircutID, a.ScheduledAt.UTC(),
		a.Comments, a.Status, boolToInt(a.ReminderSent),
		a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

// Get returns the appointment with the given ID, or nil if not found.
func (s *SQLiteAppointmentStore) Get(ctx context.Context, id string) (*Appointment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_name, client_emails, barber_id, haircut_id,
		       scheduled_at, comments, status, reminder_sent, created_at, updated_at
		FROM appointments WHERE id = ?`, id)

	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying appointment %q: %w", id, err)
	}
	return a, nil
}

// List returns appointments ordered by scheduled time descending, up to limit.
func (s *SQLiteAppointmentStore) List(ctx context.Context, limit int) ([]*Appointment, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_name, client_emails, barber_id, haircut_id,
		       scheduled_at, comments, status, reminder_sent, created_at, updated_at
		FROM appointments
		ORDER BY scheduled_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectAppointments(rows)
}

// UpdateStatus changes the status of an appointment.
func (s *SQLiteAppointmentStore) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE appointments SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating appointment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("appointment %q not found", id)
	}
	return nil
}

// ListUpcoming returns confirmed appointments scheduled in [from, until)
// whose reminder has not yet been sent.
func (s *SQLiteAppointmentStore) ListUpcoming(ctx context.Context, from, until time.Time) ([]*Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_name, client_emails, barber_id, haircut_id,
		       scheduled_at, comments, status, reminder_sent, created_at, updated_at
		FROM appointments
		WHERE status = ? AND reminder_sent = 0 AND scheduled_at >= ? AND scheduled_at < ?
		ORDER BY scheduled_at ASC`,
		AppointmentStatusConfirmed, from.UTC(), until.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying upcoming appointments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectAppointments(rows)
}

// MarkReminderSent flags an appointment so its reminder is sent only once.
func (s *SQLiteAppointmentStore) MarkReminderSent(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE appointments SET reminder_sent = 1, updated_at = ? WHERE id = ?",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("marking reminder sent: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*Appointment, error) {
	var a Appointment
	var emails string
	var reminderSent int
	err := row.Scan(&a.ID, &a.ClientName, &emails, &a.BarberID, &a.HaircutID,
		&a.ScheduledAt, &a.Comments, &a.Status, &reminderSent,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if emails != "" {
		a.ClientEmails = strings.Split(emails, ",")
	}
	a.ReminderSent = reminderSent != 0
	return &a, nil
}

func collectAppointments(rows *sql.Rows) ([]*Appointment, error) {
	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointment rows: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
