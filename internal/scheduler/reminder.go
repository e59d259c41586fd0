// Package scheduler runs the periodic appointment reminder job.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/papusbarbershop/backend/internal/service"
	"github.com/papusbarbershop/backend/internal/storage"
)

// BarberLookup resolves barber names for reminder emails.
type BarberLookup interface {
	GetBarber(ctx context.Context, id string) (*storage.Barber, error)
	GetHaircut(ctx context.Context, id string) (*storage.Haircut, error)
}

// Config holds the reminder scheduler configuration.
type Config struct {
	Appointments storage.AppointmentStore
	Catalog      BarberLookup
	Notifier     service.Notifier
	ShopName     string
	// Interval is how often the store is polled for upcoming appointments.
	Interval time.Duration
	// Window is how far ahead reminders are sent.
	Window time.Duration
	Logger *slog.Logger
}

// Reminder periodically scans for upcoming confirmed appointments and queues
// a reminder email for each, at most once per appointment.
type Reminder struct {
	cron     gocron.Scheduler
	cfg      Config
	interval time.Duration
	window   time.Duration
	logger   *slog.Logger
}

// New creates a new Reminder scheduler.
func New(cfg Config) (*Reminder, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	window := cfg.Window
	if window <= 0 {
		window = 24 * time.Hour
	}

	return &Reminder{
		cron:     cron,
		cfg:      cfg,
		interval: interval,
		window:   window,
		logger:   cfg.Logger,
	}, nil
}

// Start schedules the reminder job and starts the scheduler.
func (r *Reminder) Start(ctx context.Context) error {
	_, err := r.cron.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() { r.runOnce(ctx) }),
	)
	if err != nil {
		return fmt.Errorf("scheduling reminder job: %w", err)
	}

	r.cron.Start()
	r.logger.Info("reminder scheduler started", "interval", r.interval, "window", r.window)
	return nil
}

// Stop shuts down the scheduler.
func (r *Reminder) Stop() error {
	return r.cron.Shutdown()
}

// runOnce is one polling pass. Exported through RunOnce for tests.
func (r *Reminder) runOnce(ctx context.Context) {
	now := time.Now().UTC()
	appts, err := r.cfg.Appointments.ListUpcoming(ctx, now, now.Add(r.window))
	if err != nil {
		r.logger.Error("listing upcoming appointments", "error", err)
		return
	}
	if len(appts) == 0 {
		return
	}

	sent := 0
	for _, appt := range appts {
		if err := r.remind(ctx, appt); err != nil {
			r.logger.Warn("failed to queue reminder",
				"appointment_id", appt.ID, "error", err)
			continue
		}
		sent++
	}
	r.logger.Info("reminder pass finished", "due", len(appts), "queued", sent)
}

func (r *Reminder) remind(ctx context.Context, appt *storage.Appointment) error {
	barberName := ""
	if b, err := r.cfg.Catalog.GetBarber(ctx, appt.BarberID); err == nil && b != nil {
		barberName = b.Name
	}
	serviceName := ""
	if h, err := r.cfg.Catalog.GetHaircut(ctx, appt.HaircutID); err == nil && h != nil {
		serviceName = h.Name
	}

	subject := "Appointment Reminder - " + r.cfg.ShopName
	body := fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder of your appointment on %s at %s",
		appt.ClientName,
		appt.ScheduledAt.Format("2006-01-02"),
		appt.ScheduledAt.Format("15:04"),
	)
	if barberName != "" {
		body += " with " + barberName
	}
	if serviceName != "" {
		body += " (" + serviceName + ")"
	}
	body += fmt.Sprintf(".\n\nSee you soon!\nThe %s team", r.cfg.ShopName)

	for _, email := range appt.ClientEmails {
		r.cfg.Notifier.SendGenericEmail(email, subject, body)
	}

	if err := r.cfg.Appointments.MarkReminderSent(ctx, appt.ID); err != nil {
		return fmt.Errorf("marking reminder sent for %q: %w", appt.ID, err)
	}
	return nil
}
