package mailer

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

const defaultSendTimeout = 30 * time.Second

// DeliveryRecord captures the outcome of a single recipient send for the
// notification log.
type DeliveryRecord struct {
	Recipient string
	Provider  string
	Subject   string
	Status    string // "sent", "failed", "skipped"
	MessageID string
	ErrorMsg  string
	CreatedAt time.Time
}

// DeliveryRecorder persists delivery outcomes. Implementations must be safe
// for concurrent use from worker goroutines.
type DeliveryRecorder interface {
	RecordDelivery(ctx context.Context, rec DeliveryRecord) error
}

// TaskSubmitter accepts tasks for asynchronous execution. Satisfied by
// *Executor; tests substitute synchronous fakes.
type TaskSubmitter interface {
	Submit(task Task) error
}

// DispatcherConfig holds the dependencies for a Dispatcher.
type DispatcherConfig struct {
	Executor TaskSubmitter
	// Provider is the delivery backend. A nil Provider puts the dispatcher
	// in degraded mode: every send becomes a logged no-op.
	Provider Provider
	// Recorder is optional. When set, per-recipient outcomes are written to
	// the notification log.
	Recorder    DeliveryRecorder
	FromAddress string
	ShopName    string
	// SendTimeout bounds each provider call. Defaults to 30s.
	SendTimeout time.Duration
	Logger      *slog.Logger
}

// Dispatcher builds email payloads and hands send tasks to the Executor.
// Both public operations are accept-only: delivery outcomes are observable
// through logs, metrics, and the notification log, never through a return
// value on the calling goroutine.
type Dispatcher struct {
	executor    TaskSubmitter
	provider    Provider
	recorder    DeliveryRecorder
	from        string
	shopName    string
	sendTimeout time.Duration
	logger      *slog.Logger
}

// NewDispatcher creates a Dispatcher. When cfg.Provider is nil a warning is
// logged listing the configuration needed to enable delivery.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	shopName := cfg.ShopName
	if shopName == "" {
		shopName = "Papus BarberShop"
	}

	d := &Dispatcher{
		executor:    cfg.Executor,
		provider:    cfg.Provider,
		recorder:    cfg.Recorder,
		from:        cfg.FromAddress,
		shopName:    shopName,
		sendTimeout: timeout,
		logger:      cfg.Logger,
	}

	if d.provider == nil {
		d.logger.Warn("no email provider configured; outgoing mail degrades to logged no-ops",
			"hint", "set MAIL_PROVIDER=ses with AWS_SES_ACCESS_KEY/AWS_SES_SECRET_KEY/AWS_SES_REGION, or MAIL_PROVIDER=smtp with SMTP_HOST/SMTP_PORT")
	} else {
		d.logger.Info("email provider configured", "provider", d.provider.Name(), "from", d.from)
	}
	return d
}

// SendAppointmentConfirmation queues one confirmation batch for the given
// recipients. Blank recipients are filtered out; if none remain the request
// is dropped with a warning and no task is submitted. The call never blocks
// on delivery and never returns an error to the caller.
func (d *Dispatcher) SendAppointmentConfirmation(recipients []string, details AppointmentDetails) {
	valid := filterRecipients(recipients)
	if len(valid) == 0 {
		mailDropped.Inc()
		d.logger.Warn("no valid recipients for appointment confirmation, dropping request",
			"client", details.ClientName)
		return
	}

	subject := "Appointment Confirmation - " + d.shopName
	task := func() {
		d.sendConfirmationBatch(valid, subject, details)
	}

	if err := d.executor.Submit(task); err != nil {
		mailDropped.Inc()
		d.logger.Error("could not queue confirmation email task", "error", err, "recipients", len(valid))
		return
	}

	d.logger.Info("confirmation email task queued",
		"recipients", len(valid), "client", details.ClientName)
}

// SendGenericEmail queues a single plain-text email. A blank recipient is a
// logged no-op. The call never blocks on delivery and never returns an error
// to the caller.
func (d *Dispatcher) SendGenericEmail(recipient, subject, body string) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		mailDropped.Inc()
		d.logger.Warn("no recipient for generic email, dropping request", "subject", subject)
		return
	}

	task := func() {
		d.sendOne(Email{
			From:     d.from,
			To:       recipient,
			Subject:  subject,
			TextBody: body,
		})
	}

	if err := d.executor.Submit(task); err != nil {
		mailDropped.Inc()
		d.logger.Error("could not queue generic email task", "error", err, "recipient", recipient)
		return
	}

	d.logger.Info("generic email task queued", "recipient", recipient, "subject", subject)
}

// sendConfirmationBatch runs on a worker goroutine. It sends one email per
// recipient, continuing past individual failures, and logs a sent/total
// summary when the batch finishes.
func (d *Dispatcher) sendConfirmationBatch(recipients []string, subject string, details AppointmentDetails) {
	if d.provider == nil {
		d.logger.Warn("email provider not configured, skipping confirmation batch",
			"would_have_sent_to", recipients, "subject", subject)
		return
	}

	textBody := buildConfirmationText(d.shopName, details)
	htmlBody, err := buildConfirmationHTML(d.shopName, details)
	if err != nil {
		// Body construction failed for the whole batch; nothing can be
		// sent. Logged and swallowed, never re-raised past the task.
		d.logger.Error("failed to build confirmation email body", "error", err)
		return
	}

	d.logger.Info("sending confirmation emails",
		"from", d.from, "recipients", len(recipients))

	sent := 0
	for _, to := range recipients {
		ok := d.sendOne(Email{
			From:     d.from,
			To:       to,
			Subject:  subject,
			TextBody: textBody,
			HTMLBody: htmlBody,
		})
		if ok {
			sent++
		}
	}

	d.logger.Info("confirmation batch completed", "sent", sent, "total", len(recipients))
}

// sendOne performs a single provider send with a bounded timeout, logs the
// outcome, and records it when a recorder is configured. Returns true on
// success. Failures are terminal here: logged, counted, never propagated.
func (d *Dispatcher) sendOne(email Email) bool {
	if d.provider == nil {
		d.logger.Warn("email provider not configured, skipping send",
			"recipient", email.To, "subject", email.Subject)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	messageID, err := d.provider.Send(ctx, email)

	rec := DeliveryRecord{
		Recipient: email.To,
		Provider:  d.provider.Name(),
		Subject:   email.Subject,
		Status:    "sent",
		MessageID: messageID,
		CreatedAt: time.Now(),
	}

	if err != nil {
		rec.Status = "failed"
		rec.ErrorMsg = err.Error()
		mailFailed.WithLabelValues(d.provider.Name()).Inc()
		d.logger.Error("failed to send email", "recipient", email.To, "error", err)
	} else {
		mailSent.WithLabelValues(d.provider.Name()).Inc()
		d.logger.Info("email sent", "recipient", email.To, "message_id", messageID)
	}

	if d.recorder != nil {
		if logErr := d.recorder.RecordDelivery(context.Background(), rec); logErr != nil {
			d.logger.Error("failed to record delivery outcome", "recipient", email.To, "error", logErr)
		}
	}

	return err == nil
}

// filterRecipients trims entries and drops blanks, preserving order.
func filterRecipients(recipients []string) []string {
	valid := make([]string, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r != "" {
			valid = append(valid, r)
		}
	}
	return valid
}
