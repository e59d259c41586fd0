package storage

import (
	"context"
	"time"

	"github.com/papusbarbershop/backend/internal/mailer"
)

// NotificationLogEntry records a single email delivery attempt.
type NotificationLogEntry struct {
	ID        int64     `json:"id"`
	Recipient string    `json:"recipient"`
	Provider  string    `json:"provider"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	MessageID string    `json:"message_id"`
	ErrorMsg  string    `json:"error_msg"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationStore defines the interface for persisting delivery outcomes.
// RecordDelivery satisfies mailer.DeliveryRecorder so the store can be
// handed directly to the dispatcher.
type NotificationStore interface {
	// RecordDelivery persists the outcome of one recipient send.
	RecordDelivery(ctx context.Context, rec mailer.DeliveryRecord) error
	// ListDeliveries returns the most recent log entries, up to limit.
	ListDeliveries(ctx context.Context, limit int) ([]NotificationLogEntry, error)
}
