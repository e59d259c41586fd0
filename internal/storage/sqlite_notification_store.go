package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/papusbarbershop/backend/internal/mailer"
)

// SQLiteNotificationStore implements NotificationStore backed by SQLite.
type SQLiteNotificationStore struct {
	db *sql.DB
}

// NewSQLiteNotificationStore returns a new SQLiteNotificationStore.
func NewSQLiteNotificationStore(db *sql.DB) *SQLiteNotificationStore {
	return &SQLiteNotificationStore{db: db}
}

// RecordDelivery inserts a delivery record into the notification log.
func (s *SQLiteNotificationStore) RecordDelivery(ctx context.Context, rec mailer.DeliveryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_log (recipient, provider, subject, status, message_id, error_msg, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Recipient, rec.Provider, rec.Subject,
		rec.Status, rec.MessageID, rec.ErrorMsg, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting notification log: %w", err)
	}
	return nil
}

// ListDeliveries returns the most recent log entries ordered by created_at descending.
func (s *SQLiteNotificationStore) ListDeliveries(ctx context.Context, limit int) ([]NotificationLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipient, provider, subject, status, message_id, error_msg, created_at
		FROM notification_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying notification log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []NotificationLogEntry
	for rows.Next() {
		var e NotificationLogEntry
		if err := rows.Scan(&e.ID, &e.Recipient, &e.Provider, &e.Subject,
			&e.Status, &e.MessageID, &e.ErrorMsg, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification log row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification log rows: %w", err)
	}
	return entries, nil
}
