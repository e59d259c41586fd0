package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/papusbarbershop/backend/internal/storage"
)

// NotificationService exposes the delivery log and a manual test send.
type NotificationService interface {
	ListDeliveries(ctx context.Context, limit int) ([]storage.NotificationLogEntry, error)
	SendTest(ctx context.Context, recipient string) error
}

type notificationService struct {
	log      storage.NotificationStore
	notifier Notifier
	shopName string
	logger   *slog.Logger
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(log storage.NotificationStore, notifier Notifier, shopName string, logger *slog.Logger) NotificationService {
	return &notificationService{log: log, notifier: notifier, shopName: shopName, logger: logger}
}

func (s *notificationService) ListDeliveries(ctx context.Context, limit int) ([]storage.NotificationLogEntry, error) {
	entries, err := s.log.ListDeliveries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	return entries, nil
}

// SendTest queues a test email. Acceptance only means the message was queued;
// the outcome lands in the delivery log.
func (s *notificationService) SendTest(_ context.Context, recipient string) error {
	if strings.TrimSpace(recipient) == "" {
		return &ValidationError{Field: "recipient", Message: "recipient is required"}
	}
	s.notifier.SendGenericEmail(recipient,
		"Test Notification - "+s.shopName,
		fmt.Sprintf("This is a test notification from %s. If you received this, email delivery is working.", s.shopName),
	)
	s.logger.Info("test notification queued", "recipient", recipient)
	return nil
}
