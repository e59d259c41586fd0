package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papusbarbershop/backend/internal/mailer"
	"github.com/papusbarbershop/backend/internal/service"
	"github.com/papusbarbershop/backend/internal/storage"
)

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

func TestNotificationService_ListDeliveries(t *testing.T) {
	store := &memoryNotificationStore{entries: []storage.NotificationLogEntry{
		{ID: 1, Recipient: "a@example.com", Status: "sent", CreatedAt: time.Now()},
		{ID: 2, Recipient: "b@example.com", Status: "failed", CreatedAt: time.Now()},
	}}
	svc := service.NewNotificationService(store, &fakeNotifier{}, "Papus BarberShop", testLogger())

	entries, err := svc.ListDeliveries(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a@example.com", entries[0].Recipient)
}

func TestNotificationService_SendTest(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := service.NewNotificationService(&memoryNotificationStore{}, notifier, "Papus BarberShop", testLogger())

	require.NoError(t, svc.SendTest(context.Background(), "owner@example.com"))
	assert.Equal(t, []string{"owner@example.com"}, notifier.generic)
}

func TestNotificationService_SendTest_BlankRecipient(t *testing.T) {
	svc := service.NewNotificationService(&memoryNotificationStore{}, &fakeNotifier{}, "Papus BarberShop", testLogger())

	var verr *service.ValidationError
	require.ErrorAs(t, svc.SendTest(context.Background(), "  "), &verr)
}
