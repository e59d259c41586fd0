package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papusbarbershop/backend/internal/storage"
)

// CatalogService defines the business logic for barbers and haircuts.
type CatalogService interface {
	ListBarbers(ctx context.Context) ([]*storage.Barber, error)
	GetBarber(ctx context.Context, id string) (*storage.Barber, error)
	SaveBarber(ctx context.Context, b *storage.Barber) (*storage.Barber, error)

	ListHaircuts(ctx context.Context) ([]*storage.Haircut, error)
	GetHaircut(ctx context.Context, id string) (*storage.Haircut, error)
	SaveHaircut(ctx context.Context, h *storage.Haircut) (*storage.Haircut, error)
}

type catalogService struct {
	store  storage.CatalogStore
	logger *slog.Logger
}

// NewCatalogService returns a new CatalogService.
func NewCatalogService(store storage.CatalogStore, logger *slog.Logger) CatalogService {
	return &catalogService{store: store, logger: logger}
}

func (s *catalogService) ListBarbers(ctx context.Context) ([]*storage.Barber, error) {
	barbers, err := s.store.ListBarbers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing barbers: %w", err)
	}
	return barbers, nil
}

func (s *catalogService) GetBarber(ctx context.Context, id string) (*storage.Barber, error) {
	b, err := s.store.GetBarber(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting barber %q: %w", id, err)
	}
	if b == nil {
		return nil, &NotFoundError{Resource: "barber", ID: id}
	}
	return b, nil
}

// SaveBarber creates or updates a barber. A blank ID means create.
func (s *catalogService) SaveBarber(ctx context.Context, b *storage.Barber) (*storage.Barber, error) {
	if strings.TrimSpace(b.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}

	now := time.Now().UTC()
	if b.ID == "" {
		b.ID = uuid.NewString()
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	if err := s.store.SaveBarber(ctx, b); err != nil {
		return nil, fmt.Errorf("saving barber: %w", err)
	}
	s.logger.Info("barber saved", "barber_id", b.ID, "name", b.Name)
	return b, nil
}

func (s *catalogService) ListHaircuts(ctx context.Context) ([]*storage.Haircut, error) {
	haircuts, err := s.store.ListHaircuts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing haircuts: %w", err)
	}
	return haircuts, nil
}

func (s *catalogService) GetHaircut(ctx context.Context, id string) (*storage.Haircut, error) {
	h, err := s.store.GetHaircut(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting haircut %q: %w", id, err)
	}
	if h == nil {
		return nil, &NotFoundError{Resource: "haircut", ID: id}
	}
	return h, nil
}

// SaveHaircut creates or updates a haircut. A blank ID means create.
func (s *catalogService) SaveHaircut(ctx context.Context, h *storage.Haircut) (*storage.Haircut, error) {
	if strings.TrimSpace(h.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if h.PriceCents < 0 {
		return nil, &ValidationError{Field: "price_cents", Message: "price must not be negative"}
	}

	now := time.Now().UTC()
	if h.ID == "" {
		h.ID = uuid.NewString()
		h.CreatedAt = now
	}
	h.UpdatedAt = now

	if err := s.store.SaveHaircut(ctx, h); err != nil {
		return nil, fmt.Errorf("saving haircut: %w", err)
	}
	s.logger.Info("haircut saved", "haircut_id", h.ID, "name", h.Name)
	return h, nil
}
