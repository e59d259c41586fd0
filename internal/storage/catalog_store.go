package storage

import (
	"context"
	"time"
)

// Barber is a staff member clients can book.
type Barber struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	PhotoKey  string    `json:"photo_key"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Haircut is a bookable service.
type Haircut struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int       `json:"price_cents"`
	DurationMin int       `json:"duration_min"`
	PhotoKey    string    `json:"photo_key"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogStore defines the interface for barber and haircut persistence.
type CatalogStore interface {
	ListBarbers(ctx context.Context) ([]*Barber, error)
	GetBarber(ctx context.Context, id string) (*Barber, error)
	SaveBarber(ctx context.Context, b *Barber) error

	ListHaircuts(ctx context.Context) ([]*Haircut, error)
	GetHaircut(ctx context.Context, id string) (*Haircut, error)
	SaveHaircut(ctx context.Context, h *Haircut) error
}
