package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeedCatalog populates a fresh database with a starter set of barbers and
// haircuts so the booking flow works out of the box. Intended to be called
// only when NewSQLiteDB reports a fresh database.
func SeedCatalog(ctx context.Context, store CatalogStore) error {
	now := time.Now().UTC()

	barbers := []*Barber{
		{ID: uuid.NewString(), Name: "Miguel", Bio: "Fades and classic cuts.", Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Andrés", Bio: "Beard styling specialist.", Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, b := range barbers {
		if err := store.SaveBarber(ctx, b); err != nil {
			return fmt.Errorf("seeding barber %q: %w", b.Name, err)
		}
	}

	haircuts := []*Haircut{
		{ID: uuid.NewString(), Name: "Classic Cut", PriceCents: 1500, DurationMin: 30, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Fade", PriceCents: 1800, DurationMin: 40, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Cut & Beard", PriceCents: 2500, DurationMin: 60, Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, h := range haircuts {
		if err := store.SaveHaircut(ctx, h); err != nil {
			return fmt.Errorf("seeding haircut %q: %w", h.Name, err)
		}
	}

	return nil
}
