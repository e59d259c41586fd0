package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteCatalogStore implements CatalogStore backed by SQLite.
type SQLiteCatalogStore struct {
	db *sql.DB
}

// NewSQLiteCatalogStore returns a new SQLiteCatalogStore.
func NewSQLiteCatalogStore(db *sql.DB) *SQLiteCatalogStore {
	return &SQLiteCatalogStore{db: db}
}

// ListBarbers returns all active barbers ordered by name.
func (s *SQLiteCatalogStore) ListBarbers(ctx context.Context) ([]*Barber, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, bio, photo_key, active, created_at, updated_at
		FROM barbers WHERE active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying barbers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Barber
	for rows.Next() {
		var b Barber
		var active int
		if err := rows.Scan(&b.ID, &b.Name, &b.Bio, &b.PhotoKey, &active,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning barber row: %w", err)
		}
		b.Active = active != 0
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating barber rows: %w", err)
	}
	return out, nil
}

// GetBarber returns the barber with the given ID, or nil if not found.
func (s *SQLiteCatalogStore) GetBarber(ctx context.Context, id string) (*Barber, error) {
	var b Barber
	var active int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, bio, photo_key, active, created_at, updated_at
		FROM barbers WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &b.Bio, &b.PhotoKey, &active, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying barber %q: %w", id, err)
	}
	b.Active = active != 0
	return &b, nil
}

// SaveBarber inserts or replaces a barber.
func (s *SQLiteCatalogStore) SaveBarber(ctx context.Context, b *Barber) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO barbers (id, name, bio, photo_key, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, bio = excluded.bio, photo_key = excluded.photo_key,
			active = excluded.active, updated_at = excluded.updated_at`,
		b.ID, b.Name, b.Bio, b.PhotoKey, boolToInt(b.Active),
		b.CreatedAt.UTC(), b.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving barber: %w", err)
	}
	return nil
}

// ListHaircuts returns all active haircuts ordered by name.
func (s *SQLiteCatalogStore) ListHaircuts(ctx context.Context) ([]*Haircut, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price_cents, duration_min, photo_key, active,
		       created_at, updated_at
		FROM haircuts WHERE active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying haircuts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Haircut
	for rows.Next() {
		var h Haircut
		var active int
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.PriceCents,
			&h.DurationMin, &h.PhotoKey, &active, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning haircut row: %w", err)
		}
		h.Active = active != 0
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating haircut rows: %w", err)
	}
	return out, nil
}

// GetHaircut returns the haircut with the given ID, or nil if not found.
func (s *SQLiteCatalogStore) GetHaircut(ctx context.Context, id string) (*Haircut, error) {
	var h Haircut
	var active int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price_cents, duration_min, photo_key, active,
		       created_at, updated_at
		FROM haircuts WHERE id = ?`, id).
		Scan(&h.ID, &h.Name, &h.Description, &h.PriceCents, &h.DurationMin,
			&h.PhotoKey, &active, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying haircut %q: %w", id, err)
	}
	h.Active = active != 0
	return &h, nil
}

// SaveHaircut inserts or replaces a haircut.
func (s *SQLiteCatalogStore) SaveHaircut(ctx context.Context, h *Haircut) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO haircuts
			(id, name, description, price_cents, duration_min, photo_key, active,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, description = excluded.description,
			price_cents = excluded.price_cents, duration_min = excluded.duration_min,
			photo_key = excluded.photo_key, active = excluded.active,
			updated_at = excluded.updated_at`,
		h.ID, h.Name, h.Description, h.PriceCents, h.DurationMin, h.PhotoKey,
		boolToInt(h.Active), h.CreatedAt.UTC(), h.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving haircut: %w", err)
	}
	return nil
}
