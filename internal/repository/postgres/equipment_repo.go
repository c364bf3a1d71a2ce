package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/repstack/repstack/internal/domain"
	"github.com/repstack/repstack/pkg/optimistic"
)

// EquipmentRepository handles equipment data access
type EquipmentRepository struct {
	db DB
}

// NewEquipmentRepository creates a new equipment repository
func NewEquipmentRepository(db DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// Create inserts a new equipment row with a fresh concurrency token
func (r *EquipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	eq.ConcurrencyToken = optimistic.NewToken()
	query := `
		INSERT INTO equipment (id, name, description, concurrency_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, eq.ID, eq.Name, eq.Description, eq.ConcurrencyToken)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

// GetByID retrieves an equipment row by ID
func (r *EquipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	var eq domain.Equipment
	query := `
		SELECT id, name, description, concurrency_token, created_at, updated_at
		FROM equipment
		WHERE id = $1
	`
	if err := pgxscan.Get(ctx, r.db, &eq, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &eq, nil
}

// ListAll returns the full equipment reference set in insertion order.
// Filtering, sorting and paging run in memory at the service layer.
func (r *EquipmentRepository) ListAll(ctx context.Context) ([]domain.Equipment, error) {
	var items []domain.Equipment
	query := `
		SELECT id, name, description, concurrency_token, created_at, updated_at
		FROM equipment
		ORDER BY created_at ASC
	`
	if err := pgxscan.Select(ctx, r.db, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

// Exists reports whether an equipment row with the given ID exists
func (r *EquipmentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM equipment WHERE id = $1)`
	if err := pgxscan.Get(ctx, r.db, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// NameTaken reports whether another equipment row already uses the name
func (r *EquipmentRepository) NameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (SELECT 1 FROM equipment WHERE LOWER(name) = LOWER($1) AND id <> $2)`
	if err := pgxscan.Get(ctx, r.db, &taken, query, name, exclude); err != nil {
		return false, err
	}
	return taken, nil
}

// Update replaces the row's values if the stored concurrency token still
// matches expected, assigning a fresh token as part of the same write.
// Returns ErrConflict when another writer got there first.
func (r *EquipmentRepository) Update(ctx context.Context, eq *domain.Equipment, expected string) error {
	newToken := optimistic.NewToken()
	query := `
		UPDATE equipment
		SET name = $2, description = $3, concurrency_token = $4, updated_at = NOW()
		WHERE id = $1 AND concurrency_token = $5
	`
	tag, err := r.db.Exec(ctx, query, eq.ID, eq.Name, eq.Description, newToken, expected)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.Exists(ctx, eq.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	eq.ConcurrencyToken = newToken
	return nil
}

// Delete removes an equipment row
func (r *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InUse reports whether any exercise references the equipment
func (r *EquipmentRepository) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	var used bool
	query := `SELECT EXISTS (SELECT 1 FROM exercises WHERE equipment_id = $1)`
	if err := pgxscan.Get(ctx, r.db, &used, query, id); err != nil {
		return false, fmt.Errorf("failed to check equipment usage: %w", err)
	}
	return used, nil
}
