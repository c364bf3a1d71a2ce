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

// MuscleGroupRepository handles muscle group data access
type MuscleGroupRepository struct {
	db DB
}

// NewMuscleGroupRepository creates a new muscle group repository
func NewMuscleGroupRepository(db DB) *MuscleGroupRepository {
	return &MuscleGroupRepository{db: db}
}

// Create inserts a new muscle group with a fresh concurrency token
func (r *MuscleGroupRepository) Create(ctx context.Context, mg *domain.MuscleGroup) error {
	mg.ConcurrencyToken = optimistic.NewToken()
	query := `
		INSERT INTO muscle_groups (id, name, body_region, concurrency_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, mg.ID, mg.Name, mg.BodyRegion, mg.ConcurrencyToken)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

// GetByID retrieves a muscle group by ID
func (r *MuscleGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MuscleGroup, error) {
	var mg domain.MuscleGroup
	query := `
		SELECT id, name, body_region, concurrency_token, created_at, updated_at
		FROM muscle_groups
		WHERE id = $1
	`
	if err := pgxscan.Get(ctx, r.db, &mg, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &mg, nil
}

// ListAll returns the full muscle group reference set in insertion order.
// Filtering, sorting and paging run in memory at the service layer.
func (r *MuscleGroupRepository) ListAll(ctx context.Context) ([]domain.MuscleGroup, error) {
	var items []domain.MuscleGroup
	query := `
		SELECT id, name, body_region, concurrency_token, created_at, updated_at
		FROM muscle_groups
		ORDER BY created_at ASC
	`
	if err := pgxscan.Select(ctx, r.db, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

// Exists reports whether a muscle group with the given ID exists
func (r *MuscleGroupRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM muscle_groups WHERE id = $1)`
	if err := pgxscan.Get(ctx, r.db, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// NameTaken reports whether another muscle group already uses the name
func (r *MuscleGroupRepository) NameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (SELECT 1 FROM muscle_groups WHERE LOWER(name) = LOWER($1) AND id <> $2)`
	if err := pgxscan.Get(ctx, r.db, &taken, query, name, exclude); err != nil {
		return false, err
	}
	return taken, nil
}

// Update replaces the row's values if the stored concurrency token still
// matches expected, assigning a fresh token as part of the same write.
func (r *MuscleGroupRepository) Update(ctx context.Context, mg *domain.MuscleGroup, expected string) error {
	newToken := optimistic.NewToken()
	query := `
		UPDATE muscle_groups
		SET name = $2, body_region = $3, concurrency_token = $4, updated_at = NOW()
		WHERE id = $1 AND concurrency_token = $5
	`
	tag, err := r.db.Exec(ctx, query, mg.ID, mg.Name, mg.BodyRegion, newToken, expected)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.Exists(ctx, mg.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	mg.ConcurrencyToken = newToken
	return nil
}

// Delete removes a muscle group
func (r *MuscleGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM muscle_groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InUse reports whether any exercise references the muscle group
func (r *MuscleGroupRepository) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	var used bool
	query := `SELECT EXISTS (SELECT 1 FROM exercises WHERE muscle_group_id = $1)`
	if err := pgxscan.Get(ctx, r.db, &used, query, id); err != nil {
		return false, fmt.Errorf("failed to check muscle group usage: %w", err)
	}
	return used, nil
}
