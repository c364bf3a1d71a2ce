package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/repstack/repstack/internal/domain"
	"github.com/repstack/repstack/pkg/optimistic"
	"github.com/repstack/repstack/pkg/paging"
)

// exerciseListSpec maps the logical sort keys callers may use to the columns
// they order by. Unknown keys leave the listing unordered.
var exerciseListSpec = listSpec{
	searchCols: []string{"name"},
	sortCols: map[string]string{
		"name":      "name",
		"createdat": "created_at",
	},
}

// ExerciseRepository handles exercise data access
type ExerciseRepository struct {
	db DB
}

// NewExerciseRepository creates a new exercise repository
func NewExerciseRepository(db DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// Create inserts a new exercise with a fresh concurrency token
func (r *ExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	ex.ConcurrencyToken = optimistic.NewToken()
	query := `
		INSERT INTO exercises (id, owner_id, name, description, muscle_group_id, equipment_id, concurrency_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		ex.ID,
		ex.OwnerID,
		ex.Name,
		ex.Description,
		ex.MuscleGroupID,
		ex.EquipmentID,
		ex.ConcurrencyToken,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

// GetByID retrieves an exercise by ID
func (r *ExerciseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	var ex domain.Exercise
	query := `
		SELECT id, owner_id, name, description, muscle_group_id, equipment_id, concurrency_token, created_at, updated_at
		FROM exercises
		WHERE id = $1
	`
	if err := pgxscan.Get(ctx, r.db, &ex, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ex, nil
}

// List returns one page of exercises plus the count of matching rows. The
// filter, sort and page operations compose server-side; the count covers the
// filtered set, not the whole table. A nil owner lists across all owners.
func (r *ExerciseRepository) List(ctx context.Context, owner *uuid.UUID, req paging.Request) ([]domain.Exercise, int, error) {
	ds := dialect.From("exercises").Select(
		"id", "owner_id", "name", "description", "muscle_group_id", "equipment_id",
		"concurrency_token", "created_at", "updated_at",
	)
	if owner != nil {
		ds = ds.Where(goqu.C("owner_id").Eq(*owner))
	}

	items, count := exerciseListSpec.compose(ds, req)

	countSQL, countArgs, err := count.Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int
	if err := pgxscan.Get(ctx, r.db, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}

	itemsSQL, itemsArgs, err := items.Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}
	var exercises []domain.Exercise
	if err := pgxscan.Select(ctx, r.db, &exercises, itemsSQL, itemsArgs...); err != nil {
		return nil, 0, err
	}

	return exercises, total, nil
}

// Exists reports whether an exercise with the given ID exists
func (r *ExerciseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM exercises WHERE id = $1)`
	if err := pgxscan.Get(ctx, r.db, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// NameTaken reports whether the owner already has another exercise by name
func (r *ExerciseRepository) NameTaken(ctx context.Context, owner uuid.UUID, name string, exclude uuid.UUID) (bool, error) {
	var taken bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM exercises
			WHERE owner_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3
		)
	`
	if err := pgxscan.Get(ctx, r.db, &taken, query, owner, name, exclude); err != nil {
		return false, err
	}
	return taken, nil
}

// Update replaces the row's values if the stored concurrency token still
// matches expected, assigning a fresh token as part of the same write.
func (r *ExerciseRepository) Update(ctx context.Context, ex *domain.Exercise, expected string) error {
	newToken := optimistic.NewToken()
	query := `
		UPDATE exercises
		SET name = $2, description = $3, muscle_group_id = $4, equipment_id = $5, concurrency_token = $6, updated_at = NOW()
		WHERE id = $1 AND concurrency_token = $7
	`
	tag, err := r.db.Exec(ctx, query,
		ex.ID,
		ex.Name,
		ex.Description,
		ex.MuscleGroupID,
		ex.EquipmentID,
		newToken,
		expected,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.Exists(ctx, ex.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	ex.ConcurrencyToken = newToken
	return nil
}

// Delete removes an exercise
func (r *ExerciseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
