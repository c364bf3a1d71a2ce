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

var workoutListSpec = listSpec{
	searchCols: []string{"name"},
	sortCols: map[string]string{
		"name":        "name",
		"createdat":   "created_at",
		"performedat": "performed_at",
	},
}

// WorkoutRepository handles workout data access. Entries travel with their
// workout: inserted with it, replaced wholesale on update, removed by the
// cascade on delete.
type WorkoutRepository struct {
	db DB
}

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(db DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// Create inserts a workout and its entries in one transaction
func (r *WorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	w.ConcurrencyToken = optimistic.NewToken()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO workouts (id, owner_id, name, performed_at, notes, concurrency_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, query,
		w.ID, w.OwnerID, w.Name, w.PerformedAt, w.Notes, w.ConcurrencyToken,
	); err != nil {
		return err
	}

	if err := insertEntries(ctx, tx, w.ID, w.Entries); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertEntries(ctx context.Context, tx pgx.Tx, workoutID uuid.UUID, entries []domain.WorkoutEntry) error {
	query := `
		INSERT INTO workout_entries (id, workout_id, exercise_id, set_number, reps, weight_kg)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range entries {
		entries[i].ID = uuid.New()
		entries[i].WorkoutID = workoutID
		if _, err := tx.Exec(ctx, query,
			entries[i].ID,
			workoutID,
			entries[i].ExerciseID,
			entries[i].SetNumber,
			entries[i].Reps,
			entries[i].WeightKg,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a workout and its entries
func (r *WorkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	var w domain.Workout
	query := `
		SELECT id, owner_id, name, performed_at, notes, concurrency_token, created_at, updated_at
		FROM workouts
		WHERE id = $1
	`
	if err := pgxscan.Get(ctx, r.db, &w, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	entriesQuery := `
		SELECT id, workout_id, exercise_id, set_number, reps, weight_kg
		FROM workout_entries
		WHERE workout_id = $1
		ORDER BY set_number ASC
	`
	if err := pgxscan.Select(ctx, r.db, &w.Entries, entriesQuery, id); err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns one page of workouts (without entries) plus the count of
// matching rows. The count covers the filtered set. A nil owner lists across
// all owners.
func (r *WorkoutRepository) List(ctx context.Context, owner *uuid.UUID, req paging.Request) ([]domain.Workout, int, error) {
	ds := dialect.From("workouts").Select(
		"id", "owner_id", "name", "performed_at", "notes",
		"concurrency_token", "created_at", "updated_at",
	)
	if owner != nil {
		ds = ds.Where(goqu.C("owner_id").Eq(*owner))
	}

	items, count := workoutListSpec.compose(ds, req)

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
	var workouts []domain.Workout
	if err := pgxscan.Select(ctx, r.db, &workouts, itemsSQL, itemsArgs...); err != nil {
		return nil, 0, err
	}

	return workouts, total, nil
}

// Exists reports whether a workout with the given ID exists
func (r *WorkoutRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM workouts WHERE id = $1)`
	if err := pgxscan.Get(ctx, r.db, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// Update replaces the workout row and its entries in one transaction, gated
// on the stored concurrency token still matching expected.
func (r *WorkoutRepository) Update(ctx context.Context, w *domain.Workout, expected string) error {
	newToken := optimistic.NewToken()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE workouts
		SET name = $2, performed_at = $3, notes = $4, concurrency_token = $5, updated_at = NOW()
		WHERE id = $1 AND concurrency_token = $6
	`
	tag, err := tx.Exec(ctx, query, w.ID, w.Name, w.PerformedAt, w.Notes, newToken, expected)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.Exists(ctx, w.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}

	if _, err := tx.Exec(ctx, `DELETE FROM workout_entries WHERE workout_id = $1`, w.ID); err != nil {
		return err
	}
	if err := insertEntries(ctx, tx, w.ID, w.Entries); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	w.ConcurrencyToken = newToken
	return nil
}

// Delete removes a workout; entries follow via the cascade
func (r *WorkoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
