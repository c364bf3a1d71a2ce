package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/domain"
	"github.com/repstack/repstack/internal/repository/postgres"
	"github.com/repstack/repstack/pkg/result"
)

// recorderStub captures emitted set records.
type recorderStub struct {
	records []domain.SetRecord
}

func (r *recorderStub) Write(_ context.Context, records []domain.SetRecord) error {
	r.records = append(r.records, records...)
	return nil
}

func newWorkoutService(t *testing.T, recorder SetRecorder) (pgxmock.PgxPoolIface, *WorkoutService) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := postgres.NewWorkoutRepository(mock)
	exerciseRepo := postgres.NewExerciseRepository(mock)
	return mock, NewWorkoutService(repo, exerciseRepo, recorder, zap.NewNop())
}

func workoutRows(rows ...[]any) *pgxmock.Rows {
	r := pgxmock.NewRows([]string{"id", "owner_id", "name", "performed_at", "notes", "concurrency_token", "created_at", "updated_at"})
	for _, row := range rows {
		r.AddRow(row...)
	}
	return r
}

func entryRows(rows ...[]any) *pgxmock.Rows {
	r := pgxmock.NewRows([]string{"id", "workout_id", "exercise_id", "set_number", "reps", "weight_kg"})
	for _, row := range rows {
		r.AddRow(row...)
	}
	return r
}

func TestCreateWorkoutRecordsSets(t *testing.T) {
	recorder := &recorderStub{}
	mock, svc := newWorkoutService(t, recorder)

	caller := member()
	exerciseID := uuid.New()
	now := time.Now().UTC()

	// referenced-exercise rule
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(exerciseID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	// workout plus entries in one transaction
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO workouts").
		WithArgs(pgxmock.AnyArg(), caller.UserID, "Push Day", pgxmock.AnyArg(), "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO workout_entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), exerciseID, 1, 8, 60.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	// analytics lookup resolves the exercise name
	mock.ExpectQuery("SELECT id, owner_id, name").
		WithArgs(exerciseID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "name", "description", "muscle_group_id", "equipment_id", "concurrency_token", "created_at", "updated_at"}).
			AddRow(exerciseID, caller.UserID, "Bench Press", "", uuid.New(), uuid.New(), "tok", now, now))

	res := svc.Create(context.Background(), CreateWorkoutRequest{
		Caller:      caller,
		Name:        "Push Day",
		PerformedAt: now.Format(time.RFC3339),
		Entries: []WorkoutEntryInput{
			{ExerciseID: exerciseID, SetNumber: 1, Reps: 8, WeightKg: 60},
		},
	})

	require.True(t, res.IsSuccess())
	assert.NotEmpty(t, res.Value().ConcurrencyToken)
	require.Len(t, recorder.records, 1)
	assert.Equal(t, "Bench Press", recorder.records[0].ExerciseName)
	assert.InDelta(t, 480.0, recorder.records[0].VolumeKg, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWorkoutCollectsAllViolations(t *testing.T) {
	mock, svc := newWorkoutService(t, nil)

	missing := uuid.New()
	// the referenced-exercise rule still runs; the handler must not
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(missing).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	res := svc.Create(context.Background(), CreateWorkoutRequest{
		Caller:      member(),
		Name:        "Push Day",
		PerformedAt: "yesterday",
		Entries: []WorkoutEntryInput{
			{ExerciseID: missing, SetNumber: 1, Reps: 8, WeightKg: 60},
		},
	})

	require.True(t, res.IsInvalid())
	assert.Len(t, res.Errors(), 2)
	// no transaction was opened
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWorkoutStaleToken(t *testing.T) {
	mock, svc := newWorkoutService(t, nil)

	caller := member()
	id := uuid.New()
	exerciseID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(exerciseID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT id, owner_id, name").
		WithArgs(id).
		WillReturnRows(workoutRows([]any{id, caller.UserID, "Push Day", now, "", "tok-2", now, now}))
	mock.ExpectQuery("SELECT id, workout_id, exercise_id").
		WithArgs(id).
		WillReturnRows(entryRows())

	res := svc.Update(context.Background(), UpdateWorkoutRequest{
		Caller:           caller,
		ID:               id,
		Name:             "Pull Day",
		PerformedAt:      now.Format(time.RFC3339),
		Entries:          []WorkoutEntryInput{{ExerciseID: exerciseID, SetNumber: 1, Reps: 5, WeightKg: 100}},
		ConcurrencyToken: "tok-1",
	})

	assert.Equal(t, result.CodeConcurrency, res.Error().Code)
	// guard fired before any write
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWorkoutOwnedByAnotherUser(t *testing.T) {
	mock, svc := newWorkoutService(t, nil)

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, owner_id, name").
		WithArgs(id).
		WillReturnRows(workoutRows([]any{id, uuid.New(), "Push Day", now, "", "tok", now, now}))
	mock.ExpectQuery("SELECT id, workout_id, exercise_id").
		WithArgs(id).
		WillReturnRows(entryRows())

	res := svc.Get(context.Background(), member(), id)

	assert.Equal(t, result.CodeUnauth, res.Error().Code)
}

func TestGetWorkoutAdminSeesAllOwners(t *testing.T) {
	mock, svc := newWorkoutService(t, nil)

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, owner_id, name").
		WithArgs(id).
		WillReturnRows(workoutRows([]any{id, uuid.New(), "Push Day", now, "", "tok", now, now}))
	mock.ExpectQuery("SELECT id, workout_id, exercise_id").
		WithArgs(id).
		WillReturnRows(entryRows())

	res := svc.Get(context.Background(), admin(), id)

	assert.True(t, res.IsSuccess())
}
