package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/repository/postgres"
	"github.com/repstack/repstack/pkg/paging"
	"github.com/repstack/repstack/pkg/result"
)

func newExerciseService(t *testing.T) (pgxmock.PgxPoolIface, *ExerciseService) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	svc := NewExerciseService(
		postgres.NewExerciseRepository(mock),
		postgres.NewMuscleGroupRepository(mock),
		postgres.NewEquipmentRepository(mock),
		zap.NewNop(),
	)
	return mock, svc
}

func exerciseRows(rows ...[]any) *pgxmock.Rows {
	r := pgxmock.NewRows([]string{
		"id", "owner_id", "name", "description", "muscle_group_id",
		"equipment_id", "concurrency_token", "created_at", "updated_at",
	})
	for _, row := range rows {
		r.AddRow(row...)
	}
	return r
}

func existsRow(exists bool) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"exists"}).AddRow(exists)
}

func TestCreateExercise(t *testing.T) {
	mock, svc := newExerciseService(t)
	caller := member()
	muscleID := uuid.New()
	equipID := uuid.New()

	mock.ExpectQuery("FROM muscle_groups").
		WithArgs(muscleID).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery("FROM equipment").
		WithArgs(equipID).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery("FROM exercises").
		WithArgs(caller.UserID, "Bench Press", uuid.Nil).
		WillReturnRows(existsRow(false))
	mock.ExpectExec("INSERT INTO exercises").
		WithArgs(pgxmock.AnyArg(), caller.UserID, "Bench Press", "", muscleID, equipID, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	res := svc.Create(context.Background(), CreateExerciseRequest{
		Caller:        caller,
		Name:          "Bench Press",
		MuscleGroupID: muscleID,
		EquipmentID:   equipID,
	})

	require.True(t, res.IsSuccess())
	assert.Equal(t, caller.UserID, res.Value().OwnerID)
	assert.NotEmpty(t, res.Value().ConcurrencyToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExerciseReportsBothMissingReferences(t *testing.T) {
	mock, svc := newExerciseService(t)
	muscleID := uuid.New()
	equipID := uuid.New()

	mock.ExpectQuery("FROM muscle_groups").
		WithArgs(muscleID).
		WillReturnRows(existsRow(false))
	mock.ExpectQuery("FROM equipment").
		WithArgs(equipID).
		WillReturnRows(existsRow(false))

	res := svc.Create(context.Background(), CreateExerciseRequest{
		Caller:        member(),
		Name:          "Bench Press",
		MuscleGroupID: muscleID,
		EquipmentID:   equipID,
	})

	require.True(t, res.IsInvalid())
	assert.Len(t, res.Errors(), 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExerciseFailsWhenReferenceCheckErrors(t *testing.T) {
	mock, svc := newExerciseService(t)
	muscleID := uuid.New()
	equipID := uuid.New()

	mock.ExpectQuery("FROM muscle_groups").
		WithArgs(muscleID).
		WillReturnError(errors.New("storage unreachable"))

	res := svc.Create(context.Background(), CreateExerciseRequest{
		Caller:        member(),
		Name:          "Bench Press",
		MuscleGroupID: muscleID,
		EquipmentID:   equipID,
	})

	require.False(t, res.IsSuccess())
	assert.False(t, res.IsInvalid())
	assert.Equal(t, result.CodeDatabase, res.Error().Code)
	// the handler never ran: no name check, no insert
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExerciseOwnedByAnotherUser(t *testing.T) {
	mock, svc := newExerciseService(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM exercises").
		WithArgs(id).
		WillReturnRows(exerciseRows(
			[]any{id, uuid.New(), "Bench Press", "", uuid.New(), uuid.New(), "tok-1", now, now},
		))

	res := svc.Get(context.Background(), member(), id)

	assert.False(t, res.IsSuccess())
	assert.Equal(t, result.CodeUnauth, res.Error().Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListExercisesScopedToOwner(t *testing.T) {
	mock, svc := newExerciseService(t)
	caller := member()
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(caller.UserID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM \"exercises\"").
		WithArgs(caller.UserID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(exerciseRows(
			[]any{uuid.New(), caller.UserID, "Bench Press", "", uuid.New(), uuid.New(), "tok-1", now, now},
		))

	res := svc.List(context.Background(), ListRequest{
		Caller: caller,
		Query:  paging.Request{PageNumber: 1, PageSize: 10},
	})

	require.True(t, res.IsSuccess())
	assert.Equal(t, 1, res.Value().TotalItems)
	require.Len(t, res.Value().Data, 1)
	assert.Equal(t, caller.UserID, res.Value().Data[0].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExerciseStaleToken(t *testing.T) {
	mock, svc := newExerciseService(t)
	caller := member()
	id := uuid.New()
	muscleID := uuid.New()
	equipID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM muscle_groups").
		WithArgs(muscleID).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery("FROM equipment").
		WithArgs(equipID).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery("FROM exercises").
		WithArgs(id).
		WillReturnRows(exerciseRows(
			[]any{id, caller.UserID, "Bench Press", "", muscleID, equipID, "tok-2", now, now},
		))

	res := svc.Update(context.Background(), UpdateExerciseRequest{
		Caller:           caller,
		ID:               id,
		Name:             "Bench Press",
		MuscleGroupID:    muscleID,
		EquipmentID:      equipID,
		ConcurrencyToken: "tok-1",
	})

	assert.False(t, res.IsSuccess())
	assert.Equal(t, result.CodeConcurrency, res.Error().Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
