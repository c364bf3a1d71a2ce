package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repstack/repstack/internal/domain"
)

func newEquipmentMock(t *testing.T) (pgxmock.PgxPoolIface, *EquipmentRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewEquipmentRepository(mock)
}

func equipmentColumns() []string {
	return []string{"id", "name", "description", "concurrency_token", "created_at", "updated_at"}
}

func TestEquipmentCreateAssignsToken(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	eq := &domain.Equipment{ID: uuid.New(), Name: "Barbell"}
	mock.ExpectExec("INSERT INTO equipment").
		WithArgs(eq.ID, eq.Name, eq.Description, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), eq))
	assert.NotEmpty(t, eq.ConcurrencyToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentCreateDuplicateName(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	eq := &domain.Equipment{ID: uuid.New(), Name: "Barbell"}
	mock.ExpectExec("INSERT INTO equipment").
		WithArgs(eq.ID, eq.Name, eq.Description, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	assert.ErrorIs(t, repo.Create(context.Background(), eq), domain.ErrDuplicate)
}

func TestEquipmentGetByIDNotFound(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT id, name, description").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(equipmentColumns()))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEquipmentGetByID(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery("SELECT id, name, description").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(equipmentColumns()).
			AddRow(id, "Barbell", "olympic bar", "tok-1", now, now))

	eq, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Barbell", eq.Name)
	assert.Equal(t, "tok-1", eq.ConcurrencyToken)
}

func TestEquipmentUpdateWithCurrentToken(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	eq := &domain.Equipment{ID: uuid.New(), Name: "Barbell", ConcurrencyToken: "tok-1"}
	mock.ExpectExec("UPDATE equipment").
		WithArgs(eq.ID, eq.Name, eq.Description, pgxmock.AnyArg(), "tok-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Update(context.Background(), eq, "tok-1"))
	assert.NotEqual(t, "tok-1", eq.ConcurrencyToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentUpdateWithStaleToken(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	eq := &domain.Equipment{ID: uuid.New(), Name: "Barbell", ConcurrencyToken: "tok-1"}
	mock.ExpectExec("UPDATE equipment").
		WithArgs(eq.ID, eq.Name, eq.Description, pgxmock.AnyArg(), "tok-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(eq.ID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.Update(context.Background(), eq, "tok-1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// the guarded write was the only statement issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentUpdateVanishedRow(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	eq := &domain.Equipment{ID: uuid.New(), Name: "Barbell"}
	mock.ExpectExec("UPDATE equipment").
		WithArgs(eq.ID, eq.Name, eq.Description, pgxmock.AnyArg(), "tok-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(eq.ID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Update(context.Background(), eq, "tok-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEquipmentDeleteNotFound(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	id := uuid.New()
	mock.ExpectExec("DELETE FROM equipment").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), domain.ErrNotFound)
}

func TestEquipmentNameTaken(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("Barbell", uuid.Nil).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.NameTaken(context.Background(), "Barbell", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestEquipmentInUse(t *testing.T) {
	mock, repo := newEquipmentMock(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	used, err := repo.InUse(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, used)
}
