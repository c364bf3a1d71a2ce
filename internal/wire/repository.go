package wire

import (
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"

	chrepo "github.com/repstack/repstack/internal/repository/clickhouse"
	pgrepo "github.com/repstack/repstack/internal/repository/postgres"
)

// RepositorySet provides all repository instances.
var RepositorySet = wire.NewSet(
	ProvideMuscleGroupRepository,
	ProvideEquipmentRepository,
	ProvideExerciseRepository,
	ProvideWorkoutRepository,
	ProvideStatsRepository,
)

// ProvideMuscleGroupRepository creates a new MuscleGroupRepository.
func ProvideMuscleGroupRepository(pool *pgxpool.Pool) *pgrepo.MuscleGroupRepository {
	return pgrepo.NewMuscleGroupRepository(pool)
}

// ProvideEquipmentRepository creates a new EquipmentRepository.
func ProvideEquipmentRepository(pool *pgxpool.Pool) *pgrepo.EquipmentRepository {
	return pgrepo.NewEquipmentRepository(pool)
}

// ProvideExerciseRepository creates a new ExerciseRepository.
func ProvideExerciseRepository(pool *pgxpool.Pool) *pgrepo.ExerciseRepository {
	return pgrepo.NewExerciseRepository(pool)
}

// ProvideWorkoutRepository creates a new WorkoutRepository.
func ProvideWorkoutRepository(pool *pgxpool.Pool) *pgrepo.WorkoutRepository {
	return pgrepo.NewWorkoutRepository(pool)
}

// ProvideStatsRepository creates a new StatsRepository, nil when the
// analytics store is disabled.
func ProvideStatsRepository(ch *ClickHouseDB) *chrepo.StatsRepository {
	if ch.Conn == nil {
		return nil
	}
	return chrepo.NewStatsRepository(ch.Conn)
}
