package wire

import (
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/api"
	"github.com/repstack/repstack/internal/api/handlers"
	"github.com/repstack/repstack/internal/service"
)

// HandlerSet provides all HTTP handler instances.
var HandlerSet = wire.NewSet(
	ProvideHealthHandler,
	ProvideMuscleGroupHandler,
	ProvideEquipmentHandler,
	ProvideExerciseHandler,
	ProvideWorkoutHandler,
	ProvideStatsHandler,
	ProvideHandlers,
)

// ProvideHealthHandler creates a new HealthHandler.
func ProvideHealthHandler(pool *pgxpool.Pool, logger *zap.Logger) *handlers.HealthHandler {
	return handlers.NewHealthHandler(pool, logger)
}

// ProvideMuscleGroupHandler creates a new MuscleGroupHandler.
func ProvideMuscleGroupHandler(
	muscleGroupService *service.MuscleGroupService,
	logger *zap.Logger,
) *handlers.MuscleGroupHandler {
	return handlers.NewMuscleGroupHandler(muscleGroupService, logger)
}

// ProvideEquipmentHandler creates a new EquipmentHandler.
func ProvideEquipmentHandler(
	equipmentService *service.EquipmentService,
	logger *zap.Logger,
) *handlers.EquipmentHandler {
	return handlers.NewEquipmentHandler(equipmentService, logger)
}

// ProvideExerciseHandler creates a new ExerciseHandler.
func ProvideExerciseHandler(
	exerciseService *service.ExerciseService,
	logger *zap.Logger,
) *handlers.ExerciseHandler {
	return handlers.NewExerciseHandler(exerciseService, logger)
}

// ProvideWorkoutHandler creates a new WorkoutHandler.
func ProvideWorkoutHandler(
	workoutService *service.WorkoutService,
	logger *zap.Logger,
) *handlers.WorkoutHandler {
	return handlers.NewWorkoutHandler(workoutService, logger)
}

// ProvideStatsHandler creates a new StatsHandler.
func ProvideStatsHandler(
	statsService *service.StatsService,
	logger *zap.Logger,
) *handlers.StatsHandler {
	return handlers.NewStatsHandler(statsService, logger)
}

// ProvideHandlers creates the Handlers struct containing all handlers.
func ProvideHandlers(
	health *handlers.HealthHandler,
	muscleGroup *handlers.MuscleGroupHandler,
	equipment *handlers.EquipmentHandler,
	exercise *handlers.ExerciseHandler,
	workout *handlers.WorkoutHandler,
	stats *handlers.StatsHandler,
) *api.Handlers {
	return &api.Handlers{
		Health:      health,
		MuscleGroup: muscleGroup,
		Equipment:   equipment,
		Exercise:    exercise,
		Workout:     workout,
		Stats:       stats,
	}
}
