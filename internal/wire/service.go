package wire

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/config"
	chrepo "github.com/repstack/repstack/internal/repository/clickhouse"
	pgrepo "github.com/repstack/repstack/internal/repository/postgres"
	"github.com/repstack/repstack/internal/service"
)

// ServiceSet provides all service instances.
var ServiceSet = wire.NewSet(
	ProvideMuscleGroupService,
	ProvideEquipmentService,
	ProvideExerciseService,
	ProvideWorkoutService,
	ProvideStatsService,
	ProvideBatchWriter,
)

// ProvideMuscleGroupService creates a new MuscleGroupService.
func ProvideMuscleGroupService(
	repo *pgrepo.MuscleGroupRepository,
	logger *zap.Logger,
) *service.MuscleGroupService {
	return service.NewMuscleGroupService(repo, logger)
}

// ProvideEquipmentService creates a new EquipmentService.
func ProvideEquipmentService(
	repo *pgrepo.EquipmentRepository,
	logger *zap.Logger,
) *service.EquipmentService {
	return service.NewEquipmentService(repo, logger)
}

// ProvideExerciseService creates a new ExerciseService.
func ProvideExerciseService(
	repo *pgrepo.ExerciseRepository,
	muscleRepo *pgrepo.MuscleGroupRepository,
	equipRepo *pgrepo.EquipmentRepository,
	logger *zap.Logger,
) *service.ExerciseService {
	return service.NewExerciseService(repo, muscleRepo, equipRepo, logger)
}

// BatchWriterResult holds the set batch writer and its lifecycle functions.
// Writer is nil when the analytics store is disabled.
type BatchWriterResult struct {
	Writer *chrepo.SetBatchWriter
	Start  func()
}

// ProvideBatchWriter creates a SetBatchWriter when the analytics store is
// enabled.
func ProvideBatchWriter(
	ch *ClickHouseDB,
	cfg *config.Config,
	logger *zap.Logger,
) *BatchWriterResult {
	if ch.Conn == nil {
		return &BatchWriterResult{Start: func() {}}
	}

	writer := chrepo.NewSetBatchWriter(ch.Conn, chrepo.SetBatchWriterConfig{
		BatchSize:     cfg.ClickHouse.BatchSize,
		FlushInterval: cfg.ClickHouse.FlushInterval,
	}, logger)

	return &BatchWriterResult{
		Writer: writer,
		Start: func() {
			writer.Start()
			logger.Info("set batch writer started",
				zap.Int("batch_size", cfg.ClickHouse.BatchSize),
				zap.Duration("flush_interval", cfg.ClickHouse.FlushInterval),
			)
		},
	}
}

// ProvideWorkoutService creates a new WorkoutService with an optional set
// recorder.
func ProvideWorkoutService(
	repo *pgrepo.WorkoutRepository,
	exerciseRepo *pgrepo.ExerciseRepository,
	batchWriter *BatchWriterResult,
	logger *zap.Logger,
) *service.WorkoutService {
	var recorder service.SetRecorder
	if batchWriter.Writer != nil {
		recorder = batchWriter.Writer
	}
	return service.NewWorkoutService(repo, exerciseRepo, recorder, logger)
}

// ProvideStatsService creates a new StatsService.
func ProvideStatsService(
	repo *chrepo.StatsRepository,
	logger *zap.Logger,
) *service.StatsService {
	return service.NewStatsService(repo, logger)
}
