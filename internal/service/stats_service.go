package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/domain"
	"github.com/repstack/repstack/internal/repository/clickhouse"
	"github.com/repstack/repstack/pkg/result"
)

// Bounds for the stats endpoints' range parameters.
const (
	defaultVolumeWeeks = 12
	maxVolumeWeeks     = 104
	defaultTopCount    = 10
	maxTopCount        = 50
)

// StatsService serves training analytics from the ClickHouse store. The
// store is optional; a nil repository makes every query fail with NotFound.
type StatsService struct {
	repo   *clickhouse.StatsRepository
	logger *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(repo *clickhouse.StatsRepository, logger *zap.Logger) *StatsService {
	return &StatsService{repo: repo, logger: logger}
}

// WeeklyVolume returns the caller's per-week training volume
func (s *StatsService) WeeklyVolume(ctx context.Context, caller domain.Identity, weeks int) result.Result[[]domain.VolumePoint] {
	if s.repo == nil {
		return result.Failure[[]domain.VolumePoint](result.NotFound("analytics is not enabled"))
	}
	if weeks <= 0 {
		weeks = defaultVolumeWeeks
	}
	if weeks > maxVolumeWeeks {
		return result.Failure[[]domain.VolumePoint](result.BadRequest("weeks must be at most 104"))
	}

	points, err := s.repo.WeeklyVolume(ctx, caller.UserID, weeks)
	if err != nil {
		s.logger.Error("failed to query weekly volume", zap.Error(err))
		return result.Failure[[]domain.VolumePoint](result.Database(err))
	}
	if points == nil {
		points = []domain.VolumePoint{}
	}
	return result.Success(points)
}

// TopExercises returns the caller's most performed exercises
func (s *StatsService) TopExercises(ctx context.Context, caller domain.Identity, limit int) result.Result[[]domain.ExerciseUsage] {
	if s.repo == nil {
		return result.Failure[[]domain.ExerciseUsage](result.NotFound("analytics is not enabled"))
	}
	if limit <= 0 {
		limit = defaultTopCount
	}
	if limit > maxTopCount {
		return result.Failure[[]domain.ExerciseUsage](result.BadRequest("limit must be at most 50"))
	}

	usage, err := s.repo.TopExercises(ctx, caller.UserID, limit)
	if err != nil {
		s.logger.Error("failed to query top exercises", zap.Error(err))
		return result.Failure[[]domain.ExerciseUsage](result.Database(err))
	}
	if usage == nil {
		usage = []domain.ExerciseUsage{}
	}
	return result.Success(usage)
}
