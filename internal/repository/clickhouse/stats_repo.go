package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"

	"github.com/repstack/repstack/internal/domain"
)

// StatsRepository runs the aggregate queries behind the stats endpoints
type StatsRepository struct {
	conn driver.Conn
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(conn driver.Conn) *StatsRepository {
	return &StatsRepository{conn: conn}
}

// EnsureSchema creates the analytics table if it does not exist yet
func (r *StatsRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS workout_sets (
			owner_id UUID,
			workout_id UUID,
			exercise_id UUID,
			exercise_name String,
			reps Int32,
			weight_kg Float64,
			volume_kg Float64,
			performed_at DateTime
		) ENGINE = MergeTree()
		ORDER BY (owner_id, performed_at)
	`
	if err := r.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure analytics schema: %w", err)
	}
	return nil
}

// WeeklyVolume returns per-week training volume for an owner over the last
// `weeks` weeks, most recent week first.
func (r *StatsRepository) WeeklyVolume(ctx context.Context, ownerID uuid.UUID, weeks int) ([]domain.VolumePoint, error) {
	query := `
		SELECT
			toStartOfWeek(performed_at) AS week_start,
			count() AS set_count,
			sum(volume_kg) AS total_volume_kg
		FROM workout_sets
		WHERE owner_id = ? AND performed_at >= now() - INTERVAL ? WEEK
		GROUP BY week_start
		ORDER BY week_start DESC
	`
	var points []domain.VolumePoint
	if err := r.conn.Select(ctx, &points, query, ownerID, weeks); err != nil {
		return nil, err
	}
	return points, nil
}

// TopExercises returns the owner's most performed exercises by set count
func (r *StatsRepository) TopExercises(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.ExerciseUsage, error) {
	query := `
		SELECT
			exercise_id,
			any(exercise_name) AS exercise_name,
			count() AS set_count,
			sum(volume_kg) AS total_volume_kg
		FROM workout_sets
		WHERE owner_id = ?
		GROUP BY exercise_id
		ORDER BY set_count DESC
		LIMIT ?
	`
	var usage []domain.ExerciseUsage
	if err := r.conn.Select(ctx, &usage, query, ownerID, limit); err != nil {
		return nil, err
	}
	return usage, nil
}
