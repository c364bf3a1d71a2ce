package domain

import (
	"time"

	"github.com/google/uuid"
)

// SetRecord is the denormalized analytics row written for every performed set
// when a workout is created. Analytics writes are fire-and-forget; they never
// influence the outcome of the mutation that produced them.
type SetRecord struct {
	OwnerID      uuid.UUID
	WorkoutID    uuid.UUID
	ExerciseID   uuid.UUID
	ExerciseName string
	Reps         int32
	WeightKg     float64
	VolumeKg     float64
	PerformedAt  time.Time
}

// VolumePoint is one week of aggregated training volume.
type VolumePoint struct {
	WeekStart     time.Time `ch:"week_start" json:"weekStart"`
	SetCount      uint64    `ch:"set_count" json:"setCount"`
	TotalVolumeKg float64   `ch:"total_volume_kg" json:"totalVolumeKg"`
}

// ExerciseUsage is the aggregate for one exercise in the top-exercises view.
type ExerciseUsage struct {
	ExerciseID    uuid.UUID `ch:"exercise_id" json:"exerciseId"`
	ExerciseName  string    `ch:"exercise_name" json:"exerciseName"`
	SetCount      uint64    `ch:"set_count" json:"setCount"`
	TotalVolumeKg float64   `ch:"total_volume_kg" json:"totalVolumeKg"`
}
