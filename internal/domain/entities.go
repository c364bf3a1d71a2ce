package domain

import (
	"time"

	"github.com/google/uuid"
)

// MuscleGroup is shared reference data describing a trainable muscle group.
type MuscleGroup struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	BodyRegion       string    `db:"body_region" json:"bodyRegion"`
	ConcurrencyToken string    `db:"concurrency_token" json:"concurrencyToken"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// Version returns the entity's concurrency token.
func (m MuscleGroup) Version() string { return m.ConcurrencyToken }

// Equipment is shared reference data describing a piece of training equipment.
type Equipment struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Description      string    `db:"description" json:"description,omitempty"`
	ConcurrencyToken string    `db:"concurrency_token" json:"concurrencyToken"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// Version returns the entity's concurrency token.
func (e Equipment) Version() string { return e.ConcurrencyToken }

// Exercise is an owner-scoped exercise definition referencing the muscle
// group it targets and the equipment it requires.
type Exercise struct {
	ID               uuid.UUID `db:"id" json:"id"`
	OwnerID          uuid.UUID `db:"owner_id" json:"ownerId"`
	Name             string    `db:"name" json:"name"`
	Description      string    `db:"description" json:"description,omitempty"`
	MuscleGroupID    uuid.UUID `db:"muscle_group_id" json:"muscleGroupId"`
	EquipmentID      uuid.UUID `db:"equipment_id" json:"equipmentId"`
	ConcurrencyToken string    `db:"concurrency_token" json:"concurrencyToken"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// Version returns the entity's concurrency token.
func (e Exercise) Version() string { return e.ConcurrencyToken }

// Workout is an owner-scoped training session with its performed sets.
// Entries travel with their workout and are replaced wholesale on update;
// only the workout row itself is versioned.
type Workout struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	OwnerID          uuid.UUID      `db:"owner_id" json:"ownerId"`
	Name             string         `db:"name" json:"name"`
	PerformedAt      time.Time      `db:"performed_at" json:"performedAt"`
	Notes            string         `db:"notes" json:"notes,omitempty"`
	ConcurrencyToken string         `db:"concurrency_token" json:"concurrencyToken"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`
	Entries          []WorkoutEntry `db:"-" json:"entries"`
}

// Version returns the entity's concurrency token.
func (w Workout) Version() string { return w.ConcurrencyToken }

// WorkoutEntry is one performed set within a workout.
type WorkoutEntry struct {
	ID         uuid.UUID `db:"id" json:"id"`
	WorkoutID  uuid.UUID `db:"workout_id" json:"workoutId"`
	ExerciseID uuid.UUID `db:"exercise_id" json:"exerciseId"`
	SetNumber  int       `db:"set_number" json:"setNumber"`
	Reps       int       `db:"reps" json:"reps"`
	WeightKg   float64   `db:"weight_kg" json:"weightKg"`
}

// Load returns the entry's total load in kilograms.
func (e WorkoutEntry) Load() float64 {
	return float64(e.Reps) * e.WeightKg
}
