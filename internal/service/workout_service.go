package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/domain"
	"github.com/repstack/repstack/internal/repository/postgres"
	"github.com/repstack/repstack/pkg/optimistic"
	"github.com/repstack/repstack/pkg/paging"
	"github.com/repstack/repstack/pkg/pipeline"
	"github.com/repstack/repstack/pkg/result"
)

// SetRecorder receives one analytics row per performed set. Writes are
// fire-and-forget; a failing recorder never changes a mutation's outcome.
type SetRecorder interface {
	Write(ctx context.Context, records []domain.SetRecord) error
}

// WorkoutEntryInput is one performed set within a workout request.
type WorkoutEntryInput struct {
	ExerciseID uuid.UUID `json:"exerciseId" validate:"required"`
	SetNumber  int       `json:"setNumber" validate:"required,gte=1"`
	Reps       int       `json:"reps" validate:"required,gte=1"`
	WeightKg   float64   `json:"weightKg" validate:"gte=0"`
}

// CreateWorkoutRequest records a training session owned by the caller.
type CreateWorkoutRequest struct {
	Caller      domain.Identity     `json:"-"`
	Name        string              `json:"name" validate:"required,max=100"`
	PerformedAt string              `json:"performedAt" validate:"required"`
	Notes       string              `json:"notes" validate:"max=2000"`
	Entries     []WorkoutEntryInput `json:"entries" validate:"required,min=1,dive"`
}

// UpdateWorkoutRequest replaces a workout and its entries wholesale, gated on
// the concurrency token echoed from a prior read.
type UpdateWorkoutRequest struct {
	Caller           domain.Identity     `json:"-"`
	ID               uuid.UUID           `json:"-"`
	Name             string              `json:"name" validate:"required,max=100"`
	PerformedAt      string              `json:"performedAt" validate:"required"`
	Notes            string              `json:"notes" validate:"max=2000"`
	Entries          []WorkoutEntryInput `json:"entries" validate:"required,min=1,dive"`
	ConcurrencyToken string              `json:"concurrencyToken" validate:"required"`
}

// WorkoutService handles workout business logic
type WorkoutService struct {
	repo         *postgres.WorkoutRepository
	exerciseRepo *postgres.ExerciseRepository
	recorder     SetRecorder
	logger       *zap.Logger

	create pipeline.Handler[CreateWorkoutRequest, domain.Workout]
	update pipeline.Handler[UpdateWorkoutRequest, domain.Workout]
	list   pipeline.Handler[ListRequest, paging.Page[domain.Workout]]
}

// NewWorkoutService creates a new workout service. recorder may be nil when
// the analytics store is disabled.
func NewWorkoutService(
	repo *postgres.WorkoutRepository,
	exerciseRepo *postgres.ExerciseRepository,
	recorder SetRecorder,
	logger *zap.Logger,
) *WorkoutService {
	s := &WorkoutService{
		repo:         repo,
		exerciseRepo: exerciseRepo,
		recorder:     recorder,
		logger:       logger,
	}
	s.create = pipeline.Wrap(s.handleCreate, logger,
		structRule[CreateWorkoutRequest](),
		performedAtRule(func(r CreateWorkoutRequest) string { return r.PerformedAt }),
		entriesExistRule(exerciseRepo, func(r CreateWorkoutRequest) []WorkoutEntryInput { return r.Entries }),
	)
	s.update = pipeline.Wrap(s.handleUpdate, logger,
		structRule[UpdateWorkoutRequest](),
		performedAtRule(func(r UpdateWorkoutRequest) string { return r.PerformedAt }),
		entriesExistRule(exerciseRepo, func(r UpdateWorkoutRequest) []WorkoutEntryInput { return r.Entries }),
	)
	s.list = pipeline.Wrap(s.handleList, logger, pageRule)
	return s
}

// entriesExistRule checks every distinct referenced exercise against storage,
// reporting one violation per missing exercise id. A storage failure during
// the check is returned as a DatabaseError so the pipeline fails the request
// instead of running the handler against unverified references.
func entriesExistRule[Req any](exerciseRepo *postgres.ExerciseRepository, entries func(Req) []WorkoutEntryInput) pipeline.Rule[Req] {
	return func(ctx context.Context, req Req) []result.Error {
		var errs []result.Error
		seen := map[uuid.UUID]bool{}
		for _, entry := range entries(req) {
			if entry.ExerciseID == uuid.Nil || seen[entry.ExerciseID] {
				continue
			}
			seen[entry.ExerciseID] = true
			exists, err := exerciseRepo.Exists(ctx, entry.ExerciseID)
			if err != nil {
				return []result.Error{result.Database(err)}
			}
			if !exists {
				errs = append(errs, result.Invalid("exerciseId "+entry.ExerciseID.String()+" does not reference an existing exercise"))
			}
		}
		return errs
	}
}

// Create records a new workout
func (s *WorkoutService) Create(ctx context.Context, req CreateWorkoutRequest) result.Result[domain.Workout] {
	return s.create(ctx, req)
}

// Update updates a workout under the concurrency guard
func (s *WorkoutService) Update(ctx context.Context, req UpdateWorkoutRequest) result.Result[domain.Workout] {
	return s.update(ctx, req)
}

// List returns one page of the caller's workouts; admins see all owners
func (s *WorkoutService) List(ctx context.Context, req ListRequest) result.Result[paging.Page[domain.Workout]] {
	return s.list(ctx, req)
}

// Get retrieves a workout with its entries
func (s *WorkoutService) Get(ctx context.Context, caller domain.Identity, id uuid.UUID) result.Result[domain.Workout] {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return result.Failure[domain.Workout](mapStorageErr(err, "workout"))
	}
	if !caller.Owns(w.OwnerID) {
		return result.Failure[domain.Workout](result.Unauthorized("workout belongs to another user"))
	}
	return result.Success(*w)
}

// Delete removes a workout the caller owns
func (s *WorkoutService) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) result.Result[result.Void] {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return result.Fail(mapStorageErr(err, "workout"))
	}
	if !caller.Owns(w.OwnerID) {
		return result.Fail(result.Unauthorized("workout belongs to another user"))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Fail(mapStorageErr(err, "workout"))
	}
	return result.Ok()
}

func (s *WorkoutService) handleCreate(ctx context.Context, req CreateWorkoutRequest) result.Result[domain.Workout] {
	performedAt, _ := parseTimestamp(req.PerformedAt)

	w := &domain.Workout{
		ID:          uuid.New(),
		OwnerID:     req.Caller.UserID,
		Name:        req.Name,
		PerformedAt: performedAt,
		Notes:       req.Notes,
		Entries:     toEntries(req.Entries),
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return result.Failure[domain.Workout](mapStorageErr(err, "workout"))
	}

	s.record(ctx, w)
	return result.Success(*w)
}

func (s *WorkoutService) handleUpdate(ctx context.Context, req UpdateWorkoutRequest) result.Result[domain.Workout] {
	stored, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return result.Failure[domain.Workout](mapStorageErr(err, "workout"))
	}
	if !req.Caller.Owns(stored.OwnerID) {
		return result.Failure[domain.Workout](result.Unauthorized("workout belongs to another user"))
	}
	if e := optimistic.Check(stored, req.ConcurrencyToken); e != nil {
		return result.Failure[domain.Workout](*e)
	}

	performedAt, _ := parseTimestamp(req.PerformedAt)
	stored.Name = req.Name
	stored.PerformedAt = performedAt
	stored.Notes = req.Notes
	stored.Entries = toEntries(req.Entries)
	if err := s.repo.Update(ctx, stored, req.ConcurrencyToken); err != nil {
		return result.Failure[domain.Workout](mapStorageErr(err, "workout"))
	}
	return result.Success(*stored)
}

func (s *WorkoutService) handleList(ctx context.Context, req ListRequest) result.Result[paging.Page[domain.Workout]] {
	var owner *uuid.UUID
	if !req.Caller.IsAdmin() {
		owner = &req.Caller.UserID
	}
	query := req.Query.Normalized()
	items, total, err := s.repo.List(ctx, owner, query)
	if err != nil {
		return result.Failure[paging.Page[domain.Workout]](result.Database(err))
	}
	return result.Success(paging.NewPage(items, query, total))
}

// record emits one analytics row per set. Failures are logged and dropped.
func (s *WorkoutService) record(ctx context.Context, w *domain.Workout) {
	if s.recorder == nil {
		return
	}
	names := map[uuid.UUID]string{}
	records := make([]domain.SetRecord, 0, len(w.Entries))
	for _, entry := range w.Entries {
		name, ok := names[entry.ExerciseID]
		if !ok {
			if ex, err := s.exerciseRepo.GetByID(ctx, entry.ExerciseID); err == nil {
				name = ex.Name
			}
			names[entry.ExerciseID] = name
		}
		records = append(records, domain.SetRecord{
			OwnerID:      w.OwnerID,
			WorkoutID:    w.ID,
			ExerciseID:   entry.ExerciseID,
			ExerciseName: name,
			Reps:         int32(entry.Reps),
			WeightKg:     entry.WeightKg,
			VolumeKg:     entry.Load(),
			PerformedAt:  w.PerformedAt,
		})
	}
	if err := s.recorder.Write(ctx, records); err != nil {
		s.logger.Warn("failed to record workout sets", zap.Error(err))
	}
}

func toEntries(inputs []WorkoutEntryInput) []domain.WorkoutEntry {
	entries := make([]domain.WorkoutEntry, 0, len(inputs))
	for _, in := range inputs {
		entries = append(entries, domain.WorkoutEntry{
			ExerciseID: in.ExerciseID,
			SetNumber:  in.SetNumber,
			Reps:       in.Reps,
			WeightKg:   in.WeightKg,
		})
	}
	return entries
}
