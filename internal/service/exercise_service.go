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

// CreateExerciseRequest creates an exercise owned by the caller.
type CreateExerciseRequest struct {
	Caller        domain.Identity `json:"-"`
	Name          string          `json:"name" validate:"required,max=100"`
	Description   string          `json:"description" validate:"max=1000"`
	MuscleGroupID uuid.UUID       `json:"muscleGroupId" validate:"required"`
	EquipmentID   uuid.UUID       `json:"equipmentId" validate:"required"`
}

// UpdateExerciseRequest replaces an exercise's values, gated on the
// concurrency token echoed from a prior read.
type UpdateExerciseRequest struct {
	Caller           domain.Identity `json:"-"`
	ID               uuid.UUID       `json:"-"`
	Name             string          `json:"name" validate:"required,max=100"`
	Description      string          `json:"description" validate:"max=1000"`
	MuscleGroupID    uuid.UUID       `json:"muscleGroupId" validate:"required"`
	EquipmentID      uuid.UUID       `json:"equipmentId" validate:"required"`
	ConcurrencyToken string          `json:"concurrencyToken" validate:"required"`
}

// ExerciseService handles exercise business logic
type ExerciseService struct {
	repo       *postgres.ExerciseRepository
	muscleRepo *postgres.MuscleGroupRepository
	equipRepo  *postgres.EquipmentRepository
	logger     *zap.Logger

	create pipeline.Handler[CreateExerciseRequest, domain.Exercise]
	update pipeline.Handler[UpdateExerciseRequest, domain.Exercise]
	list   pipeline.Handler[ListRequest, paging.Page[domain.Exercise]]
}

// NewExerciseService creates a new exercise service
func NewExerciseService(
	repo *postgres.ExerciseRepository,
	muscleRepo *postgres.MuscleGroupRepository,
	equipRepo *postgres.EquipmentRepository,
	logger *zap.Logger,
) *ExerciseService {
	s := &ExerciseService{
		repo:       repo,
		muscleRepo: muscleRepo,
		equipRepo:  equipRepo,
		logger:     logger,
	}
	s.create = pipeline.Wrap(s.handleCreate, logger,
		structRule[CreateExerciseRequest](),
		referencesExistRule(muscleRepo, equipRepo,
			func(r CreateExerciseRequest) uuid.UUID { return r.MuscleGroupID },
			func(r CreateExerciseRequest) uuid.UUID { return r.EquipmentID },
		),
	)
	s.update = pipeline.Wrap(s.handleUpdate, logger,
		structRule[UpdateExerciseRequest](),
		referencesExistRule(muscleRepo, equipRepo,
			func(r UpdateExerciseRequest) uuid.UUID { return r.MuscleGroupID },
			func(r UpdateExerciseRequest) uuid.UUID { return r.EquipmentID },
		),
	)
	s.list = pipeline.Wrap(s.handleList, logger, pageRule)
	return s
}

// referencesExistRule checks the referenced muscle group and equipment ids
// against storage, reporting one violation per missing reference. A storage
// failure during the check is returned as a DatabaseError so the pipeline
// fails the request instead of running the handler against unverified
// references.
func referencesExistRule[Req any](
	muscleRepo *postgres.MuscleGroupRepository,
	equipRepo *postgres.EquipmentRepository,
	muscleID, equipID func(Req) uuid.UUID,
) pipeline.Rule[Req] {
	return func(ctx context.Context, req Req) []result.Error {
		var errs []result.Error
		if id := muscleID(req); id != uuid.Nil {
			exists, err := muscleRepo.Exists(ctx, id)
			if err != nil {
				return []result.Error{result.Database(err)}
			}
			if !exists {
				errs = append(errs, result.Invalid("muscleGroupId does not reference an existing muscle group"))
			}
		}
		if id := equipID(req); id != uuid.Nil {
			exists, err := equipRepo.Exists(ctx, id)
			if err != nil {
				return []result.Error{result.Database(err)}
			}
			if !exists {
				errs = append(errs, result.Invalid("equipmentId does not reference an existing equipment"))
			}
		}
		return errs
	}
}

// Create creates a new exercise owned by the caller
func (s *ExerciseService) Create(ctx context.Context, req CreateExerciseRequest) result.Result[domain.Exercise] {
	return s.create(ctx, req)
}

// Update updates an exercise under the concurrency guard
func (s *ExerciseService) Update(ctx context.Context, req UpdateExerciseRequest) result.Result[domain.Exercise] {
	return s.update(ctx, req)
}

// List returns one page of the caller's exercises; admins see all owners
func (s *ExerciseService) List(ctx context.Context, req ListRequest) result.Result[paging.Page[domain.Exercise]] {
	return s.list(ctx, req)
}

// Get retrieves a single exercise the caller may see
func (s *ExerciseService) Get(ctx context.Context, caller domain.Identity, id uuid.UUID) result.Result[domain.Exercise] {
	ex, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return result.Failure[domain.Exercise](mapStorageErr(err, "exercise"))
	}
	if !caller.Owns(ex.OwnerID) {
		return result.Failure[domain.Exercise](result.Unauthorized("exercise belongs to another user"))
	}
	return result.Success(*ex)
}

// Delete removes an exercise the caller owns
func (s *ExerciseService) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) result.Result[result.Void] {
	ex, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return result.Fail(mapStorageErr(err, "exercise"))
	}
	if !caller.Owns(ex.OwnerID) {
		return result.Fail(result.Unauthorized("exercise belongs to another user"))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Fail(mapStorageErr(err, "exercise"))
	}
	return result.Ok()
}

func (s *ExerciseService) handleCreate(ctx context.Context, req CreateExerciseRequest) result.Result[domain.Exercise] {
	taken, err := s.repo.NameTaken(ctx, req.Caller.UserID, req.Name, uuid.Nil)
	if err != nil {
		return result.Failure[domain.Exercise](result.Database(err))
	}
	if taken {
		return result.Failure[domain.Exercise](result.NamingConflict("you already have an exercise named " + req.Name))
	}

	ex := &domain.Exercise{
		ID:            uuid.New(),
		OwnerID:       req.Caller.UserID,
		Name:          req.Name,
		Description:   req.Description,
		MuscleGroupID: req.MuscleGroupID,
		EquipmentID:   req.EquipmentID,
	}
	if err := s.repo.Create(ctx, ex); err != nil {
		return result.Failure[domain.Exercise](mapStorageErr(err, "exercise"))
	}
	return result.Success(*ex)
}

func (s *ExerciseService) handleUpdate(ctx context.Context, req UpdateExerciseRequest) result.Result[domain.Exercise] {
	stored, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return result.Failure[domain.Exercise](mapStorageErr(err, "exercise"))
	}
	if !req.Caller.Owns(stored.OwnerID) {
		return result.Failure[domain.Exercise](result.Unauthorized("exercise belongs to another user"))
	}
	if e := optimistic.Check(stored, req.ConcurrencyToken); e != nil {
		return result.Failure[domain.Exercise](*e)
	}

	taken, err := s.repo.NameTaken(ctx, stored.OwnerID, req.Name, req.ID)
	if err != nil {
		return result.Failure[domain.Exercise](result.Database(err))
	}
	if taken {
		return result.Failure[domain.Exercise](result.NamingConflict("you already have an exercise named " + req.Name))
	}

	stored.Name = req.Name
	stored.Description = req.Description
	stored.MuscleGroupID = req.MuscleGroupID
	stored.EquipmentID = req.EquipmentID
	if err := s.repo.Update(ctx, stored, req.ConcurrencyToken); err != nil {
		return result.Failure[domain.Exercise](mapStorageErr(err, "exercise"))
	}
	return result.Success(*stored)
}

func (s *ExerciseService) handleList(ctx context.Context, req ListRequest) result.Result[paging.Page[domain.Exercise]] {
	var owner *uuid.UUID
	if !req.Caller.IsAdmin() {
		owner = &req.Caller.UserID
	}
	query := req.Query.Normalized()
	items, total, err := s.repo.List(ctx, owner, query)
	if err != nil {
		return result.Failure[paging.Page[domain.Exercise]](result.Database(err))
	}
	return result.Success(paging.NewPage(items, query, total))
}
