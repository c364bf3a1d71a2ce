package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/domain"
	"github.com/repstack/repstack/internal/repository/postgres"
	"github.com/repstack/repstack/pkg/optimistic"
	"github.com/repstack/repstack/pkg/paging"
	"github.com/repstack/repstack/pkg/pipeline"
	"github.com/repstack/repstack/pkg/result"
)

var muscleGroupSource = paging.Source[domain.MuscleGroup]{
	Match: func(mg domain.MuscleGroup, term string) bool {
		return paging.ContainsFold(mg.Name, term)
	},
	SortKeys: map[string]func(a, b domain.MuscleGroup) int{
		"name": func(a, b domain.MuscleGroup) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		},
		"bodyregion": func(a, b domain.MuscleGroup) int {
			return strings.Compare(a.BodyRegion, b.BodyRegion)
		},
		"createdat": func(a, b domain.MuscleGroup) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		},
	},
}

// CreateMuscleGroupRequest creates a new muscle group (admin only).
type CreateMuscleGroupRequest struct {
	Caller     domain.Identity `json:"-"`
	Name       string          `json:"name" validate:"required,max=100"`
	BodyRegion string          `json:"bodyRegion" validate:"required,bodyregion"`
}

// UpdateMuscleGroupRequest replaces a muscle group's values, gated on the
// concurrency token echoed from a prior read (admin only).
type UpdateMuscleGroupRequest struct {
	Caller           domain.Identity `json:"-"`
	ID               uuid.UUID       `json:"-"`
	Name             string          `json:"name" validate:"required,max=100"`
	BodyRegion       string          `json:"bodyRegion" validate:"required,bodyregion"`
	ConcurrencyToken string          `json:"concurrencyToken" validate:"required"`
}

// MuscleGroupService handles muscle group business logic
type MuscleGroupService struct {
	repo   *postgres.MuscleGroupRepository
	logger *zap.Logger

	create pipeline.Handler[CreateMuscleGroupRequest, domain.MuscleGroup]
	update pipeline.Handler[UpdateMuscleGroupRequest, domain.MuscleGroup]
	list   pipeline.Handler[ListRequest, paging.Page[domain.MuscleGroup]]
}

// NewMuscleGroupService creates a new muscle group service
func NewMuscleGroupService(repo *postgres.MuscleGroupRepository, logger *zap.Logger) *MuscleGroupService {
	s := &MuscleGroupService{repo: repo, logger: logger}
	s.create = pipeline.Wrap(s.handleCreate, logger, structRule[CreateMuscleGroupRequest]())
	s.update = pipeline.Wrap(s.handleUpdate, logger, structRule[UpdateMuscleGroupRequest]())
	s.list = pipeline.Wrap(s.handleList, logger, pageRule)
	return s
}

// Create creates a new muscle group
func (s *MuscleGroupService) Create(ctx context.Context, req CreateMuscleGroupRequest) result.Result[domain.MuscleGroup] {
	return s.create(ctx, req)
}

// Update updates a muscle group under the concurrency guard
func (s *MuscleGroupService) Update(ctx context.Context, req UpdateMuscleGroupRequest) result.Result[domain.MuscleGroup] {
	return s.update(ctx, req)
}

// List returns one page of muscle groups matching the query
func (s *MuscleGroupService) List(ctx context.Context, req ListRequest) result.Result[paging.Page[domain.MuscleGroup]] {
	return s.list(ctx, req)
}

// Get retrieves a single muscle group
func (s *MuscleGroupService) Get(ctx context.Context, id uuid.UUID) result.Result[domain.MuscleGroup] {
	mg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return result.Failure[domain.MuscleGroup](mapStorageErr(err, "muscle group"))
	}
	return result.Success(*mg)
}

// Delete removes a muscle group (admin only; refused while referenced)
func (s *MuscleGroupService) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) result.Result[result.Void] {
	if !caller.IsAdmin() {
		return result.Fail(result.Unauthorized("only admins may manage muscle groups"))
	}
	used, err := s.repo.InUse(ctx, id)
	if err != nil {
		return result.Fail(result.Database(err))
	}
	if used {
		return result.Fail(result.BadRequest("muscle group is referenced by existing exercises"))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Fail(mapStorageErr(err, "muscle group"))
	}
	return result.Ok()
}

func (s *MuscleGroupService) handleCreate(ctx context.Context, req CreateMuscleGroupRequest) result.Result[domain.MuscleGroup] {
	if !req.Caller.IsAdmin() {
		return result.Failure[domain.MuscleGroup](result.Unauthorized("only admins may manage muscle groups"))
	}
	taken, err := s.repo.NameTaken(ctx, req.Name, uuid.Nil)
	if err != nil {
		return result.Failure[domain.MuscleGroup](result.Database(err))
	}
	if taken {
		return result.Failure[domain.MuscleGroup](result.NamingConflict("muscle group named " + req.Name + " already exists"))
	}

	mg := &domain.MuscleGroup{
		ID:         uuid.New(),
		Name:       req.Name,
		BodyRegion: req.BodyRegion,
	}
	if err := s.repo.Create(ctx, mg); err != nil {
		return result.Failure[domain.MuscleGroup](mapStorageErr(err, "muscle group"))
	}
	return result.Success(*mg)
}

func (s *MuscleGroupService) handleUpdate(ctx context.Context, req UpdateMuscleGroupRequest) result.Result[domain.MuscleGroup] {
	if !req.Caller.IsAdmin() {
		return result.Failure[domain.MuscleGroup](result.Unauthorized("only admins may manage muscle groups"))
	}

	stored, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return result.Failure[domain.MuscleGroup](mapStorageErr(err, "muscle group"))
	}
	if e := optimistic.Check(stored, req.ConcurrencyToken); e != nil {
		return result.Failure[domain.MuscleGroup](*e)
	}

	taken, err := s.repo.NameTaken(ctx, req.Name, req.ID)
	if err != nil {
		return result.Failure[domain.MuscleGroup](result.Database(err))
	}
	if taken {
		return result.Failure[domain.MuscleGroup](result.NamingConflict("muscle group named " + req.Name + " already exists"))
	}

	stored.Name = req.Name
	stored.BodyRegion = req.BodyRegion
	if err := s.repo.Update(ctx, stored, req.ConcurrencyToken); err != nil {
		return result.Failure[domain.MuscleGroup](mapStorageErr(err, "muscle group"))
	}
	return result.Success(*stored)
}

func (s *MuscleGroupService) handleList(ctx context.Context, req ListRequest) result.Result[paging.Page[domain.MuscleGroup]] {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return result.Failure[paging.Page[domain.MuscleGroup]](result.Database(err))
	}
	return result.Success(muscleGroupSource.Execute(items, req.Query))
}
