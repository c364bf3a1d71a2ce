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

// equipmentSource registers the equipment type's searchable field and sort
// keys with the paged-query engine. Equipment is a small reference set, so
// its listing runs in memory over the full set.
var equipmentSource = paging.Source[domain.Equipment]{
	Match: func(e domain.Equipment, term string) bool {
		return paging.ContainsFold(e.Name, term)
	},
	SortKeys: map[string]func(a, b domain.Equipment) int{
		"name": func(a, b domain.Equipment) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		},
		"createdat": func(a, b domain.Equipment) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		},
	},
}

// CreateEquipmentRequest creates a new piece of equipment (admin only).
type CreateEquipmentRequest struct {
	Caller      domain.Identity `json:"-"`
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
}

// UpdateEquipmentRequest replaces an equipment row's values, gated on the
// concurrency token echoed from a prior read (admin only).
type UpdateEquipmentRequest struct {
	Caller           domain.Identity `json:"-"`
	ID               uuid.UUID       `json:"-"`
	Name             string          `json:"name" validate:"required,max=100"`
	Description      string          `json:"description" validate:"max=500"`
	ConcurrencyToken string          `json:"concurrencyToken" validate:"required"`
}

// EquipmentService handles equipment business logic
type EquipmentService struct {
	repo   *postgres.EquipmentRepository
	logger *zap.Logger

	create pipeline.Handler[CreateEquipmentRequest, domain.Equipment]
	update pipeline.Handler[UpdateEquipmentRequest, domain.Equipment]
	list   pipeline.Handler[ListRequest, paging.Page[domain.Equipment]]
}

// NewEquipmentService creates a new equipment service
func NewEquipmentService(repo *postgres.EquipmentRepository, logger *zap.Logger) *EquipmentService {
	s := &EquipmentService{repo: repo, logger: logger}
	s.create = pipeline.Wrap(s.handleCreate, logger, structRule[CreateEquipmentRequest]())
	s.update = pipeline.Wrap(s.handleUpdate, logger, structRule[UpdateEquipmentRequest]())
	s.list = pipeline.Wrap(s.handleList, logger, pageRule)
	return s
}

// Create creates a new piece of equipment
func (s *EquipmentService) Create(ctx context.Context, req CreateEquipmentRequest) result.Result[domain.Equipment] {
	return s.create(ctx, req)
}

// Update updates an equipment row under the concurrency guard
func (s *EquipmentService) Update(ctx context.Context, req UpdateEquipmentRequest) result.Result[domain.Equipment] {
	return s.update(ctx, req)
}

// List returns one page of equipment matching the query
func (s *EquipmentService) List(ctx context.Context, req ListRequest) result.Result[paging.Page[domain.Equipment]] {
	return s.list(ctx, req)
}

// Get retrieves a single equipment row
func (s *EquipmentService) Get(ctx context.Context, id uuid.UUID) result.Result[domain.Equipment] {
	eq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return result.Failure[domain.Equipment](mapStorageErr(err, "equipment"))
	}
	return result.Success(*eq)
}

// Delete removes an equipment row (admin only; refused while referenced)
func (s *EquipmentService) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) result.Result[result.Void] {
	if !caller.IsAdmin() {
		return result.Fail(result.Unauthorized("only admins may manage equipment"))
	}
	used, err := s.repo.InUse(ctx, id)
	if err != nil {
		return result.Fail(result.Database(err))
	}
	if used {
		return result.Fail(result.BadRequest("equipment is referenced by existing exercises"))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Fail(mapStorageErr(err, "equipment"))
	}
	return result.Ok()
}

func (s *EquipmentService) handleCreate(ctx context.Context, req CreateEquipmentRequest) result.Result[domain.Equipment] {
	if !req.Caller.IsAdmin() {
		return result.Failure[domain.Equipment](result.Unauthorized("only admins may manage equipment"))
	}
	taken, err := s.repo.NameTaken(ctx, req.Name, uuid.Nil)
	if err != nil {
		return result.Failure[domain.Equipment](result.Database(err))
	}
	if taken {
		return result.Failure[domain.Equipment](result.NamingConflict("equipment named " + req.Name + " already exists"))
	}

	eq := &domain.Equipment{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, eq); err != nil {
		return result.Failure[domain.Equipment](mapStorageErr(err, "equipment"))
	}
	return result.Success(*eq)
}

func (s *EquipmentService) handleUpdate(ctx context.Context, req UpdateEquipmentRequest) result.Result[domain.Equipment] {
	if !req.Caller.IsAdmin() {
		return result.Failure[domain.Equipment](result.Unauthorized("only admins may manage equipment"))
	}

	// Guard protocol: absence first, then the token comparison, then the
	// compare-and-swap write.
	stored, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return result.Failure[domain.Equipment](mapStorageErr(err, "equipment"))
	}
	if e := optimistic.Check(stored, req.ConcurrencyToken); e != nil {
		return result.Failure[domain.Equipment](*e)
	}

	taken, err := s.repo.NameTaken(ctx, req.Name, req.ID)
	if err != nil {
		return result.Failure[domain.Equipment](result.Database(err))
	}
	if taken {
		return result.Failure[domain.Equipment](result.NamingConflict("equipment named " + req.Name + " already exists"))
	}

	stored.Name = req.Name
	stored.Description = req.Description
	if err := s.repo.Update(ctx, stored, req.ConcurrencyToken); err != nil {
		return result.Failure[domain.Equipment](mapStorageErr(err, "equipment"))
	}
	return result.Success(*stored)
}

func (s *EquipmentService) handleList(ctx context.Context, req ListRequest) result.Result[paging.Page[domain.Equipment]] {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return result.Failure[paging.Page[domain.Equipment]](result.Database(err))
	}
	return result.Success(equipmentSource.Execute(items, req.Query))
}
