package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PlanService handles plan-related business operations
type PlanService struct {
	categoryRepo   catalog.CategoryRepository
	planRepo       catalog.PlanRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(cfg ServiceConfig) *PlanService {
	return &PlanService{
		categoryRepo:   cfg.CategoryRepo,
		planRepo:       cfg.PlanRepo,
		eventPublisher: cfg.EventPublisher,
		logger:         cfg.logger(),
	}
}

// Create creates a new plan inside an existing category
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*PlanResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category, err := s.requireCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	plan, err := catalog.NewPlan(req.toAttributes())
	if err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, storageError(err)
	}

	publishEvents(ctx, s.eventPublisher, s.logger, plan)
	resp := ToPlanResponse(plan, category)
	return &resp, nil
}

// GetByID retrieves a plan with its category
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "plan")
	}

	category, err := s.categoryRepo.FindByID(ctx, plan.CategoryID)
	if err != nil {
		return nil, storageError(err)
	}

	resp := ToPlanResponse(plan, category)
	return &resp, nil
}

// List retrieves plans ordered by category order, then plan order.
// Inactive plans are included unless the filter excludes them.
func (s *PlanService) List(ctx context.Context, filter PlanListFilter) ([]PlanResponse, error) {
	plans, err := s.planRepo.FindAll(ctx, catalog.PlanFilter{
		CategoryID: filter.CategoryID,
		IsActive:   filter.IsActive,
	})
	if err != nil {
		return nil, storageError(err)
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, owningCategoryIDs(plans))
	if err != nil {
		return nil, storageError(err)
	}
	byID := make(map[uuid.UUID]*catalog.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = ToPlanResponse(&plans[i], byID[plans[i].CategoryID])
	}
	return responses, nil
}

// Update patches only the supplied fields of a plan.
// Moving a plan to another category requires that category to exist.
func (s *PlanService) Update(ctx context.Context, id uuid.UUID, req UpdatePlanRequest) (*PlanResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "plan")
	}

	patch := req.toPatch()
	targetCategory := plan.CategoryID
	if patch.CategoryID != nil {
		targetCategory = *patch.CategoryID
	}
	category, err := s.requireCategory(ctx, targetCategory)
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		if err := plan.Apply(patch); err != nil {
			return nil, err
		}
		if err := s.planRepo.Save(ctx, plan); err != nil {
			return nil, storageError(err)
		}
	}

	publishEvents(ctx, s.eventPublisher, s.logger, plan)
	resp := ToPlanResponse(plan, category)
	return &resp, nil
}

// ToggleFeatured flips the featured flag through the regular partial update
func (s *PlanService) ToggleFeatured(ctx context.Context, id uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "plan")
	}

	featured := !plan.IsFeatured
	return s.Update(ctx, id, UpdatePlanRequest{IsFeatured: &featured})
}

// Duplicate copies a plan into the same category.
// The copy's data label gets the " (copia)" suffix and its order is the source order plus one.
// Sibling orders are left untouched, so the copy may tie with another plan.
func (s *PlanService) Duplicate(ctx context.Context, id uuid.UUID) (*PlanResponse, error) {
	source, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "plan")
	}

	cp, err := source.Duplicate()
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, cp); err != nil {
		return nil, storageError(err)
	}

	category, err := s.categoryRepo.FindByID(ctx, cp.CategoryID)
	if err != nil {
		return nil, storageError(err)
	}

	publishEvents(ctx, s.eventPublisher, s.logger, cp)
	resp := ToPlanResponse(cp, category)
	return &resp, nil
}

// Delete removes a single plan
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return notFoundAs(err, "plan")
	}

	if err := s.planRepo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "plan")
	}

	s.logger.Info("Plan deleted",
		zap.String("plan_id", id.String()),
		zap.String("category_id", plan.CategoryID.String()))

	plan.MarkDeleted()
	publishEvents(ctx, s.eventPublisher, s.logger, plan)
	return nil
}

// requireCategory loads the category a plan is attached to.
// A missing category is a caller input problem, so it is reported against categoryId.
func (s *PlanService) requireCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewFieldError("categoryId", "category not found")
		}
		return nil, storageError(err)
	}
	return category, nil
}

func owningCategoryIDs(plans []catalog.Plan) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(plans))
	ids := make([]uuid.UUID, 0, len(plans))
	for _, p := range plans {
		if _, ok := seen[p.CategoryID]; ok {
			continue
		}
		seen[p.CategoryID] = struct{}{}
		ids = append(ids, p.CategoryID)
	}
	return ids
}
