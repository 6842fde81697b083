package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/domain/shared"
	"github.com/intercel/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo   catalog.CategoryRepository
	planRepo       catalog.PlanRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(cfg ServiceConfig) *CategoryService {
	return &CategoryService{
		categoryRepo:   cfg.CategoryRepo,
		planRepo:       cfg.PlanRepo,
		txScope:        cfg.txScope(),
		eventPublisher: cfg.EventPublisher,
		logger:         cfg.logger(),
	}
}

// Create creates a new category. The name must not be taken by another category.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	}
	category, err := catalog.NewCategory(req.Name, req.Label, req.Icon, order)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, category.Name)
	if err != nil {
		return nil, storageError(err)
	}
	if exists {
		return nil, nameTaken(category.Name)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		// a concurrent create can still lose the race on the unique index
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, nameTaken(category.Name)
		}
		return nil, storageError(err)
	}

	publishEvents(ctx, s.eventPublisher, s.logger, category)
	resp := ToCategoryResponse(category, 0)
	return &resp, nil
}

// GetByID retrieves a category with its plans in display order
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryDetailResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "category")
	}

	plans, err := s.planRepo.FindAll(ctx, catalog.PlanFilter{CategoryID: &id})
	if err != nil {
		return nil, storageError(err)
	}

	resp := &CategoryDetailResponse{
		CategoryResponse: ToCategoryResponse(category, int64(len(plans))),
		Plans:            make([]PlanResponse, len(plans)),
	}
	for i := range plans {
		resp.Plans[i] = ToPlanResponse(&plans[i], nil)
	}
	return resp, nil
}

// List retrieves all categories in display order, each with its plan count.
// Inactive categories are included unless the filter excludes them.
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, catalog.CategoryFilter{IsActive: filter.IsActive})
	if err != nil {
		return nil, storageError(err)
	}

	counts, err := s.planRepo.CountByCategory(ctx, catalog.PlanFilter{})
	if err != nil {
		return nil, storageError(err)
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i], counts[categories[i].ID])
	}
	return responses, nil
}

// Update patches the supplied fields of a category. The name is immutable.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "category")
	}

	patch := req.toPatch()
	if !patch.IsEmpty() {
		if err := category.Apply(patch); err != nil {
			return nil, err
		}
		if err := s.categoryRepo.Save(ctx, category); err != nil {
			return nil, notFoundAs(err, "category")
		}
	}

	counts, err := s.planRepo.CountByCategory(ctx, catalog.PlanFilter{CategoryID: &id})
	if err != nil {
		return nil, storageError(err)
	}

	publishEvents(ctx, s.eventPublisher, s.logger, category)
	resp := ToCategoryResponse(category, counts[id])
	return &resp, nil
}

// Delete removes a category together with every plan it owns.
//
// This is destructive and irreversible. Plans are deleted first, then the
// category, inside one transaction; on any failure nothing is removed.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (*DeleteCategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrCategoryID, id.String()))
	defer span.End()

	var (
		category *catalog.Category
		removed  int64
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.CategoryRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		n, err := repos.PlanRepo().DeleteByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("delete plans of category %s: %w", id, err)
		}
		if err := repos.CategoryRepo().Delete(ctx, id); err != nil {
			return err
		}
		category, removed = found, n
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, notFoundAs(err, "category")
	}

	s.logger.Info("Category deleted with its plans",
		zap.String("category_id", id.String()),
		zap.String("category_name", category.Name),
		zap.Int64("plans_removed", removed))
	telemetry.SetAttribute(span, "plans.removed", removed)
	telemetry.SetOK(span)

	category.MarkDeleted(removed)
	publishEvents(ctx, s.eventPublisher, s.logger, category)

	return &DeleteCategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		PlansRemoved: removed,
	}, nil
}

func nameTaken(name string) error {
	return shared.NewConflictError("ALREADY_EXISTS", fmt.Sprintf("a category named %q already exists", name))
}
