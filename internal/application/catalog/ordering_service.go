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

// OrderingService applies bulk reorders to categories and to the plans of one category.
//
// Each batch is all-or-nothing: every id is checked before any order is written and
// all writes share one transaction. Concurrent reorders over the same scope are not
// serialized; the last transaction to commit wins.
type OrderingService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderingService creates a new OrderingService
func NewOrderingService(cfg ServiceConfig) *OrderingService {
	return &OrderingService{
		txScope:        cfg.txScope(),
		eventPublisher: cfg.EventPublisher,
		logger:         cfg.logger(),
	}
}

// ReorderCategories assigns new display orders to categories and returns how many were updated
func (s *OrderingService) ReorderCategories(ctx context.Context, req ReorderCategoriesRequest) (int, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}
	assignments := req.Orders
	if err := catalog.ValidateAssignments(assignments); err != nil {
		return 0, err
	}
	if len(assignments) == 0 {
		return 0, nil
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "ordering", "reorder_categories",
		telemetry.WithAttribute(telemetry.SpanAttrBatchSize, len(assignments)))
	defer span.End()

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.CategoryRepo().FindByIDs(ctx, catalog.AssignmentIDs(assignments))
		if err != nil {
			return err
		}
		known := make(map[uuid.UUID]bool, len(found))
		for _, c := range found {
			known[c.ID] = true
		}
		for i, a := range assignments {
			if !known[a.ID] {
				return missingAssignment("category", i, a.ID)
			}
		}

		for i, a := range assignments {
			if err := repos.CategoryRepo().UpdateOrder(ctx, a.ID, a.Order); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return missingAssignment("category", i, a.ID)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, storageError(err)
	}

	s.logger.Info("Categories reordered", zap.Int("updated", len(assignments)))
	telemetry.SetOK(span)
	publish(ctx, s.eventPublisher, s.logger, catalog.NewCategoriesReorderedEvent(assignments))
	return len(assignments), nil
}

// ReorderPlans assigns new orders to plans of one category and returns how many were updated.
// A plan that belongs to a different category fails the whole batch.
func (s *OrderingService) ReorderPlans(ctx context.Context, req ReorderPlansRequest) (int, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}
	assignments := req.Orders
	if err := catalog.ValidateAssignments(assignments); err != nil {
		return 0, err
	}
	if len(assignments) == 0 {
		return 0, nil
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "ordering", "reorder_plans",
		telemetry.WithAttribute(telemetry.SpanAttrCategoryID, req.CategoryID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrBatchSize, len(assignments)))
	defer span.End()

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.CategoryRepo().FindByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("category")
			}
			return err
		}

		found, err := repos.PlanRepo().FindByIDs(ctx, catalog.AssignmentIDs(assignments))
		if err != nil {
			return err
		}
		owner := make(map[uuid.UUID]uuid.UUID, len(found))
		for _, p := range found {
			owner[p.ID] = p.CategoryID
		}
		for i, a := range assignments {
			categoryID, ok := owner[a.ID]
			if !ok {
				return missingAssignment("plan", i, a.ID)
			}
			if categoryID != req.CategoryID {
				return shared.NewFieldError(fmt.Sprintf("orders[%d].id", i),
					fmt.Sprintf("plan %s does not belong to category %s", a.ID, req.CategoryID))
			}
		}

		for i, a := range assignments {
			if err := repos.PlanRepo().UpdateOrder(ctx, a.ID, a.Order); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return missingAssignment("plan", i, a.ID)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, storageError(err)
	}

	s.logger.Info("Plans reordered",
		zap.String("category_id", req.CategoryID.String()),
		zap.Int("updated", len(assignments)))
	telemetry.SetOK(span)
	publish(ctx, s.eventPublisher, s.logger, catalog.NewPlansReorderedEvent(req.CategoryID, assignments))
	return len(assignments), nil
}

func missingAssignment(resource string, index int, id uuid.UUID) error {
	err := shared.NewNotFoundError(resource)
	err.Message = fmt.Sprintf("%s %s not found (orders[%d])", resource, id, index)
	return err
}
