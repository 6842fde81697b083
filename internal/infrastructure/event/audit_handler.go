package event

import (
	"context"

	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/domain/shared"
	"github.com/intercel/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CatalogAuditHandler writes one structured log line per committed catalog change
type CatalogAuditHandler struct {
	logger *zap.Logger
}

// NewCatalogAuditHandler creates a new CatalogAuditHandler
func NewCatalogAuditHandler(log *zap.Logger) *CatalogAuditHandler {
	return &CatalogAuditHandler{logger: log.Named("audit")}
}

// Handle logs the event with the request id and actor carried by ctx
func (h *CatalogAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	}

	switch e := event.(type) {
	case *catalog.CategoryDeletedEvent:
		fields = append(fields, zap.String("category_name", e.Name), zap.Int64("plans_removed", e.PlansRemoved))
	case *catalog.PlanDuplicatedEvent:
		fields = append(fields, zap.String("source_plan_id", e.SourcePlanID.String()))
	case *catalog.CategoriesReorderedEvent:
		fields = append(fields, zap.Int("assignments", len(e.Assignments)))
	case *catalog.PlansReorderedEvent:
		fields = append(fields,
			zap.String("category_id", e.CategoryID.String()),
			zap.Int("assignments", len(e.Assignments)))
	}

	logger.For(ctx, h.logger).Info("Catalog changed", fields...)
	return nil
}

// EventTypes returns the catalog event types
func (h *CatalogAuditHandler) EventTypes() []string {
	return catalog.CatalogEventTypes()
}

// Ensure CatalogAuditHandler implements EventHandler
var _ shared.EventHandler = (*CatalogAuditHandler)(nil)
