package cache

import (
	"context"

	appcatalog "github.com/intercel/backend/internal/application/catalog"
	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CatalogInvalidationHandler drops the cached public projections whenever the catalog changes
type CatalogInvalidationHandler struct {
	cache  appcatalog.ProjectionCache
	logger *zap.Logger
}

// NewCatalogInvalidationHandler creates a handler that invalidates cache on catalog events
func NewCatalogInvalidationHandler(cache appcatalog.ProjectionCache, logger *zap.Logger) *CatalogInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogInvalidationHandler{cache: cache, logger: logger}
}

// Handle moves the public projections to a new generation and drops the entries of the previous one.
// Readers that loaded the catalog before the write can only store under the old generation.
func (h *CatalogInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	generation, err := h.cache.Increment(ctx, appcatalog.PublicCacheGenerationKey)
	if err != nil {
		h.logger.Warn("Failed to invalidate public catalog cache",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return err
	}
	if err := h.cache.Delete(ctx, appcatalog.PublicCacheKeys(generation-1)...); err != nil {
		h.logger.Debug("Failed to drop stale public catalog entries", zap.Error(err))
	}
	h.logger.Debug("Public catalog cache invalidated",
		zap.String("event_type", event.EventType()),
		zap.Int64("generation", generation))
	return nil
}

// EventTypes returns the catalog event types
func (h *CatalogInvalidationHandler) EventTypes() []string {
	return catalog.CatalogEventTypes()
}

var _ shared.EventHandler = (*CatalogInvalidationHandler)(nil)
