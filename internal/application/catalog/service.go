package catalog

import (
	"context"
	"errors"

	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ServiceConfig holds the collaborators shared by the catalog services
type ServiceConfig struct {
	CategoryRepo   catalog.CategoryRepository
	PlanRepo       catalog.PlanRepository
	TxScope        TransactionScope
	EventPublisher shared.EventPublisher
	Logger         *zap.Logger
}

func (c ServiceConfig) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c ServiceConfig) txScope() TransactionScope {
	if c.TxScope == nil {
		return NewNoOpTransactionScope(c.CategoryRepo, c.PlanRepo)
	}
	return c.TxScope
}

// eventSource is an aggregate that buffers domain events until they are published
type eventSource interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

// publishEvents publishes the buffered events of each aggregate after its changes are committed.
// Publishing failures are logged and never undo the committed change.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, sources ...eventSource) {
	var events []shared.DomainEvent
	for _, src := range sources {
		if src == nil {
			continue
		}
		events = append(events, src.GetDomainEvents()...)
		src.ClearDomainEvents()
	}
	publish(ctx, publisher, logger, events...)
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, events ...shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish catalog events",
			zap.Int("count", len(events)),
			zap.Error(err))
	}
}

// storageError passes domain errors through and wraps anything else as an internal error
func storageError(err error) error {
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return shared.NewInternalError(err)
}

// notFoundAs rewrites a repository not-found into a resource-specific NotFoundError
func notFoundAs(err error, resource string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(resource)
	}
	return storageError(err)
}
