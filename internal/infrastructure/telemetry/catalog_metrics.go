package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrEventType = attribute.Key("event_type")
	AttrScope     = attribute.Key("scope")
)

// CatalogMetrics counts catalog writes. It subscribes to the event bus,
// so only committed changes are counted.
type CatalogMetrics struct {
	mutations    *Counter
	plansRemoved *Counter
	reorderBatch *Histogram
}

// NewCatalogMetrics creates the catalog instruments on meter
func NewCatalogMetrics(meter metric.Meter) (*CatalogMetrics, error) {
	mutations, err := NewCounter(meter, "catalog.mutations", "Committed catalog changes by event type", "{event}")
	if err != nil {
		return nil, err
	}
	plansRemoved, err := NewCounter(meter, "catalog.cascade.plans_removed", "Plans removed by category cascade deletes", "{plan}")
	if err != nil {
		return nil, err
	}
	reorderBatch, err := NewHistogram(meter, "catalog.reorder.batch_size", "Records updated per reorder batch", "{record}",
		1, 5, 10, 25, 50, 100)
	if err != nil {
		return nil, err
	}
	return &CatalogMetrics{
		mutations:    mutations,
		plansRemoved: plansRemoved,
		reorderBatch: reorderBatch,
	}, nil
}

// Handle records one committed catalog event
func (m *CatalogMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	m.mutations.Inc(ctx, AttrEventType.String(event.EventType()))

	switch e := event.(type) {
	case *catalog.CategoryDeletedEvent:
		m.plansRemoved.Add(ctx, e.PlansRemoved)
	case *catalog.CategoriesReorderedEvent:
		m.reorderBatch.Record(ctx, int64(len(e.Assignments)), AttrScope.String("categories"))
	case *catalog.PlansReorderedEvent:
		m.reorderBatch.Record(ctx, int64(len(e.Assignments)), AttrScope.String("plans"))
	}
	return nil
}

// EventTypes returns the catalog event types
func (m *CatalogMetrics) EventTypes() []string {
	return catalog.CatalogEventTypes()
}

// RegisterDBPoolMetrics reports connection pool usage as observable gauges
func RegisterDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB) error {
	open, err := meter.Int64ObservableGauge("db.pool.open_connections", metric.WithDescription("Open database connections"))
	if err != nil {
		return fmt.Errorf("failed to create pool gauge: %w", err)
	}
	inUse, err := meter.Int64ObservableGauge("db.pool.in_use", metric.WithDescription("Database connections in use"))
	if err != nil {
		return fmt.Errorf("failed to create pool gauge: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("db.pool.wait_count", metric.WithDescription("Waits for a free connection"))
	if err != nil {
		return fmt.Errorf("failed to create pool counter: %w", err)
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(open, int64(stats.OpenConnections))
		o.ObserveInt64(inUse, int64(stats.InUse))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, open, inUse, waits)
	if err != nil {
		return fmt.Errorf("failed to register pool metrics callback: %w", err)
	}
	return nil
}

// Ensure CatalogMetrics implements EventHandler
var _ shared.EventHandler = (*CatalogMetrics)(nil)
