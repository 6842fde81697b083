package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appcatalog "github.com/intercel/backend/internal/application/catalog"
	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderingService_ReorderCategories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createCategory(t, "monthly", 0)
	b := env.createCategory(t, "quarterly", 1)
	c := env.createCategory(t, "annual", 2)
	env.publisher.reset()

	n, err := env.ordering.ReorderCategories(ctx, appcatalog.ReorderCategoriesRequest{
		Orders: []catalog.OrderAssignment{{ID: c.ID, Order: 0}, {ID: a.ID, Order: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := env.categories.List(ctx, appcatalog.CategoryListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"annual", "quarterly", "monthly"}, []string{list[0].Name, list[1].Name, list[2].Name})
	assert.Equal(t, 1, env.categoryOrders(t)[b.ID], "categories outside the batch keep their order")
	assert.Equal(t, []string{catalog.EventTypeCategoriesReordered}, env.publisher.types())
}

func TestOrderingService_ReorderCategories_UnknownIDChangesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createCategory(t, "monthly", 0)
	b := env.createCategory(t, "annual", 1)
	before := env.categoryOrders(t)
	env.publisher.reset()
	unknown := uuid.New()

	_, err := env.ordering.ReorderCategories(ctx, appcatalog.ReorderCategoriesRequest{
		Orders: []catalog.OrderAssignment{{ID: a.ID, Order: 5}, {ID: unknown, Order: 0}, {ID: b.ID, Order: 6}},
	})
	de := requireKind(t, err, shared.KindNotFound)
	assert.Contains(t, de.Message, unknown.String())
	assert.Contains(t, de.Message, "orders[1]")

	assert.Equal(t, before, env.categoryOrders(t))
	assert.Empty(t, env.publisher.types())
}

func TestOrderingService_ReorderCategories_InvalidBatch(t *testing.T) {
	env := newTestEnv(t)
	a := env.createCategory(t, "monthly", 0)
	before := env.categoryOrders(t)

	tests := []struct {
		name   string
		orders []catalog.OrderAssignment
		field  string
	}{
		{"negative order", []catalog.OrderAssignment{{ID: a.ID, Order: -1}}, "orders[0].order"},
		{"duplicate id", []catalog.OrderAssignment{{ID: a.ID, Order: 1}, {ID: a.ID, Order: 2}}, "orders[1].id"},
		{"nil id", []catalog.OrderAssignment{{ID: uuid.Nil, Order: 1}}, "orders[0].id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.ordering.ReorderCategories(context.Background(), appcatalog.ReorderCategoriesRequest{Orders: tt.orders})
			de := requireKind(t, err, shared.KindValidation)
			assert.Equal(t, tt.field, de.Details[0].Field)
		})
	}
	assert.Equal(t, before, env.categoryOrders(t))
}

func TestOrderingService_EmptyBatch(t *testing.T) {
	env := newTestEnv(t)
	cat := env.createCategory(t, "monthly", 0)
	env.publisher.reset()

	n, err := env.ordering.ReorderCategories(context.Background(), appcatalog.ReorderCategoriesRequest{})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = env.ordering.ReorderPlans(context.Background(), appcatalog.ReorderPlansRequest{CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, env.publisher.types())
}

func TestOrderingService_ReorderPlans(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cat := env.createCategory(t, "monthly", 0)
	p1 := env.createPlan(t, cat.ID, "5GB", 0)
	p2 := env.createPlan(t, cat.ID, "10GB", 1)
	p3 := env.createPlan(t, cat.ID, "20GB", 2)
	env.publisher.reset()

	n, err := env.ordering.ReorderPlans(ctx, appcatalog.ReorderPlansRequest{
		CategoryID: cat.ID,
		Orders: []catalog.OrderAssignment{
			{ID: p3.ID, Order: 0},
			{ID: p1.ID, Order: 1},
			{ID: p2.ID, Order: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	detail, err := env.categories.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"20GB", "5GB", "10GB"},
		[]string{detail.Plans[0].Data, detail.Plans[1].Data, detail.Plans[2].Data})

	require.Len(t, env.publisher.events, 1)
	evt, ok := env.publisher.events[0].(*catalog.PlansReorderedEvent)
	require.True(t, ok)
	assert.Equal(t, cat.ID, evt.CategoryID)
	assert.Len(t, evt.Assignments, 3)
}

func TestOrderingService_ReorderPlans_ForeignPlanRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	monthly := env.createCategory(t, "monthly", 0)
	annual := env.createCategory(t, "annual", 1)
	own := env.createPlan(t, monthly.ID, "5GB", 0)
	foreign := env.createPlan(t, annual.ID, "50GB", 0)
	before := env.planOrders(t)

	_, err := env.ordering.ReorderPlans(ctx, appcatalog.ReorderPlansRequest{
		CategoryID: monthly.ID,
		Orders:     []catalog.OrderAssignment{{ID: own.ID, Order: 3}, {ID: foreign.ID, Order: 4}},
	})
	de := requireKind(t, err, shared.KindValidation)
	assert.Equal(t, "orders[1].id", de.Details[0].Field)
	assert.Equal(t, before, env.planOrders(t))
}

func TestOrderingService_ReorderPlans_UnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	cat := env.createCategory(t, "monthly", 0)
	plan := env.createPlan(t, cat.ID, "5GB", 0)

	_, err := env.ordering.ReorderPlans(context.Background(), appcatalog.ReorderPlansRequest{
		CategoryID: uuid.New(),
		Orders:     []catalog.OrderAssignment{{ID: plan.ID, Order: 1}},
	})
	requireKind(t, err, shared.KindNotFound)
}

func TestOrderingService_ReorderPlans_RollsBackPartialWrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cat := env.createCategory(t, "monthly", 0)
	p1 := env.createPlan(t, cat.ID, "5GB", 0)
	p2 := env.createPlan(t, cat.ID, "10GB", 1)
	p3 := env.createPlan(t, cat.ID, "20GB", 2)
	before := env.planOrders(t)
	env.publisher.reset()

	env.rebuild(&faultyScope{inner: env.txScope, failPlanUpdateAt: 3})

	_, err := env.ordering.ReorderPlans(ctx, appcatalog.ReorderPlansRequest{
		CategoryID: cat.ID,
		Orders: []catalog.OrderAssignment{
			{ID: p1.ID, Order: 9},
			{ID: p2.ID, Order: 8},
			{ID: p3.ID, Order: 7},
		},
	})
	requireKind(t, err, shared.KindInternal)

	assert.Equal(t, before, env.planOrders(t), "writes before the failure are rolled back")
	assert.Empty(t, env.publisher.types())
}
