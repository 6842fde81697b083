package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	appcatalog "github.com/intercel/backend/internal/application/catalog"
	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/domain/shared"
	"github.com/intercel/backend/internal/infrastructure/config"
	"github.com/intercel/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errInjected = errors.New("injected storage failure")

// recordingPublisher keeps every published event in order
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type testEnv struct {
	db           *gorm.DB
	categoryRepo catalog.CategoryRepository
	planRepo     catalog.PlanRepository
	txScope      appcatalog.TransactionScope
	publisher    *recordingPublisher
	categories   *appcatalog.CategoryService
	plans        *appcatalog.PlanService
	ordering     *appcatalog.OrderingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })

	env := &testEnv{
		db:           database.DB,
		categoryRepo: persistence.NewGormCategoryRepository(database.DB),
		planRepo:     persistence.NewGormPlanRepository(database.DB),
		txScope:      persistence.NewGormTransactionScope(database.DB),
		publisher:    &recordingPublisher{},
	}
	env.rebuild(env.txScope)
	return env
}

// rebuild recreates the services around a different transaction scope
func (e *testEnv) rebuild(scope appcatalog.TransactionScope) {
	cfg := appcatalog.ServiceConfig{
		CategoryRepo:   e.categoryRepo,
		PlanRepo:       e.planRepo,
		TxScope:        scope,
		EventPublisher: e.publisher,
	}
	e.categories = appcatalog.NewCategoryService(cfg)
	e.plans = appcatalog.NewPlanService(cfg)
	e.ordering = appcatalog.NewOrderingService(cfg)
}

func (e *testEnv) createCategory(t *testing.T, name string, order int) *appcatalog.CategoryResponse {
	t.Helper()
	resp, err := e.categories.Create(context.Background(), appcatalog.CreateCategoryRequest{
		Name:  name,
		Label: "Label " + name,
		Icon:  "calendar",
		Order: &order,
	})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) createPlan(t *testing.T, categoryID uuid.UUID, data string, order int) *appcatalog.PlanResponse {
	t.Helper()
	price := int64(1500)
	resp, err := e.plans.Create(context.Background(), appcatalog.CreatePlanRequest{
		CategoryID: categoryID,
		Price:      &price,
		Data:       data,
		Features:   "Llamadas ilimitadas",
		Duration:   "30 días",
		Order:      &order,
	})
	require.NoError(t, err)
	return resp
}

type orderSnapshot map[uuid.UUID]int

func (e *testEnv) categoryOrders(t *testing.T) orderSnapshot {
	t.Helper()
	all, err := e.categoryRepo.FindAll(context.Background(), catalog.CategoryFilter{})
	require.NoError(t, err)
	snap := make(orderSnapshot, len(all))
	for _, c := range all {
		snap[c.ID] = c.SortOrder
	}
	return snap
}

func (e *testEnv) planOrders(t *testing.T) orderSnapshot {
	t.Helper()
	all, err := e.planRepo.FindAll(context.Background(), catalog.PlanFilter{})
	require.NoError(t, err)
	snap := make(orderSnapshot, len(all))
	for _, p := range all {
		snap[p.ID] = p.SortOrder
	}
	return snap
}

// faultyScope wraps a real scope and makes selected repository calls fail inside the transaction
type faultyScope struct {
	inner              appcatalog.TransactionScope
	failCategoryDelete bool
	failPlanUpdateAt   int // 1-based call number of PlanRepo().UpdateOrder to fail, 0 disables
	planUpdateCalls    int
	afterCategoryRead  func() // runs once, right after the first CategoryRepo().FindAll
	snapshots          int
}

func (s *faultyScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.inner.Execute(ctx, func(repos appcatalog.TransactionalRepositories) error {
		return fn(&faultyRepos{inner: repos, scope: s})
	})
}

func (s *faultyScope) ReadSnapshot(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	s.snapshots++
	return s.inner.ReadSnapshot(ctx, func(repos appcatalog.TransactionalRepositories) error {
		return fn(&faultyRepos{inner: repos, scope: s})
	})
}

type faultyRepos struct {
	inner appcatalog.TransactionalRepositories
	scope *faultyScope
}

func (r *faultyRepos) CategoryRepo() catalog.CategoryRepository {
	return &faultyCategoryRepo{CategoryRepository: r.inner.CategoryRepo(), scope: r.scope}
}

func (r *faultyRepos) PlanRepo() catalog.PlanRepository {
	return &faultyPlanRepo{PlanRepository: r.inner.PlanRepo(), scope: r.scope}
}

type faultyCategoryRepo struct {
	catalog.CategoryRepository
	scope *faultyScope
}

func (r *faultyCategoryRepo) FindAll(ctx context.Context, filter catalog.CategoryFilter) ([]catalog.Category, error) {
	categories, err := r.CategoryRepository.FindAll(ctx, filter)
	if hook := r.scope.afterCategoryRead; hook != nil {
		r.scope.afterCategoryRead = nil
		hook()
	}
	return categories, err
}

func (r *faultyCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.scope.failCategoryDelete {
		return errInjected
	}
	return r.CategoryRepository.Delete(ctx, id)
}

type faultyPlanRepo struct {
	catalog.PlanRepository
	scope *faultyScope
}

func (r *faultyPlanRepo) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	r.scope.planUpdateCalls++
	if r.scope.failPlanUpdateAt > 0 && r.scope.planUpdateCalls == r.scope.failPlanUpdateAt {
		return errInjected
	}
	return r.PlanRepository.UpdateOrder(ctx, id, order)
}

func intPtr(i int) *int { return &i }
func int64Ptr(i int64) *int64 { return &i }
func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func requireKind(t *testing.T, err error, kind shared.ErrorKind) *shared.DomainError {
	t.Helper()
	require.Error(t, err)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %T: %v", err, err)
	require.Equal(t, kind, de.Kind, "unexpected error: %v", err)
	return de
}
