package catalog

import (
	"context"

	"github.com/intercel/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to catalog repositories.
// Every repository operation inside Execute shares one database transaction
// and is committed or rolled back as a unit.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
	// ReadSnapshot runs fn within a read-only transaction whose reads all
	// observe the same committed state.
	ReadSnapshot(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the catalog repositories bound to one transaction.
//
// Multi-record mutations (category cascade delete and bulk reorder) must only
// use these repositories while inside Execute.
type TransactionalRepositories interface {
	// CategoryRepo returns the category repository scoped to the current transaction
	CategoryRepo() catalog.CategoryRepository
	// PlanRepo returns the plan repository scoped to the current transaction
	PlanRepo() catalog.PlanRepository
}

// NoOpTransactionScope runs the function against plain repositories without a transaction.
// Useful in tests with in-memory fakes.
type NoOpTransactionScope struct {
	categoryRepo catalog.CategoryRepository
	planRepo     catalog.PlanRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(categoryRepo catalog.CategoryRepository, planRepo catalog.PlanRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{categoryRepo: categoryRepo, planRepo: planRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ReadSnapshot runs the function without a real transaction.
func (s *NoOpTransactionScope) ReadSnapshot(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CategoryRepo returns the category repository.
func (s *NoOpTransactionScope) CategoryRepo() catalog.CategoryRepository {
	return s.categoryRepo
}

// PlanRepo returns the plan repository.
func (s *NoOpTransactionScope) PlanRepo() catalog.PlanRepository {
	return s.planRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
