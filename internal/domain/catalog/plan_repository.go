package catalog

import (
	"context"

	"github.com/google/uuid"
)

// PlanFilter narrows plan listings
type PlanFilter struct {
	CategoryID *uuid.UUID
	IsActive   *bool
}

// PlanRepository defines the interface for plan persistence.
// Listings are ordered by category order, then plan order.
type PlanRepository interface {
	// FindByID finds a plan by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)

	// FindAll finds all plans matching the filter
	FindAll(ctx context.Context, filter PlanFilter) ([]Plan, error)

	// FindByIDs finds the plans with the given IDs; missing IDs are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Plan, error)

	// CountByCategory counts plans per category for plans matching the filter
	CountByCategory(ctx context.Context, filter PlanFilter) (map[uuid.UUID]int64, error)

	// Save creates or updates a plan
	Save(ctx context.Context, plan *Plan) error

	// UpdateOrder sets the order of one plan
	UpdateOrder(ctx context.Context, id uuid.UUID, order int) error

	// Delete deletes a plan
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCategory deletes every plan of a category and returns how many were removed
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
