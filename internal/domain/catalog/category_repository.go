package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryFilter narrows category listings
type CategoryFilter struct {
	IsActive *bool
}

// CategoryRepository defines the interface for category persistence.
// Listings are returned in display order.
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its unique name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter CategoryFilter) ([]Category, error)

	// FindByIDs finds the categories with the given IDs; missing IDs are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Category, error)

	// ExistsByName checks if a category with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// UpdateOrder sets the order of one category
	UpdateOrder(ctx context.Context, id uuid.UUID, order int) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error
}
