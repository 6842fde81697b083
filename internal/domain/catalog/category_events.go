package catalog

import (
	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCategory = "Category"

// Event type constants
const (
	EventTypeCategoryCreated     = "CategoryCreated"
	EventTypeCategoryUpdated     = "CategoryUpdated"
	EventTypeCategoryDeleted     = "CategoryDeleted"
	EventTypeCategoriesReordered = "CategoriesReordered"
)

// CategoryCreatedEvent is published when a new category is created
type CategoryCreatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Label      string    `json:"label"`
}

// NewCategoryCreatedEvent creates a new CategoryCreatedEvent
func NewCategoryCreatedEvent(category *Category) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryCreated, AggregateTypeCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
		Label:           category.Label,
	}
}

// CategoryUpdatedEvent is published when a category is updated
type CategoryUpdatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"is_active"`
}

// NewCategoryUpdatedEvent creates a new CategoryUpdatedEvent
func NewCategoryUpdatedEvent(category *Category) *CategoryUpdatedEvent {
	return &CategoryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryUpdated, AggregateTypeCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
		IsActive:        category.IsActive,
	}
}

// CategoryDeletedEvent is published after a category and its plans are removed
type CategoryDeletedEvent struct {
	shared.BaseDomainEvent
	CategoryID   uuid.UUID `json:"category_id"`
	Name         string    `json:"name"`
	PlansRemoved int64     `json:"plans_removed"`
}

// NewCategoryDeletedEvent creates a new CategoryDeletedEvent
func NewCategoryDeletedEvent(category *Category, plansRemoved int64) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryDeleted, AggregateTypeCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
		PlansRemoved:    plansRemoved,
	}
}

// CategoriesReorderedEvent is published after a category reorder batch commits
type CategoriesReorderedEvent struct {
	shared.BaseDomainEvent
	Assignments []OrderAssignment `json:"assignments"`
}

// NewCategoriesReorderedEvent creates a new CategoriesReorderedEvent
func NewCategoriesReorderedEvent(assignments []OrderAssignment) *CategoriesReorderedEvent {
	return &CategoriesReorderedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoriesReordered, AggregateTypeCategory, uuid.Nil),
		Assignments:     assignments,
	}
}
