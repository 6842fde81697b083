package catalog

import (
	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePlan = "Plan"

// Event type constants
const (
	EventTypePlanCreated    = "PlanCreated"
	EventTypePlanUpdated    = "PlanUpdated"
	EventTypePlanDeleted    = "PlanDeleted"
	EventTypePlanDuplicated = "PlanDuplicated"
	EventTypePlansReordered = "PlansReordered"
)

// PlanCreatedEvent is published when a new plan is created
type PlanCreatedEvent struct {
	shared.BaseDomainEvent
	PlanID     uuid.UUID `json:"plan_id"`
	CategoryID uuid.UUID `json:"category_id"`
	Data       string    `json:"data"`
	Price      int64     `json:"price"`
}

// NewPlanCreatedEvent creates a new PlanCreatedEvent
func NewPlanCreatedEvent(plan *Plan) *PlanCreatedEvent {
	return &PlanCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanCreated, AggregateTypePlan, plan.ID),
		PlanID:          plan.ID,
		CategoryID:      plan.CategoryID,
		Data:            plan.Data,
		Price:           plan.Price,
	}
}

// PlanUpdatedEvent is published when a plan is patched
type PlanUpdatedEvent struct {
	shared.BaseDomainEvent
	PlanID     uuid.UUID `json:"plan_id"`
	CategoryID uuid.UUID `json:"category_id"`
	IsActive   bool      `json:"is_active"`
	IsFeatured bool      `json:"is_featured"`
}

// NewPlanUpdatedEvent creates a new PlanUpdatedEvent
func NewPlanUpdatedEvent(plan *Plan) *PlanUpdatedEvent {
	return &PlanUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanUpdated, AggregateTypePlan, plan.ID),
		PlanID:          plan.ID,
		CategoryID:      plan.CategoryID,
		IsActive:        plan.IsActive,
		IsFeatured:      plan.IsFeatured,
	}
}

// PlanDeletedEvent is published when a plan is deleted on its own
type PlanDeletedEvent struct {
	shared.BaseDomainEvent
	PlanID     uuid.UUID `json:"plan_id"`
	CategoryID uuid.UUID `json:"category_id"`
}

// NewPlanDeletedEvent creates a new PlanDeletedEvent
func NewPlanDeletedEvent(plan *Plan) *PlanDeletedEvent {
	return &PlanDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanDeleted, AggregateTypePlan, plan.ID),
		PlanID:          plan.ID,
		CategoryID:      plan.CategoryID,
	}
}

// PlanDuplicatedEvent is published when a plan is created as a copy of another
type PlanDuplicatedEvent struct {
	shared.BaseDomainEvent
	PlanID       uuid.UUID `json:"plan_id"`
	SourcePlanID uuid.UUID `json:"source_plan_id"`
	CategoryID   uuid.UUID `json:"category_id"`
}

// NewPlanDuplicatedEvent creates a new PlanDuplicatedEvent
func NewPlanDuplicatedEvent(plan *Plan, sourceID uuid.UUID) *PlanDuplicatedEvent {
	return &PlanDuplicatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanDuplicated, AggregateTypePlan, plan.ID),
		PlanID:          plan.ID,
		SourcePlanID:    sourceID,
		CategoryID:      plan.CategoryID,
	}
}

// PlansReorderedEvent is published after a plan reorder batch commits
type PlansReorderedEvent struct {
	shared.BaseDomainEvent
	CategoryID  uuid.UUID         `json:"category_id"`
	Assignments []OrderAssignment `json:"assignments"`
}

// NewPlansReorderedEvent creates a new PlansReorderedEvent
func NewPlansReorderedEvent(categoryID uuid.UUID, assignments []OrderAssignment) *PlansReorderedEvent {
	return &PlansReorderedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlansReordered, AggregateTypeCategory, categoryID),
		CategoryID:      categoryID,
		Assignments:     assignments,
	}
}

// CatalogEventTypes lists every event that changes what the storefront sees
func CatalogEventTypes() []string {
	return []string{
		EventTypeCategoryCreated,
		EventTypeCategoryUpdated,
		EventTypeCategoryDeleted,
		EventTypeCategoriesReordered,
		EventTypePlanCreated,
		EventTypePlanUpdated,
		EventTypePlanDeleted,
		EventTypePlanDuplicated,
		EventTypePlansReordered,
	}
}
