package catalog

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/shared"
)

// OrderAssignment is one (id, newOrder) pair of a reorder batch
type OrderAssignment struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

// ValidateAssignments checks a reorder batch before any record is touched.
// Orders must be non-negative and an id may appear only once.
func ValidateAssignments(assignments []OrderAssignment) error {
	var details []shared.FieldError
	seen := make(map[uuid.UUID]int, len(assignments))
	for i, a := range assignments {
		if a.ID == uuid.Nil {
			details = append(details, shared.FieldError{Field: fmt.Sprintf("orders[%d].id", i), Message: "id is required"})
		} else if first, dup := seen[a.ID]; dup {
			details = append(details, shared.FieldError{
				Field:   fmt.Sprintf("orders[%d].id", i),
				Message: fmt.Sprintf("id %s already assigned at orders[%d]", a.ID, first),
			})
		} else {
			seen[a.ID] = i
		}
		if a.Order < 0 {
			details = append(details, shared.FieldError{Field: fmt.Sprintf("orders[%d].order", i), Message: "order must be a non-negative integer"})
		}
	}
	if len(details) > 0 {
		return shared.NewValidationError(details...)
	}
	return nil
}

// AssignmentIDs returns the ids of a batch in input order
func AssignmentIDs(assignments []OrderAssignment) []uuid.UUID {
	ids := make([]uuid.UUID, len(assignments))
	for i, a := range assignments {
		ids[i] = a.ID
	}
	return ids
}

// orderLess is the deterministic display order: order, then creation time, then id
func orderLess(orderA, orderB int, a, b *shared.BaseEntity) bool {
	if orderA != orderB {
		return orderA < orderB
	}
	return a.CreatedBefore(b)
}

// SortCategories sorts categories in display order
func SortCategories(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		a, b := &categories[i], &categories[j]
		return orderLess(a.SortOrder, b.SortOrder, &a.BaseEntity, &b.BaseEntity)
	})
}

// SortPlans sorts plans in display order within their category
func SortPlans(plans []Plan) {
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := &plans[i], &plans[j]
		return orderLess(a.SortOrder, b.SortOrder, &a.BaseEntity, &b.BaseEntity)
	})
}
