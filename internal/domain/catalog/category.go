package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/intercel/backend/internal/domain/shared"
)

// Category field bounds
const (
	CategoryNameMinLength  = 2
	CategoryNameMaxLength  = 50
	CategoryLabelMinLength = 2
	CategoryLabelMaxLength = 100
	CategoryIconMinLength  = 2
	CategoryIconMaxLength  = 50
)

// Category is a named grouping of plans shown as one tab of the storefront.
// Name is the stable public key and cannot change after creation.
type Category struct {
	shared.BaseAggregateRoot
	Name      string
	Label     string
	Icon      string
	SortOrder int
	IsActive  bool
}

// CategoryPatch lists the mutable category fields. Nil means unchanged.
type CategoryPatch struct {
	Label    *string
	Icon     *string
	Order    *int
	IsActive *bool
}

// IsEmpty returns true when the patch changes nothing
func (p CategoryPatch) IsEmpty() bool {
	return p.Label == nil && p.Icon == nil && p.Order == nil && p.IsActive == nil
}

// NewCategory creates a new active category
func NewCategory(name, label, icon string, order int) (*Category, error) {
	name = strings.TrimSpace(name)
	label = strings.TrimSpace(label)
	icon = strings.TrimSpace(icon)

	var details []shared.FieldError
	details = appendLengthError(details, "name", name, CategoryNameMinLength, CategoryNameMaxLength)
	details = appendLengthError(details, "label", label, CategoryLabelMinLength, CategoryLabelMaxLength)
	details = appendLengthError(details, "icon", icon, CategoryIconMinLength, CategoryIconMaxLength)
	if order < 0 {
		details = append(details, shared.FieldError{Field: "order", Message: "order must be a non-negative integer"})
	}
	if len(details) > 0 {
		return nil, shared.NewValidationError(details...)
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Label:             label,
		Icon:              icon,
		SortOrder:         order,
		IsActive:          true,
	}
	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Apply patches the mutable fields. Either every field is applied or none is.
func (c *Category) Apply(patch CategoryPatch) error {
	var details []shared.FieldError
	var label, icon string
	if patch.Label != nil {
		label = strings.TrimSpace(*patch.Label)
		details = appendLengthError(details, "label", label, CategoryLabelMinLength, CategoryLabelMaxLength)
	}
	if patch.Icon != nil {
		icon = strings.TrimSpace(*patch.Icon)
		details = appendLengthError(details, "icon", icon, CategoryIconMinLength, CategoryIconMaxLength)
	}
	if patch.Order != nil && *patch.Order < 0 {
		details = append(details, shared.FieldError{Field: "order", Message: "order must be a non-negative integer"})
	}
	if len(details) > 0 {
		return shared.NewValidationError(details...)
	}

	if patch.Label != nil {
		c.Label = label
	}
	if patch.Icon != nil {
		c.Icon = icon
	}
	if patch.Order != nil {
		c.SortOrder = *patch.Order
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}
	c.Touch()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))
	return nil
}

// MarkDeleted records the cascade removal of the category and its plans
func (c *Category) MarkDeleted(planCount int64) {
	c.AddDomainEvent(NewCategoryDeletedEvent(c, planCount))
}

func appendLengthError(details []shared.FieldError, field, value string, minLen, maxLen int) []shared.FieldError {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		return append(details, shared.FieldError{Field: field, Message: field + " is required"})
	case n < minLen:
		return append(details, shared.FieldError{Field: field, Message: fmt.Sprintf("%s must be at least %d characters", field, minLen)})
	case n > maxLen:
		return append(details, shared.FieldError{Field: field, Message: fmt.Sprintf("%s cannot exceed %d characters", field, maxLen)})
	}
	return details
}
