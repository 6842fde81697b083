package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/shared"
)

// CopySuffix is appended to the data label of a duplicated plan
const CopySuffix = " (copia)"

// PlanStoredDataMaxLength bounds the stored data label. Copies may exceed
// PlanDataMaxLength up to this length, which matches the plans.data column.
const PlanStoredDataMaxLength = 100

// Plan field bounds
const (
	PlanDataMaxLength         = 50
	PlanFeaturesMaxLength     = 255
	PlanDurationMaxLength     = 50
	PlanOriginalDataMaxLength = 50
	PlanMultiplierMaxLength   = 50
	PlanSMSMaxLength          = 100
	PlanTagMaxLength          = 255
)

// Plan is a single purchasable offering inside a category
type Plan struct {
	shared.BaseAggregateRoot
	CategoryID      uuid.UUID
	Price           int64
	Data            string
	OriginalData    *string
	Multiplier      *string
	Features        string
	SMS             *string
	Duration        string
	HasCalls        bool
	UnlimitedSocial bool
	IsFeatured      bool
	IsMifi          bool
	IsActive        bool
	Tag             *string
	SortOrder       int
}

// PlanAttributes holds the caller-supplied fields of a new plan
type PlanAttributes struct {
	CategoryID      uuid.UUID
	Price           int64
	Data            string
	OriginalData    *string
	Multiplier      *string
	Features        string
	SMS             *string
	Duration        string
	HasCalls        bool
	UnlimitedSocial bool
	IsFeatured      bool
	IsMifi          bool
	IsActive        bool
	Tag             *string
	Order           int
}

// OptionalText patches a nullable text field. Set with a nil Value clears it.
type OptionalText struct {
	Set   bool
	Value *string
}

// PlanPatch lists the mutable plan fields. Nil pointers and unset OptionalText leave the field unchanged.
type PlanPatch struct {
	CategoryID      *uuid.UUID
	Price           *int64
	Data            *string
	OriginalData    OptionalText
	Multiplier      OptionalText
	Features        *string
	SMS             OptionalText
	Duration        *string
	HasCalls        *bool
	UnlimitedSocial *bool
	IsFeatured      *bool
	IsMifi          *bool
	IsActive        *bool
	Tag             OptionalText
	Order           *int
}

// IsEmpty returns true when the patch changes nothing
func (p PlanPatch) IsEmpty() bool {
	return p.CategoryID == nil && p.Price == nil && p.Data == nil && !p.OriginalData.Set &&
		!p.Multiplier.Set && p.Features == nil && !p.SMS.Set && p.Duration == nil &&
		p.HasCalls == nil && p.UnlimitedSocial == nil && p.IsFeatured == nil &&
		p.IsMifi == nil && p.IsActive == nil && !p.Tag.Set && p.Order == nil
}

// NewPlan creates a plan from validated attributes
func NewPlan(attrs PlanAttributes) (*Plan, error) {
	if attrs.CategoryID == uuid.Nil {
		return nil, shared.NewFieldError("categoryId", "categoryId is required")
	}

	plan := &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CategoryID:        attrs.CategoryID,
		Price:             attrs.Price,
		Data:              strings.TrimSpace(attrs.Data),
		OriginalData:      NormalizeOptional(attrs.OriginalData),
		Multiplier:        NormalizeOptional(attrs.Multiplier),
		Features:          strings.TrimSpace(attrs.Features),
		SMS:               NormalizeOptional(attrs.SMS),
		Duration:          strings.TrimSpace(attrs.Duration),
		HasCalls:          attrs.HasCalls,
		UnlimitedSocial:   attrs.UnlimitedSocial,
		IsFeatured:        attrs.IsFeatured,
		IsMifi:            attrs.IsMifi,
		IsActive:          attrs.IsActive,
		Tag:               NormalizeOptional(attrs.Tag),
		SortOrder:         attrs.Order,
	}
	if err := plan.validate(); err != nil {
		return nil, err
	}

	plan.AddDomainEvent(NewPlanCreatedEvent(plan))
	return plan, nil
}

// Apply patches only the supplied fields. On a validation failure the plan is left unchanged.
func (p *Plan) Apply(patch PlanPatch) error {
	next := *p
	if patch.CategoryID != nil {
		next.CategoryID = *patch.CategoryID
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Data != nil {
		next.Data = strings.TrimSpace(*patch.Data)
	}
	if patch.OriginalData.Set {
		next.OriginalData = NormalizeOptional(patch.OriginalData.Value)
	}
	if patch.Multiplier.Set {
		next.Multiplier = NormalizeOptional(patch.Multiplier.Value)
	}
	if patch.Features != nil {
		next.Features = strings.TrimSpace(*patch.Features)
	}
	if patch.SMS.Set {
		next.SMS = NormalizeOptional(patch.SMS.Value)
	}
	if patch.Duration != nil {
		next.Duration = strings.TrimSpace(*patch.Duration)
	}
	if patch.HasCalls != nil {
		next.HasCalls = *patch.HasCalls
	}
	if patch.UnlimitedSocial != nil {
		next.UnlimitedSocial = *patch.UnlimitedSocial
	}
	if patch.IsFeatured != nil {
		next.IsFeatured = *patch.IsFeatured
	}
	if patch.IsMifi != nil {
		next.IsMifi = *patch.IsMifi
	}
	if patch.IsActive != nil {
		next.IsActive = *patch.IsActive
	}
	if patch.Tag.Set {
		next.Tag = NormalizeOptional(patch.Tag.Value)
	}
	if patch.Order != nil {
		next.SortOrder = *patch.Order
	}

	if err := next.validatePatched(patch); err != nil {
		return err
	}

	next.Touch()
	*p = next
	p.AddDomainEvent(NewPlanUpdatedEvent(p))
	return nil
}

// Duplicate returns a new plan that copies every field except identity and timestamps.
// The copy's data label carries CopySuffix and its order is one past the source.
// Siblings are not renumbered, so the copy may share an order value with another plan.
// It fails with a ValidationError when the suffixed label would exceed PlanStoredDataMaxLength.
func (p *Plan) Duplicate() (*Plan, error) {
	data := p.Data + CopySuffix
	if utf8.RuneCountInString(data) > PlanStoredDataMaxLength {
		return nil, shared.NewFieldError("data",
			fmt.Sprintf("data is too long to duplicate (copy label cannot exceed %d characters)", PlanStoredDataMaxLength))
	}

	cp := &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CategoryID:        p.CategoryID,
		Price:             p.Price,
		Data:              data,
		OriginalData:      cloneText(p.OriginalData),
		Multiplier:        cloneText(p.Multiplier),
		Features:          p.Features,
		SMS:               cloneText(p.SMS),
		Duration:          p.Duration,
		HasCalls:          p.HasCalls,
		UnlimitedSocial:   p.UnlimitedSocial,
		IsFeatured:        p.IsFeatured,
		IsMifi:            p.IsMifi,
		IsActive:          p.IsActive,
		Tag:               cloneText(p.Tag),
		SortOrder:         p.SortOrder + 1,
	}
	cp.AddDomainEvent(NewPlanDuplicatedEvent(cp, p.ID))
	return cp, nil
}

// MarkDeleted records the removal of the plan
func (p *Plan) MarkDeleted() {
	p.AddDomainEvent(NewPlanDeletedEvent(p))
}

func (p *Plan) validate() error {
	var details []shared.FieldError
	if p.Price < 0 {
		details = append(details, shared.FieldError{Field: "price", Message: "price must be a non-negative integer"})
	}
	details = appendLengthError(details, "data", p.Data, 1, PlanDataMaxLength)
	details = appendLengthError(details, "features", p.Features, 1, PlanFeaturesMaxLength)
	details = appendLengthError(details, "duration", p.Duration, 1, PlanDurationMaxLength)
	details = appendOptionalLengthError(details, "originalData", p.OriginalData, PlanOriginalDataMaxLength)
	details = appendOptionalLengthError(details, "multiplier", p.Multiplier, PlanMultiplierMaxLength)
	details = appendOptionalLengthError(details, "sms", p.SMS, PlanSMSMaxLength)
	details = appendOptionalLengthError(details, "tag", p.Tag, PlanTagMaxLength)
	if p.SortOrder < 0 {
		details = append(details, shared.FieldError{Field: "order", Message: "order must be a non-negative integer"})
	}
	if len(details) > 0 {
		return shared.NewValidationError(details...)
	}
	return nil
}

// validatePatched only checks the fields the patch touched, so a duplicated
// plan whose data label grew past the create bound can still be edited.
func (p *Plan) validatePatched(patch PlanPatch) error {
	var details []shared.FieldError
	if patch.CategoryID != nil && *patch.CategoryID == uuid.Nil {
		details = append(details, shared.FieldError{Field: "categoryId", Message: "categoryId is required"})
	}
	if patch.Price != nil && p.Price < 0 {
		details = append(details, shared.FieldError{Field: "price", Message: "price must be a non-negative integer"})
	}
	if patch.Data != nil {
		details = appendLengthError(details, "data", p.Data, 1, PlanDataMaxLength)
	}
	if patch.Features != nil {
		details = appendLengthError(details, "features", p.Features, 1, PlanFeaturesMaxLength)
	}
	if patch.Duration != nil {
		details = appendLengthError(details, "duration", p.Duration, 1, PlanDurationMaxLength)
	}
	if patch.OriginalData.Set {
		details = appendOptionalLengthError(details, "originalData", p.OriginalData, PlanOriginalDataMaxLength)
	}
	if patch.Multiplier.Set {
		details = appendOptionalLengthError(details, "multiplier", p.Multiplier, PlanMultiplierMaxLength)
	}
	if patch.SMS.Set {
		details = appendOptionalLengthError(details, "sms", p.SMS, PlanSMSMaxLength)
	}
	if patch.Tag.Set {
		details = appendOptionalLengthError(details, "tag", p.Tag, PlanTagMaxLength)
	}
	if patch.Order != nil && p.SortOrder < 0 {
		details = append(details, shared.FieldError{Field: "order", Message: "order must be a non-negative integer"})
	}
	if len(details) > 0 {
		return shared.NewValidationError(details...)
	}
	return nil
}

// NormalizeOptional trims s and maps empty strings to nil
func NormalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func cloneText(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func appendOptionalLengthError(details []shared.FieldError, field string, value *string, maxLen int) []shared.FieldError {
	if value == nil {
		return details
	}
	if utf8.RuneCountInString(*value) > maxLen {
		return appendLengthError(details, field, *value, 0, maxLen)
	}
	return details
}
